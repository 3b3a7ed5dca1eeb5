package repositories

import (
	"context"
	"fmt"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VoteRepository defines the interface for vote ledger operations
type VoteRepository interface {
	GetVote(ctx context.Context, postID, userID string) (*models.Vote, error)
	SetVote(ctx context.Context, postID, userID, voteType string) error
	DeleteVote(ctx context.Context, postID, userID string) error
}

// MongoVoteRepository implements VoteRepository for MongoDB
type MongoVoteRepository struct {
	collection *mongo.Collection
}

// NewMongoVoteRepository creates a new MongoVoteRepository and ensures the
// unique (post_id, user_id) index backing the one-vote-per-user invariant.
func NewMongoVoteRepository(db *mongo.Database) *MongoVoteRepository {
	coll := db.Collection("votes")
	_, _ = coll.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &MongoVoteRepository{collection: coll}
}

// GetVote retrieves a user's vote on a post. Returns (nil, nil) when the
// user has not voted.
func (r *MongoVoteRepository) GetVote(ctx context.Context, postID, userID string) (*models.Vote, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var vote models.Vote
	err = r.collection.FindOne(ctx, bson.M{"post_id": objID, "user_id": userID}).Decode(&vote)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// SetVote creates or overwrites the user's vote on a post
func (r *MongoVoteRepository) SetVote(ctx context.Context, postID, userID, voteType string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	filter := bson.M{"post_id": objID, "user_id": userID}
	update := bson.M{"$set": bson.M{"type": voteType}}
	_, err = r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// DeleteVote removes the user's vote on a post
func (r *MongoVoteRepository) DeleteVote(ctx context.Context, postID, userID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"post_id": objID, "user_id": userID})
	return err
}
