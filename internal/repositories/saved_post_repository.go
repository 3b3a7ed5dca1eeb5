package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SavedPostRepository defines the interface for saved-post markers
type SavedPostRepository interface {
	SavePost(ctx context.Context, userID, postID string) error
	UnsavePost(ctx context.Context, userID, postID string) error
	IsPostSaved(ctx context.Context, userID, postID string) (bool, error)
	GetSavedPostIDs(ctx context.Context, userID string) (map[string]bool, error)
}

// MongoSavedPostRepository implements SavedPostRepository for MongoDB
type MongoSavedPostRepository struct {
	collection *mongo.Collection
}

// NewMongoSavedPostRepository creates a new MongoSavedPostRepository
func NewMongoSavedPostRepository(db *mongo.Database) *MongoSavedPostRepository {
	coll := db.Collection("saved_posts")
	_, _ = coll.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "post_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &MongoSavedPostRepository{collection: coll}
}

// SavePost bookmarks a post for a user. Saving twice is a no-op.
func (r *MongoSavedPostRepository) SavePost(ctx context.Context, userID, postID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	marker := models.SavedPost{UserID: userID, PostID: objID, CreatedAt: time.Now()}
	_, err = r.collection.InsertOne(ctx, &marker)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// UnsavePost removes a user's bookmark
func (r *MongoSavedPostRepository) UnsavePost(ctx context.Context, userID, postID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": objID})
	return err
}

// IsPostSaved reports whether the user has bookmarked the post
func (r *MongoSavedPostRepository) IsPostSaved(ctx context.Context, userID, postID string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return false, fmt.Errorf("invalid post ID format: %w", err)
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "post_id": objID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetSavedPostIDs returns the set of post IDs the user has bookmarked
func (r *MongoSavedPostRepository) GetSavedPostIDs(ctx context.Context, userID string) (map[string]bool, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var markers []models.SavedPost
	if err = cursor.All(ctx, &markers); err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(markers))
	for _, m := range markers {
		ids[m.PostID.Hex()] = true
	}
	return ids, nil
}
