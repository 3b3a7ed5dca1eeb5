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

// CommentRepository defines the interface for comment and reply operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
	CreateReply(ctx context.Context, reply *models.Reply) error
	GetRepliesByCommentID(ctx context.Context, commentID string) ([]models.Reply, error)
	DistinctPostIDsCommentedBy(ctx context.Context, email string) ([]primitive.ObjectID, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	comments *mongo.Collection
	replies  *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{
		comments: db.Collection("comments"),
		replies:  db.Collection("replies"),
	}
}

// CreateComment appends a new comment to a post
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	_, err := r.comments.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}

	var comment models.Comment
	err = r.comments.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments on a post, oldest first.
// Comments are fetched in full; there is no pagination on this path.
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var comments []models.Comment
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.comments.Find(ctx, bson.M{"post_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment deletes a comment and its replies
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid comment ID format: %w", err)
	}

	res, err := r.comments.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("comment not found")
	}
	_, _ = r.replies.DeleteMany(ctx, bson.M{"comment_id": objID})
	return nil
}

// IncrementLikes increments a comment's like counter
func (r *MongoCommentRepository) IncrementLikes(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid comment ID format: %w", err)
	}
	res, err := r.comments.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}

// CreateReply appends a reply under a comment
func (r *MongoCommentRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	reply.ID = primitive.NewObjectID()
	reply.CreatedAt = time.Now()
	_, err := r.replies.InsertOne(ctx, reply)
	return err
}

// GetRepliesByCommentID retrieves a comment's replies, oldest first
func (r *MongoCommentRepository) GetRepliesByCommentID(ctx context.Context, commentID string) ([]models.Reply, error) {
	objID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}

	var replies []models.Reply
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.replies.Find(ctx, bson.M{"comment_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// DistinctPostIDsCommentedBy returns the IDs of every post the user has
// commented on, each at most once.
func (r *MongoCommentRepository) DistinctPostIDsCommentedBy(ctx context.Context, email string) ([]primitive.ObjectID, error) {
	raw, err := r.comments.Distinct(ctx, "post_id", bson.M{"user": email})
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
