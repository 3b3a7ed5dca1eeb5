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

// ViewedPostRepository defines the interface for per-user view markers
type ViewedPostRepository interface {
	MarkViewed(ctx context.Context, userID, postID string) (bool, error)
	GetViewedPostIDs(ctx context.Context, userID string) (map[string]bool, error)
}

// MongoViewedPostRepository implements ViewedPostRepository for MongoDB
type MongoViewedPostRepository struct {
	collection *mongo.Collection
}

// NewMongoViewedPostRepository creates a new MongoViewedPostRepository
func NewMongoViewedPostRepository(db *mongo.Database) *MongoViewedPostRepository {
	coll := db.Collection("viewed_posts")
	_, _ = coll.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "post_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &MongoViewedPostRepository{collection: coll}
}

// MarkViewed records that the user has opened the post. Returns true when
// this is the first view, false on repeats. The unique index makes the
// first-view decision atomic, so the view counter is bumped at most once
// per (user, post) even across concurrent opens.
func (r *MongoViewedPostRepository) MarkViewed(ctx context.Context, userID, postID string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return false, fmt.Errorf("invalid post ID format: %w", err)
	}
	marker := models.ViewedPost{UserID: userID, PostID: objID, ViewedAt: time.Now()}
	_, err = r.collection.InsertOne(ctx, &marker)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetViewedPostIDs returns the set of post IDs the user has opened
func (r *MongoViewedPostRepository) GetViewedPostIDs(ctx context.Context, userID string) (map[string]bool, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var markers []models.ViewedPost
	if err = cursor.All(ctx, &markers); err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(markers))
	for _, m := range markers {
		ids[m.PostID.Hex()] = true
	}
	return ids, nil
}
