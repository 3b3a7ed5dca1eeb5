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

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, email string, skip, limit int64) ([]models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ApplyVoteDelta(ctx context.Context, id string, upDelta, downDelta int) (*models.Post, error)
	IncrementCommentsCount(ctx context.Context, id string) error
	DecrementCommentsCount(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CountByIDsExcludingAuthor(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post with zeroed counters
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves every post ordered by creation time descending.
// The feed is loaded in full; presentation ordering is applied by the caller.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthor retrieves posts created by a specific user
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, email string, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user": email}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post by ID
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}

// ApplyVoteDelta atomically adjusts both vote counters in a single update
// and returns the post as it stands afterwards.
func (r *MongoPostRepository) ApplyVoteDelta(ctx context.Context, id string, upDelta, downDelta int) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	update := bson.M{"$inc": bson.M{"upvotes": upDelta, "downvotes": downDelta}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &post, nil
}

// IncrementCommentsCount increments the denormalized comment counter
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments": 1}})
	return err
}

// DecrementCommentsCount decrements the comment counter, floored at zero.
// The counter predicate in the filter keeps a concurrent double-delete from
// driving the value negative.
func (r *MongoPostRepository) DecrementCommentsCount(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	filter := bson.M{"_id": objID, "comments": bson.M{"$gt": 0}}
	_, err = r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"comments": -1}})
	return err
}

// IncrementViews increments the global view counter
func (r *MongoPostRepository) IncrementViews(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// CountByIDsExcludingAuthor counts how many of the given posts were written
// by someone other than the given user. Used by the posting gate.
func (r *MongoPostRepository) CountByIDsExcludingAuthor(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}, "user": bson.M{"$ne": email}}
	return r.collection.CountDocuments(ctx, filter)
}
