package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUserNotFound is returned when no profile matches the lookup.
var ErrUserNotFound = fmt.Errorf("user not found")

// UserRepository defines the interface for user profile operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpsertUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository. Email carries a
// unique index so lookup-by-email resolves to at most one profile.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	coll := db.Collection("users")
	_, _ = coll.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &MongoUserRepository{collection: coll}
}

// CreateUser inserts a new profile. Fails on a duplicate email.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("user with this email already exists")
	}
	return err
}

// UpsertUser creates or refreshes a profile keyed by auth UID. Used on
// Firebase login to keep denormalized identity fields current.
func (r *MongoUserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	set := bson.M{"email": user.Email}
	if user.DisplayName != "" {
		set["display_name"] = user.DisplayName
	}
	if user.PhotoURL != "" {
		set["photo_url"] = user.PhotoURL
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update, options.Update().SetUpsert(true))
	return err
}

// GetUserByID retrieves a profile by auth UID
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a profile by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile sets the given profile fields on an existing user
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
