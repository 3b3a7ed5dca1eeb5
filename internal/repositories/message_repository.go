package repositories

import (
	"context"
	"time"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for direct-message operations
type MessageRepository interface {
	InsertMessage(ctx context.Context, msg *models.Message) error
	ListByParticipant(ctx context.Context, email string) ([]models.Message, error)
	ListThread(ctx context.Context, me, peer string) ([]models.Message, error)
	MarkThreadRead(ctx context.Context, me, peer string) (int64, error)
	CountUnread(ctx context.Context, email string) (int64, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	coll := db.Collection("messages")
	_, _ = coll.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "participants", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return &MongoMessageRepository{collection: coll}
}

// InsertMessage stores a new message
func (r *MongoMessageRepository) InsertMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// ListByParticipant retrieves every message the user is a participant of.
// The conversation view is derived from this set by the caller.
func (r *MongoMessageRepository) ListByParticipant(ctx context.Context, email string) ([]models.Message, error) {
	var messages []models.Message
	cursor, err := r.collection.Find(ctx, bson.M{"participants": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// ListThread retrieves the full exchange between two users, oldest first
func (r *MongoMessageRepository) ListThread(ctx context.Context, me, peer string) ([]models.Message, error) {
	var messages []models.Message
	filter := bson.M{"participants": bson.M{"$all": []string{me, peer}}}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkThreadRead marks every unread message from peer to me as read in a
// single update and returns how many were flipped.
func (r *MongoMessageRepository) MarkThreadRead(ctx context.Context, me, peer string) (int64, error) {
	filter := bson.M{"to_email": me, "from_email": peer, "read": false}
	res, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// CountUnread counts unread messages addressed to the user
func (r *MongoMessageRepository) CountUnread(ctx context.Context, email string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"to_email": email, "read": false})
}
