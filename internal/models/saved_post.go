package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedPost marks a post as bookmarked by a user. Existence is membership;
// the (user_id, post_id) pair is unique.
type SavedPost struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	PostID    primitive.ObjectID `json:"post_id" bson:"post_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ViewedPost marks a post as opened by a user. The marker guards the post's
// view counter: it is incremented only when the marker is first created.
type ViewedPost struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID   string             `json:"user_id" bson:"user_id"`
	PostID   primitive.ObjectID `json:"post_id" bson:"post_id"`
	ViewedAt time.Time          `json:"viewed_at" bson:"viewed_at"`
}
