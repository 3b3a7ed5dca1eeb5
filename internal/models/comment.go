package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post
type Comment struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID          primitive.ObjectID `json:"post_id" bson:"post_id"`
	Text            string             `json:"text" bson:"text"`
	UserEmail       string             `json:"user" bson:"user"`
	UserDisplayName string             `json:"user_display_name,omitempty" bson:"user_display_name,omitempty"`
	Likes           int                `json:"likes" bson:"likes"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// Reply represents a reply nested under a comment. Replies carry no like
// counter.
type Reply struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID          primitive.ObjectID `json:"post_id" bson:"post_id"`
	CommentID       primitive.ObjectID `json:"comment_id" bson:"comment_id"`
	Text            string             `json:"text" bson:"text"`
	UserEmail       string             `json:"user" bson:"user"`
	UserDisplayName string             `json:"user_display_name,omitempty" bson:"user_display_name,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// CreateReplyRequest defines the request body for replying to a comment
type CreateReplyRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
