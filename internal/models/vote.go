package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Vote directions. A user holds at most one vote per post.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// Vote represents a single user's vote on a post. The (post_id, user_id)
// pair is unique.
type Vote struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID primitive.ObjectID `json:"post_id" bson:"post_id"`
	UserID string             `json:"user_id" bson:"user_id"`
	Type   string             `json:"type" bson:"type"`
}

// CastVoteRequest defines the request body for voting on a post
type CastVoteRequest struct {
	Type string `json:"type" validate:"required,oneof=like dislike"`
}
