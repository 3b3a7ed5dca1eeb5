package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a flat direct-message record. There is no stored conversation
// entity; the participants array lets a single query fetch everything a
// user is involved in, and conversations are derived from that set.
type Message struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FromUID         string             `json:"from_uid,omitempty" bson:"from_uid,omitempty"`
	FromEmail       string             `json:"from_email" bson:"from_email"`
	FromDisplayName string             `json:"from_display_name,omitempty" bson:"from_display_name,omitempty"`
	ToEmail         string             `json:"to_email" bson:"to_email"`
	ToDisplayName   string             `json:"to_display_name,omitempty" bson:"to_display_name,omitempty"`
	Text            string             `json:"text,omitempty" bson:"text,omitempty"`
	ImageURL        string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Read            bool               `json:"read" bson:"read"`
	Participants    []string           `json:"participants" bson:"participants"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// Conversation is the derived per-peer view of a user's messages: the most
// recent message and the number of unread messages addressed to the user.
type Conversation struct {
	PeerEmail       string    `json:"peer_email"`
	PeerDisplayName string    `json:"peer_display_name,omitempty"`
	LastText        string    `json:"last_text,omitempty"`
	LastAt          time.Time `json:"last_at"`
	UnreadCount     int       `json:"unread_count"`
}

// SendMessageRequest defines the request body for sending a direct message.
// A message carries text or an image; when both are present the image wins.
type SendMessageRequest struct {
	ToEmail  string `json:"to_email" validate:"required,email"`
	Text     string `json:"text,omitempty" validate:"required_without=ImageURL,max=5000"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}
