package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a shared problem stored in MongoDB. The author is
// identified by email; display name and photo are denormalized onto the
// document at creation time.
type Post struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Problem         string             `json:"problem" bson:"problem"`
	Category        string             `json:"category" bson:"category"`
	Subcategory     string             `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	ImageURL        string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	UserEmail       string             `json:"user" bson:"user"`
	UserDisplayName string             `json:"user_display_name,omitempty" bson:"user_display_name,omitempty"`
	UserPhoto       string             `json:"user_photo,omitempty" bson:"user_photo,omitempty"`
	Upvotes         int                `json:"upvotes" bson:"upvotes"`
	Downvotes       int                `json:"downvotes" bson:"downvotes"`
	Comments        int                `json:"comments" bson:"comments"`
	Views           int                `json:"views" bson:"views"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// Categories is the fixed set of problem categories.
var Categories = []string{
	"mental health",
	"relationship",
	"school",
	"finance",
	"health",
	"career",
	"family",
	"personal growth",
	"technology",
	"other",
}

// IsValidCategory reports whether c is one of the fixed categories
// (case-insensitive).
func IsValidCategory(c string) bool {
	c = strings.ToLower(c)
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for sharing a new problem
type CreatePostRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Problem     string `json:"problem" validate:"required,min=1,max=5000"`
	Category    string `json:"category" validate:"required"`
	Subcategory string `json:"subcategory,omitempty"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}
