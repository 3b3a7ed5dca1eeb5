package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a profile document in MongoDB. The document ID is the auth
// identity: the Firebase UID for Firebase users, a generated ObjectID hex
// for local accounts. Email is unique across the collection.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	DisplayName  string    `json:"display_name,omitempty" bson:"display_name,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// AuthUser is the verified identity placed on the request context by the
// auth middleware.
type AuthUser struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// SignupRequest defines the request body for local registration
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=2,max=50"`
}

// SigninRequest defines the request body for local authentication
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=500"`
	PhotoURL    string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	jwt.RegisteredClaims
}
