package handlers

import (
	"net/http"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PUT("/users/me", h.UpdateMe)
	g.GET("/users/lookup", h.LookupByEmail)
}

// GetMe returns the caller's profile document, creating a minimal one on
// first access for identities that never went through firebase-login.
func (h *UserHandler) GetMe(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	profile, err := h.userRepository.GetUserByID(c.Request().Context(), user.UID)
	if err == repositories.ErrUserNotFound {
		profile = &models.User{
			ID:          user.UID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			PhotoURL:    user.PhotoURL,
		}
		if err := h.userRepository.UpsertUser(c.Request().Context(), profile); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateMe updates the caller's bio, display name, or photo
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fields := map[string]interface{}{}
	if req.DisplayName != "" {
		fields["display_name"] = req.DisplayName
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if req.PhotoURL != "" {
		fields["photo_url"] = req.PhotoURL
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"updated": false}})
	}

	if err := h.userRepository.UpdateProfile(c.Request().Context(), user.UID, fields); err != nil {
		if err == repositories.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"updated": true}})
}

// LookupByEmail returns another user's public profile by email. Email is
// unique in the users collection so this resolves to at most one profile.
func (h *UserHandler) LookupByEmail(c echo.Context) error {
	if _, ok := currentUser(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing email parameter")
	}

	profile, err := h.userRepository.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":           profile.ID,
		"email":        profile.Email,
		"display_name": profile.DisplayName,
		"photo_url":    avatarURL(profile.PhotoURL, profile.DisplayName),
		"bio":          profile.Bio,
	})
}
