package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// currentUser returns the verified identity set by the auth middleware
func currentUser(c echo.Context) (models.AuthUser, bool) {
	u, ok := c.Get("authUser").(models.AuthUser)
	return u, ok && u.Email != ""
}

// maskEmail hides most of an email's local part for display to other users
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "User"
	}
	if len(local) > 2 {
		local = local[:2]
	}
	return fmt.Sprintf("%s***@%s", local, domain)
}

// avatarURL falls back to the placeholder image service when a user has no
// photo of their own.
func avatarURL(photo, name string) string {
	if photo != "" {
		return photo
	}
	if name == "" {
		name = "User"
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}
