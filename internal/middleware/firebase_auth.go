package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/tahmid39/circle-help/backend/internal/models"
)

// AuthMiddleware creates an Echo middleware that accepts either a Firebase
// ID token or a locally issued JWT. Whichever verifies first wins; the
// resolved identity is stored under "authUser" for handlers.
func AuthMiddleware(authClient *auth.Client, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}
			tokenString := tokenParts[1]

			if authClient != nil {
				if token, err := authClient.VerifyIDToken(c.Request().Context(), tokenString); err == nil {
					c.Set("authUser", authUserFromFirebase(token))
					return next(c)
				}
			}

			claims, err := parseLocalToken(tokenString, jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("authUser", models.AuthUser{
				UID:         claims.UID,
				Email:       claims.Email,
				DisplayName: claims.DisplayName,
				PhotoURL:    claims.PhotoURL,
			})
			return next(c)
		}
	}
}

// authUserFromFirebase maps verified Firebase token claims onto the identity
// handlers consume
func authUserFromFirebase(token *auth.Token) models.AuthUser {
	user := models.AuthUser{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.DisplayName = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		user.PhotoURL = picture
	}
	return user
}
