package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// A user may only share a problem after commenting on this many posts by
// other authors.
const minCommentsBeforePosting = 3

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost shares a new problem. Posting is gated on having commented on
// at least three distinct posts by other authors.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !models.IsValidCategory(req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown category")
	}

	commented, err := h.commentRepository.DistinctPostIDsCommentedBy(c.Request().Context(), user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	helped, err := h.postRepository.CountByIDsExcludingAuthor(c.Request().Context(), commented, user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if helped < minCommentsBeforePosting {
		return echo.NewHTTPError(http.StatusForbidden, "Comment on at least 3 different posts before sharing your own problem")
	}

	post := &models.Post{
		Title:           req.Title,
		Problem:         req.Problem,
		Category:        strings.ToLower(req.Category),
		Subcategory:     req.Subcategory,
		ImageURL:        req.ImageURL,
		UserEmail:       user.Email,
		UserDisplayName: user.DisplayName,
		UserPhoto:       user.PhotoURL,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts retrieves posts by a given author
func (h *PostHandler) GetPosts(c echo.Context) error {
	author := c.QueryParam("author")
	if author == "" {
		user, ok := currentUser(c)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing author parameter")
		}
		author = user.Email
	}

	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), author, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// DeletePost deletes a post. Only the author may delete it; the check runs
// here because the document store enforces nothing.
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.UserEmail != user.Email {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author may delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
