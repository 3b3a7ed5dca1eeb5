package handlers

import (
	"log"
	"net/http"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/like", h.LikeComment)
	g.POST("/comments/:id/replies", h.CreateReply)
	g.GET("/comments/:id/replies", h.GetReplies)
}

// CreateComment appends a new comment to a post and bumps the post's
// denormalized comment counter.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comment := &models.Comment{
		PostID:          post.ID,
		Text:            req.Text,
		UserEmail:       user.Email,
		UserDisplayName: user.DisplayName,
	}

	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.IncrementCommentsCount(c.Request().Context(), postID); err != nil {
		log.Printf("Failed to increment comment count for post %s: %v", postID, err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves all comments on a post, oldest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("post_id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment removes a comment. Only the comment's author may delete it.
// The post's comment counter is decremented but never below zero.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID := c.Param("id")

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	if comment.UserEmail != user.Email {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author may delete this comment")
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), commentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.DecrementCommentsCount(c.Request().Context(), comment.PostID.Hex()); err != nil {
		log.Printf("Failed to decrement comment count for post %s: %v", comment.PostID.Hex(), err)
	}

	return c.NoContent(http.StatusNoContent)
}

// LikeComment increments a comment's like counter
func (h *CommentHandler) LikeComment(c echo.Context) error {
	if _, ok := currentUser(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.commentRepository.IncrementLikes(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// CreateReply appends a reply under a comment
func (h *CommentHandler) CreateReply(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	commentID := c.Param("id")

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	reply := &models.Reply{
		PostID:          comment.PostID,
		CommentID:       comment.ID,
		Text:            req.Text,
		UserEmail:       user.Email,
		UserDisplayName: user.DisplayName,
	}

	if err := h.commentRepository.CreateReply(c.Request().Context(), reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, reply)
}

// GetReplies retrieves a comment's replies, oldest first. Replies are
// fetched lazily by the client when a comment is expanded.
func (h *CommentHandler) GetReplies(c echo.Context) error {
	commentID := c.Param("id")

	if _, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	replies, err := h.commentRepository.GetRepliesByCommentID(c.Request().Context(), commentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, replies)
}
