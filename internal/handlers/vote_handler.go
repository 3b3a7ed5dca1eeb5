package handlers

import (
	"net/http"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// VoteHandler handles HTTP requests related to post votes
type VoteHandler struct {
	voteRepository repositories.VoteRepository
	postRepository repositories.PostRepository
}

// NewVoteHandler creates a new VoteHandler
func NewVoteHandler(voteRepo repositories.VoteRepository, postRepo repositories.PostRepository) *VoteHandler {
	return &VoteHandler{
		voteRepository: voteRepo,
		postRepository: postRepo,
	}
}

// RegisterVoteRoutes registers vote-related routes
func (h *VoteHandler) RegisterVoteRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/votes", h.CastVote)
	g.GET("/posts/:post_id/votes/me", h.GetMyVote)
}

// CastVote toggles the caller's vote on a post:
// no existing vote creates one, the same direction removes it, the opposite
// direction flips it. The counter adjustment happens in a single atomic
// update on the post document.
func (h *VoteHandler) CastVote(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	var req models.CastVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	existing, err := h.voteRepository.GetVote(c.Request().Context(), postID, user.UID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var upDelta, downDelta int
	var userVote string
	switch {
	case existing == nil:
		if err := h.voteRepository.SetVote(c.Request().Context(), postID, user.UID, req.Type); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		upDelta, downDelta = voteDelta(req.Type, 1)
		userVote = req.Type
	case existing.Type == req.Type:
		if err := h.voteRepository.DeleteVote(c.Request().Context(), postID, user.UID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		upDelta, downDelta = voteDelta(req.Type, -1)
	default:
		if err := h.voteRepository.SetVote(c.Request().Context(), postID, user.UID, req.Type); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		newUp, newDown := voteDelta(req.Type, 1)
		oldUp, oldDown := voteDelta(existing.Type, -1)
		upDelta, downDelta = newUp+oldUp, newDown+oldDown
		userVote = req.Type
	}

	post, err := h.postRepository.ApplyVoteDelta(c.Request().Context(), postID, upDelta, downDelta)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"upvotes":   post.Upvotes,
			"downvotes": post.Downvotes,
			"user_vote": userVote,
		},
	})
}

// GetMyVote returns the caller's current vote on a post, if any
func (h *VoteHandler) GetMyVote(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	postID := c.Param("post_id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	vote, err := h.voteRepository.GetVote(c.Request().Context(), postID, user.UID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	userVote := ""
	if vote != nil {
		userVote = vote.Type
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"user_vote": userVote},
	})
}

// voteDelta maps a vote direction and sign to (upvotes, downvotes) deltas
func voteDelta(voteType string, sign int) (up, down int) {
	if voteType == models.VoteLike {
		return sign, 0
	}
	return 0, sign
}
