package handlers

import (
	"math/rand"
	"net/http"
	"sort"
	"strings"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	postRepository       repositories.PostRepository
	savedPostRepository  repositories.SavedPostRepository
	viewedPostRepository repositories.ViewedPostRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	savedPostRepo repositories.SavedPostRepository,
	viewedPostRepo repositories.ViewedPostRepository,
) *FeedHandler {
	return &FeedHandler{
		postRepository:       postRepo,
		savedPostRepository:  savedPostRepo,
		viewedPostRepository: viewedPostRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.POST("/posts/:id/view", h.TrackView)
}

// FeedPost is a post with viewer-specific flags and resolved author display
type FeedPost struct {
	models.Post
	AuthorName  string `json:"author_name"`
	AuthorPhoto string `json:"author_photo"`
	IsSaved     bool   `json:"is_saved"`
	IsViewed    bool   `json:"is_viewed"`
}

// GetFeed returns the caller's feed: every post, freshly shuffled, narrowed
// by the search and category filters.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	search := c.QueryParam("search")
	category := strings.ToLower(c.QueryParam("category"))

	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	savedIDs, err := h.savedPostRepository.GetSavedPostIDs(c.Request().Context(), user.UID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	viewedIDs, err := h.viewedPostRepository.GetViewedPostIDs(c.Request().Context(), user.UID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Fresh shuffle per load so repeat visits surface different posts.
	shufflePosts(posts)
	filtered := filterPosts(posts, search, category, savedIDs)
	if category == "trending" {
		sortByViews(filtered)
	}

	feed := make([]FeedPost, len(filtered))
	for i, p := range filtered {
		name := p.UserDisplayName
		if name == "" {
			name = maskEmail(p.UserEmail)
		}
		feed[i] = FeedPost{
			Post:        p,
			AuthorName:  name,
			AuthorPhoto: avatarURL(p.UserPhoto, name),
			IsSaved:     savedIDs[p.ID.Hex()],
			IsViewed:    viewedIDs[p.ID.Hex()],
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": feed},
	})
}

// TrackView records that the caller opened a post. The first open per
// (user, post) bumps the post's view counter; repeats never do.
func (h *FeedHandler) TrackView(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	first, err := h.viewedPostRepository.MarkViewed(c.Request().Context(), user.UID, postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if first {
		if err := h.postRepository.IncrementViews(c.Request().Context(), postID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"counted": first},
	})
}

// filterPosts applies the search and category filters. All filters compose
// by AND; "trending" does not filter at all, it only changes ordering.
func filterPosts(posts []models.Post, search, category string, savedIDs map[string]bool) []models.Post {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		switch category {
		case "", "home", "all", "trending":
			// no category filter
		case "unanswered":
			if p.Comments != 0 {
				continue
			}
		case "saved":
			if !savedIDs[p.ID.Hex()] {
				continue
			}
		default:
			if strings.ToLower(p.Category) != category {
				continue
			}
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Problem), search) {
			continue
		}

		out = append(out, p)
	}
	return out
}

// shufflePosts randomizes order in place (Fisher-Yates)
func shufflePosts(posts []models.Post) {
	rand.Shuffle(len(posts), func(i, j int) {
		posts[i], posts[j] = posts[j], posts[i]
	})
}

// sortByViews re-sorts posts by view count descending, in place
func sortByViews(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Views > posts[j].Views
	})
}
