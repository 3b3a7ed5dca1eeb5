package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func feedFixture() []models.Post {
	return []models.Post{
		{ID: primitive.NewObjectID(), Title: "Exam anxiety", Problem: "I freeze during tests", Category: "school", Comments: 0, Views: 5},
		{ID: primitive.NewObjectID(), Title: "Debt spiral", Problem: "Credit cards got out of hand", Category: "finance", Comments: 3, Views: 20},
		{ID: primitive.NewObjectID(), Title: "Burnout", Problem: "Anxiety about deadlines at work", Category: "career", Comments: 0, Views: 11},
	}
}

func TestFilterPostsByCategory(t *testing.T) {
	posts := feedFixture()

	got := filterPosts(posts, "", "finance", nil)
	if len(got) != 1 || got[0].Title != "Debt spiral" {
		t.Fatalf("expected only the finance post, got %d posts", len(got))
	}
}

func TestFilterPostsUnansweredComposesWithSearch(t *testing.T) {
	posts := feedFixture()

	// Both filters must hold: zero comments AND matching text.
	got := filterPosts(posts, "anxiety", "unanswered", nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 unanswered anxiety posts, got %d", len(got))
	}
	for _, p := range got {
		if p.Comments != 0 {
			t.Errorf("post %q has comments, should have been filtered", p.Title)
		}
	}
}

func TestFilterPostsSearchMatchesTitleOrProblem(t *testing.T) {
	posts := feedFixture()

	if got := filterPosts(posts, "FREEZE", "", nil); len(got) != 1 {
		t.Errorf("expected case-insensitive problem match, got %d posts", len(got))
	}
	if got := filterPosts(posts, "burnout", "", nil); len(got) != 1 {
		t.Errorf("expected title match, got %d posts", len(got))
	}
	if got := filterPosts(posts, "no such text", "", nil); len(got) != 0 {
		t.Errorf("expected no matches, got %d posts", len(got))
	}
}

func TestFilterPostsSaved(t *testing.T) {
	posts := feedFixture()
	saved := map[string]bool{posts[2].ID.Hex(): true}

	got := filterPosts(posts, "", "saved", saved)
	if len(got) != 1 || got[0].ID != posts[2].ID {
		t.Fatalf("expected only the saved post, got %d posts", len(got))
	}
}

func TestFilterPostsTrendingDoesNotFilter(t *testing.T) {
	posts := feedFixture()

	if got := filterPosts(posts, "", "trending", nil); len(got) != len(posts) {
		t.Fatalf("trending should keep all posts, got %d of %d", len(got), len(posts))
	}
}

func TestSortByViewsDescending(t *testing.T) {
	posts := feedFixture()
	sortByViews(posts)

	for i := 1; i < len(posts); i++ {
		if posts[i-1].Views < posts[i].Views {
			t.Fatalf("posts not sorted by views: %d before %d", posts[i-1].Views, posts[i].Views)
		}
	}
}

func TestTrackViewCountsFirstOpenOnly(t *testing.T) {
	views := 0
	postRepo := &fakePostRepo{
		IncrementViewsFn: func(ctx context.Context, id string) error {
			views++
			return nil
		},
	}
	seen := map[string]bool{}
	viewedRepo := &fakeViewedPostRepo{
		MarkViewedFn: func(ctx context.Context, userID, postID string) (bool, error) {
			key := userID + "/" + postID
			if seen[key] {
				return false, nil
			}
			seen[key] = true
			return true, nil
		},
	}
	h := NewFeedHandler(postRepo, &fakeSavedPostRepo{}, viewedRepo)

	for i, wantCounted := range []bool{true, false} {
		c, rec := newTestContext(http.MethodPost, "/posts/abc/view", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")
		if err := h.TrackView(c); err != nil {
			t.Fatalf("TrackView #%d returned error: %v", i+1, err)
		}
		data := decodeBody(t, rec)["data"].(map[string]interface{})
		if data["counted"] != wantCounted {
			t.Errorf("open #%d: expected counted=%v, got %v", i+1, wantCounted, data["counted"])
		}
	}

	if views != 1 {
		t.Errorf("expected the view counter bumped exactly once, got %d", views)
	}
}
