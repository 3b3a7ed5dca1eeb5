package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func castVote(t *testing.T, voteRepo *fakeVoteRepo, postRepo *fakePostRepo, body string) map[string]interface{} {
	t.Helper()
	c, rec := newTestContext(http.MethodPost, "/posts/abc/votes", body)
	c.SetParamNames("post_id")
	c.SetParamValues("abc")

	h := NewVoteHandler(voteRepo, postRepo)
	if err := h.CastVote(c); err != nil {
		t.Fatalf("CastVote returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	return decodeBody(t, rec)
}

func TestCastVoteCreatesFirstVote(t *testing.T) {
	var setType string
	voteRepo := &fakeVoteRepo{
		SetVoteFn: func(ctx context.Context, postID, userID, voteType string) error {
			setType = voteType
			return nil
		},
	}
	var gotUp, gotDown int
	postRepo := &fakePostRepo{
		ApplyVoteDeltaFn: func(ctx context.Context, id string, upDelta, downDelta int) (*models.Post, error) {
			gotUp, gotDown = upDelta, downDelta
			return &models.Post{Upvotes: 1}, nil
		},
	}

	body := castVote(t, voteRepo, postRepo, `{"type":"like"}`)

	if setType != models.VoteLike {
		t.Errorf("expected SetVote with %q, got %q", models.VoteLike, setType)
	}
	if gotUp != 1 || gotDown != 0 {
		t.Errorf("expected deltas (+1, 0), got (%d, %d)", gotUp, gotDown)
	}
	data := body["data"].(map[string]interface{})
	if data["user_vote"] != "like" {
		t.Errorf("expected user_vote like, got %v", data["user_vote"])
	}
}

func TestCastVoteSameDirectionRemovesVote(t *testing.T) {
	deleted := false
	voteRepo := &fakeVoteRepo{
		GetVoteFn: func(ctx context.Context, postID, userID string) (*models.Vote, error) {
			return &models.Vote{Type: models.VoteLike}, nil
		},
		DeleteVoteFn: func(ctx context.Context, postID, userID string) error {
			deleted = true
			return nil
		},
	}
	var gotUp, gotDown int
	postRepo := &fakePostRepo{
		ApplyVoteDeltaFn: func(ctx context.Context, id string, upDelta, downDelta int) (*models.Post, error) {
			gotUp, gotDown = upDelta, downDelta
			return &models.Post{}, nil
		},
	}

	body := castVote(t, voteRepo, postRepo, `{"type":"like"}`)

	if !deleted {
		t.Error("expected the existing vote to be deleted")
	}
	if gotUp != -1 || gotDown != 0 {
		t.Errorf("expected deltas (-1, 0), got (%d, %d)", gotUp, gotDown)
	}
	data := body["data"].(map[string]interface{})
	if data["user_vote"] != "" {
		t.Errorf("expected empty user_vote after toggle off, got %v", data["user_vote"])
	}
}

func TestCastVoteOppositeDirectionFlipsBothCounters(t *testing.T) {
	voteRepo := &fakeVoteRepo{
		GetVoteFn: func(ctx context.Context, postID, userID string) (*models.Vote, error) {
			return &models.Vote{Type: models.VoteLike}, nil
		},
	}
	var gotUp, gotDown int
	postRepo := &fakePostRepo{
		ApplyVoteDeltaFn: func(ctx context.Context, id string, upDelta, downDelta int) (*models.Post, error) {
			gotUp, gotDown = upDelta, downDelta
			return &models.Post{Downvotes: 1}, nil
		},
	}

	castVote(t, voteRepo, postRepo, `{"type":"dislike"}`)

	if gotUp != -1 || gotDown != 1 {
		t.Errorf("expected deltas (-1, +1), got (%d, %d)", gotUp, gotDown)
	}
}

func TestCastVoteRejectsUnknownDirection(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/posts/abc/votes", `{"type":"sideways"}`)
	c.SetParamNames("post_id")
	c.SetParamValues("abc")

	h := NewVoteHandler(&fakeVoteRepo{}, &fakePostRepo{})
	err := h.CastVote(c)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if code := httpErrorCode(t, err); code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", code)
	}
}

func TestCastVoteUnknownPost(t *testing.T) {
	postRepo := &fakePostRepo{
		GetPostByIDFn: func(ctx context.Context, id string) (*models.Post, error) {
			return nil, primitive.ErrInvalidHex
		},
	}

	c, _ := newTestContext(http.MethodPost, "/posts/bogus/votes", `{"type":"like"}`)
	c.SetParamNames("post_id")
	c.SetParamValues("bogus")

	h := NewVoteHandler(&fakeVoteRepo{}, postRepo)
	err := h.CastVote(c)
	if err == nil {
		t.Fatal("expected an error for an unknown post")
	}
	if code := httpErrorCode(t, err); code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", code)
	}
}
