package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/tahmid39/circle-help/backend/internal/models"
)

func TestBuildConversationsGroupsByPeer(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	me := "alice@example.com"
	messages := []models.Message{
		{FromEmail: me, ToEmail: "bob@example.com", ToDisplayName: "Bob", Text: "hey", CreatedAt: base},
		{FromEmail: "bob@example.com", FromDisplayName: "Bob", ToEmail: me, Text: "hi back", Read: false, CreatedAt: base.Add(time.Minute)},
		{FromEmail: me, ToEmail: "bob@example.com", ToDisplayName: "Bob", Text: "how are you", CreatedAt: base.Add(2 * time.Minute)},
		{FromEmail: "carol@example.com", FromDisplayName: "Carol", ToEmail: me, Text: "lunch?", Read: true, CreatedAt: base.Add(3 * time.Minute)},
	}

	convs := BuildConversations(messages, me)
	if len(convs) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convs))
	}

	// Carol's message is newest, so her conversation leads.
	if convs[0].PeerEmail != "carol@example.com" {
		t.Errorf("expected carol first, got %s", convs[0].PeerEmail)
	}
	if convs[0].UnreadCount != 0 {
		t.Errorf("expected no unread from carol, got %d", convs[0].UnreadCount)
	}

	bob := convs[1]
	if bob.PeerEmail != "bob@example.com" {
		t.Fatalf("expected bob second, got %s", bob.PeerEmail)
	}
	if bob.LastText != "how are you" {
		t.Errorf("expected latest text kept, got %q", bob.LastText)
	}
	if bob.PeerDisplayName != "Bob" {
		t.Errorf("expected peer display name Bob, got %q", bob.PeerDisplayName)
	}
	if bob.UnreadCount != 1 {
		t.Errorf("expected 1 unread from bob, got %d", bob.UnreadCount)
	}
}

func TestBuildConversationsCountsOnlyInboundUnread(t *testing.T) {
	me := "alice@example.com"
	messages := []models.Message{
		// My own unread outbound must not count toward my badge.
		{FromEmail: me, ToEmail: "bob@example.com", Text: "sent", Read: false, CreatedAt: time.Now()},
	}

	convs := BuildConversations(messages, me)
	if len(convs) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(convs))
	}
	if convs[0].UnreadCount != 0 {
		t.Errorf("expected 0 unread, got %d", convs[0].UnreadCount)
	}
}

func TestSendMessageRejectsSelf(t *testing.T) {
	h := NewMessageHandler(&fakeMessageRepo{}, &fakeUserRepo{})

	c, _ := newTestContext(http.MethodPost, "/messages", `{"to_email":"alice@example.com","text":"hi"}`)
	err := h.SendMessage(c)
	if err == nil {
		t.Fatal("expected an error for self-messaging")
	}
	if code := httpErrorCode(t, err); code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", code)
	}
}

func TestSendMessageImageShortCircuitsText(t *testing.T) {
	var stored *models.Message
	msgRepo := &fakeMessageRepo{
		InsertMessageFn: func(ctx context.Context, msg *models.Message) error {
			stored = msg
			return nil
		},
	}
	h := NewMessageHandler(msgRepo, &fakeUserRepo{})

	c, rec := newTestContext(http.MethodPost, "/messages",
		`{"to_email":"bob@example.com","text":"ignored","image_url":"https://cdn.example.com/x.png"}`)
	if err := h.SendMessage(c); err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if stored == nil {
		t.Fatal("expected the message to be stored")
	}
	if stored.Text != "" {
		t.Errorf("expected text dropped for image messages, got %q", stored.Text)
	}
	if len(stored.Participants) != 2 || stored.Participants[0] != testUser.Email || stored.Participants[1] != "bob@example.com" {
		t.Errorf("unexpected participants: %v", stored.Participants)
	}
}

func TestGetThreadMarksRead(t *testing.T) {
	marked := false
	msgRepo := &fakeMessageRepo{
		MarkThreadReadFn: func(ctx context.Context, me, peer string) (int64, error) {
			marked = true
			if me != testUser.Email || peer != "bob@example.com" {
				t.Errorf("unexpected mark-read args: me=%s peer=%s", me, peer)
			}
			return 2, nil
		},
	}
	h := NewMessageHandler(msgRepo, &fakeUserRepo{})

	c, rec := newTestContext(http.MethodGet, "/conversations/bob@example.com/messages", "")
	c.SetParamNames("peer")
	c.SetParamValues("bob@example.com")
	if err := h.GetThread(c); err != nil {
		t.Fatalf("GetThread returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !marked {
		t.Error("expected the thread to be marked read")
	}
}
