package handlers

import (
	"net/http"
	"sort"

	"github.com/tahmid39/circle-help/backend/internal/models"
	"github.com/tahmid39/circle-help/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/unread-count", h.GetUnreadCount)
	g.GET("/conversations", h.GetConversations)
	g.GET("/conversations/:peer/messages", h.GetThread)
}

// SendMessage stores a new direct message. The participants array is
// computed here so a single query can later reconstruct all of a user's
// conversations.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ToEmail == user.Email {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}

	// An image message short-circuits the text.
	text := req.Text
	if req.ImageURL != "" {
		text = ""
	}

	toDisplayName := ""
	if peer, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.ToEmail); err == nil {
		toDisplayName = peer.DisplayName
	}

	fromDisplayName := user.DisplayName
	if fromDisplayName == "" {
		fromDisplayName = user.Email
	}

	msg := &models.Message{
		FromUID:         user.UID,
		FromEmail:       user.Email,
		FromDisplayName: fromDisplayName,
		ToEmail:         req.ToEmail,
		ToDisplayName:   toDisplayName,
		Text:            text,
		ImageURL:        req.ImageURL,
		Read:            false,
		Participants:    []string{user.Email, req.ToEmail},
	}

	if err := h.messageRepository.InsertMessage(c.Request().Context(), msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, msg)
}

// GetConversations returns the caller's derived conversation list: one
// entry per peer with the latest message and unread count, most recent
// first. Nothing is stored; the view is rebuilt from the flat message set.
func (h *MessageHandler) GetConversations(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	messages, err := h.messageRepository.ListByParticipant(c.Request().Context(), user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"conversations": BuildConversations(messages, user.Email)},
	})
}

// GetThread returns the full exchange with one peer, oldest first, and
// marks every unread message from that peer as read in one batch update.
func (h *MessageHandler) GetThread(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	peer := c.Param("peer")
	if peer == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing peer email")
	}

	messages, err := h.messageRepository.ListThread(c.Request().Context(), user.Email, peer)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.messageRepository.MarkThreadRead(c.Request().Context(), user.Email, peer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"messages": messages},
	})
}

// GetUnreadCount returns the total number of unread messages addressed to
// the caller
func (h *MessageHandler) GetUnreadCount(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.messageRepository.CountUnread(c.Request().Context(), user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"unread_count": count},
	})
}

// BuildConversations groups a user's messages by the other participant.
// Each group keeps the most recent message's text and time plus the number
// of unread messages addressed to me, sorted by last activity descending.
func BuildConversations(messages []models.Message, me string) []models.Conversation {
	byPeer := make(map[string]*models.Conversation)

	for _, m := range messages {
		peer := m.FromEmail
		peerName := m.FromDisplayName
		if m.FromEmail == me {
			peer = m.ToEmail
			peerName = m.ToDisplayName
		}
		if peer == "" {
			continue
		}

		conv, exists := byPeer[peer]
		if !exists {
			conv = &models.Conversation{PeerEmail: peer}
			byPeer[peer] = conv
		}
		if !exists || m.CreatedAt.After(conv.LastAt) {
			conv.LastAt = m.CreatedAt
			conv.LastText = m.Text
		}
		if peerName != "" && conv.PeerDisplayName == "" {
			conv.PeerDisplayName = peerName
		}
		if m.ToEmail == me && !m.Read {
			conv.UnreadCount++
		}
	}

	list := make([]models.Conversation, 0, len(byPeer))
	for _, conv := range byPeer {
		list = append(list, *conv)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].LastAt.After(list[j].LastAt)
	})
	return list
}
