package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades HTTP connections and dispatches the channel protocol:
// joinRoom, leaveRoom, sendMessage and typing events from clients,
// receiveMessage and userTyping events to room subscribers.
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new websocket Handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for real-time chat
// @Description Upgrades the HTTP connection to a WebSocket carrying joinRoom/leaveRoom/sendMessage/typing events
// @Tags chat, websocket
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	userID, ok := userIDValue.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		userID:   userID,
		dispatch: h.dispatch,
		logger:   h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}

// dispatch routes one inbound event. The sender identity always comes from
// the authenticated connection, never from the payload.
func (h *Handler) dispatch(client *Client, event *Event) {
	switch event.Event {
	case EventJoinRoom:
		var payload JoinRoomPayload
		if !h.decode(client, event, &payload) {
			return
		}
		h.hub.Join(client, RoomID(payload.User1, payload.User2))

	case EventLeaveRoom:
		var payload LeaveRoomPayload
		if !h.decode(client, event, &payload) {
			return
		}
		h.hub.Leave(client, payload.Room)

	case EventSendMessage:
		var payload MessagePayload
		if !h.decode(client, event, &payload) {
			return
		}
		h.handleSendMessage(client, &payload)

	case EventTyping:
		var payload TypingPayload
		if !h.decode(client, event, &payload) {
			return
		}
		h.handleTyping(client, &payload)

	default:
		h.logger.Warn().
			Int64("userID", client.userID).
			Str("event", event.Event).
			Msg("Unknown client event")
	}
}

// handleSendMessage fans a chat message out to the pair room. Fan-out only:
// durable storage is the REST path's job, so a message never lands in the
// log twice when a client uses both.
func (h *Handler) handleSendMessage(client *Client, payload *MessagePayload) {
	payload.Sender = client.userID
	if payload.Timestamp.IsZero() {
		payload.Timestamp = time.Now().UTC()
	}

	out, err := NewEvent(EventReceiveMessage, payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build receiveMessage event")
		return
	}

	h.hub.Broadcast(RoomID(payload.Sender, payload.Receiver), out)
}

func (h *Handler) handleTyping(client *Client, payload *TypingPayload) {
	payload.From = client.userID

	out, err := NewEvent(EventUserTyping, &UserTypingPayload{From: payload.From})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build userTyping event")
		return
	}

	h.hub.Broadcast(RoomID(payload.From, payload.To), out)
}

func (h *Handler) decode(client *Client, event *Event, payload interface{}) bool {
	if err := json.Unmarshal(event.Data, payload); err != nil {
		h.logger.Error().
			Err(err).
			Int64("userID", client.userID).
			Str("event", event.Event).
			Msg("Failed to decode event payload")
		return false
	}
	return true
}
