package realtime

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and fans events out to the rooms
// they joined. All room state is owned by the Run goroutine; callers talk to
// it through channels only.
type Hub struct {
	// Clients subscribed to each room
	rooms map[string]map[*Client]bool

	// Rooms each client currently holds
	memberships map[*Client]map[string]bool

	register   chan *Client
	unregister chan *Client
	join       chan subscription
	leave      chan subscription
	broadcast  chan *outbound

	logger zerolog.Logger
}

type subscription struct {
	client *Client
	room   string
}

type outbound struct {
	room  string
	event *Event
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*Client]bool),
		memberships: make(map[*Client]map[string]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		join:        make(chan subscription, 16),
		leave:       make(chan subscription, 16),
		broadcast:   make(chan *outbound, 64),
		logger:      logger,
	}
}

// Run starts the hub loop, handling registrations, room membership and
// broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case sub := <-h.join:
			h.joinRoom(sub.client, sub.room)

		case sub := <-h.leave:
			h.leaveRoom(sub.client, sub.room)

		case out := <-h.broadcast:
			h.broadcastToRoom(out.room, out.event)
		}
	}
}

// Broadcast queues an event for delivery to every current subscriber of the
// room. Best-effort, at-most-once: there is no acknowledgement and slow
// clients are dropped.
func (h *Hub) Broadcast(room string, event *Event) {
	h.broadcast <- &outbound{room: room, event: event}
}

// Join subscribes a client to a room. A connection may hold any number of
// rooms over its lifetime.
func (h *Hub) Join(client *Client, room string) {
	h.join <- subscription{client: client, room: room}
}

// Leave unsubscribes a client from a room.
func (h *Hub) Leave(client *Client, room string) {
	h.leave <- subscription{client: client, room: room}
}

func (h *Hub) registerClient(client *Client) {
	h.memberships[client] = make(map[string]bool)

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	rooms, ok := h.memberships[client]
	if !ok {
		return
	}

	for room := range rooms {
		h.removeFromRoom(client, room)
	}
	delete(h.memberships, client)
	close(client.send)

	h.logger.Info().
		Int64("userID", client.userID).
		Msg("Client unregistered")
}

func (h *Hub) joinRoom(client *Client, room string) {
	rooms, ok := h.memberships[client]
	if !ok {
		// Client already unregistered; ignore the stale join
		return
	}

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	rooms[room] = true

	h.logger.Debug().
		Int64("userID", client.userID).
		Str("room", room).
		Msg("Client joined room")
}

func (h *Hub) leaveRoom(client *Client, room string) {
	if rooms, ok := h.memberships[client]; ok {
		delete(rooms, room)
	}
	h.removeFromRoom(client, room)
}

func (h *Hub) removeFromRoom(client *Client, room string) {
	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) broadcastToRoom(room string, event *Event) {
	clients, ok := h.rooms[room]
	if !ok {
		h.logger.Debug().
			Str("room", room).
			Msg("No clients in room for broadcast")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("room", room).
			Msg("Failed to marshal event for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Send buffer is full; the client is slow or gone. Drop it.
			h.unregisterClient(client)
		}
	}

	h.logger.Debug().
		Str("room", room).
		Str("event", event.Event).
		Int("clientCount", len(clients)).
		Msg("Event broadcast to room")
}
