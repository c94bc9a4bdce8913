package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	lgr := zerolog.Nop()

	hub := NewHub(lgr)
	go hub.Run()

	handler := NewHandler(hub, lgr)

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Query("user"), 10, 64)
		require.NoError(t, err)
		c.Set("userID", userID)
		handler.HandleConnection(c)
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID int64) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=" + strconv.FormatInt(userID, 10)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, name string, payload interface{}) {
	t.Helper()

	event, err := NewEvent(name, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(event))
}

func read(t *testing.T, conn *websocket.Conn) *Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	return &event
}

func TestSendMessageFansOutToRoom(t *testing.T) {
	srv := newTestServer(t)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)

	send(t, alice, EventJoinRoom, &JoinRoomPayload{User1: 1, User2: 2})
	send(t, bob, EventJoinRoom, &JoinRoomPayload{User1: 2, User2: 1})
	time.Sleep(50 * time.Millisecond)

	sent := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	send(t, alice, EventSendMessage, &MessagePayload{
		Sender:    1,
		Receiver:  2,
		Content:   "hi",
		Timestamp: sent,
	})

	event := read(t, bob)
	require.Equal(t, EventReceiveMessage, event.Event)

	var msg MessagePayload
	require.NoError(t, json.Unmarshal(event.Data, &msg))
	require.Equal(t, int64(1), msg.Sender)
	require.Equal(t, int64(2), msg.Receiver)
	require.Equal(t, "hi", msg.Content)
	require.True(t, sent.Equal(msg.Timestamp))

	// The sender's own connection is subscribed to the same room and gets
	// the echo too; dedup is the client's responsibility.
	echo := read(t, alice)
	require.Equal(t, EventReceiveMessage, echo.Event)
}

func TestSenderIdentityCannotBeSpoofed(t *testing.T) {
	srv := newTestServer(t)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)

	send(t, bob, EventJoinRoom, &JoinRoomPayload{User1: 1, User2: 2})
	time.Sleep(50 * time.Millisecond)

	// Alice claims to be user 99; the handler must stamp her real identity.
	send(t, alice, EventSendMessage, &MessagePayload{
		Sender:   99,
		Receiver: 2,
		Content:  "spoofed",
	})

	event := read(t, bob)
	var msg MessagePayload
	require.NoError(t, json.Unmarshal(event.Data, &msg))
	require.Equal(t, int64(1), msg.Sender)
	require.False(t, msg.Timestamp.IsZero())
}

func TestTypingBroadcast(t *testing.T) {
	srv := newTestServer(t)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)

	send(t, bob, EventJoinRoom, &JoinRoomPayload{User1: 2, User2: 1})
	time.Sleep(50 * time.Millisecond)

	send(t, alice, EventTyping, &TypingPayload{From: 1, To: 2})

	event := read(t, bob)
	require.Equal(t, EventUserTyping, event.Event)

	var typing UserTypingPayload
	require.NoError(t, json.Unmarshal(event.Data, &typing))
	require.Equal(t, int64(1), typing.From)
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	srv := newTestServer(t)

	alice := dial(t, srv, 1)
	bob := dial(t, srv, 2)

	send(t, bob, EventJoinRoom, &JoinRoomPayload{User1: 1, User2: 2})
	time.Sleep(50 * time.Millisecond)

	send(t, bob, EventLeaveRoom, &LeaveRoomPayload{Room: RoomID(1, 2)})
	time.Sleep(50 * time.Millisecond)

	send(t, alice, EventSendMessage, &MessagePayload{Receiver: 2, Content: "gone"})

	bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var event Event
	require.Error(t, bob.ReadJSON(&event))
}
