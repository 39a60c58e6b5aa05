package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/efootball-stats/internal/models"
)

func startHub(t *testing.T) (*WebSocketHub, *websocket.Conn) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewWebSocketHub(quietLogger())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	return hub, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) WebSocketMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg WebSocketMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubBroadcastsToSubscribers(t *testing.T) {
	hub, conn := startHub(t)

	require.NoError(t, hub.Broadcast("other", "ignored", nil))
	require.NoError(t, hub.Broadcast(TopicPlayers, EventPlayerUpdated, map[string]int{"id": 7}))

	msg := readMessage(t, conn)
	assert.Equal(t, EventPlayerUpdated, msg.Type)
	assert.Equal(t, TopicPlayers, msg.Topic)
	assert.JSONEq(t, `{"id":7}`, string(msg.Data))
}

func TestStoreMutationsAreBroadcast(t *testing.T) {
	hub, conn := startHub(t)
	ctx := context.Background()

	store := NewPlayerStore(newTestDB(t), NewCacheService(nil, 0), hub)
	_, err := store.Seed(ctx, storeFixture())
	require.NoError(t, err)

	_, err = store.UpdatePlayer(ctx, 4, StatPatch{Apps: 10, Goal: 2, Assists: 3})
	require.NoError(t, err)

	msg := readMessage(t, conn)
	assert.Equal(t, EventPlayerUpdated, msg.Type)
	var card models.PlayerCard
	require.NoError(t, json.Unmarshal(msg.Data, &card))
	assert.Equal(t, uint(4), card.ID)
	assert.Equal(t, 5, card.GPlusA)
}

func TestNilHubIgnoresBroadcast(t *testing.T) {
	var hub *WebSocketHub
	assert.NoError(t, hub.Broadcast(TopicPlayers, EventPlayerUpdated, nil))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestClientSubscriptions(t *testing.T) {
	c := NewClient(NewWebSocketHub(quietLogger()), nil)
	assert.True(t, c.IsSubscribedTo(TopicPlayers))
	assert.False(t, c.IsSubscribedTo("analytics"))

	c.Unsubscribe(TopicPlayers)
	c.Subscribe("analytics")
	assert.False(t, c.IsSubscribedTo(TopicPlayers))
	assert.True(t, c.IsSubscribedTo("analytics"))

	c.Subscribe("*")
	assert.True(t, c.IsSubscribedTo(TopicPlayers))
}

func TestHubStopDisconnectsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewWebSocketHub(quietLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.ClientCount())
}
