// server/internal/socket/hub_test.go
package socket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// dialTestClient spins up a server that registers the upgraded connection
// with the hub, and returns the client side of the connection.
func dialTestClient(t *testing.T, hub *Hub, userID string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(userID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastDeliversEvent(t *testing.T) {
	hub := NewHub(testLogger())
	conn := dialTestClient(t, hub, "user-1")

	hub.Broadcast(Event{
		Type:      "asset.created",
		Payload:   map[string]string{"assetCode": "ASSET-001"},
		Timestamp: time.Now(),
	})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "asset.created", event.Type)
}

// Broadcasts arrive from any request handler goroutine, so concurrent calls
// must serialize onto each connection instead of racing on it.
func TestHubConcurrentBroadcasts(t *testing.T) {
	hub := NewHub(testLogger())
	conn := dialTestClient(t, hub, "user-1")

	received := make(chan int, 1)
	go func() {
		count := 0
		conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
			count++
		}
		received <- count
	}()

	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				hub.Broadcast(Event{Type: "asset.assigned", Timestamp: time.Now()})
			}
		}()
	}
	wg.Wait()

	// Flush the remaining queue and close the connection.
	hub.Unregister("user-1")

	select {
	case count := <-received:
		assert.Greater(t, count, 0)
	case <-time.After(15 * time.Second):
		t.Fatal("reader never finished")
	}
}

// A client that stops reading must not wedge Broadcast for everyone else;
// it gets dropped once its queue fills.
func TestHubDropsStalledClient(t *testing.T) {
	hub := NewHub(testLogger())
	stalled := dialTestClient(t, hub, "stalled")

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Enough to overflow the stalled client's queue many times over.
		for i := 0; i < 500; i++ {
			hub.Broadcast(Event{Type: "asset.returned", Timestamp: time.Now()})
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("broadcast blocked on a client that is not reading")
	}

	// The stalled connection was closed server-side: draining it terminates
	// in an error instead of blocking.
	stalled.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		if _, _, err := stalled.ReadMessage(); err != nil {
			break
		}
	}

	// Broadcasting after the drop must not panic on the removed client.
	hub.Broadcast(Event{Type: "asset.created", Timestamp: time.Now()})
}
