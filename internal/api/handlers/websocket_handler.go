// server/internal/api/handlers/websocket_handler.go
package handlers

import (
	"net/http"
	"time"

	"asset-hub-api-server/internal/api/middleware"
	"asset-hub-api-server/internal/auth"
	"asset-hub-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Maximum wait for a ping from the client before the connection is dropped.
	pongWait = 30 * time.Second
	// Deadline for writing the pong control frame back.
	pongWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub    *socket.Hub
	Tokens *auth.TokenManager
}

// ServeWs upgrades the connection and keeps it registered with the Hub
// until the client disconnects. The token travels as a query parameter
// because browsers cannot set headers on WebSocket connections.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := h.Tokens.Parse(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		middleware.Logger(c).Error("failed to upgrade connection", "error", err)
		return
	}

	h.Hub.Register(userID, conn)

	defer func() {
		h.Hub.Unregister(userID)
		conn.Close()
	}()

	// Client pings extend the read deadline and get a pong back so the
	// client knows the connection is still alive. WriteControl is safe
	// alongside the hub's own writes.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(pongWriteWait))
		if err == websocket.ErrCloseSent {
			return nil
		}
		return err
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				middleware.Logger(c).Warn("unexpected websocket close", "error", err)
			}
			break
		}
	}
}
