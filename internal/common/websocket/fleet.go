package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"campus-transport/internal/common/auth"
	"campus-transport/internal/common/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// FleetFeedHandler upgrades a read client to a websocket subscription of the
// live fleet feed. The first frame must be {"type":"auth","token":...}; after
// that the client only receives broadcasts.
func FleetFeedHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("ws_upgrade_failed", "Failed to upgrade connection", requestID, "", err.Error())
			return
		}
		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(5 * time.Second))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Warn("ws_auth_read_failed", "Failed to read auth message", requestID, "", err.Error())
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"auth_timeout"}`))
			return
		}

		var incoming authMessage
		_ = json.Unmarshal(msg, &incoming)

		if incoming.Type != "auth" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid_auth_message"}`))
			return
		}

		if _, err := auth.ValidateToken(incoming.Token); err != nil {
			logger.Warn("ws_invalid_token", "Fleet feed token invalid", requestID, "", err.Error())
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid_token"}`))
			return
		}

		conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"authenticated"}`))

		client := newClient("fleet_"+uuid.NewString(), conn)
		hub.AddClient(client)
		defer hub.RemoveClient(client.ID)

		logger.Info("ws_fleet_subscribed", "Fleet feed client connected", requestID, "")

		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			client.LastPong = time.Now()
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		// Drain reads so pongs and close frames are processed.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.RemoveClient(client.ID)
					close(client.Send)
					return
				}
			}
		}()

		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case data, ok := <-client.Send:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}
	}
}
