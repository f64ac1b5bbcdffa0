package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// Client is one authenticated websocket subscriber. Send is buffered; slow
// consumers are dropped by the hub rather than blocking broadcasts.
type Client struct {
	ID            string
	Conn          *websocket.Conn
	Send          chan []byte
	Authenticated bool
	LastPong      time.Time
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:            id,
		Conn:          conn,
		Send:          make(chan []byte, 16),
		Authenticated: true,
		LastPong:      time.Now(),
	}
}
