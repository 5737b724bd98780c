package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection as a watcher of sessionID and blocks
// until it closes. Turns run under a context cancelled when reading stops.
func ServeWs(ctx context.Context, hub *Hub, c *websocket.Conn, sessionID string, turn TurnFunc) {
	ctx, cancel := context.WithCancel(ctx)

	client := &Client{Hub: hub, Conn: c, SessionID: sessionID, Send: make(chan []byte, 256), turn: turn}
	client.Hub.register <- client

	inbox := make(chan string, maxPendingTurns)
	go client.writePump()
	go client.runTurns(ctx, inbox)
	client.readPump(inbox, cancel)
}
