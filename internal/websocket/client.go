package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

const (
	MessageTypeTurn  = "turn"
	MessageTypeError = "error"
)

// Envelope is the JSON frame written to clients
type Envelope struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// maxPendingTurns bounds frames queued behind a running turn
const maxPendingTurns = 8

// TurnFunc runs one consultation turn for an inbound text frame. Successful
// turns reach the client through the hub; a returned error is sent back to
// this client only.
type TurnFunc func(ctx context.Context, sessionID, message string) error

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	SessionID string

	// Buffered channel of outbound messages.
	Send chan []byte

	turn TurnFunc
}

// readPump queues text frames for runTurns. It keeps reading while a turn
// runs so pongs still extend the read deadline. On exit it cancels the
// turn context and closes the queue.
func (c *Client) readPump(inbox chan<- string, cancel context.CancelFunc) {
	defer func() {
		cancel()
		close(inbox)
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("HUB", "Unexpected websocket close", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		select {
		case inbox <- string(data):
		default:
			c.sendError("too many pending messages")
		}
	}
}

// runTurns processes queued frames one at a time, in arrival order, until
// the queue is closed or ctx is cancelled.
func (c *Client) runTurns(ctx context.Context, inbox <-chan string) {
	for message := range inbox {
		if ctx.Err() != nil {
			return
		}
		if err := c.turn(ctx, c.SessionID, message); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.sendError(err.Error())
		}
	}
}

// sendError reaches this client only, and only while it is registered
func (c *Client) sendError(message string) {
	frame, _ := json.Marshal(Envelope{Type: MessageTypeError, Message: message})
	c.Hub.deliverTo(c, frame)
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// one JSON document per frame
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
