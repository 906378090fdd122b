package game

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client wraps one websocket connection. Connection-scoped data (which room
// and participant the connection maps to) lives with the gateway; the room's
// canonical state never lives here.
type Client struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	limiter   *rate.Limiter
	closeOnce sync.Once
	log       *logrus.Entry
}

func NewClient(conn *websocket.Conn) *Client {
	id := uuid.NewString()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &Client{
		id:      id,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		log:     logrus.WithField("component", "ws").WithField("conn_id", id),
	}
}

func (c *Client) ID() string { return c.id }

// Allow reports whether the connection is within its command rate budget.
func (c *Client) Allow() bool { return c.limiter.Allow() }

func (c *Client) Read() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

// Send enqueues data for the write pump without blocking. A full queue means
// the peer stopped reading; the message is dropped and the pump's ping
// failure will tear the connection down.
func (c *Client) Send(data []byte) {
	defer func() { recover() }() // send on closed channel during teardown
	select {
	case c.send <- data:
	default:
		c.log.Warn("send queue full, dropping message")
	}
}

func (c *Client) SendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.WithError(err).Error("marshal outbound message")
		return
	}
	c.Send(data)
}

// WritePump serializes all writes to the connection and keeps it alive with
// pings. It must be the only goroutine writing to conn.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.WithError(err).Debug("write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close shuts the write pump down; safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.send) })
}
