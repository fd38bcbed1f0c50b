package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const dialTimeout = 5 * time.Second

// Client is one side of the persistent engine connection. Selections go
// out, executions come in via Listen. A client is not reusable after the
// connection drops; redialing is the supervisor's job, not the client's.
type Client struct {
	log *logrus.Logger

	mu     sync.Mutex
	conn   net.Conn
	enc    *json.Encoder
	closed bool
}

// Dial connects to the strategy engine at addr.
func Dial(addr string, log *logrus.Logger) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial engine %s: %w", addr, err)
	}
	log.WithField("addr", addr).Info("connected to strategy engine")
	return NewClient(conn, log), nil
}

// NewClient wraps an established connection. Used by Dial and by tests
// that run an in-process peer.
func NewClient(conn net.Conn, log *logrus.Logger) *Client {
	return &Client{
		log:  log,
		conn: conn,
		enc:  json.NewEncoder(conn),
	}
}

// SendSelection writes an outbound selection message. Sends are
// fire-and-forget: after the connection is lost or closed they become
// no-ops, and a write failure closes the connection rather than
// propagating an error to the caller.
func (c *Client) SendSelection(kind, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.log.WithFields(logrus.Fields{"type": kind, "value": value}).
			Debug("engine connection down, selection dropped")
		return
	}

	if err := c.enc.Encode(Selection{Type: kind, Value: value}); err != nil {
		c.log.WithError(err).Warn("selection send failed, closing engine connection")
		c.closeLocked()
	}
}

// Listen decodes executions from the stream and hands each to deliver,
// until the connection drops or ctx is cancelled. Returns nil on a clean
// peer close or cancellation.
//
// Documents that parse as JSON but do not match the execution shape are
// dropped and the stream continues; that keeps one corrupt message from
// halting the session. A byte-level corrupt stream cannot be resynced and
// ends the connection instead.
func (c *Client) Listen(ctx context.Context, deliver func(Execution)) error {
	conn := c.connection()
	if conn == nil {
		return errors.New("engine connection already closed")
	}

	// Unblock the decoder when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	dec := json.NewDecoder(conn)
	for {
		var ex Execution
		err := dec.Decode(&ex)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			c.log.Info("strategy engine closed the connection")
			c.Close()
			return nil
		case isShapeError(err):
			c.log.WithError(err).Warn("malformed execution dropped")
			continue
		default:
			c.Close()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("engine stream: %w", err)
		}

		if ex.Action == "" && ex.Timestamp == "" {
			c.log.Warn("execution without action or timestamp dropped")
			continue
		}
		deliver(ex)
	}
}

// isShapeError reports whether err means the document was well-formed
// JSON of the wrong shape. The decoder has consumed the whole value in
// that case, so the stream is still in sync.
func isShapeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

// Close shuts the connection down. Safe to call more than once and from
// any goroutine; subsequent sends are no-ops.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) connection() net.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.conn
}
