package rcon

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultTimeout bounds connection establishment and the wait for a reply
// frame when Config.Timeout is left zero.
const DefaultTimeout = 10 * time.Second

// Config holds the settings for a single WebRcon session.
type Config struct {
	Host     string
	Port     int
	Password string

	// Timeout bounds both the websocket handshake and each request/response
	// round trip. Zero means DefaultTimeout.
	Timeout time.Duration

	// Logger receives debug output. May be nil.
	Logger *slog.Logger
}

// Client is a WebRcon client bound to one websocket session. Authentication
// is implicit: the password travels as the URL path of the handshake and the
// server either accepts the upgrade or refuses it.
//
// A client is for sequential use only. Each Execute call performs exactly one
// send and one receive; nothing else may touch the connection meanwhile.
type Client struct {
	conn    *websocket.Conn
	timeout time.Duration
	logger  *slog.Logger

	// seq is incremented before every request so each frame carries a fresh
	// identifier to correlate the reply against.
	seq int

	closed bool
}

// Dial connects to ws://host:port/password and returns a ready client.
//
// A handshake that exceeds the timeout yields ErrConnectionTimeout. A refused
// upgrade with HTTP 401 or 403 yields ErrAuthentication, which is the only
// rejection WebRcon produces for a bad password.
func Dial(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Password,
	}

	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, resp, err := dialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return nil, ErrAuthentication
			}
		}
		if isTimeout(err) {
			return nil, ErrConnectionTimeout
		}
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	c := &Client{
		conn:    conn,
		timeout: timeout,
		logger:  cfg.Logger,
	}
	c.debug("connected", slog.String("host", cfg.Host), slog.Int("port", cfg.Port))
	return c, nil
}

// Execute sends command as one text frame and waits for the matching reply.
//
// A reply that is not valid JSON, or whose identifier does not match the
// request, fails with *InvalidResponseError carrying the raw frame. A reply
// that never arrives within the timeout fails with ErrResponseTimeout.
func (c *Client) Execute(command string) (*Response, error) {
	c.seq++
	req := Request{
		Identifier: c.seq,
		Message:    command,
		Name:       requestName,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		if isTimeout(err) {
			return nil, ErrResponseTimeout
		}
		return nil, fmt.Errorf("send command: %w", err)
	}
	c.debug("sent frame", slog.Int("identifier", req.Identifier), slog.String("command", command))

	c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		if isTimeout(err) {
			return nil, ErrResponseTimeout
		}
		return nil, fmt.Errorf("receive response: %w", err)
	}
	c.debug("received frame", slog.Int("bytes", len(raw)))

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &InvalidResponseError{
			Reason: "not valid JSON: " + err.Error(),
			Raw:    raw,
		}
	}
	resp.Raw = raw

	if resp.Identifier != req.Identifier {
		return nil, &InvalidResponseError{
			Reason: fmt.Sprintf("identifier mismatch, sent %d but got %d", req.Identifier, resp.Identifier),
			Raw:    raw,
		}
	}

	return &resp, nil
}

// Close tears down the websocket session. Safe to call more than once and on
// every exit path.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	deadline := time.Now().Add(time.Second)
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	c.debug("disconnected")
	return c.conn.Close()
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, args...)
}

func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
