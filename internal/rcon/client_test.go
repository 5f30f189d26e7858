package rcon_test

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/foxcybersec/rust-rcon-commandline/internal/rcon"
)

var upgrader = websocket.Upgrader{}

// startServer runs a WebRcon test double that accepts connections carrying
// the given password and hands each upgraded socket to handle.
func startServer(t *testing.T, password string, handle func(*websocket.Conn)) rcon.Config {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+password {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}))
	t.Cleanup(ts.Close)

	host, port := hostPort(t, ts.URL)
	return rcon.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Timeout:  2 * time.Second,
	}
}

func hostPort(t *testing.T, rawURL string) (string, int) {
	t.Helper()

	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %s", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("failed to parse test server port: %s", err)
	}
	return u.Hostname(), port
}

// echoIdentifier replies to every command frame with a response whose
// identifier matches the request.
func echoIdentifier(message, msgType string) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req rcon.Request
			if err := json.Unmarshal(raw, &req); err != nil {
				return
			}
			resp := rcon.Response{
				Identifier: req.Identifier,
				Message:    message,
				Type:       msgType,
			}
			payload, _ := json.Marshal(resp)
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}

func TestExecute(t *testing.T) {
	t.Run("successful round trip", func(t *testing.T) {
		requests := make(chan rcon.Request, 1)
		cfg := startServer(t, "secret", func(conn *websocket.Conn) {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req rcon.Request
			if err := json.Unmarshal(raw, &req); err != nil {
				return
			}
			requests <- req
			payload, _ := json.Marshal(rcon.Response{
				Identifier: req.Identifier,
				Message:    `{"Hostname":"Test"}`,
				Type:       "Generic",
			})
			conn.WriteMessage(websocket.TextMessage, payload)
		})

		c, err := rcon.Dial(cfg)
		if err != nil {
			t.Fatalf("Dial failed: %s", err)
		}
		defer c.Close()

		resp, err := c.Execute("serverinfo")
		if err != nil {
			t.Fatalf("Execute failed: %s", err)
		}
		req := <-requests
		if req.Name != "WebRcon" {
			t.Errorf("Request name mismatch, got %q, want %q", req.Name, "WebRcon")
		}
		if req.Message != "serverinfo" {
			t.Errorf("Request message mismatch, got %q, want %q", req.Message, "serverinfo")
		}
		if resp.Message != `{"Hostname":"Test"}` {
			t.Errorf("Response message mismatch, got %q", resp.Message)
		}
		if resp.Type != "Generic" {
			t.Errorf("Response type mismatch, got %q", resp.Type)
		}
		if !strings.Contains(string(resp.Raw), `"Hostname`) {
			t.Errorf("Raw payload not preserved, got %q", resp.Raw)
		}
	})

	t.Run("identifier increments per request", func(t *testing.T) {
		cfg := startServer(t, "secret", echoIdentifier("ok", "Generic"))

		c, err := rcon.Dial(cfg)
		if err != nil {
			t.Fatalf("Dial failed: %s", err)
		}
		defer c.Close()

		first, err := c.Execute("status")
		if err != nil {
			t.Fatalf("First execute failed: %s", err)
		}
		second, err := c.Execute("status")
		if err != nil {
			t.Fatalf("Second execute failed: %s", err)
		}
		if second.Identifier != first.Identifier+1 {
			t.Errorf("Identifier did not increment, got %d then %d", first.Identifier, second.Identifier)
		}
	})

	t.Run("identifier mismatch", func(t *testing.T) {
		cfg := startServer(t, "secret", func(conn *websocket.Conn) {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req rcon.Request
			if err := json.Unmarshal(raw, &req); err != nil {
				return
			}
			payload, _ := json.Marshal(rcon.Response{
				Identifier: req.Identifier + 1,
				Message:    "stray frame",
				Type:       "Generic",
			})
			conn.WriteMessage(websocket.TextMessage, payload)
		})

		c, err := rcon.Dial(cfg)
		if err != nil {
			t.Fatalf("Dial failed: %s", err)
		}
		defer c.Close()

		_, err = c.Execute("status")
		var invalid *rcon.InvalidResponseError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected InvalidResponseError, got %v", err)
		}
		if !strings.Contains(string(invalid.Raw), "stray frame") {
			t.Errorf("Raw payload not preserved in error, got %q", invalid.Raw)
		}
	})

	t.Run("malformed JSON response", func(t *testing.T) {
		cfg := startServer(t, "secret", func(conn *websocket.Conn) {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			conn.WriteMessage(websocket.TextMessage, []byte("not json at all"))
		})

		c, err := rcon.Dial(cfg)
		if err != nil {
			t.Fatalf("Dial failed: %s", err)
		}
		defer c.Close()

		_, err = c.Execute("status")
		var invalid *rcon.InvalidResponseError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected InvalidResponseError, got %v", err)
		}
		if string(invalid.Raw) != "not json at all" {
			t.Errorf("Raw payload mismatch, got %q", invalid.Raw)
		}
	})

	t.Run("response timeout", func(t *testing.T) {
		cfg := startServer(t, "secret", func(conn *websocket.Conn) {
			// Swallow the request and never answer.
			conn.ReadMessage()
			time.Sleep(2 * time.Second)
		})
		cfg.Timeout = 200 * time.Millisecond

		c, err := rcon.Dial(cfg)
		if err != nil {
			t.Fatalf("Dial failed: %s", err)
		}
		defer c.Close()

		start := time.Now()
		_, err = c.Execute("status")
		if !errors.Is(err, rcon.ErrResponseTimeout) {
			t.Fatalf("Expected ErrResponseTimeout, got %v", err)
		}
		if time.Since(start) < cfg.Timeout {
			t.Error("Execute returned before the timeout elapsed")
		}
	})
}

func TestDial(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		cfg := startServer(t, "secret", func(conn *websocket.Conn) {})
		cfg.Password = "wrong"

		_, err := rcon.Dial(cfg)
		if !errors.Is(err, rcon.ErrAuthentication) {
			t.Fatalf("Expected ErrAuthentication, got %v", err)
		}
	})

	t.Run("unresponsive host", func(t *testing.T) {
		// A bare TCP listener accepts the connection but never completes the
		// websocket handshake.
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("Failed to open listener: %s", err)
		}
		defer l.Close()

		host, port := hostPort(t, "http://"+l.Addr().String())
		start := time.Now()
		_, err = rcon.Dial(rcon.Config{
			Host:     host,
			Port:     port,
			Password: "secret",
			Timeout:  200 * time.Millisecond,
		})
		if !errors.Is(err, rcon.ErrConnectionTimeout) {
			t.Fatalf("Expected ErrConnectionTimeout, got %v", err)
		}
		if time.Since(start) < 200*time.Millisecond {
			t.Error("Dial returned before the timeout elapsed")
		}
	})
}

func TestClose(t *testing.T) {
	cfg := startServer(t, "secret", echoIdentifier("ok", "Generic"))

	c, err := rcon.Dial(cfg)
	if err != nil {
		t.Fatalf("Dial failed: %s", err)
	}
	if _, err := c.Execute("status"); err != nil {
		t.Fatalf("Execute failed: %s", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %s", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Second close failed: %s", err)
	}
}
