package multi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// IncomingMessage is a parsed server message (either audio chunk or final).
type IncomingMessage struct {
	Kind      string          `json:"kind"` // "audio" | "final" | "unknown"
	ContextID string          `json:"context_id,omitempty"`
	AudioB64  string          `json:"audio_base_64,omitempty"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

// Client is a connection to the ElevenLabs multi-context websocket. Events
// is closed once the connection stops reading.
type Client struct {
	conn   *websocket.Conn
	events chan IncomingMessage
	errors chan error

	sendCh chan any
	once   sync.Once
	mu     sync.Mutex
	closed bool
}

var dialer = websocket.Dialer{HandshakeTimeout: 10 * time.Second}

func Dial(ctx context.Context, cfg ConnectConfig, headers http.Header) (*Client, error) {
	if cfg.VoiceID == "" {
		return nil, fmt.Errorf("missing voice_id")
	}
	if headers == nil {
		headers = http.Header{}
	}
	if cfg.APIKey != "" {
		headers.Set("xi-api-key", cfg.APIKey)
	}
	if cfg.Authorization != "" && headers.Get("authorization") == "" {
		headers.Set("authorization", cfg.Authorization)
	}

	u, err := BuildURL(cfg)
	if err != nil {
		return nil, err
	}

	conn, _, err := dialer.DialContext(ctx, u, headers)
	if err != nil {
		return nil, fmt.Errorf("tts: dial failed: %w", err)
	}

	c := &Client{
		conn:   conn,
		events: make(chan IncomingMessage, 64),
		errors: make(chan error, 4),
		sendCh: make(chan any, 64),
	}
	c.startLoops(ctx)
	return c, nil
}

func (c *Client) Events() <-chan IncomingMessage { return c.events }
func (c *Client) Errors() <-chan error           { return c.errors }

func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.sendCh)
		_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing"), time.Now().Add(250*time.Millisecond))
		err = c.conn.Close()
	})
	return err
}

func (c *Client) startLoops(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-c.sendCh:
				if !ok {
					return
				}
				if err := c.conn.WriteJSON(msg); err != nil {
					c.tryEmitErr(err)
					return
				}
			}
		}
	}()

	go func() {
		defer close(c.events)
		for {
			_, b, err := c.conn.ReadMessage()
			if err != nil {
				c.tryEmitErr(err)
				return
			}
			msg, err := parseIncoming(b)
			if err != nil {
				c.tryEmitErr(err)
				continue
			}
			// audio chunks must not be dropped, so block until consumed
			select {
			case c.events <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
}

// parseIncoming decodes either
// { "audio": "...", "contextId": "..." } or { "isFinal": true, "contextId": "..." }.
func parseIncoming(b []byte) (IncomingMessage, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return IncomingMessage{}, fmt.Errorf("tts: invalid json: %w", err)
	}

	ctxID := ""
	if v, ok := raw["contextId"].(string); ok {
		ctxID = v
	} else if v, ok := raw["context_id"].(string); ok {
		ctxID = v
	}

	msg := IncomingMessage{Kind: "unknown", ContextID: ctxID, Raw: json.RawMessage(b)}
	if aud, ok := raw["audio"].(string); ok && aud != "" {
		msg.Kind = "audio"
		msg.AudioB64 = aud
	} else if isFinal, ok := raw["isFinal"].(bool); ok && isFinal {
		msg.Kind = "final"
	}
	return msg, nil
}

func (c *Client) tryEmitErr(err error) {
	if err == nil {
		return
	}
	select {
	case c.errors <- err:
	default:
	}
}

// --- Outgoing messages (client -> ElevenLabs) ---

type initializeConnectionMulti struct {
	Text      string `json:"text"`
	ContextID string `json:"context_id,omitempty"`
}

type sendTextMulti struct {
	Text      string `json:"text"`
	ContextID string `json:"context_id,omitempty"`
	Flush     bool   `json:"flush,omitempty"`
}

type closeContextClient struct {
	ContextID    string `json:"context_id"`
	CloseContext bool   `json:"close_context"`
}

type closeSocketClient struct {
	CloseSocket bool `json:"close_socket"`
}

func (c *Client) InitializeContext(ctx context.Context, contextID string) error {
	return c.send(ctx, initializeConnectionMulti{Text: " ", ContextID: contextID})
}

func (c *Client) SendText(ctx context.Context, contextID string, text string, flush bool) error {
	t := strings.ReplaceAll(text, "\r\n", "\n")
	return c.send(ctx, sendTextMulti{Text: t, ContextID: contextID, Flush: flush})
}

func (c *Client) CloseContext(ctx context.Context, contextID string) error {
	return c.send(ctx, closeContextClient{ContextID: contextID, CloseContext: true})
}

func (c *Client) CloseSocket(ctx context.Context) error {
	return c.send(ctx, closeSocketClient{CloseSocket: true})
}

func (c *Client) send(ctx context.Context, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("tts: client closed")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case c.sendCh <- v:
		return nil
	}
}
