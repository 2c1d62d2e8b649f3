package multi

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func fakeElevenLabs(t *testing.T, chunks []string) (*httptest.Server, <-chan *http.Request) {
	t.Helper()
	seen := make(chan *http.Request, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Clone(context.Background())
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var contextID, text string
		for text == "" {
			var msg map[string]any
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			contextID, _ = msg["context_id"].(string)
			if s, _ := msg["text"].(string); strings.TrimSpace(s) != "" {
				text = s
			}
		}
		for _, c := range chunks {
			_ = conn.WriteJSON(map[string]any{"audio": base64.StdEncoding.EncodeToString([]byte(c)), "contextId": contextID})
		}
		_ = conn.WriteJSON(map[string]any{"isFinal": true, "contextId": contextID})
		// drain until the client hangs up
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestSynthesize(t *testing.T) {
	srv, requests := fakeElevenLabs(t, []string{"ID3", "frame"})
	cfg := ConnectConfig{
		BaseURL:      "ws" + strings.TrimPrefix(srv.URL, "http"),
		VoiceID:      "voice-1",
		APIKey:       "xi-key",
		LanguageCode: "fr",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	audio, err := Synthesize(ctx, cfg, "Bonjour")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "ID3frame" {
		t.Errorf("unexpected audio %q", audio)
	}
	seen := <-requests
	if seen.Header.Get("xi-api-key") != "xi-key" {
		t.Error("api key header not sent")
	}
	if seen.URL.Query().Get("language_code") != "fr" || seen.URL.Query().Get("output_format") != DefaultOutputFormat {
		t.Errorf("unexpected query %s", seen.URL.RawQuery)
	}
}

func TestSynthesizeRequiresVoice(t *testing.T) {
	if _, err := Synthesize(context.Background(), ConnectConfig{}, "hi"); err == nil {
		t.Fatal("Expected error without voice id")
	}
}

func TestBuildURL(t *testing.T) {
	auto := true
	u, err := BuildURL(ConnectConfig{VoiceID: "a b", ModelID: "eleven_flash_v2_5", AutoMode: &auto})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if !strings.HasPrefix(u, "wss://api.elevenlabs.io/v1/text-to-speech/a%20b/multi-stream-input?") {
		t.Errorf("unexpected url %s", u)
	}
	if !strings.Contains(u, "auto_mode=true") || !strings.Contains(u, "model_id=eleven_flash_v2_5") {
		t.Errorf("missing query params in %s", u)
	}
}

func TestParseIncoming(t *testing.T) {
	msg, err := parseIncoming([]byte(`{"isFinal":true,"context_id":"c1"}`))
	if err != nil || msg.Kind != "final" || msg.ContextID != "c1" {
		t.Errorf("unexpected %+v, %v", msg, err)
	}
	if _, err := parseIncoming([]byte("nope")); err == nil {
		t.Error("Expected json error")
	}
}
