package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	models "github.com/Desarso/insurebot/models"
)

func newTestModel(t *testing.T, handler http.HandlerFunc) *Groq_Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Groq_Model{APIKey: "test-key", BaseURL: srv.URL + "/v1"}
}

func chatRequest() models.Model_Request {
	return models.Model_Request{
		Model: "llama3-70b-8192",
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "be helpful"},
			{Role: models.RoleUser, Content: "hi"},
		},
		Temperature: 0.7,
		Top_P:       0.9,
		Max_Tokens:  2048,
	}
}

func TestModelRequest(t *testing.T) {
	g := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if body["model"] != "llama3-70b-8192" || body["max_tokens"] != float64(2048) {
			t.Errorf("unexpected body %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Get umbrella cover."},"finish_reason":"stop"}]}`)
	})

	resp, err := g.Model_Request(context.Background(), chatRequest())
	if err != nil {
		t.Fatalf("Model_Request: %v", err)
	}
	if resp.Text != "Get umbrella cover." {
		t.Errorf("unexpected text %q", resp.Text)
	}
}

func TestModelRequestError(t *testing.T) {
	g := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`)
	})

	if _, err := g.Model_Request(context.Background(), chatRequest()); err == nil {
		t.Fatal("Expected error for 401 response")
	}
}

func TestStreamModelRequest(t *testing.T) {
	g := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, piece := range []string{"Hel", "lo", " world"} {
			fmt.Fprintf(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", piece)
		}
		fmt.Fprint(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	deltas, errs, err := g.Stream_Model_Request(context.Background(), chatRequest())
	if err != nil {
		t.Fatalf("Stream_Model_Request: %v", err)
	}

	var got []string
	for d := range deltas {
		got = append(got, d.Text)
	}
	if err := <-errs; err != nil {
		t.Fatalf("stream error: %v", err)
	}

	want := []string{"Hel", "lo", " world", ""}
	if len(got) != len(want) {
		t.Fatalf("Expected %d deltas, got %d (%q)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delta %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStreamStartFailure(t *testing.T) {
	g := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`)
	})

	deltas, errs, err := g.Stream_Model_Request(context.Background(), chatRequest())
	if err == nil {
		t.Fatal("Expected start error")
	}
	if deltas != nil || errs != nil {
		t.Error("channels must be nil when the stream did not start")
	}
}

func TestRateLimitedTransportRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Errorf("body not replayed, got %q", body)
		}
		if calls.Add(1) == 1 {
			w.Header().Set("retry-after", "0.05")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: WithRateLimiting(nil), Timeout: 5 * time.Second}
	req, _ := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader("payload"))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK || calls.Load() != 2 {
		t.Errorf("status=%d calls=%d", resp.StatusCode, calls.Load())
	}
}

func TestRetryAfter(t *testing.T) {
	if got := retryAfter("2"); got != 2*time.Second {
		t.Errorf("retryAfter(2) = %s", got)
	}
	if got := retryAfter("soon"); got != 0 {
		t.Errorf("retryAfter(soon) = %s", got)
	}
}

func TestNormalizeRoleInRequest(t *testing.T) {
	g := &Groq_Model{Model: "custom"}
	req := g.createGroqRequest(models.Model_Request{Messages: []models.Message{{Role: "model", Content: "x"}}}, true)
	if req.Model != "custom" || req.Messages[0].Role != "assistant" || !req.Stream {
		t.Errorf("unexpected request %+v", req)
	}
}
