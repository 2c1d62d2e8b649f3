package groq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	models "github.com/Desarso/insurebot/models"
	openai "github.com/sashabaranov/go-openai"
)

const (
	GroqBaseURL  = "https://api.groq.com/openai/v1"
	DefaultModel = "llama-3.3-70b-versatile"
)

// Groq_Model implements the Model interface for Groq API
// Groq uses OpenAI-compatible API format
type Groq_Model struct {
	Model      string       // Model identifier used when the request names none
	APIKey     string       // Optional: explicit API key
	APIKeyEnv  string       // Optional: Environment variable name for API key (defaults to GROQ_API_KEY)
	BaseURL    string       // Optional: Custom API base URL (defaults to Groq)
	HTTPClient *http.Client // Optional: defaults to a client that waits out 429 responses

	once   sync.Once
	client *openai.Client
}

// Client returns the underlying OpenAI compatible client, creating it on first use.
func (g *Groq_Model) Client() *openai.Client {
	g.once.Do(func() {
		key := g.APIKey
		if key == "" {
			env := g.APIKeyEnv
			if env == "" {
				env = "GROQ_API_KEY"
			}
			key = os.Getenv(env)
		}

		cfg := openai.DefaultConfig(key)
		cfg.BaseURL = g.BaseURL
		if cfg.BaseURL == "" {
			cfg.BaseURL = GroqBaseURL
		}
		if g.HTTPClient != nil {
			cfg.HTTPClient = g.HTTPClient
		} else {
			cfg.HTTPClient = &http.Client{Transport: WithRateLimiting(nil)}
		}
		g.client = openai.NewClientWithConfig(cfg)
	})
	return g.client
}

// Model_Request implements the Model interface
func (g *Groq_Model) Model_Request(ctx context.Context, request models.Model_Request) (models.Model_Response, error) {
	resp, err := g.Client().CreateChatCompletion(ctx, g.createGroqRequest(request, false))
	if err != nil {
		return models.Model_Response{}, fmt.Errorf("Groq API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.Model_Response{}, fmt.Errorf("Groq API error: response has no choices")
	}
	return models.Model_Response{Text: resp.Choices[0].Message.Content}, nil
}

// Stream_Model_Request implements the Model interface for streaming
func (g *Groq_Model) Stream_Model_Request(ctx context.Context, request models.Model_Request) (<-chan models.Model_Delta, <-chan error, error) {
	stream, err := g.Client().CreateChatCompletionStream(ctx, g.createGroqRequest(request, true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start Groq stream: %w", err)
	}

	deltaChan := make(chan models.Model_Delta)
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		defer close(deltaChan)
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				errChan <- fmt.Errorf("Groq stream error: %w", err)
				return
			}

			// one delta per chunk, including chunks without content
			var delta models.Model_Delta
			if len(chunk.Choices) > 0 {
				delta.Text = chunk.Choices[0].Delta.Content
			}

			select {
			case deltaChan <- delta:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return deltaChan, errChan, nil
}

func (g *Groq_Model) createGroqRequest(request models.Model_Request, stream bool) openai.ChatCompletionRequest {
	model := request.Model
	if model == "" {
		model = g.Model
	}
	if model == "" {
		model = DefaultModel
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(request.Messages))
	for _, m := range request.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(models.NormalizeRole(string(m.Role))),
			Content: m.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: request.Temperature,
		TopP:        request.Top_P,
		MaxTokens:   request.Max_Tokens,
		Stream:      stream,
	}
}
