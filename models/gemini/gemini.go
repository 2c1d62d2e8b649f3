package gemini

import (
	"context"
	"fmt"
	"iter"
	"sync"

	models "github.com/Desarso/insurebot/models"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// Gemini_Model implements the Model interface on top of the Gemini API.
type Gemini_Model struct {
	Model  string `json:"model"`
	APIKey string `json:"-"` // Optional: falls back to GEMINI_API_KEY / GOOGLE_API_KEY

	mu     sync.Mutex
	client *genai.Client
}

func (g *Gemini_Model) genaiClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}

	var cfg *genai.ClientConfig
	if g.APIKey != "" {
		cfg = &genai.ClientConfig{APIKey: g.APIKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *Gemini_Model) Model_Request(ctx context.Context, request models.Model_Request) (models.Model_Response, error) {
	client, err := g.genaiClient(ctx)
	if err != nil {
		return models.Model_Response{}, err
	}

	model, contents, config := g.createGeminiRequest(request)
	result, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return models.Model_Response{}, fmt.Errorf("Gemini API error: %w", err)
	}
	return models.Model_Response{Text: result.Text()}, nil
}

// Stream_Model_Request pulls the first chunk before returning so that a
// request the API rejects is reported as a start failure.
func (g *Gemini_Model) Stream_Model_Request(ctx context.Context, request models.Model_Request) (<-chan models.Model_Delta, <-chan error, error) {
	client, err := g.genaiClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	model, contents, config := g.createGeminiRequest(request)
	next, stop := iter.Pull2(client.Models.GenerateContentStream(ctx, model, contents, config))

	resp, err, ok := next()
	if ok && err != nil {
		stop()
		return nil, nil, fmt.Errorf("failed to start Gemini stream: %w", err)
	}

	deltaChan := make(chan models.Model_Delta)
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		defer close(deltaChan)
		defer stop()

		for ok {
			var delta models.Model_Delta
			if resp != nil {
				delta.Text = resp.Text()
			}
			select {
			case deltaChan <- delta:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			resp, err, ok = next()
			if ok && err != nil {
				errChan <- fmt.Errorf("Gemini stream error: %w", err)
				return
			}
		}
	}()

	return deltaChan, errChan, nil
}

func (g *Gemini_Model) createGeminiRequest(request models.Model_Request) (string, []*genai.Content, *genai.GenerateContentConfig) {
	model := request.Model
	if model == "" {
		model = g.Model
	}
	if model == "" {
		model = DefaultModel
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(request.Temperature),
		TopP:            genai.Ptr(request.Top_P),
		MaxOutputTokens: int32(request.Max_Tokens),
	}
	if sys := request.SystemPrompt(); sys != "" {
		config.SystemInstruction = genai.NewContentFromText(sys, genai.RoleUser)
	}

	conversation := request.Conversation()
	contents := make([]*genai.Content, 0, len(conversation))
	for _, m := range conversation {
		role := genai.RoleUser
		if models.NormalizeRole(string(m.Role)) == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}
	return model, contents, config
}
