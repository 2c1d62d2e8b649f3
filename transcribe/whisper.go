package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultWhisperModel is Groq's hosted Whisper model.
const DefaultWhisperModel = "whisper-large-v3"

// WhisperService transcribes through an OpenAI compatible audio endpoint.
type WhisperService struct {
	Client *openai.Client
	Model  string
}

// Transcribe implements Service.
func (s *WhisperService) Transcribe(ctx context.Context, fileName string, data []byte) (string, error) {
	model := s.Model
	if model == "" {
		model = DefaultWhisperModel
	}

	resp, err := s.Client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		FilePath: fileName,
		Reader:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", ErrUnintelligible
	}
	return resp.Text, nil
}
