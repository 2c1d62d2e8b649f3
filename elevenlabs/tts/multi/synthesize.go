package multi

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Synthesize speaks text in one context on a fresh connection and returns the
// concatenated audio once ElevenLabs marks the context final.
func Synthesize(ctx context.Context, cfg ConnectConfig, text string) ([]byte, error) {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = DefaultOutputFormat
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c, err := Dial(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	contextID := uuid.NewString()
	if err := c.InitializeContext(ctx, contextID); err != nil {
		return nil, fmt.Errorf("tts: failed to initialize context: %w", err)
	}
	if err := c.SendText(ctx, contextID, text, true); err != nil {
		return nil, fmt.Errorf("tts: failed to send text: %w", err)
	}
	if err := c.CloseContext(ctx, contextID); err != nil {
		return nil, fmt.Errorf("tts: failed to close context: %w", err)
	}

	var audio bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err := <-c.Errors():
			return nil, fmt.Errorf("tts: connection error: %w", err)
		case msg, ok := <-c.Events():
			if !ok {
				if audio.Len() > 0 {
					return audio.Bytes(), nil
				}
				return nil, errors.New("tts: connection closed before audio was received")
			}
			if msg.ContextID != "" && msg.ContextID != contextID {
				continue
			}
			switch msg.Kind {
			case "audio":
				chunk, err := base64.StdEncoding.DecodeString(msg.AudioB64)
				if err != nil {
					return nil, fmt.Errorf("tts: invalid audio chunk: %w", err)
				}
				audio.Write(chunk)
			case "final":
				if audio.Len() == 0 {
					return nil, errors.New("tts: no audio received")
				}
				return audio.Bytes(), nil
			}
		}
	}
}
