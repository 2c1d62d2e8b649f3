// Package speech turns assistant replies into audio files.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	eleven_tts "github.com/Desarso/insurebot/elevenlabs/tts/multi"
	"github.com/google/uuid"
)

// FilePrefix starts the name of every generated audio file.
const FilePrefix = "bot_response_"

// Synthesizer speaks text in a locale ("en", "fr") and returns the path of the
// saved audio file.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, locale string) (string, error)
}

// Backend produces encoded mp3 audio for text.
type Backend interface {
	Speak(ctx context.Context, text, locale string) ([]byte, error)
}

// now and fileSuffix are swapped in tests.
var (
	now        = time.Now
	fileSuffix = func() string { return uuid.NewString()[:8] }
)

// FileSynthesizer saves backend audio as bot_response_<unix>_<suffix>.mp3 in
// Dir. The random suffix keeps replies synthesized in the same second apart.
type FileSynthesizer struct {
	Backend Backend
	Dir     string
}

func (s *FileSynthesizer) Synthesize(ctx context.Context, text, locale string) (string, error) {
	if s.Backend == nil {
		return "", errors.New("no speech backend configured")
	}
	audio, err := s.Backend.Speak(ctx, text, locale)
	if err != nil {
		return "", fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create audio directory: %w", err)
		}
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s%d_%s.mp3", FilePrefix, now().Unix(), fileSuffix()))
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("failed to save audio: %w", err)
	}
	return path, nil
}

// ElevenLabsBackend speaks through the ElevenLabs websocket API.
type ElevenLabsBackend struct {
	Config eleven_tts.ConnectConfig
}

func (b *ElevenLabsBackend) Speak(ctx context.Context, text, locale string) ([]byte, error) {
	cfg := b.Config
	cfg.LanguageCode = locale
	return eleven_tts.Synthesize(ctx, cfg, text)
}
