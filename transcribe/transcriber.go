// Package transcribe converts voice uploads into text for the advisor.
package transcribe

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Sentinels returned in place of a transcript.
const (
	CannotReadVoice = "Cannot read voice"
	NotAvailable    = "Not available"
)

// ErrUnintelligible is returned by a Service when speech was received but not
// understood.
var ErrUnintelligible = errors.New("could not understand audio")

// Service recognizes speech in an encoded audio file.
type Service interface {
	Transcribe(ctx context.Context, fileName string, audio []byte) (string, error)
}

var readFile = os.ReadFile

// Transcriber wraps a Service and reduces every failure to a sentinel string.
type Transcriber struct {
	Service Service
}

// Transcribe returns the transcript of the audio file at path, CannotReadVoice
// when the speech could not be understood, or NotAvailable when the
// recognition service failed.
func (t *Transcriber) Transcribe(ctx context.Context, path string) string {
	if t.Service == nil {
		return NotAvailable
	}

	data, err := readFile(path)
	if err != nil {
		log.Println("ERROR: transcribe:", err)
		return CannotReadVoice
	}

	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		data, err = canonicalWAV(data)
		if err != nil {
			log.Println("ERROR: transcribe:", err)
			return CannotReadVoice
		}
	}

	text, err := t.Service.Transcribe(ctx, name, data)
	switch {
	case errors.Is(err, ErrUnintelligible):
		return CannotReadVoice
	case err != nil:
		log.Println("ERROR: transcribe:", err)
		return NotAvailable
	}

	text = strings.TrimSpace(strings.TrimSuffix(text, "[BLANK_AUDIO]"))
	if text == "" {
		return CannotReadVoice
	}
	return text
}
