package sessions

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/models"
)

type fakeModel struct {
	deltas   []string
	startErr error
	midErr   error
	block    chan struct{}

	mu       sync.Mutex
	requests []models.Model_Request
}

func (f *fakeModel) Model_Request(ctx context.Context, req models.Model_Request) (models.Model_Response, error) {
	f.record(req)
	if f.startErr != nil {
		return models.Model_Response{}, f.startErr
	}
	return models.Model_Response{Text: strings.Join(f.deltas, "")}, nil
}

func (f *fakeModel) Stream_Model_Request(ctx context.Context, req models.Model_Request) (<-chan models.Model_Delta, <-chan error, error) {
	f.record(req)
	if f.startErr != nil {
		return nil, nil, f.startErr
	}
	deltas := make(chan models.Model_Delta)
	errs := make(chan error, 1)
	go func() {
		defer close(deltas)
		defer close(errs)
		if f.block != nil {
			<-f.block
		}
		for _, d := range f.deltas {
			select {
			case deltas <- models.Model_Delta{Text: d}:
			case <-ctx.Done():
				return
			}
		}
		if f.midErr != nil {
			errs <- f.midErr
		}
	}()
	return deltas, errs, nil
}

func (f *fakeModel) record(req models.Model_Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
}

func (f *fakeModel) lastRequest() models.Model_Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

type fakeSynth struct {
	path string
	err  error
	text string
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, locale string) (string, error) {
	f.text = text
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

type fakeTranscriber struct{ text string }

func (f fakeTranscriber) Transcribe(ctx context.Context, path string) string { return f.text }

type fakeExtractor struct{ text string }

func (f fakeExtractor) Extract(path string, lang i18n.Language) string { return f.text }

var errConnectionRefused = errors.New("connection refused")

func collect(ch <-chan Snapshot) []Snapshot {
	var out []Snapshot
	for s := range ch {
		out = append(out, s)
	}
	return out
}
