package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeBackend struct {
	audio     []byte
	err       error
	gotLocale string
}

func (f *fakeBackend) Speak(_ context.Context, _ string, locale string) ([]byte, error) {
	f.gotLocale = locale
	return f.audio, f.err
}

func TestFileSynthesizer(t *testing.T) {
	orig, origSuffix := now, fileSuffix
	defer func() { now, fileSuffix = orig, origSuffix }()
	now = func() time.Time { return time.Unix(1700000000, 0) }
	fileSuffix = func() string { return "abcd1234" }

	dir := filepath.Join(t.TempDir(), "audio")
	backend := &fakeBackend{audio: []byte("mp3")}
	s := &FileSynthesizer{Backend: backend, Dir: dir}

	path, err := s.Synthesize(context.Background(), "hello", "fr")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if filepath.Base(path) != "bot_response_1700000000_abcd1234.mp3" {
		t.Errorf("unexpected file name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "mp3" {
		t.Errorf("unexpected file content %q, %v", data, err)
	}
	if backend.gotLocale != "fr" {
		t.Errorf("locale not forwarded, got %q", backend.gotLocale)
	}
}

func TestFileSynthesizerSameSecond(t *testing.T) {
	orig := now
	defer func() { now = orig }()
	now = func() time.Time { return time.Unix(1700000000, 0) }

	dir := t.TempDir()
	s := &FileSynthesizer{Backend: &fakeBackend{audio: []byte("mp3")}, Dir: dir}

	first, err := s.Synthesize(context.Background(), "one", "en")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	second, err := s.Synthesize(context.Background(), "two", "en")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if first == second {
		t.Fatalf("both replies written to %s", first)
	}

	j := &Janitor{Dir: dir, Retention: time.Hour}
	now = func() time.Time { return time.Unix(1700000000, 0).Add(2 * time.Hour) }
	if err := os.Chtimes(first, time.Unix(1700000000, 0), time.Unix(1700000000, 0)); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(second, time.Unix(1700000000, 0), time.Unix(1700000000, 0)); err != nil {
		t.Fatal(err)
	}
	removed, err := j.Sweep()
	if err != nil || removed != 2 {
		t.Errorf("Sweep() = %d, %v; want both suffixed files removed", removed, err)
	}
}

func TestFileSynthesizerBackendError(t *testing.T) {
	s := &FileSynthesizer{Backend: &fakeBackend{err: errors.New("quota exceeded")}, Dir: t.TempDir()}
	if _, err := s.Synthesize(context.Background(), "hello", "en"); err == nil {
		t.Fatal("Expected error")
	}
	if _, err := (&FileSynthesizer{}).Synthesize(context.Background(), "hello", "en"); err == nil {
		t.Fatal("Expected error without backend")
	}
}

func TestJanitorSweep(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "bot_response_1.mp3")
	fresh := filepath.Join(dir, "bot_response_2.mp3")
	other := filepath.Join(dir, "upload.mp3")
	for _, p := range []string{old, fresh, other} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(other, past, past); err != nil {
		t.Fatal(err)
	}

	j := &Janitor{Dir: dir, Retention: 24 * time.Hour}
	removed, err := j.Sweep()
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removal, got %d", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old audio still present")
	}
	for _, p := range []string{fresh, other} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s should be kept: %v", p, err)
		}
	}
}

func TestJanitorMissingDir(t *testing.T) {
	j := &Janitor{Dir: filepath.Join(t.TempDir(), "missing"), Retention: time.Hour}
	if n, err := j.Sweep(); err != nil || n != 0 {
		t.Errorf("Sweep() = %d, %v", n, err)
	}
}

func TestJanitorInvalidSchedule(t *testing.T) {
	j := &Janitor{Dir: t.TempDir(), Schedule: "every tuesday"}
	if err := j.Start(); err == nil {
		j.Stop()
		t.Fatal("Expected schedule error")
	}
}
