package sessions

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/stores"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// IncomingAttachment is a file sent inline over the socket.
type IncomingAttachment struct {
	Name string `json:"name"`
	Data string `json:"data"` // base64
}

// IncomingMessage is one submission received over the socket.
type IncomingMessage struct {
	Text        string               `json:"text"`
	Language    string               `json:"language,omitempty"`
	TTS         bool                 `json:"tts,omitempty"`
	Attachments []IncomingAttachment `json:"attachments,omitempty"`
}

// WebSocketWriter handles all WebSocket communication
type WebSocketWriter struct {
	Conn              *websocket.Conn
	Logger            *log.Logger
	StartTime         time.Time
	FirstSnapshotSent bool
	mu                sync.Mutex
}

// Reset starts timing a new submission.
func (w *WebSocketWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.StartTime = time.Now()
	w.FirstSnapshotSent = false
}

func (w *WebSocketWriter) WriteSnapshot(snap Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Track time to first snapshot
	if !w.FirstSnapshotSent && !w.StartTime.IsZero() {
		w.Logger.Printf("Time to first snapshot: %v", time.Since(w.StartTime))
		w.FirstSnapshotSent = true
	}
	return w.Conn.WriteJSON(newSnapshotMessage(snap))
}

func (w *WebSocketWriter) WriteError(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(SnapshotMessage{Type: "error", Error: message})
}

func (w *WebSocketWriter) WriteDone() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(SnapshotMessage{Type: "done"})
}

// WebSocketSession serves one conversation over a WebSocket connection.
// Submissions are handled one after another in arrival order.
type WebSocketSession struct {
	Chat      *ChatSession
	Store     stores.ConversationStore // optional
	UploadDir string
	Logger    *log.Logger
	Writer    *WebSocketWriter
}

// Serve reads submissions until the client disconnects or ctx ends.
func (s *WebSocketSession) Serve(ctx context.Context) error {
	for {
		var msg IncomingMessage
		if err := s.Writer.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.Logger.Printf("Client disconnected")
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		sub, err := s.submission(msg)
		if err != nil {
			s.Logger.Printf("Rejected message: %v", err)
			if writeErr := s.Writer.WriteError(err.Error()); writeErr != nil {
				return writeErr
			}
			continue
		}

		if err := s.handle(ctx, sub); err != nil {
			var sessionErr *SessionError
			if errors.As(err, &sessionErr) && !sessionErr.Fatal {
				continue
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// handle streams one submission to the client.
func (s *WebSocketSession) handle(ctx context.Context, sub Submission) error {
	s.Writer.Reset()
	for snap := range s.Chat.Run(ctx, sub) {
		if errors.Is(snap.Err, ErrSessionBusy) {
			if err := s.Writer.WriteError(snap.Err.Error()); err != nil {
				return &SessionError{Message: err.Error(), Fatal: true}
			}
			return &SessionError{Message: snap.Err.Error(), Fatal: false}
		}
		if err := s.Writer.WriteSnapshot(snap); err != nil {
			s.Logger.Printf("Error writing snapshot: %v", err)
			return &SessionError{Message: err.Error(), Fatal: true}
		}
	}

	if s.Store != nil {
		if err := s.Store.SaveHistory(s.Chat.ID, s.Chat.History()); err != nil {
			s.Logger.Printf("Error saving history: %v", err)
		}
	}
	return s.Writer.WriteDone()
}

// submission converts a socket message, writing inline attachments into the
// upload directory.
func (s *WebSocketSession) submission(msg IncomingMessage) (Submission, error) {
	sub := Submission{
		Text:  msg.Text,
		Speak: msg.TTS,
	}
	if msg.Language != "" {
		sub.Language = i18n.ParseLanguage(msg.Language)
	}

	for _, a := range msg.Attachments {
		path, err := s.saveAttachment(a)
		if err != nil {
			return Submission{}, err
		}
		sub.Files = append(sub.Files, path)
	}
	return sub, nil
}

func (s *WebSocketSession) saveAttachment(a IncomingAttachment) (string, error) {
	name := filepath.Base(a.Name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("attachment without a file name")
	}
	data, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode attachment %s: %w", name, err)
	}

	dir := filepath.Join(s.UploadDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write attachment %s: %w", name, err)
	}
	return path, nil
}
