package sessions

import (
	"context"
	"errors"

	"github.com/Desarso/insurebot/history"
	"github.com/Desarso/insurebot/i18n"
)

// ErrSessionBusy is reported when a submission arrives while the previous
// reply is still streaming.
var ErrSessionBusy = errors.New("session is already streaming a reply")

// SessionError represents errors that can occur during session transport
type SessionError struct {
	Message string
	Fatal   bool
}

func (e *SessionError) Error() string {
	return e.Message
}

// State of a chat session while it handles one submission.
type State string

const (
	StateIdle               State = "idle"
	StateAwaitingFirstDelta State = "awaiting_first_delta"
	StateStreaming          State = "streaming"
	StateTTSPending         State = "tts_pending"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Snapshot is the history as it stood at one point of a reply. Each snapshot
// owns its History; consumers may keep or modify it.
type Snapshot struct {
	State   State           `json:"state"`
	History history.History `json:"history"`
	Err     error           `json:"-"`
}

// Submission is one user input: free text plus uploaded files, in order.
type Submission struct {
	Text     string
	Files    []string
	Language i18n.Language // empty uses the session language
	Speak    bool          // synthesize the reply as audio
}

// IsEmpty reports whether there is nothing to send.
func (s Submission) IsEmpty() bool {
	return s.Text == "" && len(s.Files) == 0
}

// Transcriber turns a voice upload into text or a sentinel string.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) string
}

// Extractor turns a document upload into annotated text.
type Extractor interface {
	Extract(path string, lang i18n.Language) string
}

// SSEWriter handles Server-Sent Events writing
type SSEWriter interface {
	WriteSSE(event string, data any) error
	WriteSSEError(err error) error
	Flush()
}

// SnapshotMessage is the wire form of a snapshot shared by SSE and WebSocket
// clients.
type SnapshotMessage struct {
	Type    string          `json:"type"` // "snapshot", "done" or "error"
	State   State           `json:"state,omitempty"`
	History history.History `json:"history,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func newSnapshotMessage(snap Snapshot) SnapshotMessage {
	msg := SnapshotMessage{Type: "snapshot", State: snap.State, History: snap.History}
	if snap.Err != nil {
		msg.Error = snap.Err.Error()
	}
	return msg
}
