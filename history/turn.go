// Package history models a conversation as an ordered list of turns.
package history

// ReservedSystemUser marks turns that are never shown while a reply streams.
const ReservedSystemUser = "system"

// Reply is the assistant side of a turn: empty, plain text or a reference
// to a synthesized audio file.
type Reply struct {
	Text      string `json:"text,omitempty"`
	AudioPath string `json:"audio_path,omitempty"`
}

// TextReply wraps plain assistant text.
func TextReply(text string) Reply {
	return Reply{Text: text}
}

// AudioReply references an audio file on disk.
func AudioReply(path string) Reply {
	return Reply{AudioPath: path}
}

// IsEmpty reports whether the reply carries nothing.
func (r Reply) IsEmpty() bool {
	return r.Text == "" && r.AudioPath == ""
}

// IsAudio reports whether the reply references audio instead of text.
func (r Reply) IsAudio() bool {
	return r.AudioPath != ""
}

// Turn is one user contribution and its assistant reply. Open turns are
// still waiting for (or receiving) their reply.
type Turn struct {
	UserText string `json:"user_text"`
	Reply    Reply  `json:"reply"`
	Open     bool   `json:"open"`
}

// NewOpenTurn starts a turn awaiting a reply.
func NewOpenTurn(userText string) Turn {
	return Turn{UserText: userText, Open: true}
}

// NewClosedTurn builds a finished turn.
func NewClosedTurn(userText string, reply Reply) Turn {
	return Turn{UserText: userText, Reply: reply}
}

// History is the chronological list of turns of one conversation.
type History []Turn

// Clone returns a deep copy. Turns hold only values so a slice copy suffices.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Append returns a new history with turns added at the end, leaving h untouched.
func (h History) Append(turns ...Turn) History {
	out := make(History, 0, len(h)+len(turns))
	out = append(out, h...)
	return append(out, turns...)
}

// Last returns the most recent turn.
func (h History) Last() (Turn, bool) {
	if len(h) == 0 {
		return Turn{}, false
	}
	return h[len(h)-1], true
}

// Tail returns the last n turns (all of them when n >= len).
func (h History) Tail(n int) History {
	if n <= 0 {
		return History{}
	}
	if n >= len(h) {
		return h
	}
	return h[len(h)-n:]
}

// Visible returns a copy without turns whose user text is the reserved
// "system" literal.
func (h History) Visible() History {
	out := make(History, 0, len(h))
	for _, t := range h {
		if t.UserText == ReservedSystemUser {
			continue
		}
		out = append(out, t)
	}
	return out
}
