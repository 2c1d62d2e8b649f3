package sessions

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/Desarso/insurebot/history"
	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/models"
	"github.com/Desarso/insurebot/speech"
)

// ChatOptions are the completion parameters of chat replies.
type ChatOptions struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
	WindowSize  int
}

// DefaultChatOptions match the advisor's streaming chat settings.
func DefaultChatOptions() ChatOptions {
	return ChatOptions{
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   5000,
		WindowSize:  DefaultWindowSize,
	}
}

// ChatSession owns one conversation's history and streams replies into it.
// Only one submission is processed at a time.
type ChatSession struct {
	ID         string
	Language   i18n.Language
	Model      models.Model
	Normalizer *Normalizer
	Speech     speech.Synthesizer // optional
	Options    ChatOptions
	Logger     *log.Logger

	mu      sync.Mutex
	history history.History
	running bool
}

// History returns a copy of the current conversation.
func (s *ChatSession) History() history.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Clone()
}

func (s *ChatSession) commit(h history.History) {
	s.mu.Lock()
	s.history = h.Clone()
	s.mu.Unlock()
}

// Run processes one submission and streams snapshots of the history: one per
// delta while the reply grows, one when speech synthesis starts and a final
// one. The channel is closed after the final snapshot, once the session
// accepts the next submission. Cancelling ctx stops delivery; the reply
// received so far is still kept in the history and the channel is closed
// after it has been committed.
func (s *ChatSession) Run(ctx context.Context, sub Submission) <-chan Snapshot {
	s.mu.Lock()
	if s.running {
		busy := Snapshot{State: StateFailed, History: s.history.Clone(), Err: ErrSessionBusy}
		s.mu.Unlock()
		out := make(chan Snapshot, 1)
		out <- busy
		close(out)
		return out
	}
	s.running = true
	base := s.history.Clone()
	s.mu.Unlock()

	out := make(chan Snapshot)
	go func() {
		// the session is free again before the consumer sees the channel close
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			close(out)
		}()
		r := &run{session: s, ctx: ctx, out: out}
		r.execute(base, sub)
	}()
	return out
}

// run is the state of a single submission.
type run struct {
	session   *ChatSession
	ctx       context.Context
	out       chan<- Snapshot
	abandoned bool
}

func (r *run) emit(state State, h history.History, err error) {
	if r.abandoned {
		return
	}
	select {
	case r.out <- Snapshot{State: state, History: h, Err: err}:
	case <-r.ctx.Done():
		r.abandoned = true
	}
}

func (r *run) logf(format string, args ...any) {
	if r.session.Logger != nil {
		r.session.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (r *run) execute(base history.History, sub Submission) {
	s := r.session
	lang := sub.Language
	if lang == "" {
		lang = s.Language
	}
	c := i18n.Lookup(lang)
	opts := s.Options
	if opts == (ChatOptions{}) {
		opts = DefaultChatOptions()
	}

	normalizer := s.Normalizer
	if normalizer == nil {
		normalizer = &Normalizer{}
	}
	h := normalizer.Normalize(r.ctx, base, sub, lang)
	if len(h) == len(base) {
		r.emit(StateDone, h.Clone(), nil)
		return
	}

	// only the last appended turn receives the reply
	open := len(h) - 1
	for i := len(base); i < open; i++ {
		h[i].Open = false
	}

	req := models.Model_Request{
		Model:       opts.Model,
		Messages:    BuildContext(h, ChatSystemPrompt(lang), opts.WindowSize),
		Temperature: opts.Temperature,
		Top_P:       opts.TopP,
		Max_Tokens:  opts.MaxTokens,
	}
	r.logf("Streaming reply with %d context messages", len(req.Messages))

	var deltas <-chan models.Model_Delta
	var errs <-chan error
	err := errors.New("no completion backend configured")
	if s.Model != nil {
		deltas, errs, err = s.Model.Stream_Model_Request(r.ctx, req)
	}
	if err != nil {
		r.logf("Advisor offline: %v", err)
		offline := c.Format(i18n.KeyAdvisorOffline, i18n.Truncate(err.Error(), 100))
		r.emit(StateFailed, history.History{history.NewClosedTurn("", history.TextReply(offline))}, err)
		return
	}

	var reply strings.Builder
	for deltas != nil || errs != nil {
		select {
		case d, ok := <-deltas:
			if !ok {
				deltas = nil
				continue
			}
			reply.WriteString(d.Text)
			h[open].Reply = history.TextReply(reply.String())
			r.emit(StateStreaming, h.Visible(), nil)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				r.logf("Stream interrupted after %d characters: %v", reply.Len(), err)
			}
		}
	}

	h[open].Open = false
	s.commit(h)

	if sub.Speak && !r.abandoned {
		h = r.speak(h, reply.String(), lang)
	}
	r.emit(StateDone, h.Clone(), nil)
}

// speak appends the "generating speech" turn and replaces it with the audio
// reference once synthesis succeeds. Failures leave the placeholder in place.
func (r *run) speak(h history.History, text string, lang i18n.Language) history.History {
	s := r.session
	c := i18n.Lookup(lang)

	h = h.Append(history.NewClosedTurn("", history.TextReply(c.Get(i18n.KeyTTSGenerating))))
	s.commit(h)
	r.emit(StateTTSPending, h.Clone(), nil)

	if s.Speech == nil {
		r.logf("TTS failed: no synthesizer configured")
		return h
	}
	path, err := s.Speech.Synthesize(r.ctx, text, lang.SpeechLocale())
	if err != nil {
		r.logf("TTS failed: %v", err)
		return h
	}

	h = h.Clone()
	h[len(h)-1].Reply = history.AudioReply(path)
	s.commit(h)
	return h
}
