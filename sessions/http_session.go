package sessions

import (
	"context"
	"errors"
	"log"

	"github.com/Desarso/insurebot/history"
	"github.com/Desarso/insurebot/stores"
)

// HTTPSession drives one conversation for request/response clients and
// persists the history after every submission.
type HTTPSession struct {
	Chat   *ChatSession
	Store  stores.ConversationStore // optional
	Logger *log.Logger
}

// RunInteraction processes a submission without streaming and returns the
// final history.
func (s *HTTPSession) RunInteraction(ctx context.Context, sub Submission) (history.History, error) {
	var final Snapshot
	for snap := range s.Chat.Run(ctx, sub) {
		final = snap
	}
	if errors.Is(final.Err, ErrSessionBusy) {
		return nil, final.Err
	}
	s.save()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return final.History, nil
}

// RunSSEInteraction streams every snapshot of a submission as a "snapshot"
// event followed by a single "done" event.
func (s *HTTPSession) RunSSEInteraction(ctx context.Context, sub Submission, writer SSEWriter) error {
	snaps := s.Chat.Run(ctx, sub)
	defer s.save()

	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				s.Logger.Printf("SSE stream finished.")
				if err := writer.WriteSSE("done", SnapshotMessage{Type: "done"}); err != nil {
					s.Logger.Printf("Error writing to SSE stream: %v", err)
					return err
				}
				writer.Flush()
				return nil
			}

			if errors.Is(snap.Err, ErrSessionBusy) {
				s.Logger.Printf("SSE submission rejected: %v", snap.Err)
				if writeErr := writer.WriteSSEError(snap.Err); writeErr != nil {
					s.Logger.Printf("Error writing SSE error: %v", writeErr)
				}
				writer.Flush()
				return snap.Err
			}

			if err := writer.WriteSSE("snapshot", newSnapshotMessage(snap)); err != nil {
				s.Logger.Printf("Error writing to SSE stream: %v", err)
				return err
			}
			writer.Flush()

		case <-ctx.Done():
			s.Logger.Printf("SSE client disconnected")
			// wait for the partial reply to be committed before it is saved
			for range snaps {
			}
			return ctx.Err()
		}
	}
}

func (s *HTTPSession) save() {
	if s.Store == nil {
		return
	}
	if err := s.Store.SaveHistory(s.Chat.ID, s.Chat.History()); err != nil {
		s.Logger.Printf("Error saving history: %v", err)
	}
}
