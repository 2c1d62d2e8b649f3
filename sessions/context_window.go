package sessions

import (
	"github.com/Desarso/insurebot/history"
	"github.com/Desarso/insurebot/models"
)

// DefaultWindowSize is the number of recent turns sent with every chat request.
const DefaultWindowSize = 5

// BuildContext converts the last windowSize turns into backend messages,
// system prompt first. The prompt of an open last turn is always sent, once,
// as the final user message.
func BuildContext(h history.History, systemPrompt string, windowSize int) []models.Message {
	msgs := []models.Message{{Role: models.RoleSystem, Content: systemPrompt}}

	last, hasLast := h.Last()
	openLast := hasLast && last.Open

	window := h.Tail(windowSize)
	for i, t := range window {
		if t.UserText != "" && !(openLast && i == len(window)-1) {
			msgs = append(msgs, models.Message{Role: models.RoleUser, Content: t.UserText})
		}
		if t.Reply.Text != "" && !t.Reply.IsAudio() {
			msgs = append(msgs, models.Message{Role: models.RoleAssistant, Content: t.Reply.Text})
		}
	}

	if openLast && last.UserText != "" {
		msgs = append(msgs, models.Message{Role: models.RoleUser, Content: last.UserText})
	}
	return msgs
}
