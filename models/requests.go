package models

import "strings"

// Role of a message sent to the completion backend.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// NormalizeRole maps provider specific role names onto the three roles the
// advisor uses. Unknown roles are treated as user input.
func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "system", "developer":
		return RoleSystem
	case "assistant", "model", "bot":
		return RoleAssistant
	default:
		return RoleUser
	}
}

// Message is one role-tagged element of a context window.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Model_Request is a single completion call.
type Model_Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	Top_P       float32   `json:"top_p"`
	Max_Tokens  int       `json:"max_tokens"`
}

// SystemPrompt returns the content of the leading system message, if any.
func (r Model_Request) SystemPrompt() string {
	if len(r.Messages) > 0 && r.Messages[0].Role == RoleSystem {
		return r.Messages[0].Content
	}
	return ""
}

// Conversation returns the messages after the leading system message.
func (r Model_Request) Conversation() []Message {
	if len(r.Messages) > 0 && r.Messages[0].Role == RoleSystem {
		return r.Messages[1:]
	}
	return r.Messages
}
