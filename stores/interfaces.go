package stores

import (
	"errors"
	"time"

	"github.com/Desarso/insurebot/history"
	"gorm.io/gorm"
)

// ErrConversationNotFound is returned for unknown conversation ids.
var ErrConversationNotFound = errors.New("conversation not found")

// TurnRecord is one persisted turn of a conversation.
type TurnRecord struct {
	gorm.Model
	ConversationID string `gorm:"index;not null"`
	Sequence       int    `gorm:"not null"`
	UserText       string `gorm:"type:text"`
	ReplyText      string `gorm:"type:text"`
	AudioPath      string
	Open           bool
}

// Conversation holds metadata for a chat conversation
type Conversation struct {
	gorm.Model
	ConversationID string       `gorm:"uniqueIndex;not null"`
	Language       string       `gorm:"not null;default:en"`
	TurnCount      int          `gorm:"default:0"`
	Turns          []TurnRecord `gorm:"foreignKey:ConversationID;references:ConversationID"`
}

// ConversationInfo holds basic conversation metadata for listing
type ConversationInfo struct {
	ConversationID string
	Language       string
	TurnCount      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ConversationStore interface for abstracting database operations
type ConversationStore interface {
	// Conversation operations
	CreateConversation(convoID, language string) error
	GetConversation(convoID string) (ConversationInfo, error)
	ListConversations() ([]ConversationInfo, error)
	DeleteConversation(convoID string) error

	// History operations
	LoadHistory(convoID string) (history.History, error)
	SaveHistory(convoID string, h history.History) error

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string            `json:"type"`       // "sqlite" or "postgres"
	Connection string            `json:"connection"` // file path or DSN
	Options    map[string]string `json:"options"`    // additional options
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
		Options:    make(map[string]string),
	}
}

// WithOption adds an option to the store configuration
func (c *StoreConfig) WithOption(key, value string) *StoreConfig {
	c.Options[key] = value
	return c
}

func recordsFromHistory(convoID string, h history.History) []TurnRecord {
	records := make([]TurnRecord, 0, len(h))
	for i, t := range h {
		records = append(records, TurnRecord{
			ConversationID: convoID,
			Sequence:       i + 1,
			UserText:       t.UserText,
			ReplyText:      t.Reply.Text,
			AudioPath:      t.Reply.AudioPath,
			Open:           t.Open,
		})
	}
	return records
}

func historyFromRecords(records []TurnRecord) history.History {
	h := make(history.History, 0, len(records))
	for _, r := range SanitizeTurns(records) {
		h = append(h, history.Turn{
			UserText: r.UserText,
			Reply:    history.Reply{Text: r.ReplyText, AudioPath: r.AudioPath},
			Open:     r.Open,
		})
	}
	return h
}
