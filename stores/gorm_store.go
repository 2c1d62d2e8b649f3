package stores

import (
	"errors"
	"fmt"
	"log"

	"github.com/Desarso/insurebot/history"
	"gorm.io/gorm"
)

// gormStore carries the queries shared by the SQLite and PostgreSQL stores.
// The concrete stores only differ in how they open the connection.
type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) open(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	s.db = db

	// Auto-migrate the schema
	if err := s.db.AutoMigrate(&Conversation{}, &TurnRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *gormStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *gormStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// CreateConversation creates a new conversation record
func (s *gormStore) CreateConversation(convoID, language string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if language == "" {
		language = "en"
	}

	conv := Conversation{
		ConversationID: convoID,
		Language:       language,
	}

	if err := s.db.Create(&conv).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// GetConversation returns the metadata of one conversation
func (s *gormStore) GetConversation(convoID string) (ConversationInfo, error) {
	if s.db == nil {
		return ConversationInfo{}, fmt.Errorf("database connection is nil")
	}

	var conv Conversation
	err := s.db.Where("conversation_id = ?", convoID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ConversationInfo{}, ErrConversationNotFound
	}
	if err != nil {
		return ConversationInfo{}, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	return infoFromConversation(conv), nil
}

// ListConversations returns all conversations, most recently updated first
func (s *gormStore) ListConversations() ([]ConversationInfo, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var convs []Conversation
	if err := s.db.Order("updated_at DESC").Find(&convs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}

	result := make([]ConversationInfo, len(convs))
	for i, c := range convs {
		result[i] = infoFromConversation(c)
	}
	return result, nil
}

// DeleteConversation removes a conversation and all of its turns
func (s *gormStore) DeleteConversation(convoID string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Turns go first, they reference the conversation
		if err := tx.Unscoped().Where("conversation_id = ?", convoID).Delete(&TurnRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete turns: %w", err)
		}
		res := tx.Unscoped().Where("conversation_id = ?", convoID).Delete(&Conversation{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete conversation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConversationNotFound
		}
		return nil
	})
}

// LoadHistory returns the stored turns of a conversation in order
func (s *gormStore) LoadHistory(convoID string) (history.History, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var count int64
	if err := s.db.Model(&Conversation{}).Where("conversation_id = ?", convoID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check conversation: %w", err)
	}
	if count == 0 {
		return nil, ErrConversationNotFound
	}

	var records []TurnRecord
	if err := s.db.Where("conversation_id = ?", convoID).Order("sequence ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch turns: %w", err)
	}
	return historyFromRecords(records), nil
}

// SaveHistory replaces the stored turns of a conversation with h. The
// conversation record is created when it does not exist yet.
func (s *gormStore) SaveHistory(convoID string, h history.History) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	records := recordsFromHistory(convoID, h)
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Use Count() to check existence without triggering "record not found" error logs
		var count int64
		if err := tx.Model(&Conversation{}).Where("conversation_id = ?", convoID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check conversation: %w", err)
		}
		if count == 0 {
			log.Printf("Creating conversation record for %s", convoID)
			if err := tx.Create(&Conversation{ConversationID: convoID, Language: "en"}).Error; err != nil {
				return fmt.Errorf("failed to create conversation record: %w", err)
			}
		}

		if err := tx.Unscoped().Where("conversation_id = ?", convoID).Delete(&TurnRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear turns: %w", err)
		}
		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("failed to create turn records: %w", err)
			}
		}

		if err := tx.Model(&Conversation{}).Where("conversation_id = ?", convoID).Update("turn_count", len(records)).Error; err != nil {
			return fmt.Errorf("failed to update conversation turn count: %w", err)
		}
		return nil
	})
}

func infoFromConversation(c Conversation) ConversationInfo {
	return ConversationInfo{
		ConversationID: c.ConversationID,
		Language:       c.Language,
		TurnCount:      c.TurnCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
