package sessions

import (
	"fmt"
	"log"
	"os"

	"github.com/Desarso/insurebot/history"
	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/models"
	"github.com/Desarso/insurebot/speech"
	"github.com/Desarso/insurebot/stores"
	"github.com/gorilla/websocket"
)

// NewChatSession creates a chat session seeded with an existing history
func NewChatSession(id string, lang i18n.Language, model models.Model, normalizer *Normalizer, synth speech.Synthesizer, initial history.History) *ChatSession {
	return &ChatSession{
		ID:         id,
		Language:   lang,
		Model:      model,
		Normalizer: normalizer,
		Speech:     synth,
		Options:    DefaultChatOptions(),
		Logger:     log.New(os.Stdout, fmt.Sprintf("[CHAT %s] ", id), log.LstdFlags),
		history:    initial.Clone(),
	}
}

// NewHTTPSession creates a new HTTP session
func NewHTTPSession(chat *ChatSession, store stores.ConversationStore) *HTTPSession {
	return &HTTPSession{
		Chat:   chat,
		Store:  store,
		Logger: log.New(os.Stdout, fmt.Sprintf("[HTTP %s] ", chat.ID), log.LstdFlags),
	}
}

// NewWebSocketSession creates a new WebSocket session
func NewWebSocketSession(chat *ChatSession, conn *websocket.Conn, store stores.ConversationStore, uploadDir string) *WebSocketSession {
	logger := log.New(os.Stdout, fmt.Sprintf("[WS %s] ", chat.ID), log.LstdFlags)
	return &WebSocketSession{
		Chat:      chat,
		Store:     store,
		UploadDir: uploadDir,
		Logger:    logger,
		Writer:    &WebSocketWriter{Conn: conn, Logger: logger},
	}
}
