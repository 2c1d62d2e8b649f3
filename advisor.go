// Package insurebot assembles the insurance advisor: completion backend,
// attachment handling, speech, recommendations and conversation storage.
package insurebot

import (
	"context"
	"errors"
	"fmt"
	"log"

	eleven_tts "github.com/Desarso/insurebot/elevenlabs/tts/multi"
	"github.com/Desarso/insurebot/extract"
	"github.com/Desarso/insurebot/history"
	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/models"
	"github.com/Desarso/insurebot/models/gemini"
	"github.com/Desarso/insurebot/models/groq"
	"github.com/Desarso/insurebot/recommend"
	"github.com/Desarso/insurebot/sessions"
	"github.com/Desarso/insurebot/speech"
	"github.com/Desarso/insurebot/stores"
	"github.com/Desarso/insurebot/transcribe"
)

// Advisor owns the shared components every conversation uses.
type Advisor struct {
	Config      *Config
	Model       models.Model
	Normalizer  *sessions.Normalizer
	Speech      speech.Synthesizer // nil when speech is not configured
	Recommender *recommend.Generator
	Store       stores.ConversationStore
	Janitor     *speech.Janitor

	chatOptions sessions.ChatOptions
}

// NewAdvisor builds every component described by cfg. The store connection is
// opened here; call Close when done.
func NewAdvisor(ctx context.Context, cfg *Config) (*Advisor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Advisor{Config: cfg}

	chatOpts := sessions.DefaultChatOptions()
	recOpts := recommend.DefaultOptions()
	switch cfg.Provider {
	case ProviderGemini:
		a.Model = &gemini.Gemini_Model{Model: gemini.DefaultModel, APIKey: cfg.GeminiAPIKey}
		chatOpts.Model = gemini.DefaultModel
		recOpts.Model = gemini.DefaultModel
	default:
		a.Model = &groq.Groq_Model{Model: groq.DefaultModel, APIKey: cfg.GroqAPIKey}
	}
	if cfg.ChatModel != "" {
		chatOpts.Model = cfg.ChatModel
	}
	if cfg.RecommendModel != "" {
		recOpts.Model = cfg.RecommendModel
	}
	a.chatOptions = chatOpts
	a.Recommender = &recommend.Generator{Model: a.Model, Options: recOpts}

	// Whisper is only hosted by Groq; Gemini deployments still need a Groq key for voice.
	var transcriber sessions.Transcriber
	if cfg.GroqAPIKey != "" || cfg.Provider == ProviderGroq {
		whisperClient := &groq.Groq_Model{APIKey: cfg.GroqAPIKey}
		transcriber = &transcribe.Transcriber{Service: &transcribe.WhisperService{
			Client: whisperClient.Client(),
			Model:  cfg.TranscribeModel,
		}}
	} else {
		log.Println("GROQ_API_KEY not set, voice transcription disabled")
	}
	a.Normalizer = &sessions.Normalizer{Transcriber: transcriber, Extractor: extract.New()}

	if cfg.SpeechEnabled() {
		a.Speech = &speech.FileSynthesizer{
			Backend: &speech.ElevenLabsBackend{Config: eleven_tts.ConnectConfig{
				VoiceID:      cfg.ElevenLabsVoiceID,
				APIKey:       cfg.ElevenLabsAPIKey,
				ModelID:      cfg.ElevenLabsModelID,
				OutputFormat: eleven_tts.DefaultOutputFormat,
			}},
			Dir: cfg.AudioDir,
		}
		a.Janitor = &speech.Janitor{Dir: cfg.AudioDir, Retention: cfg.AudioRetention}
	} else {
		log.Println("ElevenLabs credentials not set, text-to-speech disabled")
	}

	store, err := stores.NewStore(stores.NewStoreConfig(cfg.StoreType, cfg.StoreDSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation store: %w", err)
	}
	a.Store = store

	if a.Janitor != nil && cfg.AudioRetention > 0 {
		if err := a.Janitor.Start(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to start audio janitor: %w", err)
		}
	}

	return a, nil
}

// NewSession creates a chat session for a conversation seeded with h.
func (a *Advisor) NewSession(id string, lang i18n.Language, h history.History) *sessions.ChatSession {
	if lang == "" {
		lang = a.Config.DefaultLanguage
	}
	chat := sessions.NewChatSession(id, lang, a.Model, a.Normalizer, a.Speech, h)
	chat.Options = a.chatOptions
	return chat
}

// LoadSession restores a stored conversation into a chat session. Unknown
// conversations are created empty.
func (a *Advisor) LoadSession(id string, lang i18n.Language) (*sessions.ChatSession, error) {
	h, err := a.Store.LoadHistory(id)
	if errors.Is(err, stores.ErrConversationNotFound) {
		if err := a.Store.CreateConversation(id, string(lang)); err != nil {
			return nil, err
		}
		return a.NewSession(id, lang, nil), nil
	}
	if err != nil {
		return nil, err
	}
	if lang == "" {
		if info, err := a.Store.GetConversation(id); err == nil {
			lang = i18n.ParseLanguage(info.Language)
		}
	}
	return a.NewSession(id, lang, h), nil
}

// Recommend generates a policy recommendation.
func (a *Advisor) Recommend(ctx context.Context, req recommend.Request) string {
	return a.Recommender.Generate(ctx, req)
}

// Close stops background jobs and the store connection.
func (a *Advisor) Close() error {
	if a.Janitor != nil {
		a.Janitor.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
