package insurebot

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Desarso/insurebot/i18n"
	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Config holds everything needed to assemble an Advisor
type Config struct {
	// Completion backend
	Provider        string // "groq" or "gemini"
	GroqAPIKey      string
	GeminiAPIKey    string
	ChatModel       string // empty uses the provider default
	RecommendModel  string // empty uses the provider default
	TranscribeModel string

	// Speech
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	ElevenLabsModelID string
	AudioDir          string
	AudioRetention    time.Duration

	// Storage
	StoreType string // "sqlite" or "postgres"
	StoreDSN  string
	UploadDir string

	// Server
	ListenAddr      string
	DefaultLanguage i18n.Language
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGroq,
		AudioDir:        "audio",
		AudioRetention:  24 * time.Hour,
		StoreType:       "sqlite",
		StoreDSN:        "insurebot.sqlite",
		UploadDir:       "uploads",
		ListenAddr:      ":8080",
		DefaultLanguage: i18n.Default,
	}
}

// LoadConfig reads the configuration from a .env file, when present, and the
// environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	c := DefaultConfig()
	loadOptionalFromEnv(&c.Provider, "ADVISOR_PROVIDER")
	loadOptionalFromEnv(&c.GroqAPIKey, "GROQ_API_KEY")
	loadOptionalFromEnv(&c.GeminiAPIKey, "GEMINI_API_KEY")
	loadOptionalFromEnv(&c.ChatModel, "ADVISOR_CHAT_MODEL")
	loadOptionalFromEnv(&c.RecommendModel, "ADVISOR_RECOMMEND_MODEL")
	loadOptionalFromEnv(&c.TranscribeModel, "ADVISOR_TRANSCRIBE_MODEL")
	loadOptionalFromEnv(&c.ElevenLabsAPIKey, "ELEVENLABS_API_KEY")
	loadOptionalFromEnv(&c.ElevenLabsVoiceID, "ELEVENLABS_VOICE_ID")
	loadOptionalFromEnv(&c.ElevenLabsModelID, "ELEVENLABS_MODEL_ID")
	loadOptionalFromEnv(&c.AudioDir, "AUDIO_DIR")
	loadOptionalFromEnv(&c.UploadDir, "UPLOAD_DIR")
	loadOptionalFromEnv(&c.StoreType, "STORE_TYPE")
	loadOptionalFromEnv(&c.StoreDSN, "STORE_DSN")
	loadOptionalFromEnv(&c.ListenAddr, "LISTEN_ADDR")
	if err := parseOptionalFromEnv(&c.AudioRetention, "AUDIO_RETENTION", time.ParseDuration); err != nil {
		return nil, err
	}
	if err := parseOptionalFromEnv(&c.DefaultLanguage, "ADVISOR_LANGUAGE", func(v string) (i18n.Language, error) {
		return i18n.ParseLanguage(v), nil
	}); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the configuration can build an Advisor
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}
	if c.AudioRetention < 0 {
		return fmt.Errorf("audio retention must not be negative: %v", c.AudioRetention)
	}
	return nil
}

// SpeechEnabled reports whether text-to-speech credentials are configured
func (c *Config) SpeechEnabled() bool {
	return c.ElevenLabsAPIKey != "" && c.ElevenLabsVoiceID != ""
}

// WithProvider sets the completion backend for the configuration
func (c *Config) WithProvider(provider string) *Config {
	c.Provider = provider
	return c
}

// WithChatModel sets the model used for chat replies
func (c *Config) WithChatModel(model string) *Config {
	c.ChatModel = model
	return c
}

// WithRecommendModel sets the model used for recommendations
func (c *Config) WithRecommendModel(model string) *Config {
	c.RecommendModel = model
	return c
}

// WithSQLiteStore stores conversations in the SQLite file at dbPath
func (c *Config) WithSQLiteStore(dbPath string) *Config {
	c.StoreType = "sqlite"
	c.StoreDSN = dbPath
	return c
}

// WithPostgresStore stores conversations in PostgreSQL
func (c *Config) WithPostgresStore(host, user, password, dbname string, port int) *Config {
	c.StoreType = "postgres"
	c.StoreDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)
	return c
}

// WithAudioDir sets where synthesized replies are written
func (c *Config) WithAudioDir(dir string) *Config {
	c.AudioDir = dir
	return c
}

// WithUploadDir sets where uploaded attachments are written
func (c *Config) WithUploadDir(dir string) *Config {
	c.UploadDir = dir
	return c
}

// WithListenAddr sets the HTTP listen address
func (c *Config) WithListenAddr(addr string) *Config {
	c.ListenAddr = addr
	return c
}

func loadOptionalFromEnv(dest *string, key string) {
	_ = parseOptionalFromEnv(dest, key, func(v string) (string, error) { return v, nil })
}

func parseOptionalFromEnv[T any](dest *T, key string, parseFn func(string) (T, error)) error {
	str := os.Getenv(key)
	if str == "" {
		return nil // Leave default value
	}
	v, err := parseFn(str)
	if err != nil {
		return fmt.Errorf("failed to parse environment variable '%s' value '%s' as '%T': %w", key, str, *dest, err)
	}
	*dest = v
	return nil
}
