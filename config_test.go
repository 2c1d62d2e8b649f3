package insurebot

import (
	"testing"
	"time"

	"github.com/Desarso/insurebot/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ADVISOR_PROVIDER", "")
	t.Setenv("AUDIO_RETENTION", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderGroq, cfg.Provider)
	assert.Equal(t, 24*time.Hour, cfg.AudioRetention)
	assert.Equal(t, "sqlite", cfg.StoreType)
	assert.Equal(t, i18n.English, cfg.DefaultLanguage)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("ADVISOR_PROVIDER", "gemini")
	t.Setenv("AUDIO_RETENTION", "90m")
	t.Setenv("ADVISOR_LANGUAGE", "Français")
	t.Setenv("STORE_TYPE", "postgres")
	t.Setenv("STORE_DSN", "host=db")
	t.Setenv("ELEVENLABS_API_KEY", "key")
	t.Setenv("ELEVENLABS_VOICE_ID", "voice")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, 90*time.Minute, cfg.AudioRetention)
	assert.Equal(t, i18n.French, cfg.DefaultLanguage)
	assert.Equal(t, "postgres", cfg.StoreType)
	assert.Equal(t, "host=db", cfg.StoreDSN)
	assert.True(t, cfg.SpeechEnabled())
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("AUDIO_RETENTION", "soon")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "AUDIO_RETENTION")

	t.Setenv("AUDIO_RETENTION", "")
	t.Setenv("ADVISOR_PROVIDER", "openai")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "unsupported provider")
}

func TestConfigBuilders(t *testing.T) {
	cfg := DefaultConfig().
		WithProvider(ProviderGemini).
		WithChatModel("chat").
		WithRecommendModel("rec").
		WithPostgresStore("localhost", "u", "p", "db", 5432).
		WithListenAddr(":9000")

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "chat", cfg.ChatModel)
	assert.Equal(t, "rec", cfg.RecommendModel)
	assert.Equal(t, "postgres", cfg.StoreType)
	assert.Equal(t, "host=localhost user=u password=p dbname=db port=5432 sslmode=disable", cfg.StoreDSN)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.False(t, cfg.SpeechEnabled())
}
