package multi

import (
	"net/url"
	"strconv"
	"strings"
)

// ConnectConfig maps to the ElevenLabs multi-context TTS websocket query parameters and auth options.
type ConnectConfig struct {
	// BaseURL is the websocket base URL, e.g. "wss://api.elevenlabs.io".
	BaseURL string
	// VoiceID is required.
	VoiceID string

	// APIKey is your ElevenLabs API key (sent as header: xi-api-key).
	APIKey string
	// Authorization bearer token (optional alternative to API key).
	Authorization string

	ModelID           string
	LanguageCode      string
	OutputFormat      string
	InactivityTimeout *int
	AutoMode          *bool
}

func DefaultBaseURL() string { return "wss://api.elevenlabs.io" }

// DefaultOutputFormat produces mp3 frames that can be concatenated into a file.
const DefaultOutputFormat = "mp3_44100_128"

func BuildURL(cfg ConnectConfig) (string, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL()
	}
	base = strings.TrimRight(base, "/")

	u, err := url.Parse(base + "/v1/text-to-speech/" + url.PathEscape(cfg.VoiceID) + "/multi-stream-input")
	if err != nil {
		return "", err
	}

	q := u.Query()
	setIf(q, "model_id", cfg.ModelID)
	setIf(q, "language_code", cfg.LanguageCode)
	setIf(q, "output_format", cfg.OutputFormat)
	if cfg.InactivityTimeout != nil {
		q.Set("inactivity_timeout", strconv.Itoa(*cfg.InactivityTimeout))
	}
	if cfg.AutoMode != nil {
		q.Set("auto_mode", strconv.FormatBool(*cfg.AutoMode))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
