package i18n

import "strings"

// Language is the tag of a supported response language.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// Default is used whenever a language cannot be resolved.
const Default = English

// Supported lists the languages in display order.
func Supported() []Language {
	return []Language{English, French}
}

// ParseLanguage resolves a tag ("fr"), display name ("Français") or flag label
// ("🇫🇷 Français"). Anything unknown resolves to English.
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return Default
	case s == "fr", strings.Contains(s, "français"), strings.Contains(s, "francais"), strings.Contains(s, "french"):
		return French
	default:
		return English
	}
}

// DisplayName is the language name the model is instructed to answer in.
func (l Language) DisplayName() string {
	if l == French {
		return "Français"
	}
	return "English"
}

// Label is the dropdown label shown by the front end.
func (l Language) Label() string {
	if l == French {
		return "🇫🇷 Français"
	}
	return "🇬🇧 English"
}

// SpeechLocale maps the language to the locale passed to speech synthesis.
func (l Language) SpeechLocale() string {
	switch l {
	case French:
		return "fr"
	default:
		return "en"
	}
}
