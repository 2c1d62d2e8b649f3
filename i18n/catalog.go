// Package i18n holds the localized strings of the advisor. The tables are
// built once at init and never written afterwards, so lookups are safe from
// any goroutine.
package i18n

import "fmt"

// Catalog is a read-only view of one language's strings.
type Catalog struct {
	lang    Language
	strings map[string]string
}

var catalogs map[Language]Catalog

func init() {
	catalogs = map[Language]Catalog{
		English: {lang: English, strings: englishStrings},
		French:  {lang: French, strings: frenchStrings},
	}
}

// Lookup returns the catalog for lang, falling back to English.
func Lookup(lang Language) Catalog {
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return catalogs[Default]
}

// Language reports which language the catalog serves.
func (c Catalog) Language() Language {
	return c.lang
}

// Get returns the raw template for key, or the key itself when unknown.
func (c Catalog) Get(key string) string {
	if s, ok := c.strings[key]; ok {
		return s
	}
	if s, ok := catalogs[Default].strings[key]; ok {
		return s
	}
	return key
}

// Format fills the template for key with args.
func (c Catalog) Format(key string, args ...any) string {
	tmpl := c.Get(key)
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Examples returns a copy of the example prompts for the catalog's language.
func (c Catalog) Examples() []string {
	return append([]string(nil), examplePrompts[c.lang]...)
}

// InsuranceTypes returns a copy of the insurance categories offered in the
// policy finder.
func (c Catalog) InsuranceTypes() []string {
	return append([]string(nil), insuranceTypes[c.lang]...)
}

// Truncate cuts an error description to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
