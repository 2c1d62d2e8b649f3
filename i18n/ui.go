package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCurrency is returned for currency codes outside the budget table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency describes the premium budget range offered for a currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

var currencies = []Currency{
	{Code: "USD", Symbol: "$", Min: 50, Max: 2000},
	{Code: "EUR", Symbol: "€", Min: 50, Max: 1800},
	{Code: "CAD", Symbol: "CA$", Min: 50, Max: 1600},
}

// DefaultCurrency is preselected in the policy finder.
const DefaultCurrency = "USD"

// Currencies returns every supported currency.
func Currencies() []Currency {
	return append([]Currency(nil), currencies...)
}

// LookupCurrency finds a currency by ISO code, case-insensitive.
func LookupCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range currencies {
		if c.Code == code {
			return c, nil
		}
	}
	return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
}

// BudgetSlider is the localized configuration of the premium budget input.
type BudgetSlider struct {
	Label    string `json:"label"`
	Currency string `json:"currency"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
}

// NewBudgetSlider builds the budget input for a currency in the given language.
func NewBudgetSlider(code string, lang Language) (BudgetSlider, error) {
	cur, err := LookupCurrency(code)
	if err != nil {
		return BudgetSlider{}, err
	}
	return BudgetSlider{
		Label:    Lookup(lang).Format("budget_label", cur.Symbol),
		Currency: cur.Code,
		Min:      cur.Min,
		Max:      cur.Max,
	}, nil
}

var uiLabelKeys = []string{
	"chat_tab",
	"policy_tab",
	"insurance_title",
	"insurance_subtitle",
	"policy_title",
	"policy_subtitle",
	"placeholder_text",
	"tts_label",
	"examples_label",
	"policy_details_label",
	"policy_details_placeholder",
	"insurance_type_label",
	"coverage_label",
	"coverage_placeholder",
	"currency_label",
	"people_label",
	"term_label",
	"term_placeholder",
	"generate_btn",
	"recommendation_label",
	KeyGeneratingText,
}

// UI is everything a front end needs to render itself in one language.
type UI struct {
	Language       Language          `json:"language"`
	LanguageLabel  string            `json:"language_label"`
	Labels         map[string]string `json:"labels"`
	InsuranceTypes []string          `json:"insurance_types"`
	Examples       []string          `json:"examples"`
	Currencies     []Currency        `json:"currencies"`
	Budget         BudgetSlider      `json:"budget"`
}

// UILabels assembles the labels for lang. The budget input starts in the
// default currency.
func UILabels(lang Language) UI {
	c := Lookup(lang)
	labels := make(map[string]string, len(uiLabelKeys))
	for _, k := range uiLabelKeys {
		labels[k] = c.Get(k)
	}
	budget, _ := NewBudgetSlider(DefaultCurrency, c.Language())
	return UI{
		Language:       c.Language(),
		LanguageLabel:  c.Language().Label(),
		Labels:         labels,
		InsuranceTypes: c.InsuranceTypes(),
		Examples:       c.Examples(),
		Currencies:     Currencies(),
		Budget:         budget,
	}
}
