// Package recommend produces one-shot insurance policy recommendations.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/models"
)

// Request describes the policy the client is looking for. Every field is
// optional.
type Request struct {
	PolicyDetails string        `json:"policy_details"`
	InsuranceType string        `json:"insurance_type"`
	Coverage      string        `json:"coverage"`
	Budget        float64       `json:"budget"`
	Currency      string        `json:"currency"`
	PolicyTerm    string        `json:"policy_term"`
	NumPeople     int           `json:"num_people"`
	Language      i18n.Language `json:"language"`
}

// Options are the completion parameters of a recommendation.
type Options struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// DefaultOptions returns the recommendation completion settings.
func DefaultOptions() Options {
	return Options{
		Model:       "llama3-70b-8192",
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   2048,
	}
}

// BuildPrompt renders the user message for req. Blank strings and a zero
// budget are left out; the insured count only appears above one.
func BuildPrompt(req Request) string {
	parts := []string{"Generate an insurance policy recommendation."}
	if present(req.InsuranceType) {
		parts = append(parts, fmt.Sprintf("Insurance Type: %s.", req.InsuranceType))
	}
	if present(req.Coverage) {
		parts = append(parts, fmt.Sprintf("Coverage Amount: %s.", req.Coverage))
	}
	if present(req.PolicyDetails) {
		parts = append(parts, fmt.Sprintf("Policy Details: %s.", req.PolicyDetails))
	}
	if req.Budget != 0 {
		parts = append(parts, fmt.Sprintf("Budget: %s %s.", strconv.FormatFloat(req.Budget, 'f', -1, 64), req.Currency))
	}
	if present(req.PolicyTerm) {
		parts = append(parts, fmt.Sprintf("Policy Term: %s.", req.PolicyTerm))
	}
	if req.NumPeople > 1 {
		parts = append(parts, fmt.Sprintf("Number of Insured Individuals: %d.", req.NumPeople))
	}
	return strings.Join(parts, " ")
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// SystemPrompt is the advisor persona for recommendations.
func SystemPrompt(lang i18n.Language) string {
	name := lang.DisplayName()
	return "Your name is Harvey Specter. You are an expert insurance advisor who ONLY provides information about insurance. " +
		"Provide a structured recommendation for an insurance policy based on the user's requirements. " +
		"Include details such as policy benefits, potential risks, and any clarifying questions that might help " +
		"the client understand the policy. If asked about non-insurance topics, politely decline and " +
		"redirect the conversation to insurance matters. " +
		fmt.Sprintf("IMPORTANT: You must ALWAYS respond ONLY in %s regardless of the language used in the user's input. ", name) +
		fmt.Sprintf("Even if the user asks you in a different language, you must respond only in %s.", name)
}

// Generator asks a completion backend for a recommendation.
type Generator struct {
	Model   models.Model
	Options Options
}

// Generate returns the recommendation text, or the localized error message
// when the backend fails.
func (g *Generator) Generate(ctx context.Context, req Request) string {
	lang := req.Language
	if lang == "" {
		lang = i18n.Default
	}

	text, err := g.generate(ctx, req, lang)
	if err != nil {
		return i18n.Lookup(lang).Format(i18n.KeyRecommendationError, i18n.Truncate(err.Error(), 100))
	}
	return text
}

func (g *Generator) generate(ctx context.Context, req Request, lang i18n.Language) (string, error) {
	if g.Model == nil {
		return "", errors.New("no completion backend configured")
	}
	opts := g.Options
	if opts == (Options{}) {
		opts = DefaultOptions()
	}

	resp, err := g.Model.Model_Request(ctx, models.Model_Request{
		Model: opts.Model,
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: SystemPrompt(lang)},
			{Role: models.RoleUser, Content: BuildPrompt(req)},
		},
		Temperature: opts.Temperature,
		Top_P:       opts.TopP,
		Max_Tokens:  opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
