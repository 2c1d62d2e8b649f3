package models

import "time"

// ConversationResponse describes a stored conversation in API listings.
type ConversationResponse struct {
	ConversationID string    `json:"conversation_id"`
	Language       string    `json:"language"`
	TurnCount      int       `json:"turn_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RecommendationResponse is returned by the policy finder endpoint.
type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
	Prompt         string `json:"prompt,omitempty"`
}
