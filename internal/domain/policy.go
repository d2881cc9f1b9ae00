package domain

import "time"

// Policy types.
const (
	PolicyOrdinance  = "ordinance"
	PolicyResolution = "resolution"
)

type Policy struct {
	PolicyID  string    `json:"id" dynamodbav:"policy_id"`
	Type      string    `json:"type" dynamodbav:"type"`
	Number    string    `json:"number" dynamodbav:"number"`
	Title     string    `json:"title" dynamodbav:"title"`
	Summary   string    `json:"summary" dynamodbav:"summary"`
	FullText  string    `json:"full_text" dynamodbav:"full_text"`
	EnactedAt time.Time `json:"enacted_at" dynamodbav:"enacted_at"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreatePolicyRequest struct {
	Type      string `json:"type" validate:"required,oneof=ordinance resolution"`
	Number    string `json:"number" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Summary   string `json:"summary"`
	FullText  string `json:"fullText" validate:"required"`
	EnactedAt string `json:"enactedAt" validate:"required"` // YYYY-MM-DD
}

type UpdatePolicyRequest struct {
	Number   *string `json:"number"`
	Title    *string `json:"title"`
	Summary  *string `json:"summary"`
	FullText *string `json:"fullText"`
}
