package domain

import "time"

// Solicitation request statuses.
const (
	SolicitationPending  = "pending"
	SolicitationApproved = "approved"
	SolicitationRejected = "rejected"
)

type Solicitation struct {
	SolicitationID string    `json:"id" dynamodbav:"solicitation_id"`
	RequesterID    string    `json:"requester_id" dynamodbav:"requester_id"`
	Organization   string    `json:"organization" dynamodbav:"organization"`
	Purpose        string    `json:"purpose" dynamodbav:"purpose"`
	Amount         float64   `json:"amount" dynamodbav:"amount"`
	DocumentFileID string    `json:"document_file_id,omitempty" dynamodbav:"document_file_id"`
	Status         string    `json:"status" dynamodbav:"status"`
	Remarks        string    `json:"remarks,omitempty" dynamodbav:"remarks"`
	ReviewedBy     string    `json:"reviewed_by,omitempty" dynamodbav:"reviewed_by"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateSolicitationRequest struct {
	Organization string  `json:"organization" validate:"required"`
	Purpose      string  `json:"purpose" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}

type ReviewSolicitationRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected"`
	Remarks string `json:"remarks"`
}
