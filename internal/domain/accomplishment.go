package domain

import "time"

type Accomplishment struct {
	AccomplishmentID string    `json:"id" dynamodbav:"accomplishment_id"`
	Title            string    `json:"title" dynamodbav:"title"`
	Description      string    `json:"description" dynamodbav:"description"`
	PhotoFileIDs     []string  `json:"photo_file_ids,omitempty" dynamodbav:"photo_file_ids"`
	CompletedAt      time.Time `json:"completed_at" dynamodbav:"completed_at"`
	PostedBy         string    `json:"posted_by" dynamodbav:"posted_by"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateAccomplishmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	CompletedAt string `json:"completedAt" validate:"required"` // YYYY-MM-DD
}

type UpdateAccomplishmentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}
