package domain

import "time"

// Feedback moderation states.
const (
	FeedbackPending  = "pending"
	FeedbackApproved = "approved"
	FeedbackHidden   = "hidden"
)

type Feedback struct {
	FeedbackID string    `json:"id" dynamodbav:"feedback_id"`
	AuthorID   string    `json:"author_id" dynamodbav:"author_id"`
	AuthorName string    `json:"author_name" dynamodbav:"author_name"`
	Subject    string    `json:"subject" dynamodbav:"subject"`
	Message    string    `json:"message" dynamodbav:"message"`
	Status     string    `json:"status" dynamodbav:"status"`
	Reply      string    `json:"reply,omitempty" dynamodbav:"reply"`
	RepliedBy  string    `json:"replied_by,omitempty" dynamodbav:"replied_by"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateFeedbackRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type ModerateFeedbackRequest struct {
	Status string `json:"status" validate:"required,oneof=approved hidden"`
	Reply  string `json:"reply"`
}
