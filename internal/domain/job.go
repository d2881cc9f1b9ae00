package domain

import "time"

// Job posting statuses.
const (
	JobOpen   = "open"
	JobClosed = "closed"
)

// Job application statuses.
const (
	ApplicationPending   = "pending"
	ApplicationInterview = "interview"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
)

type Job struct {
	JobID        string    `json:"id" dynamodbav:"job_id"`
	Title        string    `json:"title" dynamodbav:"title"`
	Description  string    `json:"description" dynamodbav:"description"`
	Requirements string    `json:"requirements" dynamodbav:"requirements"`
	SlotCount    int       `json:"slot_count" dynamodbav:"slot_count"`
	Status       string    `json:"status" dynamodbav:"status"`
	PostedBy     string    `json:"posted_by" dynamodbav:"posted_by"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

type JobApplication struct {
	ApplicationID string    `json:"id" dynamodbav:"application_id"`
	JobID         string    `json:"job_id" dynamodbav:"job_id"`
	ApplicantID   string    `json:"applicant_id" dynamodbav:"applicant_id"`
	FullName      string    `json:"full_name" dynamodbav:"full_name"`
	ContactNumber string    `json:"contact_number" dynamodbav:"contact_number"`
	ResumeFileID  string    `json:"resume_file_id" dynamodbav:"resume_file_id"`
	Status        string    `json:"status" dynamodbav:"status"`
	Remarks       string    `json:"remarks,omitempty" dynamodbav:"remarks"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateJobRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements"`
	SlotCount    int    `json:"slotCount" validate:"min=1"`
}

type UpdateJobRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	SlotCount    *int    `json:"slotCount" validate:"omitempty,min=1"`
	Status       *string `json:"status" validate:"omitempty,oneof=open closed"`
}

type ReviewApplicationRequest struct {
	Status  string `json:"status" validate:"required,oneof=pending interview accepted rejected"`
	Remarks string `json:"remarks"`
}
