package domain

import "time"

// RiceSchedule is one rice-distribution run for a barangay.
type RiceSchedule struct {
	ScheduleID   string    `json:"id" dynamodbav:"schedule_id"`
	Barangay     string    `json:"barangay" dynamodbav:"barangay"`
	Location     string    `json:"location" dynamodbav:"location"`
	Date         time.Time `json:"date" dynamodbav:"date"`
	KilosPerHead float64   `json:"kilos_per_head" dynamodbav:"kilos_per_head"`
	Notes        string    `json:"notes,omitempty" dynamodbav:"notes"`
	SMSNotified  bool      `json:"sms_notified" dynamodbav:"sms_notified"`
	CreatedBy    string    `json:"created_by" dynamodbav:"created_by"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// RiceClaim records a beneficiary collecting their allocation on a schedule.
type RiceClaim struct {
	ClaimID       string    `json:"id" dynamodbav:"claim_id"`
	ScheduleID    string    `json:"schedule_id" dynamodbav:"schedule_id"`
	BeneficiaryID string    `json:"beneficiary_id" dynamodbav:"beneficiary_id"`
	Kilos         float64   `json:"kilos" dynamodbav:"kilos"`
	RecordedBy    string    `json:"recorded_by" dynamodbav:"recorded_by"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateRiceScheduleRequest struct {
	Barangay     string  `json:"barangay" validate:"required,barangay"`
	Location     string  `json:"location" validate:"required"`
	Date         string  `json:"date" validate:"required"` // YYYY-MM-DD
	KilosPerHead float64 `json:"kilosPerHead" validate:"required,gt=0"`
	Notes        string  `json:"notes"`
}

type RecordRiceClaimRequest struct {
	BeneficiaryID string  `json:"beneficiaryId" validate:"required"`
	Kilos         float64 `json:"kilos" validate:"required,gt=0"`
}
