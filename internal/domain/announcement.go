package domain

import "time"

type Announcement struct {
	AnnouncementID string    `json:"id" dynamodbav:"announcement_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Body           string    `json:"body" dynamodbav:"body"`
	ImageFileID    string    `json:"image_file_id,omitempty" dynamodbav:"image_file_id"`
	Published      bool      `json:"published" dynamodbav:"published"`
	SMSNotified    bool      `json:"sms_notified" dynamodbav:"sms_notified"`
	PostedBy       string    `json:"posted_by" dynamodbav:"posted_by"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateAnnouncementRequest struct {
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
	NotifySMS bool   `json:"notifySMS"`
}

type UpdateAnnouncementRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}
