package domain

import "time"

type File struct {
	FileID      string    `json:"id" dynamodbav:"file_id"`
	Key         string    `json:"key" dynamodbav:"key"`
	Name        string    `json:"name" dynamodbav:"name"`
	Size        int64     `json:"size" dynamodbav:"size"`
	ContentType string    `json:"content_type" dynamodbav:"content_type"`
	Hash        string    `json:"hash" dynamodbav:"hash"`
	OwnerID     string    `json:"owner_id" dynamodbav:"owner_id"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}
