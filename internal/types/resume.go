package types

import (
	"time"

	"github.com/google/uuid"
)

// Resume is an uploaded resume after decoding to plain text.
type Resume struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	UploadDate  time.Time `json:"upload_date"`
}

// ResumeUploadResponse is returned after a successful upload.
type ResumeUploadResponse struct {
	ID         uuid.UUID `json:"id"`
	Message    string    `json:"message"`
	UploadDate time.Time `json:"upload_date"`
}
