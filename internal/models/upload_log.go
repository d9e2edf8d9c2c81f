package models

// UploadStatus is the outcome of one ingest attempt.
type UploadStatus string

const (
	UploadStatusSuccess UploadStatus = "success"
	UploadStatusPartial UploadStatus = "partial"
	UploadStatusFailed  UploadStatus = "failed"
)

// MaxFilenameLength is the width of upload_logs.filename in characters.
const MaxFilenameLength = 255

// UploadLog records every ingest attempt that reached the store.
type UploadLog struct {
	Base
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	Year         int          `gorm:"not null" json:"year"`
	Filename     string       `gorm:"size:255;not null" json:"filename"`
	Policy       string       `gorm:"size:16;not null" json:"policy"`
	RecordsCount int          `gorm:"not null;default:0" json:"records_count"`
	ErrorCount   int          `gorm:"not null;default:0" json:"error_count"`
	Status       UploadStatus `gorm:"size:16;not null" json:"status"`
}
