package services

import (
	"context"
	"io"

	"findash/internal/ingest"
	"findash/internal/models"
	"findash/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, name string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// RecordView is one stored month as returned to clients.
type RecordView struct {
	Month  ingest.Month `json:"month"`
	Amount string       `json:"amount"`
}

// YearRecords holds a user's stored records for one year.
type YearRecords struct {
	UserName string       `json:"user_name"`
	Year     int          `json:"year"`
	Records  []RecordView `json:"records"`
}

// FinanceServicer defines the contract for reading stored financial records.
type FinanceServicer interface {
	GetYearRecords(ctx context.Context, userID uint, year int) (*YearRecords, error)
}

// UploadRequest is one spreadsheet submitted for a user and year. File is nil
// when the caller sent no file.
type UploadRequest struct {
	UserID   uint
	Year     int
	Filename string
	File     io.Reader
}

// IngestStatus tells whether every row of an upload was accepted.
type IngestStatus string

const (
	IngestStatusSuccess IngestStatus = "success"
	IngestStatusPartial IngestStatus = "partial"
)

// IngestSummary reports the outcome of an upload.
type IngestSummary struct {
	Status       IngestStatus `json:"status"`
	Message      string       `json:"message"`
	RecordsCount int          `json:"records_count"`
	ErrorCount   int          `json:"error_count"`
	Errors       []string     `json:"errors,omitempty"`
}

// Partial reports whether some rows were rejected.
func (s *IngestSummary) Partial() bool {
	return s.Status == IngestStatusPartial
}

// IngestServicer defines the contract for the spreadsheet ingest pipeline.
type IngestServicer interface {
	Ingest(ctx context.Context, req UploadRequest) (*IngestSummary, error)
}

// RecordWriter persists validated records over a single store connection.
type RecordWriter interface {
	// LookupUser returns ErrUserNotFound for unknown users and
	// ErrStoreUnavailable when the store cannot answer.
	LookupUser(userID uint) (*models.User, error)
	// Write stores records for (userID, year) in one transaction and
	// returns the number of rows accepted.
	Write(userID uint, year int, records []ingest.Record) (int, error)
}

// RecordStore hands out RecordWriters bound to one pooled connection.
type RecordStore interface {
	// WithWriter acquires a connection, calls fn and releases the connection
	// on every exit path.
	WithWriter(ctx context.Context, fn func(w RecordWriter) error) error
	Policy() ingest.Policy
}

// UploadLogServicer defines the contract for the ingest history.
type UploadLogServicer interface {
	Record(ctx context.Context, entry *models.UploadLog)
	GetUserUploads(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.UploadLog], error)
}
