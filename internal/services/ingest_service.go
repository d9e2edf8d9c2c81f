package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	apperrors "findash/internal/errors"
	"findash/internal/ingest"
	"findash/internal/logger"
	"findash/internal/models"
	"findash/internal/spreadsheet"
)

// IngestConfig is the deployment configuration of the ingest pipeline.
type IngestConfig struct {
	// AllowedExtensions are lowercase file extensions without the dot.
	AllowedExtensions []string
	// MaxReportedErrors caps the row errors returned to the caller.
	MaxReportedErrors int
}

// ingestService runs uploads through reader, validator and writer.
type ingestService struct {
	store     RecordStore
	uploads   UploadLogServicer
	validator *ingest.Validator
	config    IngestConfig
}

// NewIngestService creates a new IngestServicer. The month representation
// follows the store's write policy.
func NewIngestService(store RecordStore, uploads UploadLogServicer, config IngestConfig) IngestServicer {
	return &ingestService{
		store:     store,
		uploads:   uploads,
		validator: ingest.NewValidator(store.Policy().MonthMode()),
		config:    config,
	}
}

// Ingest validates and stores one uploaded spreadsheet. File, column, user
// and store failures abort with no write; rejected rows are collected and
// the remaining rows are committed together.
func (s *ingestService) Ingest(ctx context.Context, req UploadRequest) (*IngestSummary, error) {
	if req.File == nil || strings.TrimSpace(req.Filename) == "" {
		return nil, apperrors.ErrNoFile
	}
	if !s.allowedExtension(req.Filename) {
		return nil, apperrors.ErrBadExtension
	}

	sheet, err := spreadsheet.Open(req.File)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnreadableFile, err)
	}
	defer sheet.Close()

	if missing := s.validator.MissingColumns(sheet.Header()); len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrMissingColumns,
			fmt.Sprintf("%s (missing: %s)", apperrors.ErrMissingColumns.Message, strings.Join(missing, ", ")))
	}

	var (
		summary  *IngestSummary
		verified bool
		rowErrs  []*ingest.RowError
	)
	err = s.store.WithWriter(ctx, func(w RecordWriter) error {
		if _, err := w.LookupUser(req.UserID); err != nil {
			return err
		}
		verified = true

		var records []ingest.Record
		for sheet.Next() {
			if err := ctx.Err(); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			row := sheet.Row()
			record, rowErr := s.validator.Validate(row.Number, row.Values)
			if rowErr != nil {
				rowErrs = append(rowErrs, rowErr)
				continue
			}
			records = append(records, record)
		}
		if err := sheet.Err(); err != nil {
			return apperrors.Wrap(apperrors.ErrUnreadableFile, err)
		}

		if err := ctx.Err(); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Nothing valid to store: leave the year as it is, even under replace.
		written := 0
		if len(records) > 0 {
			n, err := w.Write(req.UserID, req.Year, records)
			if err != nil {
				return err
			}
			written = n
		}

		summary = s.summarize(req.Year, written, rowErrs)
		return nil
	})

	if verified {
		s.recordUpload(ctx, req, summary, len(rowErrs))
	}
	if err != nil {
		return nil, err
	}

	logger.With("user_id", req.UserID, "year", req.Year, "policy", s.store.Policy()).
		Infow("financial records uploaded",
			"records", summary.RecordsCount,
			"errors", summary.ErrorCount,
		)
	return summary, nil
}

func (s *ingestService) allowedExtension(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range s.config.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *ingestService) summarize(year, written int, rowErrs []*ingest.RowError) *IngestSummary {
	if len(rowErrs) == 0 {
		return &IngestSummary{
			Status:       IngestStatusSuccess,
			Message:      fmt.Sprintf("Successfully uploaded %d records", written),
			RecordsCount: written,
		}
	}

	limit := len(rowErrs)
	if limit > s.config.MaxReportedErrors {
		limit = s.config.MaxReportedErrors
	}
	reported := make([]string, limit)
	for i := range reported {
		reported[i] = rowErrs[i].Error()
	}

	message := fmt.Sprintf("Uploaded %d records with %d errors", written, len(rowErrs))
	if written == 0 && s.store.Policy() == ingest.PolicyReplace {
		message += fmt.Sprintf("; existing records for %d were left unchanged", year)
	}

	return &IngestSummary{
		Status:       IngestStatusPartial,
		Message:      message,
		RecordsCount: written,
		ErrorCount:   len(rowErrs),
		Errors:       reported,
	}
}

func (s *ingestService) recordUpload(ctx context.Context, req UploadRequest, summary *IngestSummary, errorCount int) {
	entry := &models.UploadLog{
		UserID:     req.UserID,
		Year:       req.Year,
		Filename:   truncateRunes(filepath.Base(req.Filename), models.MaxFilenameLength),
		Policy:     string(s.store.Policy()),
		ErrorCount: errorCount,
		Status:     models.UploadStatusFailed,
	}
	if summary != nil {
		entry.RecordsCount = summary.RecordsCount
		entry.Status = models.UploadStatusSuccess
		if summary.Partial() {
			entry.Status = models.UploadStatusPartial
		}
	}
	s.uploads.Record(ctx, entry)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
