package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "findash/internal/errors"
	"findash/internal/logger"
	"findash/internal/models"
	"findash/internal/pagination"
)

// uploadLogService records and lists ingest attempts.
type uploadLogService struct {
	db    *gorm.DB
	users UserServicer
}

// NewUploadLogService creates a new UploadLogServicer.
func NewUploadLogService(db *gorm.DB, users UserServicer) UploadLogServicer {
	return &uploadLogService{db: db, users: users}
}

// Record stores an ingest attempt. Errors are logged but never propagate
// to avoid disrupting the upload itself.
func (s *uploadLogService) Record(ctx context.Context, entry *models.UploadLog) {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create upload log entry",
			"error", err,
			"user_id", entry.UserID,
			"year", entry.Year,
			"filename", entry.Filename,
			"status", entry.Status,
		)
	}
}

// GetUserUploads returns a user's ingest history, newest first.
func (s *uploadLogService) GetUserUploads(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.UploadLog], error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.UploadLog{}).Where("user_id = ?", userID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.UploadLog
	if err := base().Scopes(pagination.Paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(logs, page, total)
	return &resp, nil
}
