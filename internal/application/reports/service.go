package reports

import (
	"context"
	"errors"

	"speedlist-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAdNotFound     = errors.New("Ad not found")
	ErrReportNotFound = errors.New("Report not found")
	ErrEmptyReason    = errors.New("Reason is required")
)

// Service encapsulates ad reports.
type Service struct {
	DB *gorm.DB
}

// Create files a report against an existing ad.
func (s *Service) Create(ctx context.Context, adID uuid.UUID, reason, details string) (*domain.Report, error) {
	if reason == "" {
		return nil, ErrEmptyReason
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Ad{}).Where("id = ?", adID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrAdNotFound
	}

	report := &domain.Report{AdID: adID, Reason: reason, Details: details}
	if err := s.DB.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// ListOpen returns unresolved reports, oldest first.
func (s *Service) ListOpen(ctx context.Context) ([]domain.Report, error) {
	var out []domain.Report
	err := s.DB.WithContext(ctx).Where("resolved = ?", false).Order("created_at ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve closes a report.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&report).Update("resolved", true).Error; err != nil {
		return nil, err
	}
	report.Resolved = true
	return &report, nil
}
