package ads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"speedlist-backend/internal/aivalidate"
	"speedlist-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("Ad not found")
	ErrNoEditsLeft  = errors.New("No remaining edits for this ad")
	ErrNothingToSet = errors.New("No editable fields in request")
)

// Service encapsulates ad persistence and search.
type Service struct {
	DB *gorm.DB
}

// CreateFromDraft persists an accepted ListingDraft as a new, unapproved ad.
type CreateFromDraftInput struct {
	Draft    aivalidate.ListingDraft
	Images   []string
	Language string
	UserID   *uuid.UUID
}

func (s *Service) CreateFromDraft(ctx context.Context, in CreateFromDraftInput) (*domain.Ad, error) {
	imgs, err := json.Marshal(in.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}
	ad := &domain.Ad{
		UserID:       in.UserID,
		Title:        in.Draft.Title,
		Description:  in.Draft.Description,
		Category:     in.Draft.Category,
		Location:     in.Draft.Location,
		Price:        in.Draft.Price,
		ContactPhone: in.Draft.ContactPhone,
		ContactEmail: in.Draft.ContactEmail,
		Visits:       in.Draft.Visits,
		Images:       datatypes.JSON(imgs),
		Language:     in.Language,
		Approved:     false,
		Active:       true,
	}
	if err := s.DB.WithContext(ctx).Create(ad).Error; err != nil {
		return nil, fmt.Errorf("Failed to create ad: %v", err)
	}
	return ad, nil
}

// GetByID fetches one ad and bumps its visit counter.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	var ad domain.Ad
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&ad).UpdateColumn("visits", gorm.Expr("visits + 1")).Error; err != nil {
		return nil, err
	}
	ad.Visits++
	return &ad, nil
}

// ListLatest returns the newest approved, active ads.
func (s *Service) ListLatest(ctx context.Context, limit int) ([]domain.Ad, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var out []domain.Ad
	err := s.DB.WithContext(ctx).
		Where("approved = ? AND active = ?", true, true).
		Order("created_at DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search applies sanitized filters against approved, active ads. Keywords
// match title and description by substring; category and location match by
// substring too (the LLM phrases both freely). Nil price bounds mean no
// bound; an inverted range simply matches nothing.
func (s *Service) Search(ctx context.Context, f aivalidate.SearchFilters) ([]domain.Ad, error) {
	q := s.DB.WithContext(ctx).Where("approved = ? AND active = ?", true, true)

	if f.Keywords != "" {
		kw := "%" + f.Keywords + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", kw, kw)
	}
	if f.Category != "" {
		q = q.Where("LOWER(category) LIKE LOWER(?)", "%"+f.Category+"%")
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE LOWER(?)", "%"+f.Location+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var out []domain.Ad
	if err := q.Order("created_at DESC").Limit(100).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateInput carries the user-editable fields of an ad; nil means "leave".
type UpdateInput struct {
	Title        *string
	Description  *string
	Category     *string
	Location     *string
	Price        *float64
	PriceSet     bool // distinguishes "clear price" from "leave price"
	ContactPhone *string
	ContactEmail *string
}

// Update applies a partial edit, spending one remaining edit. It refuses
// when the edit budget is exhausted.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Ad, error) {
	var ad domain.Ad
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ad.RemainingEdits <= 0 {
		return nil, ErrNoEditsLeft
	}

	updates := map[string]any{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.PriceSet {
		updates["price"] = in.Price
	}
	if in.ContactPhone != nil {
		updates["contact_phone"] = *in.ContactPhone
	}
	if in.ContactEmail != nil {
		updates["contact_email"] = *in.ContactEmail
	}
	if len(updates) == 0 {
		return nil, ErrNothingToSet
	}
	updates["remaining_edits"] = ad.RemainingEdits - 1

	if err := s.DB.WithContext(ctx).Model(&ad).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// Delete removes an ad permanently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Ad{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetApproved flips moderation state. Rejecting also deactivates.
func (s *Service) SetApproved(ctx context.Context, id uuid.UUID, approved bool) (*domain.Ad, error) {
	var ad domain.Ad
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	updates := map[string]any{"approved": approved}
	if !approved {
		updates["active"] = false
	}
	if err := s.DB.WithContext(ctx).Model(&ad).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// ListPending returns ads awaiting moderation, oldest first.
func (s *Service) ListPending(ctx context.Context) ([]domain.Ad, error) {
	var out []domain.Ad
	err := s.DB.WithContext(ctx).
		Where("approved = ? AND active = ?", false, true).
		Order("created_at ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
