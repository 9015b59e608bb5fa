package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is a user complaint against an ad, reviewed from the admin console.
type Report struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AdID      uuid.UUID `gorm:"column:ad_id;type:uuid;not null;index" json:"ad_id"`
	Reason    string    `gorm:"column:reason;not null" json:"reason"`
	Details   string    `gorm:"column:details" json:"details"`
	Resolved  bool      `gorm:"column:resolved;default:false" json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
