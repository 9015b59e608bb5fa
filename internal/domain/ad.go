package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ad is a persisted classified listing. A row starts life as a sanitized
// draft produced from LLM output and is only visible publicly once approved.
type Ad struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID         *uuid.UUID     `gorm:"column:user_id;type:uuid" json:"user_id"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Description    string         `gorm:"column:description;not null" json:"description"`
	Category       string         `gorm:"column:category" json:"category"`
	Subcategory    string         `gorm:"column:subcategory" json:"subcategory"`
	Location       string         `gorm:"column:location" json:"location"`
	Price          *float64       `gorm:"column:price;type:decimal(18,2)" json:"price"`
	ContactPhone   string         `gorm:"column:contact_phone" json:"contact_phone"`
	ContactEmail   string         `gorm:"column:contact_email" json:"contact_email"`
	Visits         int            `gorm:"column:visits;default:0" json:"visits"`
	Images         datatypes.JSON `gorm:"column:images;type:json" json:"images"`
	Tags           datatypes.JSON `gorm:"column:tags;type:json" json:"tags"`
	Language       string         `gorm:"column:language;type:varchar(8)" json:"language"`
	Approved       bool           `gorm:"column:approved;default:false" json:"approved"`
	Active         bool           `gorm:"column:active;default:true" json:"active"`
	RemainingEdits int            `gorm:"column:remaining_edits;default:3" json:"remaining_edits"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Ad) TableName() string {
	return "ads"
}

// BeforeCreate sets the id if not already set (DBs without default uuid).
func (a *Ad) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Images == nil {
		a.Images = datatypes.JSON("[]")
	}
	if a.Tags == nil {
		a.Tags = datatypes.JSON("[]")
	}
	return nil
}
