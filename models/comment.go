package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is an append-only note on a defect. The author is always the
// user who made the request; comments are never edited or deleted on
// their own, they disappear with the defect.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DefectID  uuid.UUID `gorm:"type:uuid;not null;index" json:"defect"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null" json:"author"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
