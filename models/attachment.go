package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is a file uploaded against a defect. StoredName is the name
// of the blob on disk; Filename keeps the original name for display.
type Attachment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DefectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"defect"`
	StoredName string    `gorm:"size:255;not null" json:"file"`
	Filename   string    `gorm:"size:255" json:"filename"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
