package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kirnik55/building-app/domain"
	"github.com/kirnik55/building-app/models"
)

// CreateAttachment saves a new attachment record.
func CreateAttachment(att *models.Attachment) error {
	return DB.Create(att).Error
}

// FindAttachmentByID retrieves an attachment by primary key.
func FindAttachmentByID(id uuid.UUID) (*models.Attachment, error) {
	var att models.Attachment
	if err := DB.First(&att, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &att, nil
}

// ListAttachments returns attachments newest first, optionally for one
// defect.
func ListAttachments(defectID *uuid.UUID) ([]models.Attachment, error) {
	q := DB.Order("uploaded_at DESC")
	if defectID != nil {
		q = q.Where("defect_id = ?", *defectID)
	}
	var atts []models.Attachment
	if err := q.Find(&atts).Error; err != nil {
		return nil, err
	}
	return atts, nil
}

// DeleteAttachment removes an attachment record.
func DeleteAttachment(id uuid.UUID) error {
	res := DB.Delete(&models.Attachment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
