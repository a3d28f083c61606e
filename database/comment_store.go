package database

import (
	"github.com/google/uuid"

	"github.com/kirnik55/building-app/models"
)

// CreateComment saves a new comment record.
func CreateComment(comment *models.Comment) error {
	return DB.Create(comment).Error
}

// ListComments returns comments newest first, optionally for one defect.
func ListComments(defectID *uuid.UUID) ([]models.Comment, error) {
	q := DB.Order("created_at DESC")
	if defectID != nil {
		q = q.Where("defect_id = ?", *defectID)
	}
	var comments []models.Comment
	if err := q.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
