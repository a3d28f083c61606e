package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kirnik55/building-app/domain"
	"github.com/kirnik55/building-app/models"
)

// CreateProject saves a new project record.
func CreateProject(project *models.Project) error {
	return DB.Create(project).Error
}

// FindProjectByID retrieves a project by primary key.
func FindProjectByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListProjects returns all projects, newest-created first.
func ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := DB.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// DeleteProject removes a project together with its defects and their
// comments and attachments. Returns the stored blob names of the removed
// attachments so the caller can clean up the files.
func DeleteProject(id uuid.UUID) ([]string, error) {
	var blobs []string
	err := DB.Transaction(func(tx *gorm.DB) error {
		var defectIDs []uuid.UUID
		if err := tx.Model(&models.Defect{}).Where("project_id = ?", id).
			Pluck("id", &defectIDs).Error; err != nil {
			return err
		}
		if len(defectIDs) > 0 {
			if err := tx.Model(&models.Attachment{}).Where("defect_id IN ?", defectIDs).
				Pluck("stored_name", &blobs).Error; err != nil {
				return err
			}
			if err := tx.Where("defect_id IN ?", defectIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("defect_id IN ?", defectIDs).Delete(&models.Attachment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Defect{}).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blobs, nil
}
