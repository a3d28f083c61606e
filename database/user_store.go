package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kirnik55/building-app/domain"
	"github.com/kirnik55/building-app/models"
)

// FindUserByEmail retrieves a user by login email.
func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID retrieves a user by primary key.
func FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser saves a new user record. A unique violation on the email
// column comes back as domain.ErrEmailTaken, so two concurrent creates
// with the same email cannot both succeed.
func CreateUser(user *models.User) error {
	if err := DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

// ListUsers returns users newest-created first. An unknown role value in
// the filter means no filter at all, not an error.
func ListUsers(roleFilter string) ([]models.User, error) {
	q := DB.Order("created_at DESC")
	if role := models.Role(roleFilter); role.Valid() {
		q = q.Where("role = ?", role)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user account. Deletion is blocked while the user
// is the creator of any defect; defects merely assigned to the user get
// their assignee cleared first.
func DeleteUser(id uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var created int64
		if err := tx.Model(&models.Defect{}).Where("created_by_id = ?", id).Count(&created).Error; err != nil {
			return err
		}
		if created > 0 {
			return domain.ErrUserHasDefects
		}
		if err := tx.Model(&models.Defect{}).Where("assignee_id = ?", id).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
