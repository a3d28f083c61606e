package database

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kirnik55/building-app/models"
)

// setupTestDB points the package-level DB at a fresh in-memory sqlite
// database and migrates the schema.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	DB = db
	if err := Migrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
}

func mustCreateUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		Name:         email,
		Role:         role,
		PasswordHash: "x",
		IsActive:     true,
	}
	if err := CreateUser(user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func mustCreateProject(t *testing.T, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Customer: "customer"}
	if err := CreateProject(project); err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return project
}

func mustCreateDefect(t *testing.T, project *models.Project, creator *models.User, mutate func(*models.Defect)) *models.Defect {
	t.Helper()
	defect := &models.Defect{
		ProjectID:   project.ID,
		Title:       "defect",
		CreatedByID: creator.ID,
	}
	if mutate != nil {
		mutate(defect)
	}
	if err := CreateDefect(defect); err != nil {
		t.Fatalf("create defect: %v", err)
	}
	return defect
}
