package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/internal/util"
	"github.com/kirnik55/building-app/models"
	"github.com/kirnik55/building-app/routes"
	"github.com/kirnik55/building-app/storage"
)

const testSecret = "test-secret"

// newTestApp wires the full HTTP surface against a fresh in-memory
// sqlite database and a temp upload dir.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	database.DB = db
	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	if err := storage.Init(t.TempDir()); err != nil {
		t.Fatalf("init storage: %v", err)
	}

	app := fiber.New()
	routes.SetupRoutes(app, util.Config{
		AccessTokenSecret:      testSecret,
		RefreshTokenSecret:     testSecret,
		AccessTokenExpiryHour:  1,
		RefreshTokenExpiryHour: 2,
	})
	return app
}

func createUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		Name:         email,
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := database.CreateUser(user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func databaseSave(user *models.User) error {
	return database.DB.Save(user).Error
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := util.CreateAccessToken(user, testSecret, 1)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return token
}

// doJSON fires a request at the app with an optional bearer token and
// JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d (body: %s)", resp.StatusCode, want, body)
	}
}

type defectBody struct {
	ID          string  `json:"id"`
	Project     string  `json:"project"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Assignee    *string `json:"assignee"`
	CreatedBy   string  `json:"created_by"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type defectListBody struct {
	Count   int64        `json:"count"`
	Results []defectBody `json:"results"`
}
