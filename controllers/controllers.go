// Package controllers holds the fiber handlers for the HTTP surface.
// Authorization decisions are never made here directly; every mutating
// handler asks the policy package before touching the store.
package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/internal/util"
	"github.com/kirnik55/building-app/middleware"
	"github.com/kirnik55/building-app/models"
)

var cfg util.Config

// Init hands the token configuration to the auth handlers.
func Init(c util.Config) {
	cfg = c
}

// actor returns the authenticated user placed in locals by the auth
// middleware.
func actor(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(middleware.UserKey).(*models.User)
	return u
}

func findUserByIDString(id string) (*models.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return database.FindUserByID(parsed)
}
