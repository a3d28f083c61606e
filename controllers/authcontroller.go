package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/internal/util"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login and JWT token creation.
func Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	// Check if user exists
	user, err := database.FindUserByEmail(req.Email)
	if err != nil {
		log.Printf("Login failed for %s: user not found", req.Email)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	if !user.IsActive {
		log.Printf("Login failed for %s: account inactive", req.Email)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	// Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Login failed for %s: invalid password", req.Email)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	access, err := util.CreateAccessToken(user, cfg.AccessTokenSecret, cfg.AccessTokenExpiryHour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	refresh, err := util.CreateRefreshToken(user, cfg.RefreshTokenSecret, cfg.RefreshTokenExpiryHour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"access":  access,
		"refresh": refresh,
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh exchanges a valid refresh token for a new access token.
func Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	tokenType, err := util.ExtractTokenType(req.Refresh, cfg.RefreshTokenSecret)
	if err != nil || tokenType != util.TokenTypeRefresh {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid refresh token",
		})
	}

	userID, err := util.ExtractIDFromToken(req.Refresh, cfg.RefreshTokenSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid refresh token",
		})
	}

	user, err := findUserByIDString(userID)
	if err != nil || !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid refresh token",
		})
	}

	access, err := util.CreateAccessToken(user, cfg.AccessTokenSecret, cfg.AccessTokenExpiryHour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"access": access,
	})
}

// Me returns the calling user's identity and role.
func Me(c *fiber.Ctx) error {
	user := actor(c)
	return c.JSON(fiber.Map{
		"id":    user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
	})
}
