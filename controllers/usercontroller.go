package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/domain"
	"github.com/kirnik55/building-app/models"
	"github.com/kirnik55/building-app/policy"
)

type userShort struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
}

// ListUsers handles GET /api/auth/users. Open to any authenticated user;
// an unknown role filter value yields the unfiltered list.
func ListUsers(c *fiber.Ctx) error {
	users, err := database.ListUsers(c.Query("role"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]userShort, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, userShort{
			ID:       u.ID,
			Email:    u.Email,
			Name:     u.Name,
			FullName: u.FullName(),
			Role:     u.Role,
		})
	}
	return c.JSON(out)
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser handles POST /api/auth/users. Restricted to managers and
// admins; whatever role the request asks for, the account is stored as
// an engineer.
func CreateUser(c *fiber.Ctx) error {
	if !policy.CanCreateUser(actor(c).Role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient role"})
	}

	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}
	if len([]rune(req.Password)) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 6 characters"})
	}

	// Check if email already exists
	if _, err := database.FindUserByEmail(req.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	// Role is forced: peer creation only ever mints engineers.
	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         models.RoleEngineer,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := database.CreateUser(&user); err != nil {
		// The pre-check above can lose a race with a concurrent create;
		// the unique index is the authority.
		if errors.Is(err, domain.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	if req.Role != "" && req.Role != string(models.RoleEngineer) {
		log.Printf("User %s requested role %q for new user %s, stored engineer", actor(c).ID, req.Role, user.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// DeleteUser handles DELETE /api/auth/users/:id (admin only). Deletion is
// blocked while the user created any defect; assignee references are
// cleared.
func DeleteUser(c *fiber.Ctx) error {
	if !policy.CanDeleteUser(actor(c).Role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient role"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := database.DeleteUser(id); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserHasDefects):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User has created defects and cannot be deleted"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
