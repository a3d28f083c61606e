package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/domain"
	"github.com/kirnik55/building-app/internal/util"
)

// UserKey is the fiber locals key the authenticated *models.User is
// stored under for handlers downstream.
const UserKey = "x-user"

func JwtAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Missing authorization header"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Authorization header format must be Bearer {token}"})
		}

		token := parts[1]
		authorized, err := util.IsAuthorized(token, secret)
		if err != nil || !authorized {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Not authorized or invalid token"})
		}

		// Access and refresh tokens share the signing secret; only the
		// token_type claim tells them apart.
		tokenType, err := util.ExtractTokenType(token, secret)
		if err != nil || tokenType != util.TokenTypeAccess {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Not authorized or invalid token"})
		}

		userID, err := util.ExtractIDFromToken(token, secret)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Could not extract user from token"})
		}

		id, err := uuid.Parse(userID)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "Could not extract user from token"})
		}

		// Resolve the actor fresh so a role change or deactivation takes
		// effect before the token expires.
		user, err := database.FindUserByID(id)
		if err != nil || !user.IsActive {
			return c.Status(http.StatusUnauthorized).JSON(domain.ErrorResponse{Message: "User not found or inactive"})
		}

		c.Locals("x-user-id", userID)
		c.Locals(UserKey, user)

		return c.Next()
	}
}
