package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/models"
)

// ListComments handles GET /api/comments, newest first, optionally
// narrowed to one defect with ?defect=.
func ListComments(c *fiber.Ctx) error {
	var defectID *uuid.UUID
	if raw := c.Query("defect"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid defect id"})
		}
		defectID = &id
	}

	comments, err := database.ListComments(defectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(comments)
}

type createCommentRequest struct {
	Defect string `json:"defect"`
	Text   string `json:"text"`
}

// CreateComment handles POST /api/comments. The author is always the
// actor; an author field in the body is ignored.
func CreateComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Text is required"})
	}

	defectID, err := uuid.Parse(req.Defect)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid defect id"})
	}
	if _, err := database.GetDefectByID(defectID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Defect not found"})
	}

	comment := models.Comment{
		DefectID: defectID,
		AuthorID: actor(c).ID,
		Text:     req.Text,
	}
	if err := database.CreateComment(&comment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create comment"})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
