package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/domain"
	"github.com/kirnik55/building-app/models"
	"github.com/kirnik55/building-app/storage"
)

// ListProjects handles GET /api/projects.
func ListProjects(c *fiber.Ctx) error {
	projects, err := database.ListProjects()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(projects)
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Customer    string `json:"customer"`
	Description string `json:"description"`
}

// CreateProject handles POST /api/projects.
func CreateProject(c *fiber.Ctx) error {
	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	project := models.Project{
		Name:        req.Name,
		Customer:    req.Customer,
		Description: req.Description,
	}
	if err := database.CreateProject(&project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create project"})
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject handles GET /api/projects/:id.
func GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}
	project, err := database.FindProjectByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}
	return c.JSON(project)
}

// DeleteProject handles DELETE /api/projects/:id. Defects of the project
// go with it, along with their comments and attachment blobs.
func DeleteProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	blobs, err := database.DeleteProject(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for _, name := range blobs {
		_ = storage.Remove(name)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
