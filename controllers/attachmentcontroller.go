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

// ListAttachments handles GET /api/attachments, newest first, optionally
// narrowed to one defect with ?defect=.
func ListAttachments(c *fiber.Ctx) error {
	var defectID *uuid.UUID
	if raw := c.Query("defect"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid defect id"})
		}
		defectID = &id
	}

	atts, err := database.ListAttachments(defectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(atts)
}

// CreateAttachment handles POST /api/attachments (multipart). The
// display filename falls back to the upload's original name and the size
// is taken from the stored bytes.
func CreateAttachment(c *fiber.Ctx) error {
	defectID, err := uuid.Parse(c.FormValue("defect"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid defect id"})
	}
	if _, err := database.GetDefectByID(defectID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Defect not found"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	storedName, size, err := storage.Save(fh)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store file"})
	}

	filename := c.FormValue("filename")
	if filename == "" {
		filename = fh.Filename
	}

	att := models.Attachment{
		DefectID:   defectID,
		StoredName: storedName,
		Filename:   filename,
		SizeBytes:  size,
	}
	if err := database.CreateAttachment(&att); err != nil {
		_ = storage.Remove(storedName)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create attachment"})
	}
	return c.Status(fiber.StatusCreated).JSON(att)
}

// DeleteAttachment handles DELETE /api/attachments/:id.
func DeleteAttachment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attachment not found"})
	}

	att, err := database.FindAttachmentByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attachment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.DeleteAttachment(att.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	_ = storage.Remove(att.StoredName)
	return c.SendStatus(fiber.StatusNoContent)
}
