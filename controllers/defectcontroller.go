package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kirnik55/building-app/database"
	"github.com/kirnik55/building-app/domain"
	"github.com/kirnik55/building-app/models"
	"github.com/kirnik55/building-app/policy"
	"github.com/kirnik55/building-app/storage"
)

func defectFilterFromQuery(c *fiber.Ctx) *database.DefectFilter {
	f := &database.DefectFilter{
		Project:  c.Query("project"),
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
		Assignee: c.Query("assignee"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", database.DefaultPageSize),
	}
	f.ScopeTo(actor(c))
	return f
}

func listDefects(c *fiber.Ctx, f *database.DefectFilter) error {
	defects, total, err := database.ListDefects(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"count":   total,
		"results": defects,
	})
}

// ListDefects handles GET /api/defects. Engineers only ever get defects
// assigned to themselves, whatever filters they pass.
func ListDefects(c *fiber.Ctx) error {
	return listDefects(c, defectFilterFromQuery(c))
}

// ResolvedDefects handles GET /api/defects/resolved, the convenience view
// over status == resolved.
func ResolvedDefects(c *fiber.Ctx) error {
	f := defectFilterFromQuery(c)
	f.ResolvedOnly = true
	return listDefects(c, f)
}

type createDefectRequest struct {
	Project     string `json:"project"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
}

// CreateDefect handles POST /api/defects. Any authenticated user may
// report a defect; the creator is always the actor.
func CreateDefect(c *fiber.Ctx) error {
	var req createDefectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}

	projectID, err := uuid.Parse(req.Project)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project id"})
	}
	if _, err := database.FindProjectByID(projectID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Project not found"})
	}

	defect := models.Defect{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		CreatedByID: actor(c).ID,
	}

	if req.Priority != "" {
		p := models.Priority(req.Priority)
		if !p.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid priority"})
		}
		defect.Priority = p
	}
	if req.Status != "" {
		s := models.Status(req.Status)
		if !s.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
		}
		defect.Status = s
	}
	if req.DueDate != "" {
		d, err := models.ParseDate(req.DueDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid due date"})
		}
		defect.DueDate = &d
	}

	if err := database.CreateDefect(&defect); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create defect"})
	}
	return c.Status(fiber.StatusCreated).JSON(defect)
}

// GetDefect handles GET /api/defects/:id.
func GetDefect(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Defect not found"})
	}
	defect, err := database.GetDefect(id, actor(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Defect not found"})
	}
	return c.JSON(defect)
}

type updateDefectRequest struct {
	Project     *string `json:"project"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
}

// UpdateDefect handles PATCH /api/defects/:id. Only the supplied fields
// are written; the assignee has its own endpoint.
func UpdateDefect(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Defect not found"})
	}

	var req updateDefectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		if !p.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid priority"})
		}
		fields["priority"] = p
	}
	if req.Status != nil {
		s := models.Status(*req.Status)
		if !s.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
		}
		fields["status"] = s
	}
	if req.Project != nil {
		projectID, err := uuid.Parse(*req.Project)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project id"})
		}
		if _, err := database.FindProjectByID(projectID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Project not found"})
		}
		fields["project_id"] = projectID
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			fields["due_date"] = nil
		} else {
			d, err := models.ParseDate(*req.DueDate)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid due date"})
			}
			fields["due_date"] = d
		}
	}

	if len(fields) == 0 {
		return GetDefect(c)
	}

	defect, err := database.UpdateDefectFields(id, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Defect not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(defect)
}

// DeleteDefect handles DELETE /api/defects/:id. Comments, attachment
// records and blobs go with the defect.
func DeleteDefect(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Defect not found"})
	}

	blobs, err := database.DeleteDefect(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Defect not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for _, name := range blobs {
		_ = storage.Remove(name)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type assignRequest struct {
	Assignee *string `json:"assignee"`
}

// AssignDefect handles PATCH /api/defects/:id/assign. Managers, leads
// and admins direct the work; the target must be an engineer. An empty
// or null assignee clears the assignment.
func AssignDefect(c *fiber.Ctx) error {
	user := actor(c)
	if !policy.CanAssign(user.Role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient role"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Defect not found"})
	}
	defect, err := database.GetDefect(id, user)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Defect not found"})
	}

	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if req.Assignee == nil || *req.Assignee == "" {
		prev := "none"
		if defect.AssigneeID != nil {
			prev = defect.AssigneeID.String()
		}
		updated, err := database.AssignDefect(id, nil)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("User %s unassigned engineer from defect %s (prev=%s)", user.ID, id, prev)
		return c.JSON(updated)
	}

	engineerID, err := uuid.Parse(*req.Assignee)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Engineer not found"})
	}
	engineer, err := database.FindUserByID(engineerID)
	if err != nil || !policy.CanAssignTarget(engineer) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Engineer not found"})
	}

	updated, err := database.AssignDefect(id, &engineer.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("User %s assigned engineer %s to defect %s", user.ID, engineer.ID, id)
	return c.JSON(updated)
}
