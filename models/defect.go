package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority of a defect.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Status of a defect. Any status may be set by an authorized field update;
// there is no enforced transition order.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusVerify     Status = "verify"
	StatusResolved   Status = "resolved"
	StatusCanceled   Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusVerify, StatusResolved, StatusCanceled:
		return true
	}
	return false
}

// Defect is a reported construction defect on a project. The assignee is
// the engineer responsible for resolving it; CreatedBy is the user who
// reported it and is never changed after creation.
type Defect struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `gorm:"size:10;not null;default:medium" json:"priority"`
	Status      Status     `gorm:"size:20;not null;default:new" json:"status"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index" json:"assignee"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by"`
	DueDate     *DateOnly  `gorm:"type:date" json:"due_date"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (d *Defect) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.Status == "" {
		d.Status = StatusNew
	}
	return nil
}
