package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kirnik55/building-app/models"
)

// SummaryFilter narrows the defect set a report is computed over. All
// fields are raw query-string values; malformed ones simply do not
// constrain the set (a bad date must not break the report).
type SummaryFilter struct {
	Project  string
	DateFrom string
	DateTo   string
}

type StatusCount struct {
	Status models.Status `json:"status"`
	Count  int64         `json:"count"`
}

type PriorityCount struct {
	Priority models.Priority `json:"priority"`
	Count    int64           `json:"count"`
}

type ProjectCount struct {
	ProjectID   uuid.UUID `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Count       int64     `json:"count"`
}

// Summary is the aggregated defect breakdown. Groups with no matching
// defects are absent, not listed with a zero count.
type Summary struct {
	Total      int64           `json:"total"`
	ByStatus   []StatusCount   `json:"by_status"`
	ByPriority []PriorityCount `json:"by_priority"`
	ByProject  []ProjectCount  `json:"by_project"`
}

// filtered builds a fresh defect query with the summary constraints
// applied. A new query per aggregate keeps gorm statement state from
// leaking between the group-by calls.
func (f *SummaryFilter) filtered() *gorm.DB {
	q := DB.Model(&models.Defect{})
	if f.Project != "" {
		if id, err := uuid.Parse(f.Project); err == nil {
			q = q.Where("project_id = ?", id)
		}
	}
	// the columns are qualified because the by_project aggregate joins
	// projects, which has a created_at of its own
	if d, err := models.ParseDate(f.DateFrom); f.DateFrom != "" && err == nil {
		q = q.Where("defects.created_at >= ?", d.Time)
	}
	if d, err := models.ParseDate(f.DateTo); f.DateTo != "" && err == nil {
		// inclusive date bound: anything before midnight of the next day
		q = q.Where("defects.created_at < ?", d.Time.Add(24*time.Hour))
	}
	return q
}

// Summarize computes the grouped defect counts for the report endpoint.
func Summarize(f *SummaryFilter) (*Summary, error) {
	summary := &Summary{
		ByStatus:   []StatusCount{},
		ByPriority: []PriorityCount{},
		ByProject:  []ProjectCount{},
	}

	if err := f.filtered().Count(&summary.Total).Error; err != nil {
		return nil, err
	}

	err := f.filtered().
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&summary.ByStatus).Error
	if err != nil {
		return nil, err
	}

	err = f.filtered().
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Order("priority ASC").
		Scan(&summary.ByPriority).Error
	if err != nil {
		return nil, err
	}

	err = f.filtered().
		Select("projects.id AS project_id, projects.name AS project_name, COUNT(*) AS count").
		Joins("JOIN projects ON projects.id = defects.project_id").
		Group("projects.id, projects.name").
		Order("projects.name ASC").
		Scan(&summary.ByProject).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}
