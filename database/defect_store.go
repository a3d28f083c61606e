package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kirnik55/building-app/domain"
	"github.com/kirnik55/building-app/models"
	"github.com/kirnik55/building-app/policy"
)

// DefaultPageSize is the number of defects per list page.
const DefaultPageSize = 20

// DefectFilter collects the query parameters of a defect list request.
// Zero values mean "no constraint". Unparseable filter values are ignored
// the same way an unknown role filter is on the user list.
type DefectFilter struct {
	Project  string
	Priority string
	Status   string
	Assignee string
	Search   string
	Ordering string
	Page     int
	PageSize int

	// Only resolved defects, for the /defects/resolved/ view.
	ResolvedOnly bool

	scopedTo *uuid.UUID
}

// ScopeTo restricts the filter to what the actor is allowed to see.
// Engineers only ever see defects assigned to themselves; this is baked
// into the query, not applied after the fact.
func (f *DefectFilter) ScopeTo(actor *models.User) {
	if !policy.SeesAllDefects(actor.Role) {
		id := actor.ID
		f.scopedTo = &id
	}
}

var orderColumns = map[string]string{
	"created_at": "created_at",
	"priority":   "priority",
	"due_date":   "due_date",
}

func (f *DefectFilter) apply(q *gorm.DB) *gorm.DB {
	if f.scopedTo != nil {
		q = q.Where("assignee_id = ?", *f.scopedTo)
	}
	if f.ResolvedOnly {
		q = q.Where("status = ?", models.StatusResolved)
	}
	if f.Project != "" {
		if id, err := uuid.Parse(f.Project); err == nil {
			q = q.Where("project_id = ?", id)
		}
	}
	if f.Assignee != "" {
		if id, err := uuid.Parse(f.Assignee); err == nil {
			q = q.Where("assignee_id = ?", id)
		}
	}
	if p := models.Priority(f.Priority); p.Valid() {
		q = q.Where("priority = ?", p)
	}
	if s := models.Status(f.Status); s.Valid() {
		q = q.Where("status = ?", s)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("(LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))", pattern, pattern)
	}
	return q
}

func (f *DefectFilter) order() string {
	ordering := f.Ordering
	desc := false
	if len(ordering) > 0 && ordering[0] == '-' {
		desc = true
		ordering = ordering[1:]
	}
	col, ok := orderColumns[ordering]
	if !ok {
		// newest first by default
		return "created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

// ListDefects runs the filtered, ordered, paginated defect query and
// returns the page plus the total match count.
func ListDefects(f *DefectFilter) ([]models.Defect, int64, error) {
	var total int64
	if err := f.apply(DB.Model(&models.Defect{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	var defects []models.Defect
	err := f.apply(DB.Model(&models.Defect{})).
		Order(f.order()).
		Offset((page - 1) * size).
		Limit(size).
		Find(&defects).Error
	if err != nil {
		return nil, 0, err
	}
	return defects, total, nil
}

// GetDefect retrieves one defect visible to the actor. An engineer asking
// for a defect assigned to somebody else gets a not-found, same as a
// missing id.
func GetDefect(id uuid.UUID, actor *models.User) (*models.Defect, error) {
	q := DB.Where("id = ?", id)
	if !policy.SeesAllDefects(actor.Role) {
		q = q.Where("assignee_id = ?", actor.ID)
	}
	var defect models.Defect
	if err := q.First(&defect).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &defect, nil
}

// GetDefectByID retrieves a defect without visibility scoping. Used
// where a child record only needs the parent to exist.
func GetDefectByID(id uuid.UUID) (*models.Defect, error) {
	var defect models.Defect
	if err := DB.First(&defect, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &defect, nil
}

// CreateDefect saves a new defect record.
func CreateDefect(defect *models.Defect) error {
	return DB.Create(defect).Error
}

// UpdateDefectFields writes only the given columns of a defect and
// returns the fresh record. Unrelated fields written by concurrent
// requests are left alone.
func UpdateDefectFields(id uuid.UUID, fields map[string]interface{}) (*models.Defect, error) {
	res := DB.Model(&models.Defect{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	var defect models.Defect
	if err := DB.First(&defect, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &defect, nil
}

// AssignDefect sets or clears the working engineer on a defect. Only the
// assignee column (and the updated timestamp) is written.
func AssignDefect(id uuid.UUID, assignee *uuid.UUID) (*models.Defect, error) {
	return UpdateDefectFields(id, map[string]interface{}{"assignee_id": assignee})
}

// DeleteDefect removes a defect with its comments and attachments and
// returns the stored blob names of the removed attachments.
func DeleteDefect(id uuid.UUID) ([]string, error) {
	var blobs []string
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Attachment{}).Where("defect_id = ?", id).
			Pluck("stored_name", &blobs).Error; err != nil {
			return err
		}
		if err := tx.Where("defect_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("defect_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Defect{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blobs, nil
}
