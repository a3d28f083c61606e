package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateOnly is a calendar date without a time-of-day component. It is
// stored as a date column and rendered as "YYYY-MM-DD" in JSON.
type DateOnly struct {
	time.Time
}

// ParseDate parses an ISO date string.
func ParseDate(s string) (DateOnly, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{Time: t}, nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *DateOnly) Scan(v interface{}) error {
	switch t := v.(type) {
	case time.Time:
		d.Time = t
	case string:
		// sqlite hands dates back as text
		parsed, err := time.Parse(dateLayout, t[:min(len(t), len(dateLayout))])
		if err != nil {
			return err
		}
		d.Time = parsed
	case []byte:
		return d.Scan(string(t))
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", v)
	}
	return nil
}
