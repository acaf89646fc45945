package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Settings is the single global configuration row. The academic year uses
// the "YYYY/YYYY" form; a legacy "YYYY-YYYY" separator is also accepted.
type Settings struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	AcademicYear string                      `gorm:"size:16;not null" json:"academic_year"`
	Terms        datatypes.JSONSlice[string] `json:"terms"`
	ActiveTerm   string                      `gorm:"size:16" json:"active_term,omitempty"`
	UpdatedByID  *uint                       `json:"updated_by,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// AcademicYearStart extracts the numeric starting year from an academic year
// string such as "2024/2025" or "2024-2025". Returns false when unparseable.
func AcademicYearStart(year string) (int, bool) {
	separators := []string{"/", "-"}
	for _, sep := range separators {
		if head, _, found := strings.Cut(year, sep); found {
			start, err := strconv.Atoi(strings.TrimSpace(head))
			if err != nil {
				return 0, false
			}
			return start, true
		}
	}

	start, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, false
	}
	return start, true
}
