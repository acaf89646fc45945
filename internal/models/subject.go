package models

import (
	"time"

	"gorm.io/datatypes"
)

// Subject is a taught discipline identified by a unique uppercase code.
type Subject struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Name         string                      `gorm:"size:255;not null" json:"name"`
	Code         string                      `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	GradeLevels  datatypes.JSONSlice[string] `json:"grade_levels"`
	Department   string                      `gorm:"size:128" json:"department,omitempty"`
	Teachers     []User                      `gorm:"many2many:subject_teachers" json:"teachers,omitempty"`
	IsCompulsory bool                        `gorm:"default:false" json:"is_compulsory"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}
