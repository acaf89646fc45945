package models

import (
	"time"

	"gorm.io/datatypes"
)

// Assignment formats.
const (
	FormatText  = "Text"
	FormatImage = "Image"
	FormatPDF   = "PDF"
)

// Assignment is a task issued to a class for one subject.
type Assignment struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Title        string                      `gorm:"size:255;not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Formats      datatypes.JSONSlice[string] `json:"format"`
	Attachments  datatypes.JSON              `json:"attachments,omitempty"`
	ClassID      uint                        `gorm:"not null;index:idx_assignment_scope" json:"class_id"`
	Class        ClassSection                `json:"class,omitempty"`
	SubjectID    uint                        `gorm:"not null;index:idx_assignment_scope" json:"subject_id"`
	Subject      Subject                     `json:"subject,omitempty"`
	TeacherID    uint                        `gorm:"not null;index" json:"teacher_id"`
	Teacher      User                        `json:"teacher,omitempty"`
	DueDate      time.Time                   `gorm:"not null" json:"due_date"`
	AcademicYear string                      `gorm:"size:16;not null;index:idx_assignment_scope" json:"academic_year"`
	Submissions  []Submission                `gorm:"constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
