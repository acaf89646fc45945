package models

import "time"

// Class statuses.
const (
	ClassStatusActive    = "Active"
	ClassStatusInactive  = "Inactive"
	ClassStatusGraduated = "Graduated"
)

// ClassSection identifies a teaching group for one academic year.
// (ClassName, AcademicYear) is unique.
type ClassSection struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ClassName      string    `gorm:"size:255;not null;uniqueIndex:idx_class_name_year" json:"class_name"`
	Grade          string    `gorm:"size:64;not null" json:"grade"`
	Section        string    `gorm:"size:64" json:"section,omitempty"`
	AcademicYear   string    `gorm:"size:16;not null;uniqueIndex:idx_class_name_year" json:"academic_year"`
	ClassTeacherID uint      `gorm:"not null;index" json:"class_teacher_id"`
	ClassTeacher   User      `json:"class_teacher,omitempty"`
	RoomNumber     string    `gorm:"size:32" json:"room_number,omitempty"`
	MaxCapacity    int       `gorm:"default:30" json:"max_capacity"`
	Status         string    `gorm:"size:32;default:Active" json:"status"`
	Students       []Student `gorm:"many2many:class_students" json:"students,omitempty"`
	Subjects       []Subject `gorm:"many2many:class_subjects" json:"subjects,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
