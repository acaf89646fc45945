package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student statuses.
const (
	StudentStatusActive      = "Active"
	StudentStatusInactive    = "Inactive"
	StudentStatusSuspended   = "Suspended"
	StudentStatusGraduated   = "Graduated"
	StudentStatusTransferred = "Transferred"
)

// Student represents an enrolled learner.
type Student struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AdmissionNumber string         `gorm:"size:64;uniqueIndex;not null" json:"admission_number"`
	FirstName       string         `gorm:"size:255;not null" json:"first_name"`
	MiddleName      string         `gorm:"size:255" json:"middle_name,omitempty"`
	LastName        string         `gorm:"size:255;not null" json:"last_name"`
	DateOfBirth     time.Time      `gorm:"not null" json:"date_of_birth"`
	PlaceOfBirth    string         `gorm:"size:255" json:"place_of_birth,omitempty"`
	Gender          string         `gorm:"size:16;not null" json:"gender"`
	Nationality     string         `gorm:"size:128" json:"nationality,omitempty"`
	Religion        string         `gorm:"size:128" json:"religion,omitempty"`
	BloodGroup      string         `gorm:"size:8" json:"blood_group,omitempty"`
	Photo           string         `gorm:"size:512" json:"photo,omitempty"`
	GradeLevel      string         `gorm:"size:64;index;not null" json:"grade_level"`
	AdmissionDate   time.Time      `gorm:"not null" json:"admission_date"`
	PreviousSchool  string         `gorm:"size:255" json:"previous_school,omitempty"`
	PrimaryContact  datatypes.JSON `json:"primary_contact"`
	// EmergencyContacts, Address, AcademicHistory and the health fields carry
	// free-form structures the original kept as embedded documents.
	EmergencyContacts datatypes.JSON              `json:"emergency_contacts,omitempty"`
	Address           datatypes.JSON              `json:"address"`
	AcademicHistory   datatypes.JSON              `json:"academic_history,omitempty"`
	Allergies         datatypes.JSONSlice[string] `json:"allergies,omitempty"`
	MedicalConditions datatypes.JSONSlice[string] `json:"medical_conditions,omitempty"`
	Status            string                      `gorm:"size:32;default:Active" json:"status"`
	IsActive          bool                        `gorm:"default:true" json:"is_active"`
	Archived          bool                        `gorm:"default:false" json:"archived"`
	Notes             string                      `gorm:"type:text" json:"notes,omitempty"`
	Fees              []Fee                       `gorm:"many2many:student_fees" json:"fees,omitempty"`
	CreatedByID       *uint                       `json:"created_by,omitempty"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

// FullName renders the display name used in API messages.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
