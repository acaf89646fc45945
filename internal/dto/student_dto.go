package dto

import "gorm.io/datatypes"

// StudentCreateRequest describes the payload for enrolling a student.
type StudentCreateRequest struct {
	AdmissionNumber   string         `json:"admission_number" validate:"required"`
	FirstName         string         `json:"first_name" validate:"required"`
	MiddleName        string         `json:"middle_name"`
	LastName          string         `json:"last_name" validate:"required"`
	DateOfBirth       string         `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	PlaceOfBirth      string         `json:"place_of_birth"`
	Gender            string         `json:"gender" validate:"required"`
	Nationality       string         `json:"nationality"`
	Religion          string         `json:"religion"`
	BloodGroup        string         `json:"blood_group"`
	Photo             string         `json:"photo"`
	GradeLevel        string         `json:"grade_level" validate:"required"`
	AdmissionDate     string         `json:"admission_date" validate:"required,datetime=2006-01-02"`
	PreviousSchool    string         `json:"previous_school"`
	PrimaryContact    datatypes.JSON `json:"primary_contact" validate:"required"`
	EmergencyContacts datatypes.JSON `json:"emergency_contacts"`
	Address           datatypes.JSON `json:"address" validate:"required"`
	AcademicHistory   datatypes.JSON `json:"academic_history"`
	Allergies         []string       `json:"allergies"`
	MedicalConditions []string       `json:"medical_conditions"`
	Status            string         `json:"status" validate:"omitempty,oneof=Active Inactive Suspended Graduated Transferred"`
	Notes             string         `json:"notes"`
}

// StudentUpdateRequest describes a partial update. Only non-nil fields are
// applied.
type StudentUpdateRequest struct {
	FirstName         *string         `json:"first_name" validate:"omitempty,min=1"`
	MiddleName        *string         `json:"middle_name"`
	LastName          *string         `json:"last_name" validate:"omitempty,min=1"`
	DateOfBirth       *string         `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	PlaceOfBirth      *string         `json:"place_of_birth"`
	Gender            *string         `json:"gender"`
	Nationality       *string         `json:"nationality"`
	Religion          *string         `json:"religion"`
	BloodGroup        *string         `json:"blood_group"`
	Photo             *string         `json:"photo"`
	GradeLevel        *string         `json:"grade_level"`
	AdmissionDate     *string         `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
	PreviousSchool    *string         `json:"previous_school"`
	PrimaryContact    *datatypes.JSON `json:"primary_contact"`
	EmergencyContacts *datatypes.JSON `json:"emergency_contacts"`
	Address           *datatypes.JSON `json:"address"`
	AcademicHistory   *datatypes.JSON `json:"academic_history"`
	Allergies         *[]string       `json:"allergies"`
	MedicalConditions *[]string       `json:"medical_conditions"`
	Status            *string         `json:"status" validate:"omitempty,oneof=Active Inactive Suspended Graduated Transferred"`
	IsActive          *bool           `json:"is_active"`
	Archived          *bool           `json:"archived"`
	Notes             *string         `json:"notes"`
}
