package dto

import "gorm.io/datatypes"

// UserCreateRequest describes the payload for creating a staff or parent
// account.
type UserCreateRequest struct {
	UserID         string         `json:"user_id" validate:"required,min=2"`
	FirstName      string         `json:"first_name" validate:"required"`
	LastName       string         `json:"last_name" validate:"required"`
	OtherNames     string         `json:"other_names"`
	Title          string         `json:"title"`
	Roles          []string       `json:"roles" validate:"required,min=1,dive,oneof=Admin Teacher Parent Other"`
	Status         string         `json:"status" validate:"omitempty,oneof=Active 'On Leave' Sick Suspended Retired"`
	Email          string         `json:"email" validate:"required,email"`
	Password       string         `json:"password" validate:"required,min=8"`
	Department     string         `json:"department"`
	SubjectIDs     []uint         `json:"subject_ids"`
	Permissions    datatypes.JSON `json:"permissions"`
	Qualifications datatypes.JSON `json:"qualifications"`
	Children       datatypes.JSON `json:"children"`
	Phone          string         `json:"phone"`
	AlternatePhone string         `json:"alternate_phone"`
	Address        string         `json:"address"`
	DateOfBirth    string         `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         string         `json:"gender"`
}

// UserUpdateRequest describes a partial update. Only non-nil fields are
// applied.
type UserUpdateRequest struct {
	FirstName      *string         `json:"first_name" validate:"omitempty,min=1"`
	LastName       *string         `json:"last_name" validate:"omitempty,min=1"`
	OtherNames     *string         `json:"other_names"`
	Title          *string         `json:"title"`
	Roles          *[]string       `json:"roles" validate:"omitempty,min=1,dive,oneof=Admin Teacher Parent Other"`
	Status         *string         `json:"status" validate:"omitempty,oneof=Active 'On Leave' Sick Suspended Retired"`
	Email          *string         `json:"email" validate:"omitempty,email"`
	Password       *string         `json:"password" validate:"omitempty,min=8"`
	Department     *string         `json:"department"`
	SubjectIDs     *[]uint         `json:"subject_ids"`
	Permissions    *datatypes.JSON `json:"permissions"`
	Qualifications *datatypes.JSON `json:"qualifications"`
	Children       *datatypes.JSON `json:"children"`
	Phone          *string         `json:"phone"`
	AlternatePhone *string         `json:"alternate_phone"`
	Address        *string         `json:"address"`
	DateOfBirth    *string         `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         *string         `json:"gender"`
	IsActive       *bool           `json:"is_active"`
}
