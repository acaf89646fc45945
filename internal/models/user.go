package models

import (
	"time"

	"gorm.io/datatypes"
)

// User roles recognised by the platform.
const (
	RoleAdmin   = "Admin"
	RoleTeacher = "Teacher"
	RoleParent  = "Parent"
	RoleOther   = "Other"
)

// User statuses.
const (
	UserStatusActive    = "Active"
	UserStatusOnLeave   = "On Leave"
	UserStatusSick      = "Sick"
	UserStatusSuspended = "Suspended"
	UserStatusRetired   = "Retired"
)

// User represents a staff member or parent account.
type User struct {
	ID         uint                          `gorm:"primaryKey" json:"id"`
	UserID     string                        `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	FirstName  string                        `gorm:"size:255;not null" json:"first_name"`
	LastName   string                        `gorm:"size:255;not null" json:"last_name"`
	OtherNames string                        `gorm:"size:255" json:"other_names,omitempty"`
	Title      string                        `gorm:"size:16" json:"title,omitempty"`
	Roles      datatypes.JSONSlice[string]   `json:"roles"`
	Status     string                        `gorm:"size:32;default:Active" json:"status"`
	Email      string                        `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string                        `gorm:"size:255;not null" json:"-"`
	// RefreshToken is rotated on login and cleared on logout.
	RefreshToken   string         `gorm:"size:512" json:"-"`
	LastLogin      *time.Time     `json:"last_login,omitempty"`
	Department     string         `gorm:"size:128" json:"department,omitempty"`
	Subjects       []Subject      `gorm:"many2many:user_subjects" json:"subjects,omitempty"`
	Permissions    datatypes.JSON `json:"permissions,omitempty"`
	Qualifications datatypes.JSON `json:"qualifications,omitempty"`
	Children       datatypes.JSON `json:"children,omitempty"`
	Phone          string         `gorm:"size:32" json:"phone,omitempty"`
	AlternatePhone string         `gorm:"size:32" json:"alternate_phone,omitempty"`
	Address        string         `gorm:"size:512" json:"address,omitempty"`
	DateOfBirth    *time.Time     `json:"date_of_birth,omitempty"`
	Gender         string         `gorm:"size:16" json:"gender,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedByID    *uint          `json:"created_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// HasRole reports whether the account carries the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether the account is an Admin or Teacher.
func (u User) IsStaff() bool {
	return u.HasRole(RoleAdmin) || u.HasRole(RoleTeacher)
}
