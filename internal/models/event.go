package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event statuses and visibility levels.
const (
	EventStatusScheduled = "Scheduled"
	EventStatusCancelled = "Cancelled"
	EventStatusCompleted = "Completed"

	EventVisibilityPublic  = "Public"
	EventVisibilityPrivate = "Private"
)

// Event is a calendar entry visible to selected roles.
type Event struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Title          string                      `gorm:"size:255;not null" json:"title"`
	Description    string                      `gorm:"type:text" json:"description,omitempty"`
	StartDateTime  time.Time                   `gorm:"not null" json:"start_date_time"`
	EndDateTime    time.Time                   `gorm:"not null" json:"end_date_time"`
	AllDay         bool                        `gorm:"default:false" json:"all_day"`
	Location       string                      `gorm:"size:255" json:"location,omitempty"`
	Type           string                      `gorm:"size:64" json:"type,omitempty"`
	Tags           datatypes.JSONSlice[string] `json:"tags,omitempty"`
	VisibleToRoles datatypes.JSONSlice[string] `json:"visible_to_roles,omitempty"`
	OrganizerID    *uint                       `json:"organizer_id,omitempty"`
	Organizer      *User                       `json:"organizer,omitempty"`
	Attendees      datatypes.JSON              `json:"attendees,omitempty"`
	Reminders      datatypes.JSON              `json:"reminders,omitempty"`
	Recurrence     datatypes.JSON              `json:"recurrence,omitempty"`
	Status         string                      `gorm:"size:32;default:Scheduled" json:"status"`
	Visibility     string                      `gorm:"size:32;default:Public" json:"visibility"`
	Attachments    datatypes.JSON              `json:"attachments,omitempty"`
	CreatedByID    *uint                       `json:"created_by,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}
