package dto

import "gorm.io/datatypes"

// EventCreateRequest describes the payload for scheduling an event.
// Title, description and location are sanitized before storage.
type EventCreateRequest struct {
	Title          string         `json:"title" validate:"required,min=3"`
	Description    string         `json:"description"`
	StartDateTime  string         `json:"start_date_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndDateTime    string         `json:"end_date_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	AllDay         bool           `json:"all_day"`
	Location       string         `json:"location"`
	Type           string         `json:"type"`
	Tags           []string       `json:"tags"`
	VisibleToRoles []string       `json:"visible_to_roles" validate:"omitempty,dive,oneof=Admin Teacher Parent Other"`
	OrganizerID    *uint          `json:"organizer_id"`
	Attendees      datatypes.JSON `json:"attendees"`
	Reminders      datatypes.JSON `json:"reminders"`
	Recurrence     datatypes.JSON `json:"recurrence"`
	Visibility     string         `json:"visibility" validate:"omitempty,oneof=Public Private"`
	Attachments    datatypes.JSON `json:"attachments"`
}

// EventUpdateRequest describes a partial update. Only non-nil fields are
// applied.
type EventUpdateRequest struct {
	Title          *string         `json:"title" validate:"omitempty,min=3"`
	Description    *string         `json:"description"`
	StartDateTime  *string         `json:"start_date_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndDateTime    *string         `json:"end_date_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	AllDay         *bool           `json:"all_day"`
	Location       *string         `json:"location"`
	Type           *string         `json:"type"`
	Tags           *[]string       `json:"tags"`
	VisibleToRoles *[]string       `json:"visible_to_roles" validate:"omitempty,dive,oneof=Admin Teacher Parent Other"`
	OrganizerID    *uint           `json:"organizer_id"`
	Attendees      *datatypes.JSON `json:"attendees"`
	Reminders      *datatypes.JSON `json:"reminders"`
	Recurrence     *datatypes.JSON `json:"recurrence"`
	Status         *string         `json:"status" validate:"omitempty,oneof=Scheduled Cancelled Completed"`
	Visibility     *string         `json:"visibility" validate:"omitempty,oneof=Public Private"`
	Attachments    *datatypes.JSON `json:"attachments"`
}
