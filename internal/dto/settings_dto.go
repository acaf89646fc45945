package dto

// SettingsUpdateRequest updates the global settings row. Advancing the
// academic year cascades to active classes of earlier years.
type SettingsUpdateRequest struct {
	AcademicYear *string   `json:"academic_year" validate:"omitempty,min=4"`
	Terms        *[]string `json:"terms" validate:"omitempty,min=1"`
	ActiveTerm   *string   `json:"active_term"`
}
