package dto

// SubjectCreateRequest describes the payload for registering a subject.
// The code is stored uppercase.
type SubjectCreateRequest struct {
	Name         string   `json:"name" validate:"required"`
	Code         string   `json:"code" validate:"required,min=2"`
	Description  string   `json:"description"`
	GradeLevels  []string `json:"grade_levels" validate:"required,min=1"`
	Department   string   `json:"department"`
	TeacherIDs   []uint   `json:"teacher_ids"`
	IsCompulsory bool     `json:"is_compulsory"`
}

// SubjectUpdateRequest describes a partial update. Only non-nil fields are
// applied; TeacherIDs replaces the full teacher set when set.
type SubjectUpdateRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=1"`
	Code         *string   `json:"code" validate:"omitempty,min=2"`
	Description  *string   `json:"description"`
	GradeLevels  *[]string `json:"grade_levels" validate:"omitempty,min=1"`
	Department   *string   `json:"department"`
	TeacherIDs   *[]uint   `json:"teacher_ids"`
	IsCompulsory *bool     `json:"is_compulsory"`
}
