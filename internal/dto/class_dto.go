package dto

// ClassCreateRequest describes the payload for opening a class section.
type ClassCreateRequest struct {
	ClassName      string `json:"class_name" validate:"required"`
	Grade          string `json:"grade" validate:"required"`
	Section        string `json:"section"`
	AcademicYear   string `json:"academic_year" validate:"required"`
	ClassTeacherID uint   `json:"class_teacher_id" validate:"required"`
	RoomNumber     string `json:"room_number"`
	MaxCapacity    int    `json:"max_capacity" validate:"omitempty,min=1"`
	Status         string `json:"status" validate:"omitempty,oneof=Active Inactive Graduated"`
	StudentIDs     []uint `json:"student_ids"`
	SubjectIDs     []uint `json:"subject_ids"`
}

// ClassUpdateRequest describes a partial update. Only non-nil fields are
// applied; StudentIDs and SubjectIDs replace the full membership when set.
type ClassUpdateRequest struct {
	ClassName      *string `json:"class_name" validate:"omitempty,min=1"`
	Grade          *string `json:"grade"`
	Section        *string `json:"section"`
	AcademicYear   *string `json:"academic_year"`
	ClassTeacherID *uint   `json:"class_teacher_id"`
	RoomNumber     *string `json:"room_number"`
	MaxCapacity    *int    `json:"max_capacity" validate:"omitempty,min=1"`
	Status         *string `json:"status" validate:"omitempty,oneof=Active Inactive Graduated"`
	StudentIDs     *[]uint `json:"student_ids"`
	SubjectIDs     *[]uint `json:"subject_ids"`
}
