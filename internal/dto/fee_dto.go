package dto

// FeeCreateRequest describes the payload for defining a fee. On creation the
// fee is fanned out to every active student of the grade level.
type FeeCreateRequest struct {
	Name         string  `json:"name" validate:"required"`
	GradeLevel   string  `json:"grade_level" validate:"required"`
	AcademicYear string  `json:"academic_year" validate:"required"`
	Term         string  `json:"term" validate:"required,oneof=First Second Third Summer Winter"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	DueDate      string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Notes        string  `json:"notes"`
}

// FeeUpdateRequest describes a partial update. Changing the grade level
// retargets the fee's student links.
type FeeUpdateRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1"`
	GradeLevel   *string  `json:"grade_level" validate:"omitempty,min=1"`
	AcademicYear *string  `json:"academic_year"`
	Term         *string  `json:"term" validate:"omitempty,oneof=First Second Third Summer Winter"`
	Amount       *float64 `json:"amount" validate:"omitempty,gt=0"`
	DueDate      *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Notes        *string  `json:"notes"`
}

// PaymentRequest records one student settling one fee.
type PaymentRequest struct {
	StudentID     uint    `json:"student_id" validate:"required"`
	PaidAmount    float64 `json:"paid_amount" validate:"required,gt=0"`
	PaymentDate   string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash credit_card bank_transfer upi other"`
	TransactionID string  `json:"transaction_id"`
	Remarks       string  `json:"remarks"`
}
