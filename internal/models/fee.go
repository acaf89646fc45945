package models

import "time"

// Payment methods.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodUPI          = "upi"
	PaymentMethodOther        = "other"
)

// Fee is a charge definition fanned out to every student of its grade level.
type Fee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	GradeLevel   string    `gorm:"size:64;index;not null" json:"grade_level"`
	AcademicYear string    `gorm:"size:16;not null" json:"academic_year"`
	Term         string    `gorm:"size:16;not null" json:"term"`
	Amount       float64   `gorm:"not null" json:"amount"`
	DueDate      time.Time `gorm:"not null" json:"due_date"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	Payments     []Payment `gorm:"constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Payment records one student settling one fee. The composite unique index
// enforces first-payment-wins at insert time rather than via a pre-check.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FeeID         uint      `gorm:"not null;uniqueIndex:idx_payment_once" json:"fee_id"`
	StudentID     uint      `gorm:"not null;uniqueIndex:idx_payment_once" json:"student_id"`
	Student       Student   `json:"student,omitempty"`
	PaidAmount    float64   `gorm:"not null" json:"paid_amount"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `gorm:"size:32;default:cash" json:"payment_method"`
	TransactionID string    `gorm:"size:128" json:"transaction_id,omitempty"`
	Remarks       string    `gorm:"size:512" json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StudentFee links a fee to a student. The composite primary key gives the
// fan-out set semantics: re-running a fan-out never duplicates a link.
type StudentFee struct {
	StudentID uint      `gorm:"primaryKey" json:"student_id"`
	FeeID     uint      `gorm:"primaryKey" json:"fee_id"`
	CreatedAt time.Time `json:"created_at"`
}
