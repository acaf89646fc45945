package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// Fee domain failures.
var (
	ErrFeeNotFound    = errors.New("fee not found")
	ErrFeeAlreadyPaid = errors.New("fee already paid by this student")
)

// FeeService exposes fee definition, fan-out and payment use cases.
type FeeService interface {
	List(ctx context.Context) ([]models.Fee, error)
	Get(ctx context.Context, id uint) (models.Fee, error)
	Create(ctx context.Context, payload dto.FeeCreateRequest) (models.Fee, error)
	Update(ctx context.Context, id uint, payload dto.FeeUpdateRequest) (models.Fee, error)
	Delete(ctx context.Context, id uint) error
	Pay(ctx context.Context, feeID uint, payload dto.PaymentRequest) (models.Payment, error)
	UnpaidForStudent(ctx context.Context, studentID uint, gradeLevel string) ([]models.Fee, error)
}

type feeService struct {
	fees      repository.FeeRepository
	students  repository.StudentRepository
	events    Publisher
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewFeeService builds a new fee service.
func NewFeeService(fees repository.FeeRepository, students repository.StudentRepository, events Publisher, validate *validator.Validate, logger zerolog.Logger) FeeService {
	return &feeService{
		fees:      fees,
		students:  students,
		events:    events,
		validator: validate,
		logger:    logger.With().Str("component", "fee_service").Logger(),
		now:       time.Now,
	}
}

func (s *feeService) List(ctx context.Context) ([]models.Fee, error) {
	return s.fees.List(ctx)
}

func (s *feeService) Get(ctx context.Context, id uint) (models.Fee, error) {
	fee, err := s.fees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Fee{}, ErrFeeNotFound
		}
		return models.Fee{}, err
	}
	return fee, nil
}

// Create defines the fee and fans it out to every active student of the
// grade level. Re-running the fan-out is harmless: links are a set.
func (s *feeService) Create(ctx context.Context, payload dto.FeeCreateRequest) (models.Fee, error) {
	tracer := otel.Tracer("github.com/Ahmadlawal020/schoolmanagementbe/internal/service/fee")
	ctx, span := tracer.Start(ctx, "fee.create")
	span.SetAttributes(attribute.String("fee.grade_level", payload.GradeLevel))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return models.Fee{}, err
	}

	dueDate, err := time.Parse(dateLayout, payload.DueDate)
	if err != nil {
		return models.Fee{}, fmt.Errorf("invalid due date: %w", err)
	}

	fee := models.Fee{
		Name:         payload.Name,
		GradeLevel:   payload.GradeLevel,
		AcademicYear: payload.AcademicYear,
		Term:         payload.Term,
		Amount:       payload.Amount,
		DueDate:      dueDate,
		Notes:        payload.Notes,
	}

	if err := s.fees.Create(ctx, &fee); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fee_persist_failed")
		return models.Fee{}, err
	}

	linked, err := s.fanOut(ctx, &fee)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fan_out_failed")
		return models.Fee{}, err
	}
	span.SetAttributes(attribute.Int("fee.students_linked", linked))

	s.events.Publish(ctx, "fee.assigned", map[string]interface{}{
		"fee_id":      fee.ID,
		"grade_level": fee.GradeLevel,
		"students":    linked,
	})

	s.logger.Info().Uint("fee_id", fee.ID).Str("grade_level", fee.GradeLevel).Int("students", linked).Msg("fee created")
	return fee, nil
}

func (s *feeService) Update(ctx context.Context, id uint, payload dto.FeeUpdateRequest) (models.Fee, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Fee{}, err
	}

	fee, err := s.Get(ctx, id)
	if err != nil {
		return models.Fee{}, err
	}

	retarget := payload.GradeLevel != nil && *payload.GradeLevel != fee.GradeLevel

	if payload.Name != nil {
		fee.Name = *payload.Name
	}
	if payload.GradeLevel != nil {
		fee.GradeLevel = *payload.GradeLevel
	}
	if payload.AcademicYear != nil {
		fee.AcademicYear = *payload.AcademicYear
	}
	if payload.Term != nil {
		fee.Term = *payload.Term
	}
	if payload.Amount != nil {
		fee.Amount = *payload.Amount
	}
	if payload.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *payload.DueDate)
		if err != nil {
			return models.Fee{}, fmt.Errorf("invalid due date: %w", err)
		}
		fee.DueDate = dueDate
	}
	if payload.Notes != nil {
		fee.Notes = *payload.Notes
	}

	if err := s.fees.Update(ctx, &fee); err != nil {
		return models.Fee{}, err
	}

	if retarget {
		students, err := s.students.ListByGradeLevel(ctx, fee.GradeLevel)
		if err != nil {
			return models.Fee{}, err
		}
		ids := activeStudentIDs(students)
		if err := s.fees.Retarget(ctx, fee.ID, ids); err != nil {
			return models.Fee{}, err
		}
		s.logger.Info().Uint("fee_id", fee.ID).Str("grade_level", fee.GradeLevel).Int("students", len(ids)).Msg("fee retargeted")
	}

	s.logger.Info().Uint("fee_id", fee.ID).Msg("fee updated")
	return fee, nil
}

func (s *feeService) Delete(ctx context.Context, id uint) error {
	if err := s.fees.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeeNotFound
		}
		return err
	}

	s.logger.Info().Uint("fee_id", id).Msg("fee deleted")
	return nil
}

// Pay records a payment. The unique index makes the first payment win; any
// later attempt for the same (fee, student) pair conflicts.
func (s *feeService) Pay(ctx context.Context, feeID uint, payload dto.PaymentRequest) (models.Payment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Payment{}, err
	}

	if _, err := s.Get(ctx, feeID); err != nil {
		return models.Payment{}, err
	}
	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrStudentNotFound
		}
		return models.Payment{}, err
	}

	paidAt := s.now()
	if payload.PaymentDate != "" {
		parsed, err := time.Parse(dateLayout, payload.PaymentDate)
		if err != nil {
			return models.Payment{}, fmt.Errorf("invalid payment date: %w", err)
		}
		paidAt = parsed
	}

	payment := models.Payment{
		FeeID:         feeID,
		StudentID:     payload.StudentID,
		PaidAmount:    payload.PaidAmount,
		PaymentDate:   paidAt,
		PaymentMethod: payload.PaymentMethod,
		TransactionID: payload.TransactionID,
		Remarks:       payload.Remarks,
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = models.PaymentMethodCash
	}

	if err := s.fees.AddPayment(ctx, &payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Payment{}, ErrFeeAlreadyPaid
		}
		return models.Payment{}, err
	}

	s.events.Publish(ctx, "fee.paid", map[string]interface{}{
		"fee_id":      feeID,
		"student_id":  payload.StudentID,
		"paid_amount": payload.PaidAmount,
	})

	s.logger.Info().Uint("fee_id", feeID).Uint("student_id", payload.StudentID).Float64("amount", payload.PaidAmount).Msg("payment recorded")
	return payment, nil
}

// UnpaidForStudent returns the fees the student has not settled. The grade
// level filter is optional; without it every unpaid fee is reported.
func (s *feeService) UnpaidForStudent(ctx context.Context, studentID uint, gradeLevel string) ([]models.Fee, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	return s.fees.ListUnpaidForStudent(ctx, studentID, gradeLevel)
}

func (s *feeService) fanOut(ctx context.Context, fee *models.Fee) (int, error) {
	students, err := s.students.ListByGradeLevel(ctx, fee.GradeLevel)
	if err != nil {
		return 0, err
	}

	ids := activeStudentIDs(students)
	if err := s.fees.LinkStudents(ctx, fee.ID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func activeStudentIDs(students []models.Student) []uint {
	ids := make([]uint, 0, len(students))
	for _, student := range students {
		if student.IsActive && !student.Archived {
			ids = append(ids, student.ID)
		}
	}
	return ids
}
