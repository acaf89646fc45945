package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

func newFeeFixture(t *testing.T) (FeeService, repository.FeeRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	feeRepo := repository.NewFeeRepository(db)
	svc := NewFeeService(
		feeRepo,
		repository.NewStudentRepository(db),
		NewNATSPublisher(nil, "school", testLogger()),
		newTestValidator(),
		testLogger(),
	)
	return svc, feeRepo, db
}

func feePayload(gradeLevel string) dto.FeeCreateRequest {
	return dto.FeeCreateRequest{
		Name:         "Second Term Tuition",
		GradeLevel:   gradeLevel,
		AcademicYear: "2024/2025",
		Term:         models.TermSecond,
		Amount:       45000,
		DueDate:      "2025-02-28",
	}
}

func TestFeeCreateFansOutToActiveStudents(t *testing.T) {
	svc, feeRepo, db := newFeeFixture(t)
	ctx := context.Background()

	inGrade1 := seedStudent(t, db, "Grade 5", true, false)
	inGrade2 := seedStudent(t, db, "Grade 5", true, false)
	seedStudent(t, db, "Grade 5", false, false) // inactive
	seedStudent(t, db, "Grade 5", true, true)   // archived
	seedStudent(t, db, "Grade 6", true, false)  // other grade

	fee, err := svc.Create(ctx, feePayload("Grade 5"))
	require.NoError(t, err)

	linked, err := feeRepo.LinkedStudentIDs(ctx, fee.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{inGrade1.ID, inGrade2.ID}, linked)
}

func TestFeeUpdateRetargetsOnGradeLevelChange(t *testing.T) {
	svc, feeRepo, db := newFeeFixture(t)
	ctx := context.Background()

	fifthGrader := seedStudent(t, db, "Grade 5", true, false)
	sixthGrader := seedStudent(t, db, "Grade 6", true, false)

	fee, err := svc.Create(ctx, feePayload("Grade 5"))
	require.NoError(t, err)

	linked, err := feeRepo.LinkedStudentIDs(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{fifthGrader.ID}, linked)

	newGrade := "Grade 6"
	_, err = svc.Update(ctx, fee.ID, dto.FeeUpdateRequest{GradeLevel: &newGrade})
	require.NoError(t, err)

	linked, err = feeRepo.LinkedStudentIDs(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{sixthGrader.ID}, linked)
}

func TestFeePayFirstPaymentWins(t *testing.T) {
	svc, _, db := newFeeFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Grade 5", true, false)

	fee, err := svc.Create(ctx, feePayload("Grade 5"))
	require.NoError(t, err)

	payment, err := svc.Pay(ctx, fee.ID, dto.PaymentRequest{
		StudentID:  student.ID,
		PaidAmount: 45000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCash, payment.PaymentMethod)

	_, err = svc.Pay(ctx, fee.ID, dto.PaymentRequest{
		StudentID:  student.ID,
		PaidAmount: 45000,
	})
	assert.ErrorIs(t, err, ErrFeeAlreadyPaid)
}

func TestFeePayUnknownFeeAndStudent(t *testing.T) {
	svc, _, db := newFeeFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Grade 5", true, false)

	_, err := svc.Pay(ctx, 9999, dto.PaymentRequest{StudentID: student.ID, PaidAmount: 100})
	assert.ErrorIs(t, err, ErrFeeNotFound)

	fee, err := svc.Create(ctx, feePayload("Grade 5"))
	require.NoError(t, err)

	_, err = svc.Pay(ctx, fee.ID, dto.PaymentRequest{StudentID: 9999, PaidAmount: 100})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestUnpaidForStudent(t *testing.T) {
	svc, _, db := newFeeFixture(t)
	ctx := context.Background()

	student := seedStudent(t, db, "Grade 5", true, false)

	tuition, err := svc.Create(ctx, feePayload("Grade 5"))
	require.NoError(t, err)

	sports := feePayload("Grade 5")
	sports.Name = "Sports Levy"
	sports.DueDate = "2025-03-31"
	levy, err := svc.Create(ctx, sports)
	require.NoError(t, err)

	otherGrade := feePayload("Grade 6")
	otherGrade.Name = "Grade 6 Tuition"
	_, err = svc.Create(ctx, otherGrade)
	require.NoError(t, err)

	unpaid, err := svc.UnpaidForStudent(ctx, student.ID, "Grade 5")
	require.NoError(t, err)
	require.Len(t, unpaid, 2)

	_, err = svc.Pay(ctx, tuition.ID, dto.PaymentRequest{StudentID: student.ID, PaidAmount: 45000})
	require.NoError(t, err)

	unpaid, err = svc.UnpaidForStudent(ctx, student.ID, "Grade 5")
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, levy.ID, unpaid[0].ID)
}
