package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

func newStudentService(t *testing.T, db *gorm.DB) StudentService {
	t.Helper()
	return NewStudentService(
		repository.NewStudentRepository(db),
		newTestValidator(),
		NewNATSPublisher(nil, "school", testLogger()),
		testLogger(),
	)
}

func enrollmentPayload(admissionNumber string) dto.StudentCreateRequest {
	return dto.StudentCreateRequest{
		AdmissionNumber: admissionNumber,
		FirstName:       "Kemi",
		LastName:        "Adeyemi",
		DateOfBirth:     "2012-03-14",
		Gender:          "Female",
		GradeLevel:      "Grade 5",
		AdmissionDate:   "2023-09-04",
		PrimaryContact:  datatypes.JSON([]byte(`{"name":"Mrs Adeyemi","relationship":"Mother","phone":"+2348000000000"}`)),
		Address:         datatypes.JSON([]byte(`{"city":"Abuja"}`)),
	}
}

func TestStudentCreateRejectsDuplicateAdmissionNumber(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(t, db)
	ctx := context.Background()

	first, err := svc.Create(ctx, enrollmentPayload("ADM-2023-001"))
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	_, err = svc.Create(ctx, enrollmentPayload("ADM-2023-001"))
	assert.ErrorIs(t, err, ErrAdmissionNumberTaken)

	second, err := svc.Create(ctx, enrollmentPayload("ADM-2023-002"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStudentGetUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newStudentService(t, db)

	_, err := svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
