package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

func newSubjectService(t *testing.T, db *gorm.DB) SubjectService {
	t.Helper()
	return NewSubjectService(
		repository.NewSubjectRepository(db),
		repository.NewUserRepository(db),
		newTestValidator(),
		testLogger(),
	)
}

func TestSubjectCreateUppercasesAndRejectsDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	svc := newSubjectService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.SubjectCreateRequest{
		Name:        "Mathematics",
		Code:        " mth101 ",
		GradeLevels: []string{"Grade 5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "MTH101", created.Code)

	_, err = svc.Create(ctx, dto.SubjectCreateRequest{
		Name:        "Further Mathematics",
		Code:        "MTH101",
		GradeLevels: []string{"Grade 6"},
	})
	assert.ErrorIs(t, err, ErrSubjectCodeTaken)
}

func TestSubjectCreateRejectsNonTeachers(t *testing.T) {
	db := newTestDB(t)
	svc := newSubjectService(t, db)

	_, err := svc.Create(context.Background(), dto.SubjectCreateRequest{
		Name:        "Science",
		Code:        "SCI105",
		GradeLevels: []string{"Grade 5"},
		TeacherIDs:  []uint{9999},
	})
	assert.ErrorIs(t, err, ErrNotATeacher)
}

func TestSubjectUpdateRejectsCodeTakenByAnother(t *testing.T) {
	db := newTestDB(t)
	svc := newSubjectService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.SubjectCreateRequest{
		Name:        "English",
		Code:        "ENG105",
		GradeLevels: []string{"Grade 5"},
	})
	require.NoError(t, err)

	other, err := svc.Create(ctx, dto.SubjectCreateRequest{
		Name:        "Literature",
		Code:        "LIT105",
		GradeLevels: []string{"Grade 5"},
	})
	require.NoError(t, err)

	taken := "eng105"
	_, err = svc.Update(ctx, other.ID, dto.SubjectUpdateRequest{Code: &taken})
	assert.ErrorIs(t, err, ErrSubjectCodeTaken)
}
