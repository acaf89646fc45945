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

func newSettingsFixture(t *testing.T) (SettingsService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewSettingsService(
		repository.NewSettingsRepository(db),
		repository.NewClassRepository(db),
		newTestValidator(),
		testLogger(),
	)
	return svc, db
}

func TestSettingsGetCreatesDefaultRow(t *testing.T) {
	svc, _ := newSettingsFixture(t)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024/2025", settings.AcademicYear)
	assert.Equal(t, models.TermFirst, settings.ActiveTerm)
	assert.Len(t, []string(settings.Terms), 3)

	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestSettingsUpdateRejectsBadYear(t *testing.T) {
	svc, _ := newSettingsFixture(t)

	bad := "next year"
	_, err := svc.Update(context.Background(), dto.SettingsUpdateRequest{AcademicYear: &bad}, 1)
	assert.ErrorIs(t, err, ErrBadAcademicYear)
}

func TestSettingsYearChangeDeactivatesStaleClasses(t *testing.T) {
	svc, db := newSettingsFixture(t)
	ctx := context.Background()

	teacher := seedTeacher(t, db, "settings@school.test")
	oldClass := seedClass(t, db, "5A", "2024/2025", teacher)
	currentClass := seedClass(t, db, "6A", "2025/2026", teacher)

	year := "2025/2026"
	settings, err := svc.Update(ctx, dto.SettingsUpdateRequest{AcademicYear: &year}, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, year, settings.AcademicYear)

	var reloaded models.ClassSection
	require.NoError(t, db.First(&reloaded, oldClass.ID).Error)
	assert.Equal(t, models.ClassStatusInactive, reloaded.Status)

	reloaded = models.ClassSection{}
	require.NoError(t, db.First(&reloaded, currentClass.ID).Error)
	assert.Equal(t, models.ClassStatusActive, reloaded.Status)
}

func TestSettingsAcceptsDashSeparatedYear(t *testing.T) {
	svc, db := newSettingsFixture(t)
	ctx := context.Background()

	teacher := seedTeacher(t, db, "settings-dash@school.test")
	oldClass := seedClass(t, db, "5B", "2023-2024", teacher)

	year := "2025-2026"
	_, err := svc.Update(ctx, dto.SettingsUpdateRequest{AcademicYear: &year}, teacher.ID)
	require.NoError(t, err)

	var reloaded models.ClassSection
	require.NoError(t, db.First(&reloaded, oldClass.ID).Error)
	assert.Equal(t, models.ClassStatusInactive, reloaded.Status)
}
