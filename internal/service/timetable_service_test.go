package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

func newTimetableService(t *testing.T, db *gorm.DB, cache *redis.Client) TimetableService {
	t.Helper()
	return NewTimetableService(
		repository.NewTimetableRepository(db),
		repository.NewClassRepository(db),
		repository.NewSubjectRepository(db),
		cache,
		5*time.Minute,
		newTestValidator(),
		testLogger(),
	)
}

func validSchedule(subjectID uint) []dto.DayInput {
	return []dto.DayInput{
		{
			Day: "Monday",
			Periods: []dto.PeriodInput{
				{StartTime: "08:00", EndTime: "08:40", SubjectID: subjectID},
				{StartTime: "08:40", EndTime: "09:20", SubjectID: subjectID},
			},
		},
	}
}

func TestTimetableCreateRejectsDuplicateDays(t *testing.T) {
	db := newTestDB(t)
	svc := newTimetableService(t, db, nil)

	teacher := seedTeacher(t, db, "tt-dup@school.test")
	subject := seedSubject(t, db, "Mathematics", "MTH201", teacher)
	class := seedClass(t, db, "6A", "2024/2025", teacher)

	_, err := svc.Create(context.Background(), dto.TimetableCreateRequest{
		ClassID: class.ID,
		Schedule: []dto.DayInput{
			{Day: "Monday", Periods: []dto.PeriodInput{{StartTime: "08:00", EndTime: "08:40", SubjectID: subject.ID}}},
			{Day: "Monday", Periods: []dto.PeriodInput{{StartTime: "09:00", EndTime: "09:40", SubjectID: subject.ID}}},
		},
	})

	var scheduleErr *ScheduleValidationError
	require.ErrorAs(t, err, &scheduleErr)
	require.Len(t, scheduleErr.Issues, 1)
	assert.Equal(t, "Monday", scheduleErr.Issues[0].Day)
	assert.Contains(t, scheduleErr.Issues[0].Message, "duplicate day")
}

func TestTimetableCreateListsEveryInvalidDay(t *testing.T) {
	db := newTestDB(t)
	svc := newTimetableService(t, db, nil)

	teacher := seedTeacher(t, db, "tt-days@school.test")
	subject := seedSubject(t, db, "Mathematics", "MTH202", teacher)
	class := seedClass(t, db, "6B", "2024/2025", teacher)

	_, err := svc.Create(context.Background(), dto.TimetableCreateRequest{
		ClassID: class.ID,
		Schedule: []dto.DayInput{
			{Day: "Funday", Periods: []dto.PeriodInput{{StartTime: "08:00", EndTime: "08:40", SubjectID: subject.ID}}},
			{Day: "Monday", Periods: []dto.PeriodInput{{StartTime: "08:00", EndTime: "08:40", SubjectID: subject.ID}}},
			{Day: "Noday", Periods: []dto.PeriodInput{{StartTime: "09:00", EndTime: "09:40", SubjectID: subject.ID}}},
		},
	})

	var scheduleErr *ScheduleValidationError
	require.ErrorAs(t, err, &scheduleErr)
	require.Len(t, scheduleErr.Issues, 2)
	assert.Equal(t, "Funday", scheduleErr.Issues[0].Day)
	assert.Equal(t, "Noday", scheduleErr.Issues[1].Day)
}

func TestTimetableCreateRejectsBadPeriods(t *testing.T) {
	db := newTestDB(t)
	svc := newTimetableService(t, db, nil)

	teacher := seedTeacher(t, db, "tt-periods@school.test")
	subject := seedSubject(t, db, "Mathematics", "MTH203", teacher)
	class := seedClass(t, db, "6C", "2024/2025", teacher)

	_, err := svc.Create(context.Background(), dto.TimetableCreateRequest{
		ClassID: class.ID,
		Schedule: []dto.DayInput{
			{
				Day: "Tuesday",
				Periods: []dto.PeriodInput{
					{StartTime: "08:00", EndTime: "08:40"}, // missing subject
					{StartTime: "10:00", EndTime: "09:00", SubjectID: subject.ID},
				},
			},
		},
	})

	var scheduleErr *ScheduleValidationError
	require.ErrorAs(t, err, &scheduleErr)
	require.Len(t, scheduleErr.Issues, 2)
	assert.Equal(t, 1, scheduleErr.Issues[0].Period)
	assert.Contains(t, scheduleErr.Issues[0].Message, "missing")
	assert.Equal(t, 2, scheduleErr.Issues[1].Period)
	assert.Contains(t, scheduleErr.Issues[1].Message, "start before it ends")
}

func TestTimetableCreateRejectsOverlaps(t *testing.T) {
	db := newTestDB(t)
	svc := newTimetableService(t, db, nil)

	teacher := seedTeacher(t, db, "tt-overlap@school.test")
	subject := seedSubject(t, db, "Mathematics", "MTH204", teacher)
	class := seedClass(t, db, "6D", "2024/2025", teacher)

	_, err := svc.Create(context.Background(), dto.TimetableCreateRequest{
		ClassID: class.ID,
		Schedule: []dto.DayInput{
			{
				Day: "Wednesday",
				Periods: []dto.PeriodInput{
					{StartTime: "08:00", EndTime: "09:00", SubjectID: subject.ID},
					{StartTime: "08:30", EndTime: "09:30", SubjectID: subject.ID},
				},
			},
		},
	})

	var scheduleErr *ScheduleValidationError
	require.ErrorAs(t, err, &scheduleErr)
	require.Len(t, scheduleErr.Issues, 1)
	assert.Contains(t, scheduleErr.Issues[0].Message, "overlaps")
}

func TestTimetableCreateAllowsBackToBackPeriods(t *testing.T) {
	db := newTestDB(t)
	svc := newTimetableService(t, db, nil)

	teacher := seedTeacher(t, db, "tt-adjacent@school.test")
	subject := seedSubject(t, db, "Mathematics", "MTH205", teacher)
	class := seedClass(t, db, "6E", "2024/2025", teacher)

	timetable, err := svc.Create(context.Background(), dto.TimetableCreateRequest{
		ClassID:  class.ID,
		Schedule: validSchedule(subject.ID),
	})
	require.NoError(t, err)
	require.Len(t, timetable.Days, 1)
	assert.Len(t, timetable.Days[0].Periods, 2)
}

func TestTimetableCreateConflictsOnSecondTimetable(t *testing.T) {
	db := newTestDB(t)
	svc := newTimetableService(t, db, nil)

	teacher := seedTeacher(t, db, "tt-conflict@school.test")
	subject := seedSubject(t, db, "Mathematics", "MTH206", teacher)
	class := seedClass(t, db, "6F", "2024/2025", teacher)

	_, err := svc.Create(context.Background(), dto.TimetableCreateRequest{
		ClassID:  class.ID,
		Schedule: validSchedule(subject.ID),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.TimetableCreateRequest{
		ClassID:  class.ID,
		Schedule: validSchedule(subject.ID),
	})
	assert.ErrorIs(t, err, ErrTimetableExists)
}

func TestTeacherScheduleCachesAndInvalidates(t *testing.T) {
	db := newTestDB(t)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc := newTimetableService(t, db, cache)

	teacher := seedTeacher(t, db, "tt-view@school.test")
	subject := seedSubject(t, db, "Mathematics", "MTH207", teacher)
	class := seedClass(t, db, "6G", "2024/2025", teacher)

	ctx := context.Background()
	timetable, err := svc.Create(ctx, dto.TimetableCreateRequest{
		ClassID:  class.ID,
		Schedule: validSchedule(subject.ID),
	})
	require.NoError(t, err)

	view, err := svc.TeacherSchedule(ctx, teacher.ID)
	require.NoError(t, err)
	require.Len(t, view.Days["Monday"], 2)
	assert.Equal(t, "08:00 - 08:40", view.Days["Monday"][0].Time)
	assert.Equal(t, "Mathematics", view.Days["Monday"][0].Subject)
	assert.Equal(t, "6G", view.Days["Monday"][0].ClassName)

	key := fmt.Sprintf("schedule:teacher:%d", teacher.ID)
	require.True(t, mr.Exists(key))

	// Any timetable mutation drops the cached views.
	_, err = svc.Update(ctx, timetable.ID, dto.TimetableUpdateRequest{
		Schedule: []dto.DayInput{
			{Day: "Friday", Periods: []dto.PeriodInput{{StartTime: "11:00", EndTime: "11:40", SubjectID: subject.ID}}},
		},
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	view, err = svc.TeacherSchedule(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Days["Monday"])
	assert.Len(t, view.Days["Friday"], 1)
}
