package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

type attendanceFixture struct {
	svc      AttendanceService
	db       *gorm.DB
	teacher  models.User
	class    models.ClassSection
	students []models.Student
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	db := newTestDB(t)

	svc := NewAttendanceService(
		repository.NewAttendanceRepository(db),
		repository.NewClassRepository(db),
		repository.NewStudentRepository(db),
		newTestValidator(),
		testLogger(),
	)

	teacher := seedTeacher(t, db, "register@school.test")
	students := []models.Student{
		seedStudent(t, db, "Grade 5", true, false),
		seedStudent(t, db, "Grade 5", true, false),
	}
	class := seedClass(t, db, "5D", "2024/2025", teacher, students...)

	return &attendanceFixture{svc: svc, db: db, teacher: teacher, class: class, students: students}
}

func (f *attendanceFixture) record(t *testing.T, date, period string, statuses ...string) models.Attendance {
	t.Helper()
	records := make([]dto.MarkInput, len(statuses))
	for i, status := range statuses {
		records[i] = dto.MarkInput{StudentID: f.students[i].ID, Status: status}
	}
	session, err := f.svc.Create(context.Background(), dto.AttendanceCreateRequest{
		ClassID: f.class.ID,
		Date:    date,
		Period:  period,
		Records: records,
	}, f.teacher.ID)
	require.NoError(t, err)
	return session
}

func TestAttendanceCreatePersistsMarks(t *testing.T) {
	f := newAttendanceFixture(t)

	session := f.record(t, "2025-03-03", "Morning", models.AttendancePresent, models.AttendanceAbsent)
	require.Len(t, session.Marks, 2)
	assert.Equal(t, f.teacher.ID, session.RecordedByID)
}

func TestAttendanceCreateConflictsOnDuplicateSession(t *testing.T) {
	f := newAttendanceFixture(t)

	f.record(t, "2025-03-03", "Morning", models.AttendancePresent, models.AttendancePresent)

	_, err := f.svc.Create(context.Background(), dto.AttendanceCreateRequest{
		ClassID: f.class.ID,
		Date:    "2025-03-03",
		Period:  "Morning",
		Records: []dto.MarkInput{{StudentID: f.students[0].ID, Status: models.AttendanceLate}},
	}, f.teacher.ID)
	assert.ErrorIs(t, err, ErrSessionAlreadyMarked)

	// A different period on the same day is a separate session.
	f.record(t, "2025-03-03", "Afternoon", models.AttendancePresent, models.AttendancePresent)
}

func TestAttendanceCreateRejectsUnenrolledStudent(t *testing.T) {
	f := newAttendanceFixture(t)
	outsider := seedStudent(t, f.db, "Grade 6", true, false)

	_, err := f.svc.Create(context.Background(), dto.AttendanceCreateRequest{
		ClassID: f.class.ID,
		Date:    "2025-03-04",
		Records: []dto.MarkInput{{StudentID: outsider.ID, Status: models.AttendancePresent}},
	}, f.teacher.ID)
	assert.ErrorIs(t, err, ErrStudentNotInClass)
}

func TestAttendanceUpdateReplacesMarks(t *testing.T) {
	f := newAttendanceFixture(t)

	session := f.record(t, "2025-03-05", "", models.AttendanceAbsent, models.AttendanceAbsent)

	corrected, err := f.svc.Update(context.Background(), session.ID, dto.AttendanceUpdateRequest{
		Records: []dto.MarkInput{
			{StudentID: f.students[0].ID, Status: models.AttendanceExcused},
			{StudentID: f.students[1].ID, Status: models.AttendancePresent},
		},
	})
	require.NoError(t, err)
	require.Len(t, corrected.Marks, 2)

	byStudent := map[uint]string{}
	for _, mark := range corrected.Marks {
		byStudent[mark.StudentID] = mark.Status
	}
	assert.Equal(t, models.AttendanceExcused, byStudent[f.students[0].ID])
	assert.Equal(t, models.AttendancePresent, byStudent[f.students[1].ID])
}

func TestStudentSummaryMath(t *testing.T) {
	f := newAttendanceFixture(t)

	f.record(t, "2025-03-03", "", models.AttendancePresent, models.AttendancePresent)
	f.record(t, "2025-03-04", "", models.AttendanceLate, models.AttendancePresent)
	f.record(t, "2025-03-05", "", models.AttendanceAbsent, models.AttendancePresent)

	summary, err := f.svc.StudentSummary(context.Background(), f.students[0].ID, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Sessions)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 0, summary.Excused)
	assert.Equal(t, 66.67, summary.PresentRate)
}

func TestStudentSummaryUnknownStudent(t *testing.T) {
	f := newAttendanceFixture(t)

	_, err := f.svc.StudentSummary(context.Background(), 9999, time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestExportClassSheet(t *testing.T) {
	f := newAttendanceFixture(t)

	f.record(t, "2025-03-03", "Morning", models.AttendancePresent, models.AttendanceAbsent)
	f.record(t, "2025-03-04", "Morning", models.AttendanceLate, models.AttendancePresent)

	sheet, err := f.svc.ExportClassSheet(context.Background(), f.class.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NotEmpty(t, sheet)

	workbook, err := excelize.OpenReader(bytes.NewReader(sheet))
	require.NoError(t, err)
	defer workbook.Close()

	name, err := workbook.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Student", name)

	// Columns run oldest to newest.
	first, err := workbook.GetCellValue("Attendance", "C1")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03 (Morning)", first)

	status, err := workbook.GetCellValue("Attendance", "C2")
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, status)
}
