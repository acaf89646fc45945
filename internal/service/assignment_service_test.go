package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

type assignmentFixture struct {
	svc     *assignmentService
	db      *gorm.DB
	teacher models.User
	student models.Student
	subject models.Subject
	class   models.ClassSection
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	db := newTestDB(t)

	svc := NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewClassRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewStudentRepository(db),
		repository.NewUserRepository(db),
		NewNATSPublisher(nil, "school", testLogger()),
		newTestValidator(),
		testLogger(),
	).(*assignmentService)

	teacher := seedTeacher(t, db, "homework@school.test")
	student := seedStudent(t, db, "Grade 5", true, false)
	subject := seedSubject(t, db, "Mathematics", "MTH301", teacher)
	class := seedClass(t, db, "5C", "2024/2025", teacher, student)

	return &assignmentFixture{svc: svc, db: db, teacher: teacher, student: student, subject: subject, class: class}
}

func (f *assignmentFixture) issue(t *testing.T, due time.Time) models.Assignment {
	t.Helper()
	assignment, err := f.svc.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:        "Fractions worksheet",
		Description:  "Complete exercises 1 through 10.",
		Formats:      []string{models.FormatText, models.FormatPDF},
		ClassID:      f.class.ID,
		SubjectID:    f.subject.ID,
		TeacherID:    f.teacher.ID,
		DueDate:      due.Format(time.RFC3339),
		AcademicYear: "2024/2025",
	})
	require.NoError(t, err)
	return assignment
}

func TestSubmitReplacesEarlierAnswerBeforeDeadline(t *testing.T) {
	f := newAssignmentFixture(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return base }

	assignment := f.issue(t, base.Add(48*time.Hour))
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, assignment.ID, dto.SubmissionRequest{
		StudentID: f.student.ID,
		Content:   datatypes.JSON([]byte(`{"text":"first attempt"}`)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusSubmitted, first.Status)

	f.svc.now = func() time.Time { return base.Add(6 * time.Hour) }
	second, err := f.svc.Submit(ctx, assignment.ID, dto.SubmissionRequest{
		StudentID: f.student.ID,
		Content:   datatypes.JSON([]byte(`{"text":"second attempt"}`)),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.JSONEq(t, `{"text":"second attempt"}`, string(second.Content))

	var count int64
	require.NoError(t, f.db.Model(&models.Submission{}).Where("assignment_id = ?", assignment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitRejectedAfterDeadline(t *testing.T) {
	f := newAssignmentFixture(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return base }

	assignment := f.issue(t, base.Add(24*time.Hour))

	f.svc.now = func() time.Time { return base.Add(25 * time.Hour) }
	_, err := f.svc.Submit(context.Background(), assignment.ID, dto.SubmissionRequest{
		StudentID: f.student.ID,
		Content:   datatypes.JSON([]byte(`{"text":"too late"}`)),
	})
	assert.ErrorIs(t, err, ErrAssignmentPastDue)
}

func TestReviewStampsSubmissionAndRecordsAssessment(t *testing.T) {
	f := newAssignmentFixture(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return base }

	assignment := f.issue(t, base.Add(24*time.Hour))
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, assignment.ID, dto.SubmissionRequest{
		StudentID: f.student.ID,
		Content:   datatypes.JSON([]byte(`{"text":"my answers"}`)),
	})
	require.NoError(t, err)

	reviewed, err := f.svc.Review(ctx, assignment.ID, dto.ReviewRequest{
		StudentID:   f.student.ID,
		ScoredMarks: 17,
		TotalMarks:  20,
		Comments:    "Well done",
		Term:        models.TermSecond,
	}, f.teacher.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionStatusReviewed, reviewed.Status)
	assert.Equal(t, "A", reviewed.FeedbackGrade)
	assert.Equal(t, "Well done", reviewed.FeedbackComments)
	require.NotNil(t, reviewed.AssessmentID)

	var assessment models.Assessment
	require.NoError(t, f.db.First(&assessment, *reviewed.AssessmentID).Error)
	assert.Equal(t, models.AssessmentTypeAssignment, assessment.Type)
	assert.Equal(t, assignment.Title, assessment.Title)
	assert.Equal(t, f.student.ID, assessment.StudentID)
	assert.Equal(t, 17.0, assessment.ScoredMarks)

	// Reviewing again updates the same assessment rather than adding one.
	_, err = f.svc.Review(ctx, assignment.ID, dto.ReviewRequest{
		StudentID:   f.student.ID,
		ScoredMarks: 18,
		TotalMarks:  20,
		Comments:    "Even better",
		Term:        models.TermSecond,
	}, f.teacher.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&models.Assessment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListByStudentNarrowsSubmissions(t *testing.T) {
	f := newAssignmentFixture(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return base }

	classmate := seedStudent(t, f.db, "Grade 5", true, false)
	require.NoError(t, f.db.Model(&f.class).Association("Students").Append(&classmate))

	assignment := f.issue(t, base.Add(48*time.Hour))
	ctx := context.Background()

	for _, id := range []uint{f.student.ID, classmate.ID} {
		_, err := f.svc.Submit(ctx, assignment.ID, dto.SubmissionRequest{
			StudentID: id,
			Content:   datatypes.JSON([]byte(`{"text":"done"}`)),
		})
		require.NoError(t, err)
	}

	assignments, err := f.svc.ListByStudent(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Len(t, assignments[0].Submissions, 1)
	assert.Equal(t, f.student.ID, assignments[0].Submissions[0].StudentID)

	outsider := seedStudent(t, f.db, "Grade 6", true, false)
	assignments, err = f.svc.ListByStudent(ctx, outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	_, err = f.svc.ListByStudent(ctx, 9999)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestReviewRequiresSubmission(t *testing.T) {
	f := newAssignmentFixture(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return base }

	assignment := f.issue(t, base.Add(24*time.Hour))

	_, err := f.svc.Review(context.Background(), assignment.ID, dto.ReviewRequest{
		StudentID:   f.student.ID,
		ScoredMarks: 10,
		TotalMarks:  20,
		Term:        models.TermSecond,
	}, f.teacher.ID)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestReviewRejectsScoreAboveTotal(t *testing.T) {
	f := newAssignmentFixture(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return base }

	assignment := f.issue(t, base.Add(24*time.Hour))

	_, err := f.svc.Review(context.Background(), assignment.ID, dto.ReviewRequest{
		StudentID:   f.student.ID,
		ScoredMarks: 25,
		TotalMarks:  20,
		Term:        models.TermSecond,
	}, f.teacher.ID)
	assert.ErrorIs(t, err, ErrScoreExceedsTotal)
}
