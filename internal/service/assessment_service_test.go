package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

func TestComputeGrade(t *testing.T) {
	cases := []struct {
		name        string
		scored      float64
		total       float64
		percentage  float64
		grade       string
		description string
	}{
		{"excellent at boundary", 70, 100, 70, "A", "Excellent"},
		{"very good at boundary", 60, 100, 60, "B", "Very Good"},
		{"good at boundary", 50, 100, 50, "C", "Good"},
		{"fair at boundary", 45, 100, 45, "D", "Fair"},
		{"pass at boundary", 40, 100, 40, "E", "Pass"},
		{"fail just below pass", 39.99, 100, 39.99, "F", "Fail"},
		{"zero score", 0, 100, 0, "F", "Fail"},
		{"full marks", 100, 100, 100, "A", "Excellent"},
		{"rounds to two decimals", 2, 3, 66.67, "B", "Very Good"},
		{"small denominator", 17, 20, 85, "A", "Excellent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grade, err := ComputeGrade(tc.scored, tc.total)
			require.NoError(t, err)
			assert.Equal(t, tc.percentage, grade.Percentage)
			assert.Equal(t, tc.grade, grade.Grade)
			assert.Equal(t, tc.description, grade.Description)
		})
	}
}

func TestComputeGradeRejectsZeroTotal(t *testing.T) {
	_, err := ComputeGrade(10, 0)
	assert.ErrorIs(t, err, ErrZeroTotalMarks)

	_, err = ComputeGrade(10, -5)
	assert.ErrorIs(t, err, ErrZeroTotalMarks)
}

func TestAssessmentCreateAndOverallGrade(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssessmentService(
		repository.NewAssessmentRepository(db),
		repository.NewStudentRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewClassRepository(db),
		newTestValidator(),
		testLogger(),
	)

	teacher := seedTeacher(t, db, "grades@school.test")
	student := seedStudent(t, db, "Grade 5", true, false)
	math := seedSubject(t, db, "Mathematics", "MTH101")
	english := seedSubject(t, db, "English", "ENG101")
	class := seedClass(t, db, "5A", "2024/2025", teacher, student)

	ctx := context.Background()
	record := func(subjectID uint, title string, scored, total float64) {
		_, err := svc.Create(ctx, dto.AssessmentCreateRequest{
			StudentID:    student.ID,
			SubjectID:    subjectID,
			ClassID:      class.ID,
			Type:         models.AssessmentTypeTest,
			Title:        title,
			Date:         "2025-03-10",
			TotalMarks:   total,
			ScoredMarks:  scored,
			Term:         models.TermSecond,
			AcademicYear: "2024/2025",
		}, teacher.ID)
		require.NoError(t, err)
	}

	record(math.ID, "Fractions", 40, 50)
	record(math.ID, "Algebra", 30, 50)
	record(english.ID, "Comprehension", 20, 50)

	overall, err := svc.OverallGrade(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, overall.Subjects, 2)

	assert.Equal(t, math.ID, overall.Subjects[0].SubjectID)
	assert.Equal(t, 70.0, overall.Subjects[0].Percentage)
	assert.Equal(t, "A", overall.Subjects[0].Grade)

	assert.Equal(t, english.ID, overall.Subjects[1].SubjectID)
	assert.Equal(t, 40.0, overall.Subjects[1].Percentage)
	assert.Equal(t, "E", overall.Subjects[1].Grade)

	// 90 of 150 overall.
	assert.Equal(t, 60.0, overall.Overall.Percentage)
	assert.Equal(t, "B", overall.Overall.Grade)
}

func TestAssessmentCreateAccumulatesAcrossTerms(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssessmentService(
		repository.NewAssessmentRepository(db),
		repository.NewStudentRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewClassRepository(db),
		newTestValidator(),
		testLogger(),
	)

	teacher := seedTeacher(t, db, "terms@school.test")
	student := seedStudent(t, db, "Grade 5", true, false)
	subject := seedSubject(t, db, "Mathematics", "MTH102")
	class := seedClass(t, db, "5E", "2024/2025", teacher, student)

	ctx := context.Background()
	record := func(term string, scored float64) models.Assessment {
		assessment, err := svc.Create(ctx, dto.AssessmentCreateRequest{
			StudentID:    student.ID,
			SubjectID:    subject.ID,
			ClassID:      class.ID,
			Type:         models.AssessmentTypeTest,
			Title:        "Midterm Test",
			Date:         "2025-03-10",
			TotalMarks:   100,
			ScoredMarks:  scored,
			Term:         term,
			AcademicYear: "2024/2025",
		}, teacher.ID)
		require.NoError(t, err)
		return assessment
	}

	first := record(models.TermFirst, 85)
	second := record(models.TermSecond, 10)
	assert.NotEqual(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Assessment{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var kept models.Assessment
	require.NoError(t, db.First(&kept, first.ID).Error)
	assert.Equal(t, models.TermFirst, kept.Term)
	assert.Equal(t, 85.0, kept.ScoredMarks)
}

func TestAssessmentCreateRejectsExcessiveScore(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssessmentService(
		repository.NewAssessmentRepository(db),
		repository.NewStudentRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewClassRepository(db),
		newTestValidator(),
		testLogger(),
	)

	teacher := seedTeacher(t, db, "excess@school.test")
	student := seedStudent(t, db, "Grade 5", true, false)
	subject := seedSubject(t, db, "Science", "SCI101")
	class := seedClass(t, db, "5B", "2024/2025", teacher, student)

	_, err := svc.Create(context.Background(), dto.AssessmentCreateRequest{
		StudentID:    student.ID,
		SubjectID:    subject.ID,
		ClassID:      class.ID,
		Type:         models.AssessmentTypeQuiz,
		Title:        "Plants",
		Date:         "2025-02-01",
		TotalMarks:   20,
		ScoredMarks:  25,
		Term:         models.TermFirst,
		AcademicYear: "2024/2025",
	}, teacher.ID)
	assert.ErrorIs(t, err, ErrScoreExceedsTotal)
}

func TestOverallGradeWithoutAssessments(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssessmentService(
		repository.NewAssessmentRepository(db),
		repository.NewStudentRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewClassRepository(db),
		newTestValidator(),
		testLogger(),
	)

	student := seedStudent(t, db, "Grade 5", true, false)

	_, err := svc.OverallGrade(context.Background(), student.ID)
	assert.ErrorIs(t, err, ErrNoAssessments)

	_, err = svc.OverallGrade(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
