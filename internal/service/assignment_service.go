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

// Assignment domain failures.
var (
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrAssignmentPastDue     = errors.New("assignment deadline has passed")
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrSubmissionNotReviewed = errors.New("submission content missing")
)

// AssignmentService exposes assignment and submission use cases.
type AssignmentService interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.Assignment, error)
	ListByClass(ctx context.Context, classID uint) ([]models.Assignment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Assignment, error)
	Get(ctx context.Context, id uint) (models.Assignment, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest) (models.Assignment, error)
	Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (models.Assignment, error)
	Delete(ctx context.Context, id uint) error
	Submit(ctx context.Context, assignmentID uint, payload dto.SubmissionRequest) (models.Submission, error)
	Review(ctx context.Context, assignmentID uint, payload dto.ReviewRequest, reviewerID uint) (models.Submission, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	classes     repository.ClassRepository
	subjects    repository.SubjectRepository
	students    repository.StudentRepository
	users       repository.UserRepository
	events      Publisher
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(assignments repository.AssignmentRepository, classes repository.ClassRepository, subjects repository.SubjectRepository, students repository.StudentRepository, users repository.UserRepository, events Publisher, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		classes:     classes,
		subjects:    subjects,
		students:    students,
		users:       users,
		events:      events,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	return s.assignments.List(ctx)
}

func (s *assignmentService) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Assignment, error) {
	return s.assignments.ListByTeacher(ctx, teacherID)
}

func (s *assignmentService) ListByClass(ctx context.Context, classID uint) ([]models.Assignment, error) {
	return s.assignments.ListByClass(ctx, classID)
}

// ListByStudent returns the assignments issued to any class the student
// belongs to, with submissions narrowed to that student.
func (s *assignmentService) ListByStudent(ctx context.Context, studentID uint) ([]models.Assignment, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	classIDs, err := s.classes.ListIDsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByClasses(ctx, classIDs)
	if err != nil {
		return nil, err
	}

	for i := range assignments {
		own := assignments[i].Submissions[:0]
		for _, submission := range assignments[i].Submissions {
			if submission.StudentID == studentID {
				own = append(own, submission)
			}
		}
		assignments[i].Submissions = own
	}
	return assignments, nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, err
	}

	if _, err := s.classes.GetByID(ctx, payload.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrClassNotFound
		}
		return models.Assignment{}, err
	}
	if _, err := s.subjects.GetByID(ctx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrSubjectNotFound
		}
		return models.Assignment{}, err
	}
	teacher, err := s.users.GetByID(ctx, payload.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrNotATeacher
		}
		return models.Assignment{}, err
	}
	if !teacher.HasRole(models.RoleTeacher) {
		return models.Assignment{}, ErrNotATeacher
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return models.Assignment{}, fmt.Errorf("invalid due date: %w", err)
	}
	if !dueDate.After(s.now()) {
		return models.Assignment{}, fmt.Errorf("due date must be in the future")
	}

	assignment := models.Assignment{
		Title:        payload.Title,
		Description:  payload.Description,
		Formats:      payload.Formats,
		Attachments:  payload.Attachments,
		ClassID:      payload.ClassID,
		SubjectID:    payload.SubjectID,
		TeacherID:    payload.TeacherID,
		DueDate:      dueDate,
		AcademicYear: payload.AcademicYear,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return models.Assignment{}, err
	}

	s.events.Publish(ctx, "assignment.issued", map[string]interface{}{
		"assignment_id": assignment.ID,
		"class_id":      assignment.ClassID,
		"subject_id":    assignment.SubjectID,
		"due_date":      assignment.DueDate,
	})

	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("class_id", assignment.ClassID).Msg("assignment issued")
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, err
	}

	assignment, err := s.Get(ctx, id)
	if err != nil {
		return models.Assignment{}, err
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.Description != nil {
		assignment.Description = *payload.Description
	}
	if payload.Formats != nil {
		assignment.Formats = *payload.Formats
	}
	if payload.Attachments != nil {
		assignment.Attachments = *payload.Attachments
	}
	if payload.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *payload.DueDate)
		if err != nil {
			return models.Assignment{}, fmt.Errorf("invalid due date: %w", err)
		}
		assignment.DueDate = dueDate
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return models.Assignment{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("assignment updated")
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	s.logger.Info().Uint("assignment_id", id).Msg("assignment deleted")
	return nil
}

// Submit stores a student's answer. Submitting again before the deadline
// replaces the earlier content; after the deadline every submission is
// rejected.
func (s *assignmentService) Submit(ctx context.Context, assignmentID uint, payload dto.SubmissionRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	assignment, err := s.Get(ctx, assignmentID)
	if err != nil {
		return models.Submission{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrStudentNotFound
		}
		return models.Submission{}, err
	}

	now := s.now()
	if assignment.IsPastDue(now) {
		return models.Submission{}, ErrAssignmentPastDue
	}

	submission, err := s.assignments.GetSubmission(ctx, assignmentID, payload.StudentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Submission{}, err
	}

	submission.AssignmentID = assignmentID
	submission.StudentID = payload.StudentID
	submission.Content = payload.Content
	submission.SubmittedAt = now
	submission.Status = models.SubmissionStatusSubmitted

	if err := s.assignments.SaveSubmission(ctx, &submission); err != nil {
		return models.Submission{}, err
	}

	s.logger.Info().Uint("assignment_id", assignmentID).Uint("student_id", payload.StudentID).Msg("submission stored")
	return submission, nil
}

// Review stamps teacher feedback on a submission and records the companion
// assessment, both inside one transaction.
func (s *assignmentService) Review(ctx context.Context, assignmentID uint, payload dto.ReviewRequest, reviewerID uint) (models.Submission, error) {
	tracer := otel.Tracer("github.com/Ahmadlawal020/schoolmanagementbe/internal/service/assignment")
	ctx, span := tracer.Start(ctx, "assignment.review")
	span.SetAttributes(
		attribute.Int64("assignment.id", int64(assignmentID)),
		attribute.Int64("assignment.student_id", int64(payload.StudentID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return models.Submission{}, err
	}

	if payload.ScoredMarks > payload.TotalMarks {
		err := ErrScoreExceedsTotal
		span.RecordError(err)
		span.SetStatus(codes.Error, "score_exceeds_total")
		return models.Submission{}, err
	}

	assignment, err := s.Get(ctx, assignmentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "assignment_lookup_failed")
		return models.Submission{}, err
	}

	submission, err := s.assignments.GetSubmission(ctx, assignmentID, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return models.Submission{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		return models.Submission{}, err
	}

	grade, err := ComputeGrade(payload.ScoredMarks, payload.TotalMarks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_computation_failed")
		return models.Submission{}, err
	}

	now := s.now()
	assessment := models.Assessment{
		StudentID:    payload.StudentID,
		SubjectID:    assignment.SubjectID,
		ClassID:      assignment.ClassID,
		Type:         models.AssessmentTypeAssignment,
		Title:        assignment.Title,
		Date:         now,
		TotalMarks:   payload.TotalMarks,
		ScoredMarks:  payload.ScoredMarks,
		Comments:     payload.Comments,
		Term:         payload.Term,
		AcademicYear: assignment.AcademicYear,
	}
	if reviewerID != 0 {
		assessment.CreatedByID = &reviewerID
	}

	scored := payload.ScoredMarks
	total := payload.TotalMarks
	submission.FeedbackComments = payload.Comments
	submission.FeedbackGrade = grade.Grade
	submission.ScoredMarks = &scored
	submission.TotalMarks = &total
	submission.ReviewedAt = &now
	submission.Status = models.SubmissionStatusReviewed

	if err := s.assignments.ReviewSubmission(ctx, &submission, &assessment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "review_persist_failed")
		return models.Submission{}, err
	}

	s.events.Publish(ctx, "submission.reviewed", map[string]interface{}{
		"assignment_id": assignmentID,
		"student_id":    payload.StudentID,
		"grade":         grade.Grade,
	})

	s.logger.Info().
		Uint("assignment_id", assignmentID).
		Uint("student_id", payload.StudentID).
		Str("grade", grade.Grade).
		Msg("submission reviewed")
	return submission, nil
}
