package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// Assessment domain failures.
var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrScoreExceedsTotal  = errors.New("scored marks cannot exceed total marks")
	ErrZeroTotalMarks     = errors.New("total marks must be greater than zero")
	ErrNoAssessments      = errors.New("student has no assessments")
)

// AssessmentService exposes scored evaluation use cases including grade
// computation.
type AssessmentService interface {
	List(ctx context.Context) ([]models.Assessment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Assessment, error)
	ListBySubject(ctx context.Context, subjectID, classID uint) ([]models.Assessment, error)
	Get(ctx context.Context, id uint) (models.Assessment, error)
	Create(ctx context.Context, payload dto.AssessmentCreateRequest, createdBy uint) (models.Assessment, error)
	Update(ctx context.Context, id uint, payload dto.AssessmentUpdateRequest) (models.Assessment, error)
	Delete(ctx context.Context, id uint) error
	OverallGrade(ctx context.Context, studentID uint) (dto.OverallGradeResponse, error)
}

type assessmentService struct {
	assessments repository.AssessmentRepository
	students    repository.StudentRepository
	subjects    repository.SubjectRepository
	classes     repository.ClassRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssessmentService builds a new assessment service.
func NewAssessmentService(assessments repository.AssessmentRepository, students repository.StudentRepository, subjects repository.SubjectRepository, classes repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) AssessmentService {
	return &assessmentService{
		assessments: assessments,
		students:    students,
		subjects:    subjects,
		classes:     classes,
		validator:   validate,
		logger:      logger.With().Str("component", "assessment_service").Logger(),
	}
}

// ComputeGrade maps a percentage onto the grading scale. The total must be
// positive: a zero denominator is a caller error, never a silent F.
func ComputeGrade(scored, total float64) (dto.GradeResponse, error) {
	if total <= 0 {
		return dto.GradeResponse{}, ErrZeroTotalMarks
	}

	percentage := math.Round(scored/total*100*100) / 100

	var grade, description string
	switch {
	case percentage >= 70:
		grade, description = "A", "Excellent"
	case percentage >= 60:
		grade, description = "B", "Very Good"
	case percentage >= 50:
		grade, description = "C", "Good"
	case percentage >= 45:
		grade, description = "D", "Fair"
	case percentage >= 40:
		grade, description = "E", "Pass"
	default:
		grade, description = "F", "Fail"
	}

	return dto.GradeResponse{Percentage: percentage, Grade: grade, Description: description}, nil
}

func (s *assessmentService) List(ctx context.Context) ([]models.Assessment, error) {
	return s.assessments.List(ctx)
}

func (s *assessmentService) ListByStudent(ctx context.Context, studentID uint) ([]models.Assessment, error) {
	return s.assessments.ListByStudent(ctx, studentID)
}

// ListBySubject lists a subject's assessments, optionally narrowed to one
// class when classID is non-zero.
func (s *assessmentService) ListBySubject(ctx context.Context, subjectID, classID uint) ([]models.Assessment, error) {
	if classID != 0 {
		return s.assessments.ListByClassAndSubject(ctx, classID, subjectID)
	}
	return s.assessments.ListBySubject(ctx, subjectID)
}

func (s *assessmentService) Get(ctx context.Context, id uint) (models.Assessment, error) {
	assessment, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assessment{}, ErrAssessmentNotFound
		}
		return models.Assessment{}, err
	}
	return assessment, nil
}

func (s *assessmentService) Create(ctx context.Context, payload dto.AssessmentCreateRequest, createdBy uint) (models.Assessment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assessment{}, err
	}

	if payload.ScoredMarks > payload.TotalMarks {
		return models.Assessment{}, ErrScoreExceedsTotal
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assessment{}, ErrStudentNotFound
		}
		return models.Assessment{}, err
	}
	if _, err := s.subjects.GetByID(ctx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assessment{}, ErrSubjectNotFound
		}
		return models.Assessment{}, err
	}
	if _, err := s.classes.GetByID(ctx, payload.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assessment{}, ErrClassNotFound
		}
		return models.Assessment{}, err
	}

	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("invalid date: %w", err)
	}

	assessment := models.Assessment{
		StudentID:    payload.StudentID,
		SubjectID:    payload.SubjectID,
		ClassID:      payload.ClassID,
		Type:         payload.Type,
		Title:        payload.Title,
		Date:         date,
		TotalMarks:   payload.TotalMarks,
		ScoredMarks:  payload.ScoredMarks,
		Comments:     payload.Comments,
		Term:         payload.Term,
		AcademicYear: payload.AcademicYear,
	}
	if createdBy != 0 {
		assessment.CreatedByID = &createdBy
	}

	if err := s.assessments.Create(ctx, &assessment); err != nil {
		return models.Assessment{}, err
	}

	s.logger.Info().Uint("assessment_id", assessment.ID).Uint("student_id", assessment.StudentID).Msg("assessment recorded")
	return assessment, nil
}

func (s *assessmentService) Update(ctx context.Context, id uint, payload dto.AssessmentUpdateRequest) (models.Assessment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assessment{}, err
	}

	assessment, err := s.Get(ctx, id)
	if err != nil {
		return models.Assessment{}, err
	}

	if payload.Type != nil {
		assessment.Type = *payload.Type
	}
	if payload.Title != nil {
		assessment.Title = *payload.Title
	}
	if payload.Date != nil {
		date, err := time.Parse(dateLayout, *payload.Date)
		if err != nil {
			return models.Assessment{}, fmt.Errorf("invalid date: %w", err)
		}
		assessment.Date = date
	}
	if payload.TotalMarks != nil {
		assessment.TotalMarks = *payload.TotalMarks
	}
	if payload.ScoredMarks != nil {
		assessment.ScoredMarks = *payload.ScoredMarks
	}
	if payload.Comments != nil {
		assessment.Comments = *payload.Comments
	}
	if payload.Term != nil {
		assessment.Term = *payload.Term
	}

	if assessment.ScoredMarks > assessment.TotalMarks {
		return models.Assessment{}, ErrScoreExceedsTotal
	}

	if err := s.assessments.Update(ctx, &assessment); err != nil {
		return models.Assessment{}, err
	}

	s.logger.Info().Uint("assessment_id", assessment.ID).Msg("assessment updated")
	return assessment, nil
}

func (s *assessmentService) Delete(ctx context.Context, id uint) error {
	if err := s.assessments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssessmentNotFound
		}
		return err
	}

	s.logger.Info().Uint("assessment_id", id).Msg("assessment deleted")
	return nil
}

// OverallGrade aggregates every assessment of a student into per-subject
// totals and one overall grade.
func (s *assessmentService) OverallGrade(ctx context.Context, studentID uint) (dto.OverallGradeResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OverallGradeResponse{}, ErrStudentNotFound
		}
		return dto.OverallGradeResponse{}, err
	}

	assessments, err := s.assessments.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.OverallGradeResponse{}, err
	}
	if len(assessments) == 0 {
		return dto.OverallGradeResponse{}, ErrNoAssessments
	}

	type bucket struct {
		scored float64
		total  float64
	}
	perSubject := make(map[uint]*bucket)
	order := make([]uint, 0)

	var overallScored, overallTotal float64
	for _, assessment := range assessments {
		b, ok := perSubject[assessment.SubjectID]
		if !ok {
			b = &bucket{}
			perSubject[assessment.SubjectID] = b
			order = append(order, assessment.SubjectID)
		}
		b.scored += assessment.ScoredMarks
		b.total += assessment.TotalMarks
		overallScored += assessment.ScoredMarks
		overallTotal += assessment.TotalMarks
	}

	response := dto.OverallGradeResponse{StudentID: studentID}
	for _, subjectID := range order {
		b := perSubject[subjectID]
		grade, err := ComputeGrade(b.scored, b.total)
		if err != nil {
			return dto.OverallGradeResponse{}, err
		}

		name := ""
		if subject, err := s.subjects.GetByID(ctx, subjectID); err == nil {
			name = subject.Name
		}

		response.Subjects = append(response.Subjects, dto.SubjectGrade{
			SubjectID:     subjectID,
			SubjectName:   name,
			TotalMarks:    b.total,
			ScoredMarks:   b.scored,
			GradeResponse: grade,
		})
	}

	overall, err := ComputeGrade(overallScored, overallTotal)
	if err != nil {
		return dto.OverallGradeResponse{}, err
	}
	response.Overall = overall

	return response, nil
}
