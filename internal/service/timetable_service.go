package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// Timetable domain failures.
var (
	ErrTimetableNotFound = errors.New("timetable not found")
	ErrTimetableExists   = errors.New("class already has a timetable")
)

const teacherScheduleKeyPrefix = "schedule:teacher:"

// ScheduleValidationError aggregates every problem found in a submitted
// weekly schedule.
type ScheduleValidationError struct {
	Issues []dto.ScheduleIssue
}

func (e *ScheduleValidationError) Error() string {
	messages := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		messages = append(messages, issue.Message)
	}
	return "invalid schedule: " + strings.Join(messages, "; ")
}

// TimetableService exposes weekly schedule use cases.
type TimetableService interface {
	List(ctx context.Context, classID uint) ([]models.Timetable, error)
	Get(ctx context.Context, id uint) (models.Timetable, error)
	Create(ctx context.Context, payload dto.TimetableCreateRequest) (models.Timetable, error)
	Update(ctx context.Context, id uint, payload dto.TimetableUpdateRequest) (models.Timetable, error)
	Delete(ctx context.Context, id uint) error
	TeacherSchedule(ctx context.Context, teacherID uint) (dto.TeacherScheduleResponse, error)
}

type timetableService struct {
	timetables repository.TimetableRepository
	classes    repository.ClassRepository
	subjects   repository.SubjectRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewTimetableService builds a new timetable service. The cache client may
// be nil, in which case teacher views are computed on every call.
func NewTimetableService(timetables repository.TimetableRepository, classes repository.ClassRepository, subjects repository.SubjectRepository, cache *redis.Client, cacheTTL time.Duration, validate *validator.Validate, logger zerolog.Logger) TimetableService {
	return &timetableService{
		timetables: timetables,
		classes:    classes,
		subjects:   subjects,
		cache:      cache,
		cacheTTL:   cacheTTL,
		validator:  validate,
		logger:     logger.With().Str("component", "timetable_service").Logger(),
	}
}

func (s *timetableService) List(ctx context.Context, classID uint) ([]models.Timetable, error) {
	return s.timetables.List(ctx, classID)
}

func (s *timetableService) Get(ctx context.Context, id uint) (models.Timetable, error) {
	timetable, err := s.timetables.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Timetable{}, ErrTimetableNotFound
		}
		return models.Timetable{}, err
	}
	return timetable, nil
}

func (s *timetableService) Create(ctx context.Context, payload dto.TimetableCreateRequest) (models.Timetable, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Timetable{}, err
	}

	if _, err := s.classes.GetByID(ctx, payload.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Timetable{}, ErrClassNotFound
		}
		return models.Timetable{}, err
	}

	if exists, err := s.timetables.ExistsForClass(ctx, payload.ClassID); err != nil {
		return models.Timetable{}, err
	} else if exists {
		return models.Timetable{}, ErrTimetableExists
	}

	days, err := s.buildSchedule(ctx, payload.Schedule)
	if err != nil {
		return models.Timetable{}, err
	}

	timetable := models.Timetable{ClassID: payload.ClassID, Days: days}
	if err := s.timetables.Create(ctx, &timetable); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Timetable{}, ErrTimetableExists
		}
		return models.Timetable{}, err
	}

	s.invalidateTeacherViews(ctx)
	s.logger.Info().Uint("timetable_id", timetable.ID).Uint("class_id", timetable.ClassID).Msg("timetable created")
	return s.Get(ctx, timetable.ID)
}

func (s *timetableService) Update(ctx context.Context, id uint, payload dto.TimetableUpdateRequest) (models.Timetable, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Timetable{}, err
	}

	timetable, err := s.Get(ctx, id)
	if err != nil {
		return models.Timetable{}, err
	}

	days, err := s.buildSchedule(ctx, payload.Schedule)
	if err != nil {
		return models.Timetable{}, err
	}

	if err := s.timetables.ReplaceSchedule(ctx, &timetable, days); err != nil {
		return models.Timetable{}, err
	}

	s.invalidateTeacherViews(ctx)
	s.logger.Info().Uint("timetable_id", timetable.ID).Msg("timetable updated")
	return s.Get(ctx, timetable.ID)
}

func (s *timetableService) Delete(ctx context.Context, id uint) error {
	if err := s.timetables.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimetableNotFound
		}
		return err
	}

	s.invalidateTeacherViews(ctx)
	s.logger.Info().Uint("timetable_id", id).Msg("timetable deleted")
	return nil
}

// buildSchedule validates the submitted schedule and converts it into the
// persisted day/period graph. All problems are collected before reporting so
// the caller sees every offender at once.
func (s *timetableService) buildSchedule(ctx context.Context, schedule []dto.DayInput) ([]models.DaySchedule, error) {
	issues := make([]dto.ScheduleIssue, 0)

	if len(schedule) == 0 {
		issues = append(issues, dto.ScheduleIssue{Message: "schedule must contain at least one day"})
		return nil, &ScheduleValidationError{Issues: issues}
	}

	seen := make(map[string]bool, len(schedule))
	for _, day := range schedule {
		if seen[day.Day] {
			issues = append(issues, dto.ScheduleIssue{Day: day.Day, Message: fmt.Sprintf("duplicate day %q", day.Day)})
		}
		seen[day.Day] = true
	}
	if len(issues) > 0 {
		return nil, &ScheduleValidationError{Issues: issues}
	}

	for _, day := range schedule {
		if !models.IsWeekday(day.Day) {
			issues = append(issues, dto.ScheduleIssue{Day: day.Day, Message: fmt.Sprintf("invalid day %q", day.Day)})
		}
	}
	if len(issues) > 0 {
		return nil, &ScheduleValidationError{Issues: issues}
	}

	for _, day := range schedule {
		for i, period := range day.Periods {
			switch {
			case period.StartTime == "" || period.EndTime == "" || period.SubjectID == 0:
				issues = append(issues, dto.ScheduleIssue{
					Day:     day.Day,
					Period:  i + 1,
					Message: fmt.Sprintf("%s period %d is missing start time, end time or subject", day.Day, i+1),
				})
			case period.StartTime >= period.EndTime:
				issues = append(issues, dto.ScheduleIssue{
					Day:     day.Day,
					Period:  i + 1,
					Message: fmt.Sprintf("%s period %d must start before it ends", day.Day, i+1),
				})
			}
		}

		// Overlap detection against the slots already past both checks above.
		for i := range day.Periods {
			for j := i + 1; j < len(day.Periods); j++ {
				a, b := day.Periods[i], day.Periods[j]
				if a.StartTime == "" || b.StartTime == "" {
					continue
				}
				if a.StartTime < b.EndTime && b.StartTime < a.EndTime {
					issues = append(issues, dto.ScheduleIssue{
						Day:     day.Day,
						Period:  j + 1,
						Message: fmt.Sprintf("%s period %d overlaps period %d", day.Day, j+1, i+1),
					})
				}
			}
		}
	}
	if len(issues) > 0 {
		return nil, &ScheduleValidationError{Issues: issues}
	}

	days := make([]models.DaySchedule, 0, len(schedule))
	for _, day := range schedule {
		periods := make([]models.Period, 0, len(day.Periods))
		for i, period := range day.Periods {
			if _, err := s.subjects.GetByID(ctx, period.SubjectID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrUnknownSubjects
				}
				return nil, err
			}
			periods = append(periods, models.Period{
				Position:  i + 1,
				StartTime: period.StartTime,
				EndTime:   period.EndTime,
				SubjectID: period.SubjectID,
			})
		}
		days = append(days, models.DaySchedule{Day: day.Day, Periods: periods})
	}
	return days, nil
}

// TeacherSchedule assembles a teacher's weekly view across every class
// timetable, served from the cache when warm.
func (s *timetableService) TeacherSchedule(ctx context.Context, teacherID uint) (dto.TeacherScheduleResponse, error) {
	key := fmt.Sprintf("%s%d", teacherScheduleKeyPrefix, teacherID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var view dto.TeacherScheduleResponse
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return view, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("schedule cache read failed")
		}
	}

	timetables, err := s.timetables.ListWithTeachers(ctx)
	if err != nil {
		return dto.TeacherScheduleResponse{}, err
	}

	view := dto.TeacherScheduleResponse{
		TeacherID: teacherID,
		Days:      make(map[string][]dto.TeacherPeriod),
	}

	for _, timetable := range timetables {
		for _, day := range timetable.Days {
			for _, period := range day.Periods {
				if !taughtBy(period.Subject, teacherID) {
					continue
				}
				view.Days[day.Day] = append(view.Days[day.Day], dto.TeacherPeriod{
					Time:       period.Display(),
					Subject:    period.Subject.Name,
					ClassName:  timetable.Class.ClassName,
					RoomNumber: timetable.Class.RoomNumber,
				})
			}
		}
	}

	for _, periods := range view.Days {
		sort.Slice(periods, func(i, j int) bool { return periods[i].Time < periods[j].Time })
	}

	if s.cache != nil {
		if data, err := json.Marshal(view); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("schedule cache write failed")
			}
		}
	}

	return view, nil
}

func taughtBy(subject models.Subject, teacherID uint) bool {
	for _, teacher := range subject.Teachers {
		if teacher.ID == teacherID {
			return true
		}
	}
	return false
}

// invalidateTeacherViews drops every cached teacher view after a timetable
// mutation.
func (s *timetableService) invalidateTeacherViews(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, teacherScheduleKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn().Err(err).Str("key", iter.Val()).Msg("schedule cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("schedule cache scan failed")
	}
}
