package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/service"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/utils"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseUintQuery(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return uint(parsed), nil
}

func parseDateQuery(c *fiber.Ctx, key string) (time.Time, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errors.New("invalid " + key)
	}
	return parsed, nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// notFoundErrors map onto 404 responses.
var notFoundErrors = []error{
	service.ErrUserNotFound,
	service.ErrStudentNotFound,
	service.ErrClassNotFound,
	service.ErrSubjectNotFound,
	service.ErrTimetableNotFound,
	service.ErrAssessmentNotFound,
	service.ErrAssignmentNotFound,
	service.ErrSubmissionNotFound,
	service.ErrAttendanceNotFound,
	service.ErrEventNotFound,
	service.ErrFeeNotFound,
}

// conflictErrors map onto 409 responses.
var conflictErrors = []error{
	service.ErrEmailTaken,
	service.ErrUserIDTaken,
	service.ErrAdmissionNumberTaken,
	service.ErrClassNameTaken,
	service.ErrSubjectCodeTaken,
	service.ErrTimetableExists,
	service.ErrSessionAlreadyMarked,
	service.ErrFeeAlreadyPaid,
}

// badRequestErrors map onto 400 responses.
var badRequestErrors = []error{
	service.ErrClassTeacherNotSet,
	service.ErrClassOverCapacity,
	service.ErrUnknownStudents,
	service.ErrUnknownSubjects,
	service.ErrNotATeacher,
	service.ErrScoreExceedsTotal,
	service.ErrZeroTotalMarks,
	service.ErrNoAssessments,
	service.ErrAssignmentPastDue,
	service.ErrStudentNotInClass,
	service.ErrEventEndsFirst,
	service.ErrBadAcademicYear,
	service.ErrUploadMissing,
}

// respondServiceError translates domain failures into HTTP responses.
// Unrecognized errors are logged and answered with a bare 500.
func respondServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	}

	var scheduleErr *service.ScheduleValidationError
	if errors.As(err, &scheduleErr) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.APIResponse{
			Success: false,
			Message: "invalid schedule",
			Data:    fiber.Map{"issues": scheduleErr.Issues},
		})
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidRefreshToken):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrRoleNotGranted):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUploadTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrUploadTypeNotAllowed):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
	}

	for _, known := range notFoundErrors {
		if errors.Is(err, known) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
	}
	for _, known := range conflictErrors {
		if errors.Is(err, known) {
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
