package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/service"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/utils"
)

// AttendanceHandler wires register session HTTP routes.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches attendance endpoints to the router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/student/:id/summary", h.studentSummary)
	router.Get("/class/:id/export", h.exportClassSheet)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AttendanceHandler) list(c *fiber.Ctx) error {
	filter, err := h.filterFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	sessions, err := h.service.List(c.Context(), filter)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "attendance retrieved", sessions)
}

func (h *AttendanceHandler) studentSummary(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.service.StudentSummary(c.Context(), studentID, from, to)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "attendance summary computed", summary)
}

func (h *AttendanceHandler) exportClassSheet(c *fiber.Ctx) error {
	classID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	sheet, err := h.service.ExportClassSheet(c.Context(), classID, from, to)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	filename := fmt.Sprintf("attendance-class-%d-%s.xlsx", classID, time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(sheet)
}

func (h *AttendanceHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	session, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "attendance retrieved", session)
}

func (h *AttendanceHandler) create(c *fiber.Ctx) error {
	var payload dto.AttendanceCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Create(c.Context(), payload, userIDFromContext(c))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attendance recorded", session)
}

func (h *AttendanceHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AttendanceUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "attendance corrected", session)
}

func (h *AttendanceHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "attendance deleted", fiber.Map{"id": id})
}

func (h *AttendanceHandler) filterFromQuery(c *fiber.Ctx) (repository.AttendanceFilter, error) {
	classID, err := parseUintQuery(c, "class_id")
	if err != nil {
		return repository.AttendanceFilter{}, err
	}
	studentID, err := parseUintQuery(c, "student_id")
	if err != nil {
		return repository.AttendanceFilter{}, err
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return repository.AttendanceFilter{}, err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return repository.AttendanceFilter{}, err
	}

	return repository.AttendanceFilter{
		ClassID:   classID,
		StudentID: studentID,
		From:      from,
		To:        to,
	}, nil
}
