package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/service"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/utils"
)

// TimetableHandler wires timetable HTTP routes.
type TimetableHandler struct {
	service service.TimetableService
	logger  zerolog.Logger
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(service service.TimetableService, logger zerolog.Logger) *TimetableHandler {
	return &TimetableHandler{
		service: service,
		logger:  logger.With().Str("component", "timetable_handler").Logger(),
	}
}

// Register attaches timetable endpoints to the router group.
func (h *TimetableHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/teacher/:id", h.teacherSchedule)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *TimetableHandler) list(c *fiber.Ctx) error {
	classID, err := parseUintQuery(c, "class_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	timetables, err := h.service.List(c.Context(), classID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "timetables retrieved", timetables)
}

func (h *TimetableHandler) teacherSchedule(c *fiber.Ctx) error {
	teacherID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	view, err := h.service.TeacherSchedule(c.Context(), teacherID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "teacher schedule retrieved", view)
}

func (h *TimetableHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	timetable, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "timetable retrieved", timetable)
}

func (h *TimetableHandler) create(c *fiber.Ctx) error {
	var payload dto.TimetableCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	timetable, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "timetable created", timetable)
}

func (h *TimetableHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TimetableUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	timetable, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "timetable updated", timetable)
}

func (h *TimetableHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "timetable deleted", fiber.Map{"id": id})
}
