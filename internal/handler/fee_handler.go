package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/service"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/utils"
)

// FeeHandler wires fee and payment HTTP routes.
type FeeHandler struct {
	service service.FeeService
	logger  zerolog.Logger
}

// NewFeeHandler constructs the handler.
func NewFeeHandler(service service.FeeService, logger zerolog.Logger) *FeeHandler {
	return &FeeHandler{
		service: service,
		logger:  logger.With().Str("component", "fee_handler").Logger(),
	}
}

// Register attaches fee endpoints to the router group.
func (h *FeeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/unpaid/student/:id", h.unpaidForStudent)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/pay", h.pay)
}

func (h *FeeHandler) list(c *fiber.Ctx) error {
	fees, err := h.service.List(c.Context())
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "fees retrieved", fees)
}

func (h *FeeHandler) unpaidForStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	fees, err := h.service.UnpaidForStudent(c.Context(), studentID, strings.TrimSpace(c.Query("grade_level")))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "unpaid fees retrieved", fees)
}

func (h *FeeHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	fee, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "fee retrieved", fee)
}

func (h *FeeHandler) create(c *fiber.Ctx) error {
	var payload dto.FeeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	fee, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "fee created", fee)
}

func (h *FeeHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.FeeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	fee, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "fee updated", fee)
}

func (h *FeeHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "fee deleted", fiber.Map{"id": id})
}

func (h *FeeHandler) pay(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.PaymentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	payment, err := h.service.Pay(c.Context(), id, payload)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "payment recorded", payment)
}
