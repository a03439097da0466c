package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
)

// TimeEntryHandler registros de horas.
type TimeEntryHandler struct {
	uc *usecase.TimeEntryUseCase
}

// NewTimeEntryHandler construye el handler.
func NewTimeEntryHandler(uc *usecase.TimeEntryUseCase) *TimeEntryHandler {
	return &TimeEntryHandler{uc: uc}
}

// List godoc
// @Summary      Listar registros de horas
// @Description  Más recientes primero. Client: solo de proyectos asignados.
// @Tags         time-entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.TimeEntryResponse
// @Router       /api/time-entries [get]
func (h *TimeEntryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear registro de horas
// @Description  Copia la tarifa y moneda vigentes del proyecto.
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTimeEntryRequest  true  "registro"
// @Success      201   {object}  dto.TimeEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/time-entries [post]
func (h *TimeEntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTimeEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetOwnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Marcar registro pagado / no pagado
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "ID del registro"
// @Param        body  body  dto.UpdateTimeEntryRequest  true  "paid"
// @Success      200   {object}  dto.TimeEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/time-entries/{id} [patch]
func (h *TimeEntryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTimeEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Paid == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paid es requerido"})
	}
	out, err := h.uc.SetPaid(c.UserContext(), GetOwnerID(c), c.Params("id"), *in.Paid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de horas
// @Description  No permitido si el registro ya fue facturado.
// @Tags         time-entries
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/time-entries/{id} [delete]
func (h *TimeEntryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetOwnerID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "registro eliminado"})
}
