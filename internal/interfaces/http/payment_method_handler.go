package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
)

// PaymentMethodHandler medios de pago del admin.
type PaymentMethodHandler struct {
	uc *billing.PaymentMethodUseCase
}

// NewPaymentMethodHandler construye el handler.
func NewPaymentMethodHandler(uc *billing.PaymentMethodUseCase) *PaymentMethodHandler {
	return &PaymentMethodHandler{uc: uc}
}

// List godoc
// @Summary      Listar medios de pago activos
// @Description  El medio por defecto va primero.
// @Tags         payment-methods
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.PaymentMethodResponse
// @Router       /api/payment-methods [get]
func (h *PaymentMethodHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetOwnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener medio de pago
// @Tags         payment-methods
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del medio de pago"
// @Success      200  {object}  dto.PaymentMethodResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-methods/{id} [get]
func (h *PaymentMethodHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetOwnerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear medio de pago
// @Description  pix (BRL), international / paypal / stripe (USD).
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePaymentMethodRequest  true  "medio de pago"
// @Success      201   {object}  dto.PaymentMethodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payment-methods [post]
func (h *PaymentMethodHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentMethodRequest
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
// @Summary      Actualizar medio de pago (parcial)
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                          true  "ID del medio de pago"
// @Param        body  body  dto.UpdatePaymentMethodRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.PaymentMethodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payment-methods/{id} [patch]
func (h *PaymentMethodHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePaymentMethodRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetOwnerID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar medio de pago
// @Description  Borrado lógico: las facturas que lo usan lo siguen mostrando.
// @Tags         payment-methods
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del medio de pago"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-methods/{id} [delete]
func (h *PaymentMethodHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetOwnerID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "medio de pago eliminado"})
}
