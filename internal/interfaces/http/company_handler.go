package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
)

// CompanyHandler datos del emisor que se copian en las facturas nuevas.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener datos de la empresa
// @Description  Devuelve valores vacíos si aún no se configuraron.
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CompanySettingsResponse
// @Router       /api/settings/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetOwnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Guardar datos de la empresa
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CompanySettingsRequest  true  "datos de la empresa"
// @Success      200   {object}  dto.CompanySettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/company [put]
func (h *CompanyHandler) Upsert(c *fiber.Ctx) error {
	var in dto.CompanySettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Upsert(c.UserContext(), GetOwnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
