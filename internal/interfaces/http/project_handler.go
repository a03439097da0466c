package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
)

// ProjectHandler CRUD de proyectos.
type ProjectHandler struct {
	uc *usecase.ProjectUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// List godoc
// @Summary      Listar proyectos
// @Description  Admin: todos sus proyectos. Client: los asignados.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.ProjectResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ProjectRequest  true  "proyecto"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.ProjectRequest
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
// @Summary      Actualizar proyecto
// @Description  Cambiar la tarifa no altera registros ni facturas existentes.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID del proyecto"
// @Param        body  body  dto.ProjectRequest  true  "proyecto"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.ProjectRequest
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
// @Summary      Eliminar proyecto
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetOwnerID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "proyecto eliminado"})
}
