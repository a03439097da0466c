package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido, solo admin).
type InvoiceHandler struct {
	creator   *billing.CreateInvoiceUseCase
	lifecycle *billing.InvoiceUseCase
	documents *billing.DocumentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(creator *billing.CreateInvoiceUseCase, lifecycle *billing.InvoiceUseCase, documents *billing.DocumentUseCase) *InvoiceHandler {
	return &InvoiceHandler{creator: creator, lifecycle: lifecycle, documents: documents}
}

// Create godoc
// @Summary      Generar factura
// @Description  Agrupa los registros no pagados y no facturados de los proyectos en [date_from, date_to].
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "proyectos y rango"
// @Success      201   {object}  dto.CreateInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.creator.CreateInvoice(c.UserContext(), GetOwnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Preview godoc
// @Summary      Previsualizar factura
// @Description  Registros elegibles y totales sin persistir nada.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PreviewInvoiceRequest  true  "proyectos y rango"
// @Success      200   {object}  dto.InvoicePreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.PreviewInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.creator.PreviewInvoice(c.UserContext(), GetOwnerID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Description  Más recientes primero.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.InvoiceSummaryResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.lifecycle.ListInvoices(c.UserContext(), GetOwnerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Detalle de factura
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.lifecycle.GetInvoice(c.UserContext(), GetOwnerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar factura (parcial)
// @Description  En una factura pagada solo se editan notes y external_payment_link.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.lifecycle.UpdateInvoice(c.UserContext(), GetOwnerID(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "factura actualizada"})
}

// Delete godoc
// @Summary      Eliminar factura
// @Description  Solo en estado draft o cancelled.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.lifecycle.DeleteInvoice(c.UserContext(), GetOwnerID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "factura eliminada"})
}

// MarkPaid godoc
// @Summary      Marcar factura pagada
// @Description  Marca la factura y todos sus registros como pagados. Idempotente.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.MarkPaidResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/mark-paid [post]
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	n, err := h.lifecycle.MarkPaid(c.UserContext(), GetOwnerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MarkPaidResponse{
		Success:              true,
		Message:              fmt.Sprintf("factura pagada; %d registros actualizados", n),
		RegistrosAtualizados: n,
	})
}

// DownloadPDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.documents.DownloadInvoicePDF(c.UserContext(), GetOwnerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "application/pdf", filename, data)
}

// DownloadXLSX godoc
// @Summary      Exportar factura a xlsx
// @Tags         invoices
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/xlsx [get]
func (h *InvoiceHandler) DownloadXLSX(c *fiber.Ctx) error {
	data, filename, err := h.documents.ExportInvoiceXLSX(c.UserContext(), GetOwnerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, mimeXLSX, filename, data)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
