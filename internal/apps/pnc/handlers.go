package pnc

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/pdfform"
)

type ReportHandler struct {
	service *ReportService
	export  *ExportService
}

func NewReportHandler(service *ReportService, export *ExportService) *ReportHandler {
	return &ReportHandler{service: service, export: export}
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Message: message})
}

// reportError maps service errors to responses; fallback is the 500 message.
func reportError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrReportNotFound):
		return errorResponse(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	slog.Error(fallback, "error", err, "path", c.Path())
	return errorResponse(c, fiber.StatusInternalServerError, fallback)
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.service.List()
	if err != nil {
		return reportError(c, err, "Failed to fetch reports")
	}
	return c.JSON(ListResponse{Success: true, Reports: reports})
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	report, err := h.service.Get(c.Params("id"))
	if err != nil {
		return reportError(c, err, "Failed to fetch report")
	}
	return c.JSON(ReportResponse{Success: true, Report: report})
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req ReportFields
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.service.Create(req)
	if err != nil {
		return reportError(c, err, "Failed to create report")
	}
	return c.Status(fiber.StatusCreated).JSON(ReportResponse{Success: true, Report: report})
}

func (h *ReportHandler) Update(c *fiber.Ctx) error {
	var req ReportFields
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.service.Update(c.Params("id"), req)
	if err != nil {
		return reportError(c, err, "Failed to update report")
	}
	return c.JSON(ReportResponse{Success: true, Report: report})
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return reportError(c, err, "Failed to delete report")
	}
	return c.JSON(MessageResponse{Success: true, Message: "Report deleted successfully"})
}

func (h *ReportHandler) Metrics(c *fiber.Ctx) error {
	period, err := metrics.ParsePeriod(c.Query("period"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.service.Metrics(period)
	if err != nil {
		return reportError(c, err, "Failed to compute metrics")
	}
	return c.JSON(MetricsResponse{Success: true, Metrics: summary})
}

func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary()
	if err != nil {
		return reportError(c, err, "Failed to compute summary")
	}
	return c.JSON(SummaryResponse{Success: true, Summary: *summary})
}

func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	name, doc, err := h.export.ReportPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return reportError(c, err, "Failed to render report")
	}
	return sendFile(c, "application/pdf", name, doc)
}

func (h *ReportHandler) BundlePDF(c *fiber.Ctx) error {
	var req BundleRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	name, doc, err := h.export.BundlePDF(c.UserContext(), req.IDs)
	if err != nil {
		if errors.Is(err, pdfform.ErrNoDocuments) {
			return errorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		return reportError(c, err, "Failed to render reports")
	}
	return sendFile(c, "application/pdf", name, doc)
}

func (h *ReportHandler) XLSX(c *fiber.Ctx) error {
	period, err := metrics.ParsePeriod(c.Query("period"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	name, data, err := h.export.Workbook(period)
	if err != nil {
		return reportError(c, err, "Failed to export reports")
	}
	return sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", name, data)
}

func sendFile(c *fiber.Ctx, contentType, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}
