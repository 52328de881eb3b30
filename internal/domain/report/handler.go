package report

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/renaltrack/renaltrack/internal/domain/patient"
	"github.com/renaltrack/renaltrack/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/report", h.DownloadReport)
	api.GET("/patients/:id/lab-export", h.ExportLabResults)
}

func (h *Handler) DownloadReport(c echo.Context) error {
	data, err := h.buildData(c)
	if err != nil {
		return err
	}

	pdfBytes, err := RenderPDF(data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+data.Filename()+`"`)
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) ExportLabResults(c echo.Context) error {
	data, err := h.buildData(c)
	if err != nil {
		return err
	}

	xlsxBytes, err := RenderLabWorkbook(data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+data.LabExportFilename()+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsxBytes)
}

func (h *Handler) buildData(c echo.Context) (*Data, error) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	identity, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	data, err := h.svc.Build(c.Request().Context(), patientID, identity)
	switch {
	case errors.Is(err, patient.ErrNotFound):
		return nil, echo.NewHTTPError(http.StatusNotFound, patient.ErrNotFound.Error())
	case err != nil:
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return data, nil
}
