package routes

import (
	"agenda/cmd/internal/service"
	"agenda/cmd/internal/utils/apierror"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type HistoryService interface {
	AddEntry(req *service.HistoryRequest) (*service.HistoryResponse, apierror.ErrorResponse)
	GetHistory(rawPatientId string) ([]*service.HistoryDetailResponse, apierror.ErrorResponse)
}

type DefaultHistoryRoute struct {
	HistoryService HistoryService
}

func NewHistoryDefault(historyService HistoryService) *DefaultHistoryRoute {
	return &DefaultHistoryRoute{HistoryService: historyService}
}

func (h *DefaultHistoryRoute) GetHistory(c echo.Context) error {
	rawId := strings.TrimSpace(c.Param("pacienteId"))
	if rawId == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("pacienteId"))
	}

	entries, apierr := h.HistoryService.GetHistory(rawId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *DefaultHistoryRoute) CreateEntry(c echo.Context) error {
	var req service.HistoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	entry, apierr := h.HistoryService.AddEntry(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, entry)
}
