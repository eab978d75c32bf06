package routes

import (
	"agenda/cmd/internal/service"
	"agenda/cmd/internal/utils/apierror"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type SubscriptionService interface {
	Register(req *service.SubscriptionRequest) apierror.ErrorResponse
	Unregister(rawPatientId string) apierror.ErrorResponse
	VapidPublicKey() *service.VapidResponse
}

type DefaultSubscriptionRoute struct {
	SubscriptionService SubscriptionService
}

func NewSubscriptionDefault(subService SubscriptionService) *DefaultSubscriptionRoute {
	return &DefaultSubscriptionRoute{SubscriptionService: subService}
}

func (s *DefaultSubscriptionRoute) CreateSubscription(c echo.Context) error {
	var req service.SubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := s.SubscriptionService.Register(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Suscripción guardada"})
}

func (s *DefaultSubscriptionRoute) DeleteSubscription(c echo.Context) error {
	rawId := strings.TrimSpace(c.Param("pacienteId"))
	if rawId == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("pacienteId"))
	}

	apierr := s.SubscriptionService.Unregister(rawId)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Suscripción eliminada"})
}

func (s *DefaultSubscriptionRoute) GetVapidPublicKey(c echo.Context) error {
	return c.JSON(http.StatusOK, s.SubscriptionService.VapidPublicKey())
}
