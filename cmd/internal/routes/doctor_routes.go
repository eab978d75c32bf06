package routes

import (
	"agenda/cmd/internal/service"
	"agenda/cmd/internal/utils/apierror"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type DoctorService interface {
	RegisterDoctor(req *service.DoctorRequest) (*service.DoctorResponse, apierror.ErrorResponse)
	GetDoctors() ([]*service.DoctorResponse, apierror.ErrorResponse)
	LoginByID(id int) apierror.ErrorResponse
	LogoutByID(id int) apierror.ErrorResponse
	LoginByName(name string) apierror.ErrorResponse
	LogoutByName(name string) apierror.ErrorResponse
}

type DefaultDoctorRoute struct {
	DoctorService DoctorService
}

func NewDoctorDefault(doctorService DoctorService) *DefaultDoctorRoute {
	return &DefaultDoctorRoute{DoctorService: doctorService}
}

func (d *DefaultDoctorRoute) CreateDoctor(c echo.Context) error {
	var req service.DoctorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	doctor, apierr := d.DoctorService.RegisterDoctor(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (d *DefaultDoctorRoute) GetDoctors(c echo.Context) error {
	doctors, apierr := d.DoctorService.GetDoctors()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, doctors)
}

func (d *DefaultDoctorRoute) Login(c echo.Context) error {
	return d.session(c, d.DoctorService.LoginByID, d.DoctorService.LoginByName, "Médico conectado")
}

func (d *DefaultDoctorRoute) Logout(c echo.Context) error {
	return d.session(c, d.DoctorService.LogoutByID, d.DoctorService.LogoutByName, "Médico desconectado")
}

// session accepts both body shapes the clients send: {"id": ...} or
// {"nombre": ...}.
func (d *DefaultDoctorRoute) session(
	c echo.Context,
	byID func(int) apierror.ErrorResponse,
	byName func(string) apierror.ErrorResponse,
	message string,
) error {
	var req service.DoctorSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	var apierr apierror.ErrorResponse
	name := strings.TrimSpace(req.Name)
	switch {
	case req.ID != 0:
		apierr = byID(req.ID.Int())
	case name != "":
		apierr = byName(name)
	default:
		apierr = apierror.MissingDataError
	}

	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}
