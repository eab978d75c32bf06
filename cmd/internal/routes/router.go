package routes

import (
	"agenda/cmd/internal/utils/apierror"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type Routes struct {
	Appointments  *DefaultAppointmentRoute
	Doctors       *DefaultDoctorRoute
	Patients      *DefaultPatientRoute
	History       *DefaultHistoryRoute
	Subscriptions *DefaultSubscriptionRoute
	System        *DefaultSystemRoute
}

type ServerOptions struct {
	// LoginRateLimit is the sustained requests per second allowed per client
	// on the login endpoints. Zero disables limiting.
	LoginRateLimit float64
	RequestLog     bool
}

// NewServer builds the echo instance with every route of the booking API.
func NewServer(r *Routes, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if opts.RequestLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.CORS())

	loginLimit := loginLimiter(opts.LoginRateLimit)

	// Push subscriptions
	e.POST("/suscripcion", r.Subscriptions.CreateSubscription)
	e.DELETE("/suscripcion/:pacienteId", r.Subscriptions.DeleteSubscription)
	e.GET("/vapidPublicKey", r.Subscriptions.GetVapidPublicKey)

	// Appointments
	e.GET("/reservas", r.Appointments.GetAppointments)
	e.POST("/reservas", r.Appointments.CreateAppointment)
	e.GET("/reservas/:id", r.Appointments.GetAppointment)
	e.PUT("/reservas/:id", r.Appointments.UpdateAppointment)
	e.PUT("/reservas/:id/disponibilidad", r.Appointments.SetAvailability)
	e.DELETE("/reservas/:id", r.Appointments.DeleteAppointment)

	// Doctors
	e.GET("/medicos", r.Doctors.GetDoctors)
	e.POST("/medicos", r.Doctors.CreateDoctor)
	e.POST("/medicos/login", r.Doctors.Login, loginLimit...)
	e.POST("/medicos/logout", r.Doctors.Logout)

	// Patients
	e.GET("/pacientes", r.Patients.GetPatients)
	e.POST("/pacientes", r.Patients.CreatePatient)
	e.GET("/pacientes/:id", r.Patients.GetPatient)
	e.POST("/pacientes/login", r.Patients.Login, loginLimit...)

	// History
	e.GET("/historial/:pacienteId", r.History.GetHistory)
	e.POST("/historial", r.History.CreateEntry)

	e.GET("/health", r.System.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

func loginLimiter(rps float64) []echo.MiddlewareFunc {
	if rps <= 0 {
		return nil
	}

	burst := int(rps * 2)
	if burst < 1 {
		burst = 1
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return []echo.MiddlewareFunc{middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, apierror.NewSimple(http.StatusForbidden, "No se pudo identificar al cliente"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(apierror.TooManyRequestsError.Code(), apierror.TooManyRequestsError)
		},
	})}
}
