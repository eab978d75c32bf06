package service

import (
	"agenda/cmd/internal/domain/entity"
	"agenda/cmd/internal/integration/push"
	"agenda/cmd/internal/utils"
	"agenda/cmd/internal/utils/apierror"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const (
	fallbackDoctorName  = "Médico"
	fallbackPatientName = "Paciente"
)

type AppointmentRepository interface {
	FindDetailByID(id int) (*entity.AppointmentDetail, error)
	FindAllDetails() ([]*entity.AppointmentDetail, error)
	Create(appointment *entity.Appointment) error
	SetAvailable(id int, available bool) error
	Update(id int, date, time string, patientID, doctorID int) error
	Delete(id int) error
}

// Notifier hands a notification off for best-effort delivery. It must not
// block and has no way to report failure back to the caller.
type Notifier interface {
	Notify(sub *entity.PushSubscription, n *push.Notification)
}

type AppointmentRequest struct {
	PatientID utils.ID `json:"paciente_id" validate:"required"`
	DoctorID  utils.ID `json:"medico_id" validate:"required"`
	Date      string   `json:"fecha" validate:"required"`
	Time      string   `json:"hora" validate:"required"`
}

type AppointmentUpdateRequest struct {
	PatientID utils.ID `json:"paciente_id" validate:"required"`
	DoctorID  utils.ID `json:"medico_id" validate:"required"`
	Date      string   `json:"fecha" validate:"required"`
	Time      string   `json:"hora" validate:"required"`
	Notify    bool     `json:"notificar"`
}

type AvailabilityRequest struct {
	Available *bool `json:"disponible" validate:"required"`
}

type AppointmentRecord struct {
	ID        int    `json:"id"`
	PatientID int    `json:"paciente_id"`
	DoctorID  int    `json:"medico_id"`
	Date      string `json:"fecha"`
	Time      string `json:"hora"`
	Available bool   `json:"disponible"`
}

type PersonRef struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

type AppointmentResponse struct {
	ID        int        `json:"id"`
	Date      string     `json:"fecha"`
	Time      string     `json:"hora"`
	Available bool       `json:"disponible"`
	Patient   *PersonRef `json:"paciente"`
	Doctor    *PersonRef `json:"medico"`
}

type AppointmentUpdateResponse struct {
	Doctor  string `json:"medico"`
	Patient string `json:"paciente"`
	Date    string `json:"fecha"`
	Time    string `json:"hora"`
}

type DefaultAppointmentService struct {
	AppointmentRepo  AppointmentRepository
	DoctorRepo       DoctorRepository
	PatientRepo      PatientRepository
	SubscriptionRepo SubscriptionRepository
	Notifier         Notifier
	Validate         *validator.Validate
}

func NewAppointmentService(
	apptRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	patientRepo PatientRepository,
	subRepo SubscriptionRepository,
	notifier Notifier,
	validate *validator.Validate,
) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		AppointmentRepo:  apptRepo,
		DoctorRepo:       doctorRepo,
		PatientRepo:      patientRepo,
		SubscriptionRepo: subRepo,
		Notifier:         notifier,
		Validate:         validate,
	}
}

func (a *DefaultAppointmentService) CreateAppointment(req *AppointmentRequest) (*AppointmentRecord, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.MissingDataError
	}

	appointment := &entity.Appointment{
		PatientID: req.PatientID.Int(),
		DoctorID:  req.DoctorID.Int(),
		Date:      req.Date,
		Time:      req.Time,
		Available: true,
	}

	err := a.AppointmentRepo.Create(appointment)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil, missingReference(a.PatientRepo, a.DoctorRepo, appointment.PatientID, appointment.DoctorID)
	}
	if err != nil {
		log.Errorf("failed to create appointment for patient %d with doctor %d: %v",
			appointment.PatientID, appointment.DoctorID, err)
		return nil, apierror.InternalServerError
	}
	return toAppointmentRecord(appointment), nil
}

func (a *DefaultAppointmentService) GetAppointments() ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := a.AppointmentRepo.FindAllDetails()
	if err != nil {
		log.Errorf("failed to fetch appointments: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		resp[i] = toAppointmentResponse(appt)
	}
	return resp, nil
}

func (a *DefaultAppointmentService) GetAppointment(id int) (*AppointmentResponse, apierror.ErrorResponse) {
	appt, err := a.AppointmentRepo.FindDetailByID(id)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if appt == nil {
		return nil, apierror.AppointmentNotFoundError
	}
	return toAppointmentResponse(appt), nil
}

// SetAvailability does not check that the appointment exists; an unknown id
// is a no-op.
func (a *DefaultAppointmentService) SetAvailability(id int, req *AvailabilityRequest) apierror.ErrorResponse {
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	if err := a.AppointmentRepo.SetAvailable(id, *req.Available); err != nil {
		log.Errorf("failed to set availability of appointment %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// UpdateAppointment rewrites the appointment and, when asked to, queues a push
// notification for the patient. The update, the name lookups and the
// notification are independent steps: a missing doctor or patient yields a
// generic label, and delivery problems are never reported to the caller.
func (a *DefaultAppointmentService) UpdateAppointment(id int, req *AppointmentUpdateRequest) (*AppointmentUpdateResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.MissingDataError
	}

	patientID, doctorID := req.PatientID.Int(), req.DoctorID.Int()
	err := a.AppointmentRepo.Update(id, req.Date, req.Time, patientID, doctorID)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil, missingReference(a.PatientRepo, a.DoctorRepo, patientID, doctorID)
	}
	if err != nil {
		log.Errorf("failed to update appointment %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	doctorName, apierr := a.doctorName(doctorID)
	if apierr != nil {
		return nil, apierr
	}

	patientName, apierr := a.patientName(patientID)
	if apierr != nil {
		return nil, apierr
	}

	if req.Notify {
		a.notifyPatient(patientID, push.NewAppointmentUpdated(patientName, doctorName, req.Date, req.Time))
	}

	return &AppointmentUpdateResponse{
		Doctor:  doctorName,
		Patient: patientName,
		Date:    req.Date,
		Time:    req.Time,
	}, nil
}

// DeleteAppointment succeeds whether or not the appointment existed.
func (a *DefaultAppointmentService) DeleteAppointment(id int) apierror.ErrorResponse {
	if err := a.AppointmentRepo.Delete(id); err != nil {
		log.Errorf("failed to delete appointment %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func (a *DefaultAppointmentService) doctorName(id int) (string, apierror.ErrorResponse) {
	doctor, err := a.DoctorRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch doctor %d: %v", id, err)
		return "", apierror.InternalServerError
	}

	if doctor == nil || doctor.Name == "" {
		return fallbackDoctorName, nil
	}
	return doctor.Name, nil
}

func (a *DefaultAppointmentService) patientName(id int) (string, apierror.ErrorResponse) {
	patient, err := a.PatientRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch patient %d: %v", id, err)
		return "", apierror.InternalServerError
	}

	if patient == nil || patient.Name == "" {
		return fallbackPatientName, nil
	}
	return patient.Name, nil
}

func (a *DefaultAppointmentService) notifyPatient(patientID int, n *push.Notification) {
	if a.Notifier == nil || a.SubscriptionRepo == nil {
		return
	}

	sub, err := a.SubscriptionRepo.Get(patientID)
	if err != nil {
		log.Errorf("failed to look up push subscription for patient %d: %v", patientID, err)
		return
	}

	if sub == nil {
		log.Debugf("patient %d has no push subscription, skipping notification", patientID)
		return
	}
	a.Notifier.Notify(sub, n)
}

func toAppointmentRecord(appt *entity.Appointment) *AppointmentRecord {
	return &AppointmentRecord{
		ID:        appt.ID,
		PatientID: appt.PatientID,
		DoctorID:  appt.DoctorID,
		Date:      appt.Date,
		Time:      appt.Time,
		Available: appt.Available,
	}
}

func toAppointmentResponse(appt *entity.AppointmentDetail) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        appt.ID,
		Date:      appt.Date,
		Time:      appt.Time,
		Available: appt.Available,
		Patient:   &PersonRef{ID: appt.PatientID, Name: appt.PatientName},
		Doctor:    &PersonRef{ID: appt.DoctorID, Name: appt.DoctorName},
	}
}
