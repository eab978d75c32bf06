package service

import (
	"agenda/cmd/internal/domain/entity"
	"agenda/cmd/internal/utils"
	"agenda/cmd/internal/utils/apierror"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type PatientRepository interface {
	FindByID(id int) (*entity.Patient, error)
	FindByName(name string) (*entity.Patient, error)
	FindAll() ([]*entity.Patient, error)
	Save(patient *entity.Patient) error
}

type PatientRequest struct {
	Name string `json:"nombre" validate:"required,max=100"`
}

type PatientResponse struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

type DefaultPatientService struct {
	PatientRepo PatientRepository
	Validate    *validator.Validate
}

func NewPatientService(patientRepo PatientRepository, validate *validator.Validate) *DefaultPatientService {
	return &DefaultPatientService{PatientRepo: patientRepo, Validate: validate}
}

func (p *DefaultPatientService) RegisterPatient(req *PatientRequest) (*PatientResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		if req.Name == "" {
			return nil, apierror.NameRequiredError
		}
		return nil, apierror.FromValidationError(err)
	}

	patient := &entity.Patient{Name: req.Name}
	if err := p.PatientRepo.Save(patient); err != nil {
		log.Errorf("failed to register patient %q: %v", req.Name, err)
		return nil, apierror.InternalServerError
	}
	return toPatientResponse(patient), nil
}

func (p *DefaultPatientService) GetPatients() ([]*PatientResponse, apierror.ErrorResponse) {
	patients, err := p.PatientRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch all patients: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*PatientResponse, len(patients))
	for i, patient := range patients {
		resp[i] = toPatientResponse(patient)
	}
	return resp, nil
}

func (p *DefaultPatientService) GetPatient(rawId string) (*PatientResponse, apierror.ErrorResponse) {
	id, err := strconv.Atoi(rawId)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError("id", "int")
	}

	patient, err := p.PatientRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to find patient (%d) by id: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if patient == nil {
		return nil, apierror.PatientNotFoundError
	}
	return toPatientResponse(patient), nil
}

// Login is a plain lookup by exact name; there are no credentials.
func (p *DefaultPatientService) Login(req *PatientRequest) (*PatientResponse, apierror.ErrorResponse) {
	// Names are matched exactly as typed, so no sanitising here.
	if req.Name == "" {
		return nil, apierror.NameRequiredError
	}

	patient, err := p.PatientRepo.FindByName(req.Name)
	if err != nil {
		log.Errorf("failed to find patient by name %q: %v", req.Name, err)
		return nil, apierror.InternalServerError
	}

	if patient == nil {
		return nil, apierror.PatientNotFoundError
	}
	return toPatientResponse(patient), nil
}

func toPatientResponse(patient *entity.Patient) *PatientResponse {
	return &PatientResponse{
		ID:   patient.ID,
		Name: patient.Name,
	}
}
