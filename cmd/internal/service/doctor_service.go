package service

import (
	"agenda/cmd/internal/domain/entity"
	"agenda/cmd/internal/utils"
	"agenda/cmd/internal/utils/apierror"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindByID(id int) (*entity.Doctor, error)
	ExistsByName(name string) (bool, error)
	FindAll() ([]*entity.Doctor, error)
	Save(doctor *entity.Doctor) error
	SetConnectedByID(id int, connected bool) error
	SetConnectedByName(name string, connected bool) error
}

type DoctorRequest struct {
	Name string `json:"nombre" validate:"required,max=100"`
}

// DoctorSessionRequest identifies a doctor either by id or by name. When
// both are present the id wins.
type DoctorSessionRequest struct {
	ID   utils.ID `json:"id"`
	Name string   `json:"nombre"`
}

type DoctorResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"nombre"`
	Connected bool   `json:"conectado"`
}

type DefaultDoctorService struct {
	DoctorRepo DoctorRepository
	Validate   *validator.Validate
}

func NewDoctorService(doctorRepo DoctorRepository, validate *validator.Validate) *DefaultDoctorService {
	return &DefaultDoctorService{DoctorRepo: doctorRepo, Validate: validate}
}

func (d *DefaultDoctorService) RegisterDoctor(req *DoctorRequest) (*DoctorResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := d.Validate.Struct(req); err != nil {
		if req.Name == "" {
			return nil, apierror.NameRequiredError
		}
		return nil, apierror.FromValidationError(err)
	}

	found, err := d.DoctorRepo.ExistsByName(req.Name)
	if err != nil {
		log.Errorf("failed to check if doctor %q exists: %v", req.Name, err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.DoctorNameTakenError
	}

	doctor := &entity.Doctor{Name: req.Name, Connected: false}
	err = d.DoctorRepo.Save(doctor)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race against a concurrent registration of the same name.
		return nil, apierror.DoctorNameTakenError
	}
	if err != nil {
		log.Errorf("failed to save doctor %q: %v", req.Name, err)
		return nil, apierror.InternalServerError
	}
	return toDoctorResponse(doctor), nil
}

func (d *DefaultDoctorService) GetDoctors() ([]*DoctorResponse, apierror.ErrorResponse) {
	doctors, err := d.DoctorRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch all doctors: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp[i] = toDoctorResponse(doctor)
	}
	return resp, nil
}

func (d *DefaultDoctorService) LoginByID(id int) apierror.ErrorResponse {
	return d.setConnectedByID(id, true)
}

func (d *DefaultDoctorService) LogoutByID(id int) apierror.ErrorResponse {
	return d.setConnectedByID(id, false)
}

func (d *DefaultDoctorService) LoginByName(name string) apierror.ErrorResponse {
	return d.setConnectedByName(name, true)
}

func (d *DefaultDoctorService) LogoutByName(name string) apierror.ErrorResponse {
	return d.setConnectedByName(name, false)
}

func (d *DefaultDoctorService) setConnectedByID(id int, connected bool) apierror.ErrorResponse {
	err := d.DoctorRepo.SetConnectedByID(id, connected)
	if err != nil {
		log.Errorf("failed to set doctor %d connected=%t: %v", id, connected, err)
		return apierror.InternalServerError
	}
	return nil
}

func (d *DefaultDoctorService) setConnectedByName(name string, connected bool) apierror.ErrorResponse {
	err := d.DoctorRepo.SetConnectedByName(name, connected)
	if err != nil {
		log.Errorf("failed to set doctor %q connected=%t: %v", name, connected, err)
		return apierror.InternalServerError
	}
	return nil
}

func toDoctorResponse(doctor *entity.Doctor) *DoctorResponse {
	return &DoctorResponse{
		ID:        doctor.ID,
		Name:      doctor.Name,
		Connected: doctor.Connected,
	}
}
