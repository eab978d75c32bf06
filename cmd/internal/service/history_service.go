package service

import (
	"agenda/cmd/internal/domain/entity"
	"agenda/cmd/internal/utils"
	"agenda/cmd/internal/utils/apierror"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	Create(entry *entity.HistoryEntry) error
	FindByPatientID(patientID int) ([]*entity.HistoryDetail, error)
}

// HistoryRequest has no date field on purpose: entries are always stamped
// with the server's current date.
type HistoryRequest struct {
	PatientID   utils.ID `json:"paciente_id" validate:"required"`
	DoctorID    utils.ID `json:"medico_id" validate:"required"`
	Description string   `json:"descripcion" validate:"required"`
}

type HistoryResponse struct {
	ID          int    `json:"id"`
	PatientID   int    `json:"paciente_id"`
	DoctorID    int    `json:"medico_id"`
	Description string `json:"descripcion"`
	Date        string `json:"fecha"`
}

type HistoryDetailResponse struct {
	ID          int    `json:"id"`
	PatientID   int    `json:"paciente_id"`
	DoctorID    int    `json:"medico_id"`
	Description string `json:"descripcion"`
	Date        string `json:"fecha"`
	PatientName string `json:"paciente_nombre"`
	DoctorName  string `json:"medico_nombre"`
}

type DefaultHistoryService struct {
	HistoryRepo HistoryRepository
	PatientRepo PatientRepository
	DoctorRepo  DoctorRepository
	Validate    *validator.Validate
	Today       func() string
}

func NewHistoryService(
	historyRepo HistoryRepository,
	patientRepo PatientRepository,
	doctorRepo DoctorRepository,
	validate *validator.Validate,
) *DefaultHistoryService {
	return &DefaultHistoryService{
		HistoryRepo: historyRepo,
		PatientRepo: patientRepo,
		DoctorRepo:  doctorRepo,
		Validate:    validate,
		Today:       utils.Today,
	}
}

func (h *DefaultHistoryService) AddEntry(req *HistoryRequest) (*HistoryResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := h.Validate.Struct(req); err != nil {
		return nil, apierror.MissingDataError
	}

	entry := &entity.HistoryEntry{
		PatientID:   req.PatientID.Int(),
		DoctorID:    req.DoctorID.Int(),
		Description: req.Description,
		Date:        h.Today(),
	}

	err := h.HistoryRepo.Create(entry)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return nil, missingReference(h.PatientRepo, h.DoctorRepo, entry.PatientID, entry.DoctorID)
	}
	if err != nil {
		log.Errorf("failed to add history entry for patient %d: %v", entry.PatientID, err)
		return nil, apierror.InternalServerError
	}
	return toHistoryResponse(entry), nil
}

func (h *DefaultHistoryService) GetHistory(rawPatientId string) ([]*HistoryDetailResponse, apierror.ErrorResponse) {
	patientID, err := strconv.Atoi(rawPatientId)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError("pacienteId", "int")
	}

	entries, err := h.HistoryRepo.FindByPatientID(patientID)
	if err != nil {
		log.Errorf("failed to fetch history for patient %d: %v", patientID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*HistoryDetailResponse, len(entries))
	for i, entry := range entries {
		resp[i] = &HistoryDetailResponse{
			ID:          entry.ID,
			PatientID:   entry.PatientID,
			DoctorID:    entry.DoctorID,
			Description: entry.Description,
			Date:        entry.Date,
			PatientName: entry.PatientName,
			DoctorName:  entry.DoctorName,
		}
	}
	return resp, nil
}

func toHistoryResponse(entry *entity.HistoryEntry) *HistoryResponse {
	return &HistoryResponse{
		ID:          entry.ID,
		PatientID:   entry.PatientID,
		DoctorID:    entry.DoctorID,
		Description: entry.Description,
		Date:        entry.Date,
	}
}
