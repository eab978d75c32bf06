package repository

import (
	"agenda/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultHistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *DefaultHistoryRepository {
	return &DefaultHistoryRepository{db: db}
}

func (h *DefaultHistoryRepository) Create(entry *entity.HistoryEntry) error {
	return h.db.Omit(clause.Associations).Create(entry).Error
}

// FindByPatientID returns a patient's history, newest date first and, within
// the same date, newest entry first.
func (h *DefaultHistoryRepository) FindByPatientID(patientID int) ([]*entity.HistoryDetail, error) {
	var rows []*entity.HistoryDetail
	err := h.db.Table("historial AS h").
		Select("h.id, h.paciente_id, h.medico_id, h.descripcion, h.fecha, " +
			"p.nombre AS paciente_nombre, m.nombre AS medico_nombre").
		Joins("JOIN pacientes p ON h.paciente_id = p.id").
		Joins("JOIN medicos m ON h.medico_id = m.id").
		Where("h.paciente_id = ?", patientID).
		Order("h.fecha desc").
		Order("h.id desc").
		Scan(&rows).Error
	return rows, err
}
