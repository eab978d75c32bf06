package repository

import (
	"agenda/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

type DefaultPatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *DefaultPatientRepository {
	return &DefaultPatientRepository{db: db}
}

func (p *DefaultPatientRepository) FindByID(id int) (*entity.Patient, error) {
	var patient entity.Patient
	err := p.db.First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

// FindByName returns the oldest patient with exactly that name. Patient
// names are not unique, so later duplicates are never returned.
func (p *DefaultPatientRepository) FindByName(name string) (*entity.Patient, error) {
	var patient entity.Patient
	err := p.db.Where("nombre = ?", name).Order("id asc").First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

func (p *DefaultPatientRepository) FindAll() ([]*entity.Patient, error) {
	var patients []*entity.Patient
	err := p.db.Order("nombre asc").Order("id asc").Find(&patients).Error
	return patients, err
}

func (p *DefaultPatientRepository) Save(patient *entity.Patient) error {
	return p.db.Save(patient).Error
}
