package repository

import (
	"agenda/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

type DefaultDoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DefaultDoctorRepository {
	return &DefaultDoctorRepository{db: db}
}

func (d *DefaultDoctorRepository) FindByID(id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := d.db.First(&doctor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doctor, err
}

func (d *DefaultDoctorRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := d.db.Model(&entity.Doctor{}).
		Where("nombre = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (d *DefaultDoctorRepository) FindAll() ([]*entity.Doctor, error) {
	var doctors []*entity.Doctor
	err := d.db.Order("id asc").Find(&doctors).Error
	return doctors, err
}

func (d *DefaultDoctorRepository) Save(doctor *entity.Doctor) error {
	return d.db.Save(doctor).Error
}

// SetConnectedByID flips the connected flag. Matching zero rows is not an error.
func (d *DefaultDoctorRepository) SetConnectedByID(id int, connected bool) error {
	return d.db.Model(&entity.Doctor{}).
		Where("id = ?", id).
		Update("conectado", connected).Error
}

func (d *DefaultDoctorRepository) SetConnectedByName(name string, connected bool) error {
	return d.db.Model(&entity.Doctor{}).
		Where("nombre = ?", name).
		Update("conectado", connected).Error
}
