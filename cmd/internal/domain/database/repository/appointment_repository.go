package repository

import (
	"agenda/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const appointmentDetailColumns = "r.id, r.fecha, r.hora, r.disponible, " +
	"r.paciente_id, p.nombre AS paciente_nombre, r.medico_id, m.nombre AS medico_nombre"

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(id int) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appt, err
}

// FindDetailByID returns the joined view of one appointment, or nil when the
// appointment (or its patient or doctor) does not exist.
func (a *DefaultAppointmentRepository) FindDetailByID(id int) (*entity.AppointmentDetail, error) {
	var rows []*entity.AppointmentDetail
	err := a.joined().
		Where("r.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// FindAllDetails lists every appointment with patient and doctor names, most
// recent slot first.
func (a *DefaultAppointmentRepository) FindAllDetails() ([]*entity.AppointmentDetail, error) {
	var rows []*entity.AppointmentDetail
	err := a.joined().
		Order("r.fecha desc").
		Order("r.hora desc").
		Scan(&rows).Error
	return rows, err
}

func (a *DefaultAppointmentRepository) Create(appointment *entity.Appointment) error {
	return a.db.Omit(clause.Associations).Create(appointment).Error
}

func (a *DefaultAppointmentRepository) SetAvailable(id int, available bool) error {
	return a.db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("disponible", available).Error
}

// Update rewrites the mutable fields of an appointment. Matching zero rows is
// not an error.
func (a *DefaultAppointmentRepository) Update(id int, date, time string, patientID, doctorID int) error {
	return a.db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"fecha":       date,
			"hora":        time,
			"paciente_id": patientID,
			"medico_id":   doctorID,
		}).Error
}

func (a *DefaultAppointmentRepository) Delete(id int) error {
	return a.db.Delete(&entity.Appointment{}, id).Error
}

func (a *DefaultAppointmentRepository) joined() *gorm.DB {
	return a.db.Table("reservas AS r").
		Select(appointmentDetailColumns).
		Joins("JOIN pacientes p ON r.paciente_id = p.id").
		Joins("JOIN medicos m ON r.medico_id = m.id")
}
