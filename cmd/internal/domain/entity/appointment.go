package entity

type Appointment struct {
	ID        int    `gorm:"primaryKey"`
	PatientID int    `gorm:"column:paciente_id;not null;index"` // References: pacientes(id)
	DoctorID  int    `gorm:"column:medico_id;not null;index"`   // References: medicos(id)
	Date      string `gorm:"column:fecha;not null"`
	Time      string `gorm:"column:hora;not null"`
	Available bool   `gorm:"column:disponible;not null"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID;references:ID"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;references:ID"`
}

func (Appointment) TableName() string {
	return "reservas"
}

// AppointmentDetail is an appointment row joined with its patient and doctor names.
type AppointmentDetail struct {
	ID          int    `gorm:"column:id"`
	Date        string `gorm:"column:fecha"`
	Time        string `gorm:"column:hora"`
	Available   bool   `gorm:"column:disponible"`
	PatientID   int    `gorm:"column:paciente_id"`
	PatientName string `gorm:"column:paciente_nombre"`
	DoctorID    int    `gorm:"column:medico_id"`
	DoctorName  string `gorm:"column:medico_nombre"`
}
