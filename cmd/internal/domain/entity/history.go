package entity

// HistoryEntry is a note a doctor attaches to a patient's record. Rows are
// never updated once written.
type HistoryEntry struct {
	ID          int    `gorm:"primaryKey"`
	PatientID   int    `gorm:"column:paciente_id;not null;index"` // References: pacientes(id)
	DoctorID    int    `gorm:"column:medico_id;not null"`         // References: medicos(id)
	Description string `gorm:"column:descripcion;type:text;not null"`
	Date        string `gorm:"column:fecha;not null"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID;references:ID"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;references:ID"`
}

func (HistoryEntry) TableName() string {
	return "historial"
}

type HistoryDetail struct {
	ID          int    `gorm:"column:id"`
	PatientID   int    `gorm:"column:paciente_id"`
	DoctorID    int    `gorm:"column:medico_id"`
	Description string `gorm:"column:descripcion"`
	Date        string `gorm:"column:fecha"`
	PatientName string `gorm:"column:paciente_nombre"`
	DoctorName  string `gorm:"column:medico_nombre"`
}
