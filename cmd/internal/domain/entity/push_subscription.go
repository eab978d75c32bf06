package entity

// PushSubscription is the browser-issued descriptor used to reach one patient.
// There is at most one per patient; a newer registration replaces the old one.
type PushSubscription struct {
	PatientID int    `gorm:"column:paciente_id;primaryKey;autoIncrement:false"`
	Endpoint  string `gorm:"type:text;not null"`
	P256dh    string `gorm:"column:p256dh;type:text;not null"`
	Auth      string `gorm:"type:text;not null"`
}

func (PushSubscription) TableName() string {
	return "suscripciones"
}
