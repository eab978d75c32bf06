package entity

type Patient struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"column:nombre;type:varchar(100);not null;index"`
}

func (Patient) TableName() string {
	return "pacientes"
}
