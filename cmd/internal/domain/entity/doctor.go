package entity

type Doctor struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"column:nombre;type:varchar(100);not null;uniqueIndex"`
	Connected bool   `gorm:"column:conectado;not null"`
}

func (Doctor) TableName() string {
	return "medicos"
}
