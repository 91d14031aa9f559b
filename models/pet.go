package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name    string `gorm:"not null"`
	Species string `gorm:"default:'dog'"`
	Breed   string
	Weight  float64
	Notes   string

	Reservations []Reservation `gorm:"foreignKey:PetID"`

	gorm.Model
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
