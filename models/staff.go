package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff is a groomer that can be booked. Exactly one row normally carries
// UnlimitedCapacity: the pool identity for bookings nobody has claimed yet.
// It is a first-class flag, never inferred from the name.
type Staff struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`

	Name              string `gorm:"not null"`
	Phone             string
	IsActive          bool `gorm:"default:true"`
	UnlimitedCapacity bool `gorm:"default:false"`

	Reservations []Reservation `gorm:"foreignKey:StaffID"`

	gorm.Model
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
