package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "pending"
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationInProgress ReservationStatus = "in_progress"
	ReservationCompleted  ReservationStatus = "completed"
	ReservationCancelled  ReservationStatus = "cancelled"
	ReservationNoShow     ReservationStatus = "no_show"
)

// BlocksSchedule reports whether a reservation in this state still occupies
// its staff member's time slot.
func (s ReservationStatus) BlocksSchedule() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationInProgress:
		return true
	}
	return false
}

func (s ReservationStatus) Terminal() bool {
	switch s {
	case ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`

	// Code is the human-readable identifier, RES-YYMMDD-NNNN.
	Code string `gorm:"uniqueIndex;not null"`

	PetID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Pet     Pet       `gorm:"foreignKey:PetID"`
	StaffID uuid.UUID `gorm:"type:uuid;index;not null"`
	Staff   Staff     `gorm:"foreignKey:StaffID"`

	StartsAt        time.Time         `gorm:"index;not null"`
	DurationMinutes int               `gorm:"not null"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes           string

	Items []ReservationItem `gorm:"foreignKey:ReservationID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// EndsAt is the exclusive end of the occupied slot.
func (r *Reservation) EndsAt() time.Time {
	return r.StartsAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// ReservationItem snapshots a billable service at booking time. UnitPrice is
// copied from the catalog when the reservation is created, not read live.
type ReservationItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ReservationID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceName   string          `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity      int             `gorm:"default:1"`
}

func (i *ReservationItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
