// services/reservation.go
package services

import (
	"errors"
	"time"

	"petglow-backend/models"
	"petglow-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PastGrace tolerates small clock skew between clients and the server when
// rejecting bookings in the past.
const PastGrace = 5 * time.Minute

var allowedTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.ReservationPending: {
		models.ReservationConfirmed,
		models.ReservationCancelled,
		models.ReservationNoShow,
	},
	models.ReservationConfirmed: {
		models.ReservationInProgress,
		models.ReservationCancelled,
		models.ReservationNoShow,
	},
	// In-progress work cannot be cancelled; it either completes or goes back
	// to the pool via ReturnToPool.
	models.ReservationInProgress: {
		models.ReservationCompleted,
	},
}

// CanTransition reports whether the lifecycle edge from -> to is legal.
func CanTransition(from, to models.ReservationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type CreateReservationInput struct {
	PetID      uuid.UUID
	StaffID    uuid.UUID
	StartsAt   time.Time
	ServiceIDs []uuid.UUID
	Notes      string
}

// CreateReservation validates the booking request and inserts the reservation
// with its price-snapshot line items. The availability check and the insert
// run in one transaction holding the staff row FOR UPDATE, so two concurrent
// bookings against the same groomer cannot both pass the check.
func CreateReservation(db *gorm.DB, in CreateReservationInput) (*models.Reservation, error) {
	if len(in.ServiceIDs) == 0 {
		return nil, utils.NewValidationError("services", "at least one service is required")
	}
	if in.StartsAt.Before(time.Now().Add(-PastGrace)) {
		return nil, utils.NewValidationError("startsAt", "cannot book in the past")
	}
	if err := validateOperatingWindow(in.StartsAt); err != nil {
		return nil, err
	}

	var pet models.Pet
	if err := db.First(&pet, "id = ?", in.PetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("pet", in.PetID.String())
		}
		return nil, utils.NewPersistenceError("load pet", err)
	}

	var reservation *models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		staff, err := lockStaff(tx, in.StaffID)
		if err != nil {
			return err
		}

		services, err := ResolveServices(tx, in.ServiceIDs)
		if err != nil {
			return err
		}
		minutes := TotalDurationMinutes(services)

		if !staff.UnlimitedCapacity {
			conflict, err := conflictOnDay(tx, staff.ID, in.StartsAt, minutes, uuid.Nil)
			if err != nil {
				return err
			}
			if conflict != nil {
				return utils.NewConflictError("slot unavailable: %s", conflict)
			}
		}

		// Codes are scoped to the booking date, not the slot date: a
		// reservation taken today for next week still reads RES-<today>.
		bookedAt := time.Now()
		seq, err := NextSequence(tx, ReservationScope(bookedAt))
		if err != nil {
			return err
		}

		r := models.Reservation{
			Code:            FormatReservationCode(bookedAt, seq),
			PetID:           pet.ID,
			StaffID:         staff.ID,
			StartsAt:        in.StartsAt,
			DurationMinutes: minutes,
			Status:          models.ReservationPending,
			Notes:           in.Notes,
		}
		for _, s := range services {
			r.Items = append(r.Items, models.ReservationItem{
				ServiceID:   s.ID,
				ServiceName: s.Name,
				UnitPrice:   s.Price,
				Quantity:    1,
			})
		}

		if err := tx.Create(&r).Error; err != nil {
			return utils.NewPersistenceError("create reservation", err)
		}
		reservation = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

type UpdateReservationInput struct {
	PetID      *uuid.UUID
	StaffID    *uuid.UUID
	StartsAt   *time.Time
	ServiceIDs *[]uuid.UUID
	Notes      *string
}

// UpdateReservation re-validates only the fields that changed. Availability
// is always re-checked when staff or timing moved, excluding the
// reservation's own prior interval.
func UpdateReservation(db *gorm.DB, id uuid.UUID, in UpdateReservationInput) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&r, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("reservation", id.String())
			}
			return utils.NewPersistenceError("load reservation", err)
		}
		if r.Status.Terminal() {
			return utils.NewConflictError("reservation %s is %s and cannot be edited", r.Code, r.Status)
		}

		if in.PetID != nil && *in.PetID != r.PetID {
			var pet models.Pet
			if err := tx.First(&pet, "id = ?", *in.PetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NewNotFoundError("pet", in.PetID.String())
				}
				return utils.NewPersistenceError("load pet", err)
			}
			r.PetID = pet.ID
		}

		staffChanged := in.StaffID != nil && *in.StaffID != r.StaffID
		timeChanged := in.StartsAt != nil && !in.StartsAt.Equal(r.StartsAt)
		servicesChanged := in.ServiceIDs != nil

		if timeChanged {
			if in.StartsAt.Before(time.Now().Add(-PastGrace)) {
				return utils.NewValidationError("startsAt", "cannot book in the past")
			}
			if err := validateOperatingWindow(*in.StartsAt); err != nil {
				return err
			}
			r.StartsAt = *in.StartsAt
		}
		if staffChanged {
			r.StaffID = *in.StaffID
		}

		if servicesChanged {
			services, err := ResolveServices(tx, *in.ServiceIDs)
			if err != nil {
				return err
			}
			r.DurationMinutes = TotalDurationMinutes(services)

			if err := tx.Where("reservation_id = ?", r.ID).
				Delete(&models.ReservationItem{}).Error; err != nil {
				return utils.NewPersistenceError("clear reservation items", err)
			}
			r.Items = nil
			for _, s := range services {
				r.Items = append(r.Items, models.ReservationItem{
					ReservationID: r.ID,
					ServiceID:     s.ID,
					ServiceName:   s.Name,
					UnitPrice:     s.Price,
					Quantity:      1,
				})
			}
		}

		if in.Notes != nil {
			r.Notes = *in.Notes
		}

		if staffChanged || timeChanged || servicesChanged {
			staff, err := lockStaff(tx, r.StaffID)
			if err != nil {
				return err
			}
			if !staff.UnlimitedCapacity {
				conflict, err := conflictOnDay(tx, staff.ID, r.StartsAt, r.DurationMinutes, r.ID)
				if err != nil {
					return err
				}
				if conflict != nil {
					return utils.NewConflictError("slot unavailable: %s", conflict)
				}
			}
		}

		if err := tx.Save(&r).Error; err != nil {
			return utils.NewPersistenceError("update reservation", err)
		}
		reservation = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// TransitionReservation moves the reservation along its lifecycle. Completion
// does not invoice automatically; billing is an explicit follow-up call.
func TransitionReservation(db *gorm.DB, id uuid.UUID, to models.ReservationStatus) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&r, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("reservation", id.String())
			}
			return utils.NewPersistenceError("load reservation", err)
		}

		if !CanTransition(r.Status, to) {
			return utils.NewConflictError("cannot move reservation %s from %s to %s", r.Code, r.Status, to)
		}

		r.Status = to
		if err := tx.Save(&r).Error; err != nil {
			return utils.NewPersistenceError("transition reservation", err)
		}
		reservation = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// ReturnToPool hands an in-progress reservation back to the unlimited-capacity
// pool identity and marks it confirmed, so another operator can pick it up.
func ReturnToPool(db *gorm.DB, id uuid.UUID) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&r, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("reservation", id.String())
			}
			return utils.NewPersistenceError("load reservation", err)
		}
		if r.Status != models.ReservationInProgress {
			return utils.NewConflictError("only in-progress reservations can return to the pool")
		}

		var pool models.Staff
		if err := tx.First(&pool, "unlimited_capacity = ? AND is_active = ?", true, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("pool staff", "")
			}
			return utils.NewPersistenceError("load pool staff", err)
		}

		r.StaffID = pool.ID
		r.Status = models.ReservationConfirmed
		if err := tx.Save(&r).Error; err != nil {
			return utils.NewPersistenceError("return reservation to pool", err)
		}
		reservation = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// DeleteReservation removes a reservation that no invoice references.
func DeleteReservation(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := tx.First(&r, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("reservation", id.String())
			}
			return utils.NewPersistenceError("load reservation", err)
		}

		var invoiced int64
		if err := tx.Model(&models.Invoice{}).
			Where("reservation_id = ?", r.ID).
			Count(&invoiced).Error; err != nil {
			return utils.NewPersistenceError("check invoices", err)
		}
		if invoiced > 0 {
			return utils.NewConflictError("reservation %s has an invoice and cannot be deleted", r.Code)
		}

		if err := tx.Where("reservation_id = ?", r.ID).
			Delete(&models.ReservationItem{}).Error; err != nil {
			return utils.NewPersistenceError("delete reservation items", err)
		}
		if err := tx.Delete(&r).Error; err != nil {
			return utils.NewPersistenceError("delete reservation", err)
		}
		return nil
	})
}

func lockStaff(tx *gorm.DB, id uuid.UUID) (*models.Staff, error) {
	var staff models.Staff
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&staff, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("staff", id.String())
		}
		return nil, utils.NewPersistenceError("lock staff", err)
	}
	return &staff, nil
}
