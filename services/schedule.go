// services/schedule.go
package services

import (
	"errors"
	"fmt"
	"time"

	"petglow-backend/config"
	"petglow-backend/models"
	"petglow-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultServiceDuration is assumed for catalog rows with no usable duration.
const DefaultServiceDuration = 60

// ResolveServices loads the referenced catalog rows, preserving input order.
// Any id that does not resolve to an active service is a NotFoundError.
func ResolveServices(db *gorm.DB, ids []uuid.UUID) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, utils.NewValidationError("services", "at least one service is required")
	}

	var rows []models.Service
	if err := db.Where("id IN ? AND is_active = ?", ids, true).Find(&rows).Error; err != nil {
		return nil, utils.NewPersistenceError("resolve services", err)
	}

	byID := make(map[uuid.UUID]models.Service, len(rows))
	for _, s := range rows {
		byID[s.ID] = s
	}

	resolved := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, utils.NewNotFoundError("service", id.String())
		}
		resolved = append(resolved, s)
	}
	return resolved, nil
}

// TotalDurationMinutes sums the time requirement of the selected services.
func TotalDurationMinutes(services []models.Service) int {
	total := 0
	for _, s := range services {
		d := s.Duration
		if d <= 0 {
			d = DefaultServiceDuration
		}
		total += d
	}
	return total
}

// Conflict describes the existing booking that blocks a proposed slot.
type Conflict struct {
	ReservationID uuid.UUID
	Code          string
	Start         time.Time
	End           time.Time
}

func (c *Conflict) String() string {
	return fmt.Sprintf("reservation %s occupies %s-%s",
		c.Code, c.Start.Format("15:04"), c.End.Format("15:04"))
}

// FirstConflict scans same-day reservations for a half-open interval overlap
// with [start, start+minutes). Back-to-back slots where one ends exactly when
// the next begins do not conflict.
func FirstConflict(existing []models.Reservation, start time.Time, minutes int, excludeID uuid.UUID) *Conflict {
	end := start.Add(time.Duration(minutes) * time.Minute)
	for i := range existing {
		r := &existing[i]
		if r.ID == excludeID || !r.Status.BlocksSchedule() {
			continue
		}
		if start.Before(r.EndsAt()) && r.StartsAt.Before(end) {
			return &Conflict{
				ReservationID: r.ID,
				Code:          r.Code,
				Start:         r.StartsAt,
				End:           r.EndsAt(),
			}
		}
	}
	return nil
}

// CheckAvailability determines whether staff can take a booking of the given
// length at start. The unlimited-capacity pool identity is always available.
// Pass uuid.Nil as excludeID unless an existing reservation is being moved.
//
// The check alone is advisory; CreateReservation/UpdateReservation repeat it
// under a staff row lock so check and write serialize.
func CheckAvailability(db *gorm.DB, staffID uuid.UUID, start time.Time, minutes int, excludeID uuid.UUID) (*Conflict, error) {
	var staff models.Staff
	if err := db.First(&staff, "id = ? AND is_active = ?", staffID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("staff", staffID.String())
		}
		return nil, utils.NewPersistenceError("load staff", err)
	}
	if staff.UnlimitedCapacity {
		return nil, nil
	}
	return conflictOnDay(db, staffID, start, minutes, excludeID)
}

func conflictOnDay(db *gorm.DB, staffID uuid.UUID, start time.Time, minutes int, excludeID uuid.UUID) (*Conflict, error) {
	dayStart, dayEnd := utils.DayRange(start)

	var existing []models.Reservation
	if err := db.
		Where("staff_id = ? AND starts_at >= ? AND starts_at < ?", staffID, dayStart, dayEnd).
		Where("status IN ?", []models.ReservationStatus{
			models.ReservationPending,
			models.ReservationConfirmed,
			models.ReservationInProgress,
		}).
		Find(&existing).Error; err != nil {
		return nil, utils.NewPersistenceError("load day reservations", err)
	}

	return FirstConflict(existing, start, minutes, excludeID), nil
}

// WithinOperatingWindow tests the start minute against the daily window,
// inclusive at opening, exclusive at closing.
func WithinOperatingWindow(t time.Time, openHour, closeHour int) bool {
	minute := t.Hour()*60 + t.Minute()
	return minute >= openHour*60 && minute < closeHour*60
}

func validateOperatingWindow(start time.Time) error {
	open, close := config.OpenHour(), config.CloseHour()
	if !WithinOperatingWindow(start, open, close) {
		return utils.NewValidationError("startsAt",
			fmt.Sprintf("outside operating hours (%02d:00-%02d:00)", open, close))
	}
	return nil
}
