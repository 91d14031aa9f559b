package services

import (
	"testing"
	"time"

	"petglow-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func svc(name string, duration int) models.Service {
	return models.Service{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString("50.00"),
		Duration: duration,
		IsActive: true,
	}
}

func booking(staffID uuid.UUID, start time.Time, minutes int, status models.ReservationStatus) models.Reservation {
	return models.Reservation{
		ID:              uuid.New(),
		Code:            "RES-260115-0001",
		StaffID:         staffID,
		StartsAt:        start,
		DurationMinutes: minutes,
		Status:          status,
	}
}

func TestTotalDurationMinutes(t *testing.T) {
	assert.Equal(t, 75, TotalDurationMinutes([]models.Service{
		svc("Bath", 30),
		svc("Full groom", 45),
	}))
}

func TestTotalDurationMinutes_DefaultsMissingDuration(t *testing.T) {
	assert.Equal(t, 90, TotalDurationMinutes([]models.Service{
		svc("Bath", 30),
		svc("Mystery treatment", 0),
	}))
	assert.Equal(t, 60, TotalDurationMinutes([]models.Service{
		svc("Bad row", -15),
	}))
}

func TestFirstConflict_Overlap(t *testing.T) {
	staffID := uuid.New()
	at10 := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)

	existing := []models.Reservation{
		booking(staffID, at10, 75, models.ReservationConfirmed), // [10:00, 11:15)
	}

	// 10:30 falls inside the occupied slot regardless of requested length.
	conflict := FirstConflict(existing, at10.Add(30*time.Minute), 15, uuid.Nil)
	require.NotNil(t, conflict)
	assert.Equal(t, existing[0].ID, conflict.ReservationID)
	assert.Equal(t, at10, conflict.Start)
	assert.Equal(t, at10.Add(75*time.Minute), conflict.End)

	// 11:15 starts exactly when the slot ends; back-to-back is allowed.
	assert.Nil(t, FirstConflict(existing, at10.Add(75*time.Minute), 15, uuid.Nil))

	// A booking ending exactly at 10:00 does not collide either.
	assert.Nil(t, FirstConflict(existing, at10.Add(-30*time.Minute), 30, uuid.Nil))
}

func TestFirstConflict_StraddlesProposedSlot(t *testing.T) {
	staffID := uuid.New()
	at10 := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)

	// Existing booking fully inside the proposed window.
	existing := []models.Reservation{
		booking(staffID, at10.Add(15*time.Minute), 15, models.ReservationPending),
	}
	require.NotNil(t, FirstConflict(existing, at10, 60, uuid.Nil))

	// Existing booking fully covering the proposed window.
	existing = []models.Reservation{
		booking(staffID, at10.Add(-60*time.Minute), 240, models.ReservationInProgress),
	}
	require.NotNil(t, FirstConflict(existing, at10, 30, uuid.Nil))
}

func TestFirstConflict_IgnoresNonBlockingStates(t *testing.T) {
	staffID := uuid.New()
	at10 := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)

	existing := []models.Reservation{
		booking(staffID, at10, 60, models.ReservationCancelled),
		booking(staffID, at10, 60, models.ReservationNoShow),
		booking(staffID, at10, 60, models.ReservationCompleted),
	}
	assert.Nil(t, FirstConflict(existing, at10, 60, uuid.Nil))
}

func TestFirstConflict_ExcludesOwnReservation(t *testing.T) {
	staffID := uuid.New()
	at10 := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)

	own := booking(staffID, at10, 60, models.ReservationConfirmed)
	existing := []models.Reservation{own}

	// Moving a reservation within its own slot must not conflict with itself.
	assert.Nil(t, FirstConflict(existing, at10.Add(15*time.Minute), 30, own.ID))
}

func TestWithinOperatingWindow(t *testing.T) {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"opening minute", day.Add(9 * time.Hour), true},
		{"mid-day", day.Add(13*time.Hour + 30*time.Minute), true},
		{"last bookable minute", day.Add(17*time.Hour + 59*time.Minute), true},
		{"closing minute", day.Add(18 * time.Hour), false},
		{"before opening", day.Add(8*time.Hour + 59*time.Minute), false},
		{"midnight", day, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WithinOperatingWindow(tc.at, 9, 18))
		})
	}
}
