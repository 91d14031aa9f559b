package services

import (
	"testing"

	"petglow-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.ReservationStatus
		want     bool
	}{
		{models.ReservationPending, models.ReservationConfirmed, true},
		{models.ReservationPending, models.ReservationCancelled, true},
		{models.ReservationPending, models.ReservationNoShow, true},
		{models.ReservationPending, models.ReservationInProgress, false},
		{models.ReservationPending, models.ReservationCompleted, false},

		{models.ReservationConfirmed, models.ReservationInProgress, true},
		{models.ReservationConfirmed, models.ReservationCancelled, true},
		{models.ReservationConfirmed, models.ReservationNoShow, true},
		{models.ReservationConfirmed, models.ReservationCompleted, false},

		{models.ReservationInProgress, models.ReservationCompleted, true},
		{models.ReservationInProgress, models.ReservationCancelled, false},
		{models.ReservationInProgress, models.ReservationNoShow, false},

		// Terminal states go nowhere.
		{models.ReservationCompleted, models.ReservationConfirmed, false},
		{models.ReservationCancelled, models.ReservationPending, false},
		{models.ReservationNoShow, models.ReservationConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestReservationStatusFlags(t *testing.T) {
	assert.True(t, models.ReservationPending.BlocksSchedule())
	assert.True(t, models.ReservationConfirmed.BlocksSchedule())
	assert.True(t, models.ReservationInProgress.BlocksSchedule())
	assert.False(t, models.ReservationCompleted.BlocksSchedule())
	assert.False(t, models.ReservationCancelled.BlocksSchedule())
	assert.False(t, models.ReservationNoShow.BlocksSchedule())

	assert.True(t, models.ReservationCompleted.Terminal())
	assert.True(t, models.ReservationCancelled.Terminal())
	assert.True(t, models.ReservationNoShow.Terminal())
	assert.False(t, models.ReservationConfirmed.Terminal())
}
