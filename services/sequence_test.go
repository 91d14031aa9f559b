package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatReservationCode(t *testing.T) {
	day := time.Date(2026, 1, 15, 10, 30, 0, 0, time.Local)

	assert.Equal(t, "RES-260115-0001", FormatReservationCode(day, 1))
	assert.Equal(t, "RES-260115-0042", FormatReservationCode(day, 42))
	// Sequence wider than four digits keeps growing rather than truncating.
	assert.Equal(t, "RES-260115-10000", FormatReservationCode(day, 10000))
}

func TestReservationCode_FollowsBookingDate(t *testing.T) {
	booked := time.Date(2026, 1, 15, 16, 45, 0, 0, time.Local)
	slot := booked.AddDate(0, 0, 7)

	// The code and its sequence scope carry the date the booking was taken,
	// even when the appointment itself is days out.
	assert.Equal(t, "RES-260115-0003", FormatReservationCode(booked, 3))
	assert.Equal(t, "RES-260115", ReservationScope(booked))
	assert.NotEqual(t, ReservationScope(booked), ReservationScope(slot))
}

func TestReservationScope_PerDay(t *testing.T) {
	jan15 := time.Date(2026, 1, 15, 23, 59, 0, 0, time.Local)
	jan16 := time.Date(2026, 1, 16, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "RES-260115", ReservationScope(jan15))
	assert.NotEqual(t, ReservationScope(jan15), ReservationScope(jan16))
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "B001-0001", FormatInvoiceNumber("B001", 1))
	assert.Equal(t, "F001-0357", FormatInvoiceNumber("F001", 357))
}
