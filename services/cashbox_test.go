package services

import (
	"testing"

	"petglow-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeVariance(t *testing.T) {
	// Opening 100.00, cash movements summing 250.00, declared 345.00.
	variance := ComputeVariance(dec("100.00"), dec("250.00"), dec("345.00"))
	assert.True(t, variance.Equal(dec("-5.00")), "variance = %s", variance)

	// Exact count yields zero.
	assert.True(t, ComputeVariance(dec("100.00"), dec("250.00"), dec("350.00")).IsZero())

	// Surplus is positive.
	assert.True(t, ComputeVariance(dec("50.00"), dec("0.00"), dec("60.00")).Equal(dec("10.00")))
}

func TestAddToTotals(t *testing.T) {
	session := &models.CashSession{
		OpeningFloat:  dec("100.00"),
		TotalCash:     decimal.Zero,
		TotalCard:     decimal.Zero,
		TotalTransfer: decimal.Zero,
		GrandTotal:    decimal.Zero,
	}

	AddToTotals(session, models.PaymentCash, dec("150.00"))
	AddToTotals(session, models.PaymentCash, dec("100.00"))
	AddToTotals(session, models.PaymentCard, dec("80.00"))
	AddToTotals(session, models.PaymentTransfer, dec("20.00"))

	assert.True(t, session.TotalCash.Equal(dec("250.00")))
	assert.True(t, session.TotalCard.Equal(dec("80.00")))
	assert.True(t, session.TotalTransfer.Equal(dec("20.00")))
	assert.True(t, session.GrandTotal.Equal(dec("350.00")))

	// Only cash counts toward the physical drawer.
	assert.True(t, session.ExpectedCash().Equal(dec("350.00")))
}

func TestAddToTotals_SignedAdjustment(t *testing.T) {
	session := &models.CashSession{
		OpeningFloat: dec("100.00"),
		TotalCash:    dec("250.00"),
		GrandTotal:   dec("250.00"),
	}

	// A negative adjustment backs out a miskeyed cash payment.
	AddToTotals(session, models.PaymentCash, dec("-25.00"))

	assert.True(t, session.TotalCash.Equal(dec("225.00")))
	assert.True(t, session.GrandTotal.Equal(dec("225.00")))
	assert.True(t, session.ExpectedCash().Equal(dec("325.00")))
}
