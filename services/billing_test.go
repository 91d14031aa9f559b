package services

import (
	"testing"
	"time"

	"petglow-backend/models"
	"petglow-backend/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeDocumentTotals_Factura(t *testing.T) {
	subtotal, tax, total := ComputeDocumentTotals(models.DocumentFactura, dec("42.37"))

	assert.True(t, subtotal.Equal(dec("35.91")), "subtotal = %s", subtotal)
	assert.True(t, tax.Equal(dec("6.46")), "tax = %s", tax)
	assert.True(t, total.Equal(dec("42.37")), "total = %s", total)
}

func TestComputeDocumentTotals_Boleta(t *testing.T) {
	subtotal, tax, total := ComputeDocumentTotals(models.DocumentBoleta, dec("42.37"))

	assert.True(t, subtotal.Equal(dec("42.37")))
	assert.True(t, tax.IsZero())
	assert.True(t, total.Equal(dec("42.37")))
}

func TestComputeDocumentTotals_SumInvariant(t *testing.T) {
	// subtotal + tax must reproduce total for both document types across a
	// spread of amounts.
	amounts := []string{"0.01", "1.00", "9.99", "42.37", "118.00", "999.95", "12345.67"}
	tolerance := dec("0.01")

	for _, raw := range amounts {
		for _, docType := range []models.DocumentType{models.DocumentFactura, models.DocumentBoleta} {
			subtotal, tax, total := ComputeDocumentTotals(docType, dec(raw))
			diff := subtotal.Add(tax).Sub(total).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance),
				"%s %s: subtotal %s + tax %s != total %s", docType, raw, subtotal, tax, total)
		}
	}
}

func TestGrossOfItems(t *testing.T) {
	items := []models.InvoiceItem{
		{UnitPrice: dec("30.00"), Quantity: 1},
		{UnitPrice: dec("12.50"), Quantity: 2},
	}
	assert.True(t, GrossOfItems(items).Equal(dec("55.00")))
}

func paidInvoice() *models.Invoice {
	now := time.Now()
	return &models.Invoice{
		Number:     "B001-0001",
		Status:     models.InvoicePaid,
		Total:      dec("100.00"),
		PaidAmount: dec("100.00"),
		PaidAt:     &now,
	}
}

func pendingInvoice(total string) *models.Invoice {
	return &models.Invoice{
		Number:     "B001-0002",
		Status:     models.InvoicePending,
		Total:      dec(total),
		PaidAmount: decimal.Zero,
	}
}

func TestApplyPayment_FullSettlement(t *testing.T) {
	inv := pendingInvoice("100.00")
	now := time.Now()

	applied, err := ApplyPayment(inv, dec("100.00"), models.PaymentCash, false, now)
	require.NoError(t, err)

	assert.True(t, applied.Equal(dec("100.00")))
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assert.True(t, inv.PaidAmount.Equal(inv.Total))
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, now, *inv.PaidAt)
}

func TestApplyPayment_PartialGoesToCredit(t *testing.T) {
	inv := pendingInvoice("100.00")

	applied, err := ApplyPayment(inv, dec("40.00"), models.PaymentCard, true, time.Now())
	require.NoError(t, err)

	assert.True(t, applied.Equal(dec("40.00")))
	assert.Equal(t, models.InvoiceCredit, inv.Status)
	assert.True(t, inv.Outstanding().Equal(dec("60.00")))
	assert.Nil(t, inv.PaidAt)

	// Settling the remainder closes it out.
	applied, err = ApplyPayment(inv, dec("60.00"), models.PaymentCard, false, time.Now())
	require.NoError(t, err)
	assert.True(t, applied.Equal(dec("60.00")))
	assert.Equal(t, models.InvoicePaid, inv.Status)
}

func TestApplyPayment_AlreadyPaidIsConflict(t *testing.T) {
	inv := paidInvoice()

	_, err := ApplyPayment(inv, dec("100.00"), models.PaymentCash, false, time.Now())
	require.Error(t, err)

	var conflict *utils.ConflictError
	assert.ErrorAs(t, err, &conflict)
	// State unchanged.
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assert.True(t, inv.PaidAmount.Equal(dec("100.00")))
}

func TestApplyPayment_VoidIsConflict(t *testing.T) {
	inv := pendingInvoice("50.00")
	inv.Status = models.InvoiceVoid

	_, err := ApplyPayment(inv, dec("50.00"), models.PaymentCash, false, time.Now())
	var conflict *utils.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestApplyPayment_OverpaymentRejected(t *testing.T) {
	inv := pendingInvoice("50.00")

	_, err := ApplyPayment(inv, dec("50.01"), models.PaymentCash, false, time.Now())
	require.Error(t, err)

	var validation *utils.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, models.InvoicePending, inv.Status)
}

func TestApplyPayment_NonPositiveRejected(t *testing.T) {
	inv := pendingInvoice("50.00")

	var validation *utils.ValidationError
	_, err := ApplyPayment(inv, decimal.Zero, models.PaymentCash, false, time.Now())
	assert.ErrorAs(t, err, &validation)

	_, err = ApplyPayment(inv, dec("-10.00"), models.PaymentCash, false, time.Now())
	assert.ErrorAs(t, err, &validation)
}

func TestApplyPayment_PartialFlagWithFullAmountPays(t *testing.T) {
	// isPartial with the full balance still settles the invoice.
	inv := pendingInvoice("80.00")

	_, err := ApplyPayment(inv, dec("80.00"), models.PaymentTransfer, true, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)
}

func TestIsDuplicateKey(t *testing.T) {
	// Unique violations arrive wrapped in PersistenceError from the insert.
	wrapped := utils.NewPersistenceError("create invoice", gorm.ErrDuplicatedKey)
	assert.True(t, IsDuplicateKey(wrapped))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))

	assert.False(t, IsDuplicateKey(utils.NewPersistenceError("create invoice", gorm.ErrInvalidData)))
	assert.False(t, IsDuplicateKey(utils.NewConflictError("already invoiced")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestDocumentTypeSeries(t *testing.T) {
	assert.Equal(t, "F001", models.DocumentFactura.SeriesPrefix())
	assert.Equal(t, "B001", models.DocumentBoleta.SeriesPrefix())
	assert.True(t, models.DocumentFactura.Valid())
	assert.True(t, models.DocumentBoleta.Valid())
	assert.False(t, models.DocumentType("ticket").Valid())
}
