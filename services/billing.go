// services/billing.go
package services

import (
	"errors"
	"log"
	"time"

	"petglow-backend/models"
	"petglow-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IGV is the Peruvian sales tax rate backed out of factura totals.
var (
	igvRate    = decimal.RequireFromString("0.18")
	igvDivisor = decimal.NewFromInt(1).Add(igvRate)
)

// ComputeDocumentTotals applies the tax rules for a document type to a gross
// amount. Facturas treat the gross as tax-inclusive: base = gross / 1.18 and
// tax is the remainder, so subtotal + tax always reproduces the total.
// Boletas carry no tax line. Rounding to 2dp happens here and nowhere earlier.
func ComputeDocumentTotals(docType models.DocumentType, gross decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	total = gross.Round(2)
	if docType == models.DocumentFactura {
		subtotal = gross.Div(igvDivisor).Round(2)
		tax = total.Sub(subtotal)
		return subtotal, tax, total
	}
	return total, decimal.Zero, total
}

// GrossOfItems sums unitPrice × quantity over invoice line items at full
// precision.
func GrossOfItems(items []models.InvoiceItem) decimal.Decimal {
	gross := decimal.Zero
	for _, it := range items {
		gross = gross.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return gross
}

// CreateInvoiceFromReservation turns a completed reservation into an invoice.
// Idempotent: if the reservation is already invoiced the existing invoice is
// returned instead of an error, so duplicate submissions are harmless.
func CreateInvoiceFromReservation(db *gorm.DB, reservationID uuid.UUID, docType models.DocumentType, method models.PaymentMethod, operatorID uuid.UUID) (*models.Invoice, error) {
	if !docType.Valid() {
		return nil, utils.NewValidationError("documentType", "must be factura or boleta")
	}

	var r models.Reservation
	if err := db.Preload("Items").Preload("Pet").First(&r, "id = ?", reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("reservation", reservationID.String())
		}
		return nil, utils.NewPersistenceError("load reservation", err)
	}
	if r.Status != models.ReservationCompleted {
		return nil, utils.NewValidationError("reservation", "only completed reservations can be invoiced")
	}

	var existing models.Invoice
	err := db.Preload("Items").First(&existing, "reservation_id = ?", r.ID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewPersistenceError("check existing invoice", err)
	}

	customer, err := loadCustomer(db, r.Pet.CustomerID)
	if err != nil {
		return nil, err
	}
	if docType == models.DocumentFactura && !customer.HasTaxID() {
		return nil, utils.NewValidationError("customer", "a factura requires a registered RUC")
	}

	items := make([]models.InvoiceItem, 0, len(r.Items))
	for _, it := range r.Items {
		serviceID := it.ServiceID
		items = append(items, models.InvoiceItem{
			ServiceID:   &serviceID,
			Description: it.ServiceName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2),
		})
	}

	reservationRef := r.ID
	customerRef := customer.ID
	invoice, err := createInvoice(db, models.Invoice{
		DocumentType:    docType,
		ReservationID:   &reservationRef,
		CustomerID:      &customerRef,
		PaymentMethod:   method,
		CreatedByUserID: operatorID,
		IssuedAt:        time.Now(),
		Items:           items,
	})
	if err != nil && IsDuplicateKey(err) {
		// A concurrent call invoiced the reservation between our existence
		// check and the insert; the unique index on reservation_id caught
		// it. Return the winner's invoice, keeping the call idempotent.
		var winner models.Invoice
		if e := db.Preload("Items").First(&winner, "reservation_id = ?", r.ID).Error; e == nil {
			return &winner, nil
		}
		return nil, err
	}
	return invoice, err
}

// IsDuplicateKey reports whether err originated from a unique-constraint
// violation, looking through PersistenceError wrapping.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type DirectItemInput struct {
	ServiceID   *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateDirectInvoice bills a walk-in sale with no backing reservation. Items
// referencing a catalog service snapshot its name and price; free-form items
// need a description and a positive unit price.
func CreateDirectInvoice(db *gorm.DB, customerID *uuid.UUID, inputs []DirectItemInput, docType models.DocumentType, method models.PaymentMethod, operatorID uuid.UUID) (*models.Invoice, error) {
	if !docType.Valid() {
		return nil, utils.NewValidationError("documentType", "must be factura or boleta")
	}
	if len(inputs) == 0 {
		return nil, utils.NewValidationError("items", "at least one line item is required")
	}

	if docType == models.DocumentFactura {
		if customerID == nil {
			return nil, utils.NewValidationError("customer", "a factura requires a customer with a registered RUC")
		}
		customer, err := loadCustomer(db, *customerID)
		if err != nil {
			return nil, err
		}
		if !customer.HasTaxID() {
			return nil, utils.NewValidationError("customer", "a factura requires a registered RUC")
		}
	} else if customerID != nil {
		if _, err := loadCustomer(db, *customerID); err != nil {
			return nil, err
		}
	}

	items := make([]models.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}

		item := models.InvoiceItem{
			ServiceID:   in.ServiceID,
			Description: in.Description,
			Quantity:    qty,
			UnitPrice:   in.UnitPrice,
		}
		if in.ServiceID != nil {
			var service models.Service
			if err := db.First(&service, "id = ? AND is_active = ?", *in.ServiceID, true).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, utils.NewNotFoundError("service", in.ServiceID.String())
				}
				return nil, utils.NewPersistenceError("load service", err)
			}
			item.Description = service.Name
			item.UnitPrice = service.Price
		} else if item.Description == "" || !item.UnitPrice.IsPositive() {
			return nil, utils.NewValidationError("items", "free-form items need a description and a positive unit price")
		}
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2)
		items = append(items, item)
	}

	return createInvoice(db, models.Invoice{
		DocumentType:    docType,
		CustomerID:      customerID,
		PaymentMethod:   method,
		CreatedByUserID: operatorID,
		IssuedAt:        time.Now(),
		Items:           items,
	})
}

func createInvoice(db *gorm.DB, invoice models.Invoice) (*models.Invoice, error) {
	invoice.Subtotal, invoice.Tax, invoice.Total = ComputeDocumentTotals(invoice.DocumentType, GrossOfItems(invoice.Items))
	invoice.Status = models.InvoicePending
	invoice.PaidAmount = decimal.Zero

	err := db.Transaction(func(tx *gorm.DB) error {
		seq, err := NextSequence(tx, invoice.DocumentType.SeriesPrefix())
		if err != nil {
			return err
		}
		invoice.Number = FormatInvoiceNumber(invoice.DocumentType.SeriesPrefix(), seq)

		if err := tx.Create(&invoice).Error; err != nil {
			return utils.NewPersistenceError("create invoice", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ApplyPayment mutates the invoice for a payment of amount. It enforces the
// state and balance rules but touches no storage; RegisterPayment persists.
func ApplyPayment(invoice *models.Invoice, amount decimal.Decimal, method models.PaymentMethod, isPartial bool, now time.Time) (decimal.Decimal, error) {
	switch invoice.Status {
	case models.InvoicePaid:
		return decimal.Zero, utils.NewConflictError("invoice %s is already paid", invoice.Number)
	case models.InvoiceVoid:
		return decimal.Zero, utils.NewConflictError("invoice %s is void", invoice.Number)
	}
	if !amount.IsPositive() {
		return decimal.Zero, utils.NewValidationError("amount", "must be positive")
	}

	outstanding := invoice.Outstanding()
	if amount.GreaterThan(outstanding) {
		return decimal.Zero, utils.NewValidationError("amount", "exceeds outstanding balance of "+outstanding.StringFixed(2))
	}

	if isPartial && amount.LessThan(outstanding) {
		invoice.Status = models.InvoiceCredit
		invoice.PaidAmount = invoice.PaidAmount.Add(amount)
	} else {
		// Full settlement; clamp to the outstanding balance.
		amount = outstanding
		invoice.Status = models.InvoicePaid
		invoice.PaidAmount = invoice.Total
		invoice.PaidAt = &now
	}
	invoice.PaymentMethod = method
	return amount, nil
}

// RegisterPayment records a payment against an invoice and posts the matching
// cash movement to the operator's open drawer session. A missing session does
// not fail the payment; the invoice is flagged cash_recorded = false instead.
func RegisterPayment(db *gorm.DB, invoiceID uuid.UUID, amount decimal.Decimal, method models.PaymentMethod, isPartial bool, operatorID uuid.UUID) (*models.Invoice, error) {
	if !method.Valid() {
		return nil, utils.NewValidationError("method", "unknown payment method")
	}

	var invoice *models.Invoice
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&inv, "id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("invoice", invoiceID.String())
			}
			return utils.NewPersistenceError("load invoice", err)
		}

		applied, err := ApplyPayment(&inv, amount, method, isPartial, time.Now())
		if err != nil {
			return err
		}

		session, err := lockOpenSession(tx, operatorID, time.Now())
		if err != nil {
			var notFound *utils.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
			log.Printf("[CASH] payment on %s taken with no open session for operator %s", inv.Number, operatorID)
			inv.CashRecorded = false
		} else {
			invoiceRef := inv.ID
			if err := postMovement(tx, session, models.CashMovement{
				InvoiceID: &invoiceRef,
				Direction: models.MovementIn,
				Method:    method,
				Amount:    applied,
				Note:      "payment " + inv.Number,
			}); err != nil {
				return err
			}
		}

		if err := tx.Save(&inv).Error; err != nil {
			return utils.NewPersistenceError("save invoice", err)
		}
		invoice = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// VoidInvoice cancels a pending or credit invoice. Paid invoices need the
// manual administrative path, which this boundary does not expose.
func VoidInvoice(db *gorm.DB, invoiceID uuid.UUID) (*models.Invoice, error) {
	var invoice *models.Invoice
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&inv, "id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("invoice", invoiceID.String())
			}
			return utils.NewPersistenceError("load invoice", err)
		}

		switch inv.Status {
		case models.InvoicePending, models.InvoiceCredit:
			// ok
		case models.InvoicePaid:
			return utils.NewConflictError("invoice %s is paid; voiding requires a manual override", inv.Number)
		default:
			return utils.NewConflictError("invoice %s is already void", inv.Number)
		}

		inv.Status = models.InvoiceVoid
		if err := tx.Save(&inv).Error; err != nil {
			return utils.NewPersistenceError("void invoice", err)
		}
		invoice = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func loadCustomer(db *gorm.DB, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("customer", id.String())
		}
		return nil, utils.NewPersistenceError("load customer", err)
	}
	return &customer, nil
}
