package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DocumentType string

const (
	// DocumentFactura is the tax invoice: requires a customer RUC and backs
	// the IGV out of the tax-inclusive total.
	DocumentFactura DocumentType = "factura"
	// DocumentBoleta is the plain receipt with no separate tax line.
	DocumentBoleta DocumentType = "boleta"
)

// SeriesPrefix returns the document series the number is allocated under.
func (d DocumentType) SeriesPrefix() string {
	if d == DocumentFactura {
		return "F001"
	}
	return "B001"
}

func (d DocumentType) Valid() bool {
	return d == DocumentFactura || d == DocumentBoleta
}

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceCredit  InvoiceStatus = "credit"
	InvoiceVoid    InvoiceStatus = "void"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`

	// Number is series + sequence, e.g. B001-0042; unique across the system.
	Number       string       `gorm:"uniqueIndex;not null"`
	DocumentType DocumentType `gorm:"type:varchar(10);not null"`

	ReservationID *uuid.UUID `gorm:"type:uuid;uniqueIndex"` // nil for direct sales
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`

	Subtotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tax      decimal.Decimal `gorm:"type:decimal(10,2);default:0.0"`
	Total    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Status        InvoiceStatus   `gorm:"type:varchar(10);not null;default:'pending'"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(10,2);default:0.0"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10)"`
	// CashRecorded is false when a payment landed with no open cash session.
	CashRecorded bool `gorm:"default:true"`

	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`
	IssuedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	PaidAt          *time.Time

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// Outstanding is what remains to be paid.
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Total.Sub(i.PaidAmount)
}

type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceID   *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"not null"`
	Quantity    int             `gorm:"default:1"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
