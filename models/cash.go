package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashSessionStatus string

const (
	CashSessionOpen   CashSessionStatus = "open"
	CashSessionClosed CashSessionStatus = "closed"
)

// CashSession is one operator's drawer for one calendar date. A partial
// unique index on (operator_id, session_date) WHERE status = 'open' backs the
// single-open-session invariant; see main.go migration.
type CashSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OperatorID uuid.UUID `gorm:"type:uuid;index;not null"`
	// SessionDate is the calendar day, stored at midnight local time.
	SessionDate time.Time `gorm:"type:date;index;not null"`

	OpeningFloat decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	TotalCash     decimal.Decimal `gorm:"type:decimal(10,2);default:0.0"`
	TotalCard     decimal.Decimal `gorm:"type:decimal(10,2);default:0.0"`
	TotalTransfer decimal.Decimal `gorm:"type:decimal(10,2);default:0.0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(10,2);default:0.0"`

	// Fixed at close; nil while the session is open.
	DeclaredCount *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Variance      *decimal.Decimal `gorm:"type:decimal(10,2)"`

	Status   CashSessionStatus `gorm:"type:varchar(10);not null;default:'open'"`
	OpenedAt time.Time
	ClosedAt *time.Time

	Movements []CashMovement `gorm:"foreignKey:SessionID"`
}

func (s *CashSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ExpectedCash is what the drawer should physically hold at close.
func (s *CashSession) ExpectedCash() decimal.Decimal {
	return s.OpeningFloat.Add(s.TotalCash)
}

type MovementDirection string

const (
	MovementIn MovementDirection = "in"
	// MovementAdjustment corrects a miskeyed entry with a signed amount;
	// the original movement is never touched.
	MovementAdjustment MovementDirection = "adjustment"
)

// CashMovement is an immutable entry in the drawer ledger. Rows are never
// updated or deleted after insertion.
type CashMovement struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SessionID uuid.UUID         `gorm:"type:uuid;index;not null"`
	InvoiceID *uuid.UUID        `gorm:"type:uuid;index"`
	Direction MovementDirection `gorm:"type:varchar(10);not null;default:'in'"`
	Method    PaymentMethod     `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	Note      string
	CreatedAt time.Time
}

func (m *CashMovement) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
