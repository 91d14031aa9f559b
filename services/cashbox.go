// services/cashbox.go
package services

import (
	"errors"
	"time"

	"petglow-backend/models"
	"petglow-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OpenCashSession starts the operator's drawer for today. The existence check
// runs under FOR UPDATE and a partial unique index on
// (operator_id, session_date) WHERE status = 'open' backs it at the storage
// layer, so concurrent opens cannot both succeed.
func OpenCashSession(db *gorm.DB, operatorID uuid.UUID, openingFloat decimal.Decimal) (*models.CashSession, error) {
	if openingFloat.IsNegative() {
		return nil, utils.NewValidationError("openingFloat", "cannot be negative")
	}

	var session *models.CashSession
	err := db.Transaction(func(tx *gorm.DB) error {
		today := utils.BeginningOfDay(time.Now())

		var existing models.CashSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("operator_id = ? AND session_date = ? AND status = ?",
				operatorID, today, models.CashSessionOpen).
			First(&existing).Error
		if err == nil {
			return utils.NewConflictError("operator already has an open cash session for today")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewPersistenceError("check open session", err)
		}

		s := models.CashSession{
			OperatorID:    operatorID,
			SessionDate:   today,
			OpeningFloat:  openingFloat,
			TotalCash:     decimal.Zero,
			TotalCard:     decimal.Zero,
			TotalTransfer: decimal.Zero,
			GrandTotal:    decimal.Zero,
			Status:        models.CashSessionOpen,
			OpenedAt:      time.Now(),
		}
		if err := tx.Create(&s).Error; err != nil {
			return utils.NewPersistenceError("open cash session", err)
		}
		session = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// AddToTotals bumps the per-method running total and the aggregate on the
// in-memory session. Pure; callers persist.
func AddToTotals(session *models.CashSession, method models.PaymentMethod, amount decimal.Decimal) {
	switch method {
	case models.PaymentCash:
		session.TotalCash = session.TotalCash.Add(amount)
	case models.PaymentCard:
		session.TotalCard = session.TotalCard.Add(amount)
	case models.PaymentTransfer:
		session.TotalTransfer = session.TotalTransfer.Add(amount)
	}
	session.GrandTotal = session.GrandTotal.Add(amount)
}

// postMovement appends a ledger entry and updates the locked session's
// totals. Movements are insert-only; corrections are new signed entries.
func postMovement(tx *gorm.DB, session *models.CashSession, movement models.CashMovement) error {
	movement.SessionID = session.ID
	if err := tx.Create(&movement).Error; err != nil {
		return utils.NewPersistenceError("post cash movement", err)
	}

	AddToTotals(session, movement.Method, movement.Amount)
	if err := tx.Save(session).Error; err != nil {
		return utils.NewPersistenceError("update session totals", err)
	}
	return nil
}

// PostAdjustment records a signed correction against an open session, e.g. a
// negative amount to back out a miskeyed payment. The original movement row
// stays untouched.
func PostAdjustment(db *gorm.DB, sessionID uuid.UUID, amount decimal.Decimal, method models.PaymentMethod, note string) (*models.CashMovement, error) {
	if !method.Valid() {
		return nil, utils.NewValidationError("method", "unknown payment method")
	}
	if amount.IsZero() {
		return nil, utils.NewValidationError("amount", "cannot be zero")
	}

	var movement *models.CashMovement
	err := db.Transaction(func(tx *gorm.DB) error {
		session, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if session.Status != models.CashSessionOpen {
			return utils.NewConflictError("cash session is closed")
		}

		m := models.CashMovement{
			Direction: models.MovementAdjustment,
			Method:    method,
			Amount:    amount,
			Note:      note,
		}
		if err := postMovement(tx, session, m); err != nil {
			return err
		}
		movement = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ComputeVariance is declared count minus what the drawer should hold.
func ComputeVariance(openingFloat, cashTotal, declared decimal.Decimal) decimal.Decimal {
	return declared.Sub(openingFloat.Add(cashTotal))
}

// CloseCashSession fixes the declared count and variance. Closing twice is
// rejected.
func CloseCashSession(db *gorm.DB, sessionID uuid.UUID, declared decimal.Decimal) (*models.CashSession, error) {
	if declared.IsNegative() {
		return nil, utils.NewValidationError("declaredCount", "cannot be negative")
	}

	var session *models.CashSession
	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if s.Status == models.CashSessionClosed {
			return utils.NewConflictError("cash session is already closed")
		}

		variance := ComputeVariance(s.OpeningFloat, s.TotalCash, declared)
		now := time.Now()
		s.DeclaredCount = &declared
		s.Variance = &variance
		s.Status = models.CashSessionClosed
		s.ClosedAt = &now

		if err := tx.Save(s).Error; err != nil {
			return utils.NewPersistenceError("close cash session", err)
		}
		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CurrentSession returns the operator's open session for today, if any.
func CurrentSession(db *gorm.DB, operatorID uuid.UUID) (*models.CashSession, error) {
	today := utils.BeginningOfDay(time.Now())
	var s models.CashSession
	err := db.Preload("Movements").
		Where("operator_id = ? AND session_date = ? AND status = ?",
			operatorID, today, models.CashSessionOpen).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("cash session", "")
		}
		return nil, utils.NewPersistenceError("load current session", err)
	}
	return &s, nil
}

func lockOpenSession(tx *gorm.DB, operatorID uuid.UUID, at time.Time) (*models.CashSession, error) {
	day := utils.BeginningOfDay(at)
	var s models.CashSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("operator_id = ? AND session_date = ? AND status = ?",
			operatorID, day, models.CashSessionOpen).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("cash session", "")
		}
		return nil, utils.NewPersistenceError("lock open session", err)
	}
	return &s, nil
}

func lockSession(tx *gorm.DB, sessionID uuid.UUID) (*models.CashSession, error) {
	var s models.CashSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("cash session", sessionID.String())
		}
		return nil, utils.NewPersistenceError("lock session", err)
	}
	return &s, nil
}
