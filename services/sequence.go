// services/sequence.go
package services

import (
	"fmt"
	"time"

	"petglow-backend/models"
	"petglow-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NextSequence allocates the next number for a scope. Must run inside the
// caller's transaction: the sequence row is locked FOR UPDATE so concurrent
// allocations serialize and never repeat a value.
func NextSequence(tx *gorm.DB, scope string) (int64, error) {
	seed := models.DocumentSequence{Scope: scope, NextValue: 1}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, utils.NewPersistenceError("seed sequence "+scope, err)
	}

	var seq models.DocumentSequence
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("scope = ?", scope).
		First(&seq).Error; err != nil {
		return 0, utils.NewPersistenceError("lock sequence "+scope, err)
	}

	n := seq.NextValue
	if err := tx.Model(&models.DocumentSequence{}).
		Where("scope = ?", scope).
		Update("next_value", n+1).Error; err != nil {
		return 0, utils.NewPersistenceError("advance sequence "+scope, err)
	}
	return n, nil
}

// ReservationScope keys the reservation sequence to its creation date.
func ReservationScope(day time.Time) string {
	return "RES-" + day.Format("060102")
}

func FormatReservationCode(day time.Time, n int64) string {
	return fmt.Sprintf("RES-%s-%04d", day.Format("060102"), n)
}

func FormatInvoiceNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}
