// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"petglow-backend/config"
	"petglow-backend/models"
	"petglow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetDashboardOverview returns the front-desk numbers: today's reservations,
// today's paid sales and the open drawer count.
func GetDashboardOverview(c *gin.Context) {
	dayStart, dayEnd := utils.DayRange(time.Now())

	var reservationsToday int64
	if err := config.DB.Model(&models.Reservation{}).
		Where("starts_at >= ? AND starts_at < ?", dayStart, dayEnd).
		Where("status IN ?", []models.ReservationStatus{
			models.ReservationPending,
			models.ReservationConfirmed,
			models.ReservationInProgress,
			models.ReservationCompleted,
		}).
		Count(&reservationsToday).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count reservations")
		return
	}

	var salesToday decimal.NullDecimal
	if err := config.DB.Model(&models.Invoice{}).
		Select("SUM(total)").
		Where("issued_at >= ? AND issued_at < ? AND status = ?",
			dayStart, dayEnd, models.InvoicePaid).
		Scan(&salesToday).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sum sales")
		return
	}
	total := decimal.Zero
	if salesToday.Valid {
		total = salesToday.Decimal
	}

	var openSessions int64
	if err := config.DB.Model(&models.CashSession{}).
		Where("session_date = ? AND status = ?", utils.BeginningOfDay(time.Now()), models.CashSessionOpen).
		Count(&openSessions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservationsToday": reservationsToday,
		"salesToday":        total,
		"openCashSessions":  openSessions,
	})
}
