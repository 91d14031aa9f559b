// controllers/reservation.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"petglow-backend/config"
	"petglow-backend/models"
	"petglow-backend/services"
	"petglow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateReservationInput defines the expected JSON structure for a booking
type CreateReservationInput struct {
	PetID      uuid.UUID   `json:"petId" binding:"required"`
	StaffID    uuid.UUID   `json:"staffId" binding:"required"`
	StartsAt   time.Time   `json:"startsAt" binding:"required"`
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	Notes      string      `json:"notes"`
}

// UpdateReservationInput carries only the fields being changed
type UpdateReservationInput struct {
	PetID      *uuid.UUID   `json:"petId"`
	StaffID    *uuid.UUID   `json:"staffId"`
	StartsAt   *time.Time   `json:"startsAt"`
	ServiceIDs *[]uuid.UUID `json:"serviceIds"`
	Notes      *string      `json:"notes"`
}

type TransitionInput struct {
	Status models.ReservationStatus `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled no_show"`
}

func CreateReservation(c *gin.Context) {
	if _, ok := operatorUUID(c); !ok {
		return
	}

	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reservation, err := services.CreateReservation(config.DB, services.CreateReservationInput{
		PetID:      input.PetID,
		StaffID:    input.StaffID,
		StartsAt:   input.StartsAt,
		ServiceIDs: input.ServiceIDs,
		Notes:      input.Notes,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetReservations lists reservations, optionally filtered by date, staff and
// status.
func GetReservations(c *gin.Context) {
	query := config.DB.Preload("Items").Preload("Pet").Preload("Staff")

	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		dayStart, dayEnd := utils.DayRange(day)
		query = query.Where("starts_at >= ? AND starts_at < ?", dayStart, dayEnd)
	}
	if staffID := c.Query("staffId"); staffID != "" {
		parsed, err := uuid.Parse(staffID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid staffId format")
			return
		}
		query = query.Where("staff_id = ?", parsed)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("starts_at").Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

func GetReservation(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.DB.Preload("Items").Preload("Pet").Preload("Staff").
		First(&reservation, "id = ?", id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func UpdateReservation(c *gin.Context) {
	if _, ok := operatorUUID(c); !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reservation, err := services.UpdateReservation(config.DB, id, services.UpdateReservationInput{
		PetID:      input.PetID,
		StaffID:    input.StaffID,
		StartsAt:   input.StartsAt,
		ServiceIDs: input.ServiceIDs,
		Notes:      input.Notes,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func TransitionReservation(c *gin.Context) {
	if _, ok := operatorUUID(c); !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reservation, err := services.TransitionReservation(config.DB, id, input.Status)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func ReturnReservationToPool(c *gin.Context) {
	if _, ok := operatorUUID(c); !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	reservation, err := services.ReturnToPool(config.DB, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func DeleteReservation(c *gin.Context) {
	if _, ok := operatorUUID(c); !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteReservation(config.DB, id); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}

// CheckAvailability answers whether a staff member is free for a slot:
// GET /availability?staffId=...&start=RFC3339&duration=minutes
func CheckAvailability(c *gin.Context) {
	staffID, err := uuid.Parse(c.Query("staffId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staffId format")
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start, expected RFC3339 timestamp")
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid duration, expected positive minutes")
		return
	}

	excludeID := uuid.Nil
	if raw := c.Query("excludeReservationId"); raw != "" {
		if excludeID, err = uuid.Parse(raw); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid excludeReservationId format")
			return
		}
	}

	conflict, err := services.CheckAvailability(config.DB, staffID, start, duration, excludeID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	if conflict != nil {
		c.JSON(http.StatusOK, gin.H{
			"available": false,
			"conflict": gin.H{
				"reservationId": conflict.ReservationID,
				"code":          conflict.Code,
				"start":         conflict.Start,
				"end":           conflict.End,
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}
