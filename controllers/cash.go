// controllers/cash.go
package controllers

import (
	"net/http"

	"petglow-backend/config"
	"petglow-backend/models"
	"petglow-backend/services"
	"petglow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OpenCashSessionInput struct {
	OpeningFloat decimal.Decimal `json:"openingFloat"`
}

type CashAdjustmentInput struct {
	Amount decimal.Decimal      `json:"amount" binding:"required"`
	Method models.PaymentMethod `json:"method" binding:"required,oneof=cash card transfer"`
	Note   string               `json:"note" binding:"required"`
}

type CloseCashSessionInput struct {
	DeclaredCount decimal.Decimal `json:"declaredCount"`
}

func OpenCashSession(c *gin.Context) {
	operatorID, ok := operatorUUID(c)
	if !ok {
		return
	}

	var input OpenCashSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	session, err := services.OpenCashSession(config.DB, operatorID, input.OpeningFloat)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetCurrentCashSession returns the operator's open drawer for today.
func GetCurrentCashSession(c *gin.Context) {
	operatorID, ok := operatorUUID(c)
	if !ok {
		return
	}

	session, err := services.CurrentSession(config.DB, operatorID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// PostCashAdjustment records a signed correction movement. Regular inflows
// are posted internally by payment registration, not through this endpoint.
func PostCashAdjustment(c *gin.Context) {
	if _, ok := operatorUUID(c); !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CashAdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	movement, err := services.PostAdjustment(config.DB, id, input.Amount, input.Method, input.Note)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, movement)
}

func CloseCashSession(c *gin.Context) {
	if _, ok := operatorUUID(c); !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CloseCashSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	session, err := services.CloseCashSession(config.DB, id, input.DeclaredCount)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
