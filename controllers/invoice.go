// controllers/invoice.go
package controllers

import (
	"net/http"

	"petglow-backend/config"
	"petglow-backend/models"
	"petglow-backend/services"
	"petglow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceFromReservationInput struct {
	ReservationID uuid.UUID            `json:"reservationId" binding:"required"`
	DocumentType  models.DocumentType  `json:"documentType" binding:"required,oneof=factura boleta"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash card transfer"`
}

type DirectInvoiceItemInput struct {
	ServiceID   *uuid.UUID      `json:"serviceId"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type DirectInvoiceInput struct {
	CustomerID    *uuid.UUID               `json:"customerId"`
	Items         []DirectInvoiceItemInput `json:"items" binding:"required,min=1"`
	DocumentType  models.DocumentType      `json:"documentType" binding:"required,oneof=factura boleta"`
	PaymentMethod models.PaymentMethod     `json:"paymentMethod" binding:"required,oneof=cash card transfer"`
}

type RegisterPaymentInput struct {
	Amount    decimal.Decimal      `json:"amount" binding:"required"`
	Method    models.PaymentMethod `json:"method" binding:"required,oneof=cash card transfer"`
	IsPartial bool                 `json:"isPartial"`
}

// CreateInvoiceFromReservation bills a completed reservation. Safe to call
// twice: the second call returns the invoice created by the first.
func CreateInvoiceFromReservation(c *gin.Context) {
	operatorID, ok := operatorUUID(c)
	if !ok {
		return
	}

	var input InvoiceFromReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := services.CreateInvoiceFromReservation(config.DB,
		input.ReservationID, input.DocumentType, input.PaymentMethod, operatorID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// CreateDirectInvoice bills a walk-in sale with no reservation behind it.
func CreateDirectInvoice(c *gin.Context) {
	operatorID, ok := operatorUUID(c)
	if !ok {
		return
	}

	var input DirectInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	items := make([]services.DirectItemInput, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, services.DirectItemInput{
			ServiceID:   it.ServiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	invoice, err := services.CreateDirectInvoice(config.DB,
		input.CustomerID, items, input.DocumentType, input.PaymentMethod, operatorID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices lists invoices, optionally filtered by status or document type.
func GetInvoices(c *gin.Context) {
	query := config.DB.Preload("Items")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if docType := c.Query("documentType"); docType != "" {
		query = query.Where("document_type = ?", docType)
	}

	var invoices []models.Invoice
	if err := query.Order("issued_at DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

func GetInvoice(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func RegisterPayment(c *gin.Context) {
	operatorID, ok := operatorUUID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input RegisterPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := services.RegisterPayment(config.DB, id,
		input.Amount, input.Method, input.IsPartial, operatorID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

func VoidInvoice(c *gin.Context) {
	if _, ok := operatorUUID(c); !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	invoice, err := services.VoidInvoice(config.DB, id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}
