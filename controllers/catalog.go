// controllers/catalog.go
package controllers

import (
	"net/http"

	"petglow-backend/config"
	"petglow-backend/models"
	"petglow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Read-only lookups over the catalog and roster. Record management itself
// lives in a separate admin module; the booking core only consumes it.

func GetServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Where("is_active = ?", true).Order("category, name").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	c.JSON(http.StatusOK, services)
}

func GetService(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	c.JSON(http.StatusOK, service)
}

func GetStaff(c *gin.Context) {
	var staff []models.Staff
	if err := config.DB.Where("is_active = ?", true).Order("name").
		Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}
	c.JSON(http.StatusOK, staff)
}

func GetCustomers(c *gin.Context) {
	query := config.DB.Preload("Pets")
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone = ?", phone)
	}

	var customers []models.Customer
	if err := query.Order("last_name, first_name").Limit(100).
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func GetPets(c *gin.Context) {
	query := config.DB
	if customerID := c.Query("customerId"); customerID != "" {
		parsed, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customerId format")
			return
		}
		query = query.Where("customer_id = ?", parsed)
	}

	var pets []models.Pet
	if err := query.Order("name").Find(&pets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}
	c.JSON(http.StatusOK, pets)
}
