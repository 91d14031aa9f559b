// controllers/common.go
package controllers

import (
	"net/http"

	"petglow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// operatorUUID pulls the authenticated operator out of the request context.
// Writes the error response itself; callers just return on !ok.
func operatorUUID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := utils.OperatorID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Operator ID not found in context")
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid operator ID format")
		return uuid.Nil, false
	}
	return parsed, true
}

// pathUUID parses the :id route parameter.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return parsed, true
}
