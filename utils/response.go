// utils/response.go
package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// RespondWithAppError translates the error taxonomy onto HTTP status codes.
// Persistence errors are logged with their cause but surfaced generically.
func RespondWithAppError(c *gin.Context, err error) {
	var (
		validationErr  *ValidationError
		conflictErr    *ConflictError
		notFoundErr    *NotFoundError
		persistenceErr *PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &conflictErr):
		RespondWithError(c, http.StatusConflict, conflictErr.Error())
	case errors.As(err, &notFoundErr):
		RespondWithError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &persistenceErr):
		log.Printf("[DB] %v", persistenceErr)
		RespondWithError(c, http.StatusInternalServerError, "Database error")
	default:
		log.Printf("[ERR] unexpected: %v", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
