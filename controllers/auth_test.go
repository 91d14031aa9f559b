package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func registerRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/auth/register", Register)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_RejectsMalformedPhone(t *testing.T) {
	// Phone validation runs before any database access.
	w := registerRequest(t, `{
		"email": "ana@petglow.pe",
		"name": "Ana",
		"password": "supersecret",
		"phone": "not-a-phone"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "phone")
}

func TestRegister_RejectsMissingFields(t *testing.T) {
	w := registerRequest(t, `{"email": "ana@petglow.pe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
