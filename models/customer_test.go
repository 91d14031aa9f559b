package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerHasTaxID(t *testing.T) {
	assert.True(t, (&Customer{RUC: "20123456789"}).HasTaxID())
	assert.True(t, (&Customer{RUC: "10456789012"}).HasTaxID())

	// A malformed or missing RUC cannot back a factura, even when non-empty.
	assert.False(t, (&Customer{RUC: ""}).HasTaxID())
	assert.False(t, (&Customer{RUC: "123"}).HasTaxID())
	assert.False(t, (&Customer{RUC: "30123456789"}).HasTaxID())
	assert.False(t, (&Customer{RUC: "not-a-ruc"}).HasTaxID())
}
