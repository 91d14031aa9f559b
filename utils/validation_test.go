package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+51987654321"))
	assert.True(t, ValidatePhone("987 654 321"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone(""))
}

func TestValidateRUC(t *testing.T) {
	assert.True(t, ValidateRUC("20123456789"))
	assert.True(t, ValidateRUC("10456789012"))
	assert.False(t, ValidateRUC("30123456789")) // wrong prefix
	assert.False(t, ValidateRUC("2012345678"))  // too short
	assert.False(t, ValidateRUC(""))
}
