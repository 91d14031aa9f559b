package models

import (
	"petglow-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`

	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Phone     string `gorm:"not null;index"`
	Email     string
	DNI       string `gorm:"type:varchar(9)"`
	// RUC is the registered tax identifier; required for facturas.
	RUC     string `gorm:"type:varchar(11)"`
	Address string
	Notes   string

	Pets     []Pet     `gorm:"foreignKey:CustomerID"`
	Invoices []Invoice `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// HasTaxID reports whether the customer can receive a factura: the RUC must
// be present and well-formed, not merely non-empty.
func (c *Customer) HasTaxID() bool {
	return utils.ValidateRUC(c.RUC)
}
