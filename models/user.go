package models

import (
	"time"

	"petglow-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an operator account (front desk / admin). Roles gate nothing inside
// the core yet; they travel in the JWT so every operation knows its caller.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role string `gorm:"type:varchar(20);not null;default:'operator'"` // 'admin' or 'operator'

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	CashSessions []CashSession `gorm:"foreignKey:OperatorID"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
