// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff roles for the administrative API. There is no permission
// matrix; a role is just a coarse gate on the admin routes.
const (
	RoleAdmin      = "admin"
	RoleAgent      = "agent"
	RoleSupervisor = "supervisor"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"           json:"id"`
	Name         string    `gorm:"size:100;not null"              json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"  json:"email"`
	PasswordHash string    `gorm:"size:255;not null"              json:"-"`
	Role         string    `gorm:"size:20;not null;default:'agent'" json:"role"`
	IsActive     bool      `gorm:"default:true"                   json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
