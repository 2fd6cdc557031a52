package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleManager       UserRole = "MANAGER"
	UserRoleDispatcher    UserRole = "DISPATCHER"
	UserRoleSafetyOfficer UserRole = "SAFETY_OFFICER"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleManager, UserRoleDispatcher, UserRoleSafetyOfficer:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	Role         UserRole  `gorm:"type:user_role;not null;default:'DISPATCHER'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
