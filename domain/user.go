package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FullName    string         `gorm:"column:full_name;not null" json:"full_name"`
	Email       string         `gorm:"column:email;unique;not null" json:"email"`
	Password    string         `gorm:"column:password;not null" json:"-"`
	Phone       string         `gorm:"column:phone" json:"phone,omitempty"`
	Role        string         `gorm:"column:role;default:customer" json:"role"`
	DefaultGoal string         `gorm:"column:default_goal;default:balanced" json:"default_goal"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
