package model

import (
	"time"
)

type UserRole string

const (
	Employee UserRole = "employee"
	Manager  UserRole = "manager"
	Admin    UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	ExternalID   string   `gorm:"size:100;unique;not null" json:"externalId"`
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string   `gorm:"size:100" json:"-"`
	Role         UserRole `gorm:"type:enum('employee','manager','admin');default:'employee'" json:"role"`
	TeamID       uint     `gorm:"index;type:bigint unsigned;not null" json:"teamId"`
	Team         *Team    `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	JobTitle     string   `gorm:"size:100" json:"jobTitle"`
	Disabled     bool     `gorm:"default:false" json:"disabled"`
	// SSO 用户没有本地密码，PasswordHash 为空时仅允许 SSO 登录
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
