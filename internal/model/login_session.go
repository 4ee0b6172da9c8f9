package model

import "time"

// LoginSession 一次登录会话，Cookie 中保存其 ID。
// CreatedAt 同时作为登录事件时间戳，连续登录/周登录统计直接读取本表。
type LoginSession struct {
	UUIDBase
	UserID    uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
}

func (LoginSession) TableName() string {
	return "login_sessions"
}
