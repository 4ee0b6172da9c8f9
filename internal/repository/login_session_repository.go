package repository

import (
	"time"

	"training_portal_backend/internal/model"

	"gorm.io/gorm"
)

type LoginSessionRepository struct {
	DB *gorm.DB
}

func NewLoginSessionRepository(db *gorm.DB) *LoginSessionRepository {
	return &LoginSessionRepository{DB: db}
}

func (r *LoginSessionRepository) Create(session *model.LoginSession) error {
	return r.DB.Create(session).Error
}

func (r *LoginSessionRepository) FindByID(id string) (*model.LoginSession, error) {
	var session model.LoginSession
	err := r.DB.Preload("User").Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *LoginSessionRepository) Delete(id string) error {
	return r.DB.Unscoped().Where("id = ?", id).Delete(&model.LoginSession{}).Error
}

func (r *LoginSessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.DB.Unscoped().Where("expires_at < ?", now).Delete(&model.LoginSession{})
	return result.RowsAffected, result.Error
}

// TimestampsByUser 登录事件时间，since 为 nil 时返回全部；连续登录与周视图都从这里取数
func (r *LoginSessionRepository) TimestampsByUser(userID uint, since *time.Time) ([]time.Time, error) {
	query := r.DB.Model(&model.LoginSession{}).Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	var timestamps []time.Time
	err := query.Order("created_at DESC").Pluck("created_at", &timestamps).Error
	return timestamps, err
}

func (r *LoginSessionRepository) CountSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LoginSession{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}
