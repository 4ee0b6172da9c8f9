package repository

import (
	"training_portal_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoProgressRepository struct {
	DB *gorm.DB
}

func NewVideoProgressRepository(db *gorm.DB) *VideoProgressRepository {
	return &VideoProgressRepository{DB: db}
}

// Upsert 同一 (user, video) 只有一条记录，重复上报覆盖 done/completed_at
func (r *VideoProgressRepository) Upsert(progress *model.VideoProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"done", "completed_at", "updated_at"}),
	}).Create(progress).Error
}

func (r *VideoProgressRepository) FindByUser(userID uint) ([]model.VideoProgress, error) {
	var progress []model.VideoProgress
	err := r.DB.Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}

func (r *VideoProgressRepository) CountDoneByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VideoProgress{}).
		Where("user_id = ? AND done = ?", userID, true).
		Count(&count).Error
	return count, err
}
