package repository

import (
	"errors"
	"strings"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/util"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

// Create 写入一次已评分的尝试。
// (user_id, quiz_id, attempt_number) 唯一索引在存储层串行化并发双写，
// 冲突翻译为 util.ErrAttemptConflict，绝不覆盖已有记录。
func (r *QuizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	err := r.DB.Create(attempt).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
		return util.ErrAttemptConflict
	}
	return err
}

func (r *QuizAttemptRepository) CountByUserAndQuiz(userID uint, quizID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

// FindCompletedByUser 完成时间升序，聚合层的同刻并列裁决依赖这个顺序
func (r *QuizAttemptRepository) FindCompletedByUser(userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Order("completed_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) FindAllCompleted() ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("completed_at IS NOT NULL").
		Order("completed_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) FindByUserAndQuiz(userID uint, quizID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number ASC").
		Find(&attempts).Error
	return attempts, err
}
