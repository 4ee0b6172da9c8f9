package repository

import (
	"strings"

	"training_portal_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Team").First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByExternalID(externalID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("external_id = ?", strings.ToLower(externalID)).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", strings.ToLower(email)).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// List 管理端用户列表，按团队、姓名排序
func (r *UserRepository) List() ([]model.User, error) {
	var users []model.User
	err := r.DB.Preload("Team").Order("team_id ASC, name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByTeam(teamID uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("team_id = ?", teamID).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) CountByTeam(teamID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

// Delete 管理员删除用户：级联清理其尝试、会话与观看进度
func (r *UserRepository) Delete(userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.LoginSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.VideoProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, userID).Error
	})
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", gorm.Expr("CURRENT_TIMESTAMP(3)")).
		Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP(3)")).
		Error
}
