package repository

import (
	"strings"

	"training_portal_backend/internal/model"

	"gorm.io/gorm"
)

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) Create(team *model.Team) error {
	return r.DB.Create(team).Error
}

func (r *TeamRepository) FindByID(id uint) (*model.Team, error) {
	var team model.Team
	err := r.DB.First(&team, id).Error
	return &team, err
}

// FindByName 大小写不敏感，CSV 导入按部门名匹配团队时使用
func (r *TeamRepository) FindByName(name string) (*model.Team, error) {
	var team model.Team
	err := r.DB.Where("LOWER(name) = ?", strings.ToLower(name)).First(&team).Error
	return &team, err
}

func (r *TeamRepository) List() ([]model.Team, error) {
	var teams []model.Team
	err := r.DB.Order("name ASC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) Update(team *model.Team) error {
	return r.DB.Save(team).Error
}

func (r *TeamRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Team{}, id).Error
}
