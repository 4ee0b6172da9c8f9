package service

import (
	"errors"
	"strings"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 管理端的用户与团队目录维护
type UserService struct {
	UserRepo *repository.UserRepository
	TeamRepo *repository.TeamRepository
}

func NewUserService(userRepo *repository.UserRepository, teamRepo *repository.TeamRepository) *UserService {
	return &UserService{UserRepo: userRepo, TeamRepo: teamRepo}
}

type UserView struct {
	ID         uint           `json:"id"`
	ExternalID string         `json:"externalId"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Role       model.UserRole `json:"role"`
	TeamID     uint           `json:"teamId"`
	TeamName   string         `json:"teamName"`
	JobTitle   string         `json:"jobTitle"`
}

func toUserView(u *model.User) UserView {
	view := UserView{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		TeamID:     u.TeamID,
		JobTitle:   u.JobTitle,
	}
	if u.Team != nil {
		view.TeamName = u.Team.Name
	}
	return view
}

func (s *UserService) ListUsers() ([]UserView, error) {
	users, err := s.UserRepo.List()
	if err != nil {
		return nil, err
	}
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = toUserView(&users[i])
	}
	return views, nil
}

type CreateUserInput struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Role     model.UserRole `json:"role"`
	TeamID   uint           `json:"teamId"`
	Password string         `json:"password"`
	JobTitle string         `json:"jobTitle"`
}

func (s *UserService) CreateUser(input CreateUserInput) (*UserView, error) {
	if _, err := s.TeamRepo.FindByID(input.TeamID); err != nil {
		return nil, util.ErrTeamNotFound
	}
	if _, err := s.UserRepo.FindByEmail(input.Email); err == nil {
		return nil, util.ErrEmailRegistered
	}

	email := strings.ToLower(input.Email)
	user := &model.User{
		// 外部 ID 由邮箱推导，与 SSO 断言保持一致
		ExternalID: strings.ReplaceAll(email, "@", "."),
		Name:       input.Name,
		Email:      email,
		Role:       input.Role,
		TeamID:     input.TeamID,
		JobTitle:   input.JobTitle,
	}
	if input.Password != "" {
		hash, err := HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	created, err := s.UserRepo.FindByID(user.ID)
	if err != nil {
		return nil, err
	}
	view := toUserView(created)
	return &view, nil
}

type UpdateUserInput struct {
	Name     *string         `json:"name"`
	Role     *model.UserRole `json:"role"`
	TeamID   *uint           `json:"teamId"`
	Disabled *bool           `json:"disabled"`
	JobTitle *string         `json:"jobTitle"`
}

func (s *UserService) UpdateUser(userID uint, input UpdateUserInput) (*UserView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.TeamID != nil {
		if _, err := s.TeamRepo.FindByID(*input.TeamID); err != nil {
			return nil, util.ErrTeamNotFound
		}
		user.TeamID = *input.TeamID
	}
	if input.Disabled != nil {
		user.Disabled = *input.Disabled
	}
	if input.JobTitle != nil {
		user.JobTitle = *input.JobTitle
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	updated, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	view := toUserView(updated)
	return &view, nil
}

// DeleteUser 连同其尝试、会话、进度一并删除，这是唯一会删除尝试记录的入口
func (s *UserService) DeleteUser(userID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.UserRepo.Delete(userID)
}

func (s *UserService) ListTeams() ([]model.Team, error) {
	return s.TeamRepo.List()
}

func (s *UserService) CreateTeam(name string) (*model.Team, error) {
	team := &model.Team{Name: name}
	if err := s.TeamRepo.Create(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *UserService) UpdateTeam(teamID uint, name string) (*model.Team, error) {
	team, err := s.TeamRepo.FindByID(teamID)
	if err != nil {
		return nil, util.ErrTeamNotFound
	}
	team.Name = name
	if err := s.TeamRepo.Update(team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam 仍有成员的团队不允许删除
func (s *UserService) DeleteTeam(teamID uint) error {
	if _, err := s.TeamRepo.FindByID(teamID); err != nil {
		return util.ErrTeamNotFound
	}
	count, err := s.UserRepo.CountByTeam(teamID)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrTeamNotEmpty
	}
	return s.TeamRepo.Delete(teamID)
}
