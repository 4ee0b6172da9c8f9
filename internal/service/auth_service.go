package service

import (
	"errors"
	"strings"
	"time"

	"training_portal_backend/internal/config"
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"
	"training_portal_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 登录会话。会话行落库，Cookie 只存会话 ID；
// 会话的创建时间就是登录事件，积分侧的连续登录统计直接复用。
type AuthService struct {
	UserRepo    *repository.UserRepository
	TeamRepo    *repository.TeamRepository
	SessionRepo *repository.LoginSessionRepository
	Config      *config.Config
}

func NewAuthService(
	userRepo *repository.UserRepository,
	teamRepo *repository.TeamRepository,
	sessionRepo *repository.LoginSessionRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		TeamRepo:    teamRepo,
		SessionRepo: sessionRepo,
		Config:      cfg,
	}
}

func (s *AuthService) Login(username, password string) (*model.User, *model.LoginSession, error) {
	user, err := s.UserRepo.FindByExternalID(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if user.Disabled || user.PasswordHash == "" {
		return nil, nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	session, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// SSOLogin 身份提供方回调：校验签名断言，按需建档后开会话。
// 部门名匹配到团队则归入，否则落在默认团队。
func (s *AuthService) SSOLogin(token string) (*model.User, *model.LoginSession, error) {
	claims, err := util.ParseSSOToken(token, s.Config.SSO.Secret)
	if err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	user, err := s.UserRepo.FindByExternalID(claims.ExternalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		team, terr := s.TeamRepo.FindByName(claims.Department)
		if terr != nil {
			team, terr = s.TeamRepo.FindByName(s.Config.SSO.DefaultTeam)
			if terr != nil {
				return nil, nil, terr
			}
		}
		user = &model.User{
			ExternalID: strings.ToLower(claims.ExternalID),
			Name:       claims.Name,
			Email:      strings.ToLower(claims.Email),
			Role:       model.Employee,
			TeamID:     team.ID,
		}
		if err := s.UserRepo.Create(user); err != nil {
			return nil, nil, err
		}
		logger.Log.Info("provisioned user from SSO", zap.String("externalId", user.ExternalID))
	} else if err != nil {
		return nil, nil, err
	}

	if user.Disabled {
		return nil, nil, util.ErrInvalidCredentials
	}

	session, err := s.openSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *AuthService) openSession(user *model.User) (*model.LoginSession, error) {
	session := &model.LoginSession{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(util.SessionMaxAge),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("userId", user.ID), zap.Error(err))
	}
	return session, nil
}

func (s *AuthService) Logout(sessionID string) error {
	return s.SessionRepo.Delete(sessionID)
}

// ResolveSession Cookie 里的会话 ID 换当前用户；过期会话顺手删除
func (s *AuthService) ResolveSession(sessionID string) (*util.AuthUser, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.SessionRepo.Delete(session.ID)
		return nil, util.ErrSessionNotFound
	}
	if session.User == nil || session.User.Disabled {
		return nil, util.ErrSessionNotFound
	}

	return &util.AuthUser{
		UserID:     session.User.ID,
		ExternalID: session.User.ExternalID,
		Name:       session.User.Name,
		Role:       session.User.Role,
		TeamID:     session.User.TeamID,
		SessionID:  session.ID,
	}, nil
}

// SweepExpiredSessions 后台定时清理过期会话
func (s *AuthService) SweepExpiredSessions() error {
	deleted, err := s.SessionRepo.DeleteExpired(time.Now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		logger.Log.Info("expired sessions removed", zap.Int64("count", deleted))
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
