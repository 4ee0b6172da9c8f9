package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrQuizNotFound       = errors.New("video or quiz not found")
	ErrAttemptConflict    = errors.New("attempt already recorded")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNotEmpty       = errors.New("team still has members")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrEmptyImport        = errors.New("CSV is empty or has no data rows")
)
