package service

import (
	"time"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
)

// ProgressService 视频观看进度：客户端乐观更新，服务端 upsert 留档
type ProgressService struct {
	ProgressRepo *repository.VideoProgressRepository
	Content      *ContentService
}

func NewProgressService(progressRepo *repository.VideoProgressRepository, content *ContentService) *ProgressService {
	return &ProgressService{ProgressRepo: progressRepo, Content: content}
}

type VideoProgressView struct {
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (s *ProgressService) GetProgress(userID uint) (map[string]VideoProgressView, error) {
	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	videos := make(map[string]VideoProgressView, len(records))
	for _, p := range records {
		videos[p.VideoID] = VideoProgressView{Done: p.Done, CompletedAt: p.CompletedAt}
	}
	return videos, nil
}

func (s *ProgressService) SetProgress(userID uint, videoID string, done bool) (*model.VideoProgress, error) {
	if _, err := s.Content.FindVideo(videoID); err != nil {
		return nil, err
	}

	progress := &model.VideoProgress{
		UserID:  userID,
		VideoID: videoID,
		Done:    done,
	}
	if done {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.ProgressRepo.Upsert(progress); err != nil {
		return nil, err
	}
	return progress, nil
}
