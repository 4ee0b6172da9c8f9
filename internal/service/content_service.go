package service

import (
	"encoding/json"
	"os"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/util"
)

// ContentService 培训目录。目录是打包发布的只读 JSON，启动时加载进内存，
// 题库的标准答案只存在于服务端这份数据里。
type ContentService struct {
	data   *model.TrainingData
	videos []model.Video
	byID   map[string]*model.Video
}

func NewContentService(path string) (*ContentService, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewContentServiceFromBytes(raw)
}

func NewContentServiceFromBytes(raw []byte) (*ContentService, error) {
	var data model.TrainingData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	s := &ContentService{
		data: &data,
		byID: make(map[string]*model.Video),
	}
	for _, step := range data.Steps {
		for _, topic := range step.Topics {
			for _, video := range topic.Videos {
				s.videos = append(s.videos, video)
				v := video
				s.byID[video.ID] = &v
			}
		}
	}
	return s, nil
}

func (s *ContentService) Training() *model.TrainingData {
	return s.data
}

func (s *ContentService) AllVideos() []model.Video {
	return s.videos
}

func (s *ContentService) FindVideo(videoID string) (*model.Video, error) {
	v, ok := s.byID[videoID]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return v, nil
}

// Questions 返回某视频测验的标准题目；视频不存在或没有测验都算 NotFound
func (s *ContentService) Questions(videoID string) ([]model.QuizQuestion, error) {
	v, ok := s.byID[videoID]
	if !ok || v.Quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	return v.Quiz.Questions, nil
}

// VideoCount 目录视频总数，完成率的分母
func (s *ContentService) VideoCount() int {
	return len(s.videos)
}
