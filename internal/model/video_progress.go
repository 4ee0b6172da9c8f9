package model

import "time"

// VideoProgress 用户观看进度（每个视频一条，重复提交覆盖）
type VideoProgress struct {
	BaseModel
	UserID      uint       `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_user_video" json:"userId"`
	VideoID     string     `gorm:"size:64;not null;uniqueIndex:idx_user_video" json:"videoId"`
	Done        bool       `gorm:"default:false" json:"done"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (VideoProgress) TableName() string {
	return "video_progress"
}
