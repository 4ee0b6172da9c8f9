package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AnswerSubmission 用户对单道题的作答：首次点击与提交时的最终选择。
// 未作答时索引为 -1。
type AnswerSubmission struct {
	QuestionID         string `json:"questionId"`
	FirstSelectedIndex int    `json:"firstSelectedIndex"`
	FinalSelectedIndex int    `json:"finalSelectedIndex"`
}

// AnswerList 以 JSON 存储在 quiz_attempts.answers 列中
type AnswerList []AnswerSubmission

func (l AnswerList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for AnswerList: %T", value)
	}
	return json.Unmarshal(data, l)
}

// QuizAttempt 一次已评分的测验提交记录。
// (user_id, quiz_id, attempt_number) 唯一，重复提交由唯一索引拒绝而不是覆盖。
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID         uint       `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_user_quiz_attempt" json:"userId"`
	QuizID         string     `gorm:"size:64;not null;index;uniqueIndex:idx_user_quiz_attempt" json:"quizId"`
	AttemptNumber  int        `gorm:"not null;uniqueIndex:idx_user_quiz_attempt" json:"attemptNumber"`
	CompletedAt    *time.Time `gorm:"index" json:"completedAt"`
	TotalQuestions int        `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int        `gorm:"not null" json:"correctAnswers"`
	FirstTryCorrect int       `gorm:"not null" json:"firstTryCorrect"`
	ScoreEarned    int        `gorm:"not null" json:"scoreEarned"`
	Answers        AnswerList `gorm:"type:json" json:"answers"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
