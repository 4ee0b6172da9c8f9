package scoring

import (
	"math"

	"training_portal_backend/internal/model"
)

// LatestPerQuiz 把一段尝试历史折叠为"每个测验只留最新一次完成"。
// 重考替换而非累加之前的贡献，这是整个积分模型的核心不变式。
//
// 未完成（CompletedAt 为 nil）的尝试不参与；CompletedAt 相同取先遇到的一条，
// 调用方按完成时间升序提供尝试即可保证确定性。
// 返回顺序为各测验首次出现的顺序。
func LatestPerQuiz(attempts []model.QuizAttempt) []model.QuizAttempt {
	index := make(map[string]int, len(attempts))
	result := make([]model.QuizAttempt, 0, len(attempts))

	for _, a := range attempts {
		if a.CompletedAt == nil {
			continue
		}
		i, seen := index[a.QuizID]
		if !seen {
			index[a.QuizID] = len(result)
			result = append(result, a)
			continue
		}
		existing := result[i]
		if existing.CompletedAt == nil || a.CompletedAt.After(*existing.CompletedAt) {
			result[i] = a
		}
	}
	return result
}

// SumScore 对（已去重的）尝试集合求总分，空集合为 0
func SumScore(attempts []model.QuizAttempt) int {
	total := 0
	for _, a := range attempts {
		total += a.ScoreEarned
	}
	return total
}

// Accuracy 按同一去重集合计算正确率百分比（四舍五入），没有题目时为 0
func Accuracy(attempts []model.QuizAttempt) int {
	totalCorrect := 0
	totalAnswered := 0
	for _, a := range attempts {
		totalCorrect += a.CorrectAnswers
		totalAnswered += a.TotalQuestions
	}
	if totalAnswered == 0 {
		return 0
	}
	return int(math.Round(float64(totalCorrect) / float64(totalAnswered) * 100))
}
