package scoring

import "math"

// 积分规则：
//   每答对一题 10 分，首次尝试首次点击即答对再加 5 分，单题上限 15 分。
//   总分由各测验的最新一次完成尝试求和得出，可随时从历史记录重算。
const (
	PointsPerQuestion = 10
	FirstTryBonus     = 5
)

type GradeLabel string

const (
	GradeA GradeLabel = "A"
	GradeB GradeLabel = "B"
	GradeC GradeLabel = "C"
	GradeD GradeLabel = "D"
)

// Grade 由百分位(0-100)得出等级，区间下界含边界
func Grade(percentile int) GradeLabel {
	switch {
	case percentile >= 90:
		return GradeA
	case percentile >= 66:
		return GradeB
	case percentile >= 33:
		return GradeC
	default:
		return GradeD
	}
}

// Percentile 计算 score 在全体分数中的百分位：低于自己的其他成员占比。
// allScores 包含本人分数，分母为 N-1；人数不超过 1 时返回 100。
func Percentile(score int, allScores []int) int {
	if len(allScores) <= 1 {
		return 100
	}
	below := 0
	for _, s := range allScores {
		if s < score {
			below++
		}
	}
	return int(math.Round(float64(below) / float64(len(allScores)-1) * 100))
}

// RankPosition 1 起始名次，分数严格更高者每人占一名，同分共享最优名次
func RankPosition(score int, allScores []int) int {
	higher := 0
	for _, s := range allScores {
		if s > score {
			higher++
		}
	}
	return higher + 1
}

// CalcQuizPoints 按答对数与首试答对数计算一次尝试的得分
func CalcQuizPoints(totalQuestions, correctAnswers, firstTryCorrect int) int {
	return correctAnswers*PointsPerQuestion + firstTryCorrect*FirstTryBonus
}

// MaxPoints 给定题数可得的最高分
func MaxPoints(totalQuestions int) int {
	return totalQuestions * (PointsPerQuestion + FirstTryBonus)
}
