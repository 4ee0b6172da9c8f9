package scoring

import (
	"testing"

	"training_portal_backend/internal/model"
)

func threeQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		{ID: "q1", Choices: []string{"a", "b", "c"}, AnswerIndex: 0},
		{ID: "q2", Choices: []string{"a", "b", "c"}, AnswerIndex: 1},
		{ID: "q3", Choices: []string{"a", "b", "c"}, AnswerIndex: 2},
	}
}

func TestScoreFirstAttempt(t *testing.T) {
	// q1 一次答对，q2 改对但首次点错，q3 未作答
	answers := []model.AnswerSubmission{
		{QuestionID: "q1", FirstSelectedIndex: 0, FinalSelectedIndex: 0},
		{QuestionID: "q2", FirstSelectedIndex: 0, FinalSelectedIndex: 1},
	}

	got := ScoreQuizAttempt(threeQuestions(), answers, true)

	if got.TotalQuestions != 3 {
		t.Fatalf("expected totalQuestions 3, got %d", got.TotalQuestions)
	}
	if got.CorrectAnswers != 2 {
		t.Fatalf("expected 2 correct, got %d", got.CorrectAnswers)
	}
	if got.FirstTryCorrect != 1 {
		t.Fatalf("expected 1 first-try correct, got %d", got.FirstTryCorrect)
	}
	if got.ScoreEarned != 25 {
		t.Fatalf("expected 25 points, got %d", got.ScoreEarned)
	}
}

func TestScoreRetryForfeitsBonus(t *testing.T) {
	answers := []model.AnswerSubmission{
		{QuestionID: "q1", FirstSelectedIndex: 0, FinalSelectedIndex: 0},
		{QuestionID: "q2", FirstSelectedIndex: 0, FinalSelectedIndex: 1},
	}

	got := ScoreQuizAttempt(threeQuestions(), answers, false)

	if got.FirstTryCorrect != 0 {
		t.Fatalf("retry must not earn first-try bonus, got %d", got.FirstTryCorrect)
	}
	if got.ScoreEarned != 20 {
		t.Fatalf("expected 20 points on retry, got %d", got.ScoreEarned)
	}
}

func TestScoreChangedAwayFromCorrect(t *testing.T) {
	// 首次点对但提交前改错：对错与加分都以最终选择为准
	answers := []model.AnswerSubmission{
		{QuestionID: "q1", FirstSelectedIndex: 0, FinalSelectedIndex: 2},
	}

	got := ScoreQuizAttempt(threeQuestions(), answers, true)

	if got.CorrectAnswers != 0 || got.FirstTryCorrect != 0 || got.ScoreEarned != 0 {
		t.Fatalf("changed-away answer must score nothing, got %+v", got)
	}
}

func TestScoreMalformedAnswers(t *testing.T) {
	// 越界索引、未知题目、-1 哨兵都只是不得分，不会报错
	answers := []model.AnswerSubmission{
		{QuestionID: "q1", FirstSelectedIndex: -1, FinalSelectedIndex: -1},
		{QuestionID: "q2", FirstSelectedIndex: 99, FinalSelectedIndex: 99},
		{QuestionID: "nope", FirstSelectedIndex: 0, FinalSelectedIndex: 0},
	}

	got := ScoreQuizAttempt(threeQuestions(), answers, true)

	if got.CorrectAnswers != 0 || got.ScoreEarned != 0 {
		t.Fatalf("malformed answers must degrade to zero, got %+v", got)
	}
	if got.TotalQuestions != 3 {
		t.Fatalf("totalQuestions must stay canonical, got %d", got.TotalQuestions)
	}
}

func TestScoreEmptyInputs(t *testing.T) {
	got := ScoreQuizAttempt(nil, nil, true)
	if got.TotalQuestions != 0 || got.ScoreEarned != 0 {
		t.Fatalf("empty inputs must yield zero result, got %+v", got)
	}
}

func TestScoreBounds(t *testing.T) {
	for total := 0; total <= 5; total++ {
		for correct := 0; correct <= total; correct++ {
			for firstTry := 0; firstTry <= correct; firstTry++ {
				score := CalcQuizPoints(total, correct, firstTry)
				if score < 0 || score > MaxPoints(total) {
					t.Fatalf("score %d out of bounds for total=%d correct=%d firstTry=%d",
						score, total, correct, firstTry)
				}
			}
		}
	}
}
