package scoring

import (
	"testing"
	"time"

	"training_portal_backend/internal/model"
)

func at(day int) *time.Time {
	t := time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestLatestPerQuizKeepsNewest(t *testing.T) {
	attempts := []model.QuizAttempt{
		{QuizID: "q1", AttemptNumber: 1, ScoreEarned: 5, CompletedAt: at(1)},
		{QuizID: "q1", AttemptNumber: 2, ScoreEarned: 15, CompletedAt: at(2)},
	}

	latest := LatestPerQuiz(attempts)
	if len(latest) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(latest))
	}
	if latest[0].ScoreEarned != 15 {
		t.Fatalf("expected the later attempt to win, got score %d", latest[0].ScoreEarned)
	}
	if SumScore(latest) != 15 {
		t.Fatalf("expected total 15, got %d", SumScore(latest))
	}
}

func TestLatestPerQuizRetryNeverAccumulates(t *testing.T) {
	var attempts []model.QuizAttempt
	for i := 1; i <= 5; i++ {
		attempts = append(attempts, model.QuizAttempt{
			QuizID: "q1", AttemptNumber: i, ScoreEarned: 10 * i, CompletedAt: at(i),
		})
	}

	total := SumScore(LatestPerQuiz(attempts))
	if total != 50 {
		t.Fatalf("retries must replace, not accumulate: expected 50, got %d", total)
	}
}

func TestLatestPerQuizExcludesIncomplete(t *testing.T) {
	attempts := []model.QuizAttempt{
		{QuizID: "q1", ScoreEarned: 10, CompletedAt: nil},
		{QuizID: "q2", ScoreEarned: 20, CompletedAt: at(3)},
	}

	latest := LatestPerQuiz(attempts)
	if len(latest) != 1 || latest[0].QuizID != "q2" {
		t.Fatalf("incomplete attempts must be excluded, got %+v", latest)
	}
}

func TestLatestPerQuizTieFirstWins(t *testing.T) {
	// completedAt 相同：保留先出现的那条
	attempts := []model.QuizAttempt{
		{QuizID: "q1", AttemptNumber: 1, ScoreEarned: 10, CompletedAt: at(4)},
		{QuizID: "q1", AttemptNumber: 2, ScoreEarned: 30, CompletedAt: at(4)},
	}

	latest := LatestPerQuiz(attempts)
	if len(latest) != 1 || latest[0].AttemptNumber != 1 {
		t.Fatalf("tie must keep the first encountered, got %+v", latest)
	}
}

func TestLatestPerQuizIdempotent(t *testing.T) {
	attempts := []model.QuizAttempt{
		{QuizID: "q1", ScoreEarned: 5, CompletedAt: at(1)},
		{QuizID: "q2", ScoreEarned: 10, CompletedAt: at(2)},
		{QuizID: "q1", ScoreEarned: 25, CompletedAt: at(3)},
	}

	once := LatestPerQuiz(attempts)
	twice := LatestPerQuiz(once)

	if len(once) != len(twice) {
		t.Fatalf("re-aggregation changed size: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].QuizID != twice[i].QuizID || once[i].ScoreEarned != twice[i].ScoreEarned {
			t.Fatalf("re-aggregation is not a fixed point at %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestSumScoreEmpty(t *testing.T) {
	if SumScore(nil) != 0 {
		t.Fatalf("empty collection must sum to 0")
	}
}

func TestAccuracy(t *testing.T) {
	attempts := []model.QuizAttempt{
		{CorrectAnswers: 2, TotalQuestions: 3},
		{CorrectAnswers: 1, TotalQuestions: 3},
	}
	if got := Accuracy(attempts); got != 50 {
		t.Fatalf("expected 50%%, got %d", got)
	}
	if got := Accuracy(nil); got != 0 {
		t.Fatalf("no questions answered must be 0, got %d", got)
	}
}
