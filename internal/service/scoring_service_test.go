package service

import (
	"errors"
	"testing"
	"time"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/util"
)

// 内存版协作方，签名与 gorm 仓库一致

type fakeQuestions struct {
	quizzes map[string][]model.QuizQuestion
	videos  int
}

func (f *fakeQuestions) Questions(videoID string) ([]model.QuizQuestion, error) {
	q, ok := f.quizzes[videoID]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return q, nil
}

func (f *fakeQuestions) VideoCount() int { return f.videos }

type fakeAttempts struct {
	records []model.QuizAttempt
	nextID  uint
}

func (f *fakeAttempts) Create(attempt *model.QuizAttempt) error {
	for _, a := range f.records {
		if a.UserID == attempt.UserID && a.QuizID == attempt.QuizID && a.AttemptNumber == attempt.AttemptNumber {
			return util.ErrAttemptConflict
		}
	}
	f.nextID++
	attempt.ID = f.nextID
	f.records = append(f.records, *attempt)
	return nil
}

func (f *fakeAttempts) CountByUserAndQuiz(userID uint, quizID string) (int64, error) {
	var count int64
	for _, a := range f.records {
		if a.UserID == userID && a.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttempts) FindCompletedByUser(userID uint) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.records {
		if a.UserID == userID && a.CompletedAt != nil {
			out = append(out, a)
		}
	}
	sortByCompletedAt(out)
	return out, nil
}

func (f *fakeAttempts) FindAllCompleted() ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.records {
		if a.CompletedAt != nil {
			out = append(out, a)
		}
	}
	sortByCompletedAt(out)
	return out, nil
}

func (f *fakeAttempts) FindByUserAndQuiz(userID uint, quizID string) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.records {
		if a.UserID == userID && a.QuizID == quizID {
			out = append(out, a)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].AttemptNumber < out[i].AttemptNumber {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func sortByCompletedAt(attempts []model.QuizAttempt) {
	for i := 0; i < len(attempts); i++ {
		for j := i + 1; j < len(attempts); j++ {
			if attempts[j].CompletedAt.Before(*attempts[i].CompletedAt) {
				attempts[i], attempts[j] = attempts[j], attempts[i]
			}
		}
	}
}

type fakeLogins struct {
	byUser map[uint][]time.Time
}

func (f *fakeLogins) TimestampsByUser(userID uint, since *time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, t := range f.byUser[userID] {
		if since == nil || !t.Before(*since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLogins) CountSince(userID uint, since time.Time) (int64, error) {
	var count int64
	for _, t := range f.byUser[userID] {
		if !t.Before(since) {
			count++
		}
	}
	return count, nil
}

type fakeDirectory struct {
	users []model.User
}

func (f *fakeDirectory) List() ([]model.User, error) { return f.users, nil }

func (f *fakeDirectory) ListByTeam(teamID uint) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.TeamID == teamID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeProgress struct {
	done map[uint]int64
}

func (f *fakeProgress) CountDoneByUser(userID uint) (int64, error) {
	return f.done[userID], nil
}

type testEnv struct {
	service  *ScoringService
	attempts *fakeAttempts
	logins   *fakeLogins
	progress *fakeProgress
}

var testNow = time.Date(2026, time.March, 19, 15, 0, 0, 0, time.UTC) // Thursday

func newTestEnv() *testEnv {
	questions := &fakeQuestions{
		quizzes: map[string][]model.QuizQuestion{
			"vid-1": {
				{ID: "q1", AnswerIndex: 0},
				{ID: "q2", AnswerIndex: 1},
				{ID: "q3", AnswerIndex: 2},
			},
		},
		videos: 4,
	}
	attempts := &fakeAttempts{}
	logins := &fakeLogins{byUser: map[uint][]time.Time{}}
	progress := &fakeProgress{done: map[uint]int64{}}
	directory := &fakeDirectory{users: []model.User{
		{BaseModel: model.BaseModel{ID: 1}, ExternalID: "alice", Name: "Alice", Role: model.Employee, TeamID: 1},
		{BaseModel: model.BaseModel{ID: 2}, ExternalID: "bob", Name: "Bob", Role: model.Manager, TeamID: 1},
		{BaseModel: model.BaseModel{ID: 3}, ExternalID: "carol", Name: "Carol", Role: model.Employee, TeamID: 2},
	}}

	svc := NewScoringService(questions, attempts, logins, directory, progress, nil, func() time.Time {
		return testNow
	})
	return &testEnv{service: svc, attempts: attempts, logins: logins, progress: progress}
}

func addAttempt(env *testEnv, userID uint, quizID string, num, score, correct, total int, completed time.Time) {
	env.attempts.records = append(env.attempts.records, model.QuizAttempt{
		UserID: userID, QuizID: quizID, AttemptNumber: num,
		ScoreEarned: score, CorrectAnswers: correct, TotalQuestions: total,
		CompletedAt: &completed,
	})
}

func TestSubmitAttemptFirstTry(t *testing.T) {
	env := newTestEnv()

	result, err := env.service.SubmitAttempt(1, "vid-1", []model.AnswerSubmission{
		{QuestionID: "q1", FirstSelectedIndex: 0, FinalSelectedIndex: 0},
		{QuestionID: "q2", FirstSelectedIndex: 0, FinalSelectedIndex: 1},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	a := result.Attempt
	if a.AttemptNumber != 1 || !a.IsFirstAttempt {
		t.Fatalf("expected first attempt, got %+v", a)
	}
	if a.CorrectAnswers != 2 || a.FirstTryCorrect != 1 || a.ScoreEarned != 25 || a.TotalQuestions != 3 {
		t.Fatalf("unexpected scoring: %+v", a)
	}
}

func TestSubmitAttemptNumbersAndBonus(t *testing.T) {
	env := newTestEnv()
	answers := []model.AnswerSubmission{
		{QuestionID: "q1", FirstSelectedIndex: 0, FinalSelectedIndex: 0},
	}

	first, err := env.service.SubmitAttempt(1, "vid-1", answers)
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	second, err := env.service.SubmitAttempt(1, "vid-1", answers)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	if first.Attempt.ScoreEarned != 15 {
		t.Fatalf("first attempt should earn bonus, got %d", first.Attempt.ScoreEarned)
	}
	if second.Attempt.AttemptNumber != 2 || second.Attempt.IsFirstAttempt {
		t.Fatalf("expected attempt 2, got %+v", second.Attempt)
	}
	if second.Attempt.ScoreEarned != 10 {
		t.Fatalf("retry must not earn bonus, got %d", second.Attempt.ScoreEarned)
	}
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.SubmitAttempt(1, "vid-404", nil)
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubmitAttemptConflict(t *testing.T) {
	env := newTestEnv()
	// 并发双提交：第二个写入者带着同样的尝试序号到达存储层
	addAttempt(env, 1, "vid-1", 1, 10, 1, 3, testNow.Add(-time.Hour))

	attempt := &model.QuizAttempt{UserID: 1, QuizID: "vid-1", AttemptNumber: 1}
	if err := env.attempts.Create(attempt); !errors.Is(err, util.ErrAttemptConflict) {
		t.Fatalf("expected conflict from store, got %v", err)
	}
}

func TestPersonalKpis(t *testing.T) {
	env := newTestEnv()

	// Alice：vid-1 重考（15 分覆盖 5 分），vid-2 25 分
	addAttempt(env, 1, "vid-1", 1, 5, 1, 3, testNow.Add(-72*time.Hour))
	addAttempt(env, 1, "vid-1", 2, 15, 1, 3, testNow.Add(-48*time.Hour))
	addAttempt(env, 1, "vid-2", 1, 25, 2, 3, testNow.Add(-24*time.Hour))
	// Bob 30 分，Carol 0 分
	addAttempt(env, 2, "vid-1", 1, 30, 2, 3, testNow.Add(-24*time.Hour))

	// 周一到周四每天登录
	for i := 0; i < 4; i++ {
		env.logins.byUser[1] = append(env.logins.byUser[1], testNow.AddDate(0, 0, -i))
	}

	kpis, err := env.service.PersonalKpis(1)
	if err != nil {
		t.Fatalf("kpis failed: %v", err)
	}

	if kpis.TotalScore != 40 {
		t.Fatalf("expected total 40 (15+25), got %d", kpis.TotalScore)
	}
	if kpis.QuizzesCompleted != 2 {
		t.Fatalf("expected 2 quizzes, got %d", kpis.QuizzesCompleted)
	}
	// 正确率只看每测验最新一次：(1+2)/(3+3)=50%
	if kpis.Accuracy != 50 {
		t.Fatalf("expected accuracy 50, got %d", kpis.Accuracy)
	}
	if kpis.Streak != 4 {
		t.Fatalf("expected streak 4, got %d", kpis.Streak)
	}
	// 人口 [40,30,0]：Alice 第 1 名，低于自己的 2/2 = 100
	if kpis.Rank != 1 || kpis.Total != 3 {
		t.Fatalf("expected rank 1 of 3, got %d of %d", kpis.Rank, kpis.Total)
	}
	if kpis.Percentile != 100 || kpis.Grade != "A" {
		t.Fatalf("expected percentile 100 grade A, got %d %s", kpis.Percentile, kpis.Grade)
	}

	if len(kpis.Top10) != 3 {
		t.Fatalf("expected 3 leaderboard entries, got %d", len(kpis.Top10))
	}
	if kpis.Top10[0].ID != "alice" || kpis.Top10[0].Position != 1 {
		t.Fatalf("expected alice first, got %+v", kpis.Top10[0])
	}
	if kpis.Top10[1].ID != "bob" || kpis.Top10[2].ID != "carol" {
		t.Fatalf("unexpected leaderboard order: %+v", kpis.Top10)
	}
}

func TestPersonalKpisRetryNeverAccumulates(t *testing.T) {
	env := newTestEnv()
	for i := 1; i <= 4; i++ {
		addAttempt(env, 1, "vid-1", i, 10*i, i, 4, testNow.Add(time.Duration(-96+24*i)*time.Hour))
	}

	kpis, err := env.service.PersonalKpis(1)
	if err != nil {
		t.Fatalf("kpis failed: %v", err)
	}
	if kpis.TotalScore != 40 {
		t.Fatalf("retries must replace: expected 40, got %d", kpis.TotalScore)
	}
}

func TestTeamMetrics(t *testing.T) {
	env := newTestEnv()

	// Alice：十天前 10 分，昨天重考 30 分 → 七日增量 20
	addAttempt(env, 1, "vid-1", 1, 10, 1, 3, testNow.AddDate(0, 0, -10))
	addAttempt(env, 1, "vid-1", 2, 30, 2, 3, testNow.AddDate(0, 0, -1))
	// Bob：只有十天前的 25 分 → 增量 0
	addAttempt(env, 2, "vid-2", 1, 25, 2, 3, testNow.AddDate(0, 0, -10))

	env.logins.byUser[1] = []time.Time{
		testNow,                    // Thu
		testNow.AddDate(0, 0, -3),  // Mon
		testNow.AddDate(0, 0, -10), // 窗口外
	}
	env.progress.done[1] = 2

	metrics, err := env.service.TeamMetrics(1)
	if err != nil {
		t.Fatalf("team metrics failed: %v", err)
	}
	if metrics.TeamID != 1 || len(metrics.Rows) != 2 {
		t.Fatalf("expected 2 rows for team 1, got %+v", metrics)
	}

	// 行按当前分数降序
	alice := metrics.Rows[0]
	bob := metrics.Rows[1]
	if alice.Member.ID != "alice" || bob.Member.ID != "bob" {
		t.Fatalf("rows must be sorted by score desc, got %s then %s", alice.Member.ID, bob.Member.ID)
	}

	if alice.CurrentScore != 30 || alice.ScoreDelta != 20 {
		t.Fatalf("expected alice 30/+20, got %d/%+d", alice.CurrentScore, alice.ScoreDelta)
	}
	if bob.CurrentScore != 25 || bob.ScoreDelta != 0 {
		t.Fatalf("expected bob 25/+0, got %d/%+d", bob.CurrentScore, bob.ScoreDelta)
	}

	if alice.Logins7d != 2 {
		t.Fatalf("expected 2 logins in window, got %d", alice.Logins7d)
	}
	want := [5]bool{true, false, false, true, false} // Mon + Thu
	if alice.WorkWeekDays != want {
		t.Fatalf("expected %v, got %v", want, alice.WorkWeekDays)
	}

	if alice.VideosCompleted != 2 || alice.CompletionPct != 50 {
		t.Fatalf("expected 2 videos / 50%%, got %d / %d", alice.VideosCompleted, alice.CompletionPct)
	}
}

func TestAttemptHistoryBest(t *testing.T) {
	env := newTestEnv()
	addAttempt(env, 1, "vid-1", 1, 20, 2, 3, testNow.Add(-2*time.Hour))
	addAttempt(env, 1, "vid-1", 2, 10, 1, 3, testNow.Add(-time.Hour))

	history, err := env.service.AttemptHistory(1, "vid-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history.Attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(history.Attempts))
	}
	if history.Best == nil || history.Best.ScoreEarned != 20 {
		t.Fatalf("expected best score 20, got %+v", history.Best)
	}
}
