package service

import (
	"context"
	"sort"
	"time"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/scoring"

	"go.uber.org/zap"

	"training_portal_backend/pkg/logger"
)

// 评分门面的协作方。以接口注入而不是共享的全局句柄，
// 纯计算都在 scoring 包里，这里只负责编排 I/O。

type QuestionSource interface {
	Questions(videoID string) ([]model.QuizQuestion, error)
	VideoCount() int
}

type AttemptStore interface {
	Create(attempt *model.QuizAttempt) error
	CountByUserAndQuiz(userID uint, quizID string) (int64, error)
	FindCompletedByUser(userID uint) ([]model.QuizAttempt, error)
	FindAllCompleted() ([]model.QuizAttempt, error)
	FindByUserAndQuiz(userID uint, quizID string) ([]model.QuizAttempt, error)
}

type LoginHistory interface {
	TimestampsByUser(userID uint, since *time.Time) ([]time.Time, error)
	CountSince(userID uint, since time.Time) (int64, error)
}

type Directory interface {
	List() ([]model.User, error)
	ListByTeam(teamID uint) ([]model.User, error)
}

type ProgressCounter interface {
	CountDoneByUser(userID uint) (int64, error)
}

type LeaderboardCache interface {
	Get(ctx context.Context) ([]model.LeaderboardEntry, bool)
	Set(ctx context.Context, entries []model.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

type ScoringService struct {
	Questions QuestionSource
	Attempts  AttemptStore
	Logins    LoginHistory
	Users     Directory
	Progress  ProgressCounter
	Cache     LeaderboardCache // 可为 nil（测试或未启用 Redis）
	now       func() time.Time
}

func NewScoringService(
	questions QuestionSource,
	attempts AttemptStore,
	logins LoginHistory,
	users Directory,
	progress ProgressCounter,
	cache LeaderboardCache,
	now func() time.Time,
) *ScoringService {
	if now == nil {
		now = time.Now
	}
	return &ScoringService{
		Questions: questions,
		Attempts:  attempts,
		Logins:    logins,
		Users:     users,
		Progress:  progress,
		Cache:     cache,
		now:       now,
	}
}

type AttemptSummary struct {
	ID              uint `json:"id"`
	AttemptNumber   int  `json:"attemptNumber"`
	TotalQuestions  int  `json:"totalQuestions"`
	CorrectAnswers  int  `json:"correctAnswers"`
	FirstTryCorrect int  `json:"firstTryCorrect"`
	ScoreEarned     int  `json:"scoreEarned"`
	IsFirstAttempt  bool `json:"isFirstAttempt"`
}

type SubmitResult struct {
	Attempt AttemptSummary `json:"attempt"`
}

// SubmitAttempt 提交并评分一次测验。
// 尝试序号取自已有记录数 +1；首试加分只属于第 1 次。
// 并发双提交由存储层唯一索引裁决，输家收到 util.ErrAttemptConflict。
func (s *ScoringService) SubmitAttempt(userID uint, videoID string, answers []model.AnswerSubmission) (*SubmitResult, error) {
	questions, err := s.Questions.Questions(videoID)
	if err != nil {
		return nil, err
	}

	prior, err := s.Attempts.CountByUserAndQuiz(userID, videoID)
	if err != nil {
		return nil, err
	}
	attemptNumber := int(prior) + 1
	isFirstAttempt := attemptNumber == 1

	scored := scoring.ScoreQuizAttempt(questions, answers, isFirstAttempt)

	completedAt := s.now()
	attempt := &model.QuizAttempt{
		UserID:          userID,
		QuizID:          videoID,
		AttemptNumber:   attemptNumber,
		CompletedAt:     &completedAt,
		TotalQuestions:  scored.TotalQuestions,
		CorrectAnswers:  scored.CorrectAnswers,
		FirstTryCorrect: scored.FirstTryCorrect,
		ScoreEarned:     scored.ScoreEarned,
		Answers:         answers,
	}

	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(context.Background()); err != nil {
			logger.Log.Warn("leaderboard cache invalidation failed", zap.Error(err))
		}
	}

	return &SubmitResult{Attempt: AttemptSummary{
		ID:              attempt.ID,
		AttemptNumber:   attemptNumber,
		TotalQuestions:  scored.TotalQuestions,
		CorrectAnswers:  scored.CorrectAnswers,
		FirstTryCorrect: scored.FirstTryCorrect,
		ScoreEarned:     scored.ScoreEarned,
		IsFirstAttempt:  isFirstAttempt,
	}}, nil
}

type PersonalKpis struct {
	TotalScore       int                      `json:"totalScore"`
	QuizzesCompleted int                      `json:"quizzesCompleted"`
	Accuracy         int                      `json:"accuracy"`
	Streak           int                      `json:"streak"`
	Rank             int                      `json:"rank"`
	Total            int                      `json:"total"`
	Percentile       int                      `json:"percentile"`
	Grade            scoring.GradeLabel       `json:"grade"`
	Top10            []model.LeaderboardEntry `json:"top10"`
}

// PersonalKpis 个人仪表盘：总分、正确率、工作日连续登录、全员排名与前十榜。
// 所有比较口径都来自同一套聚合规则，和提交、团队视图完全一致。
func (s *ScoringService) PersonalKpis(userID uint) (*PersonalKpis, error) {
	attempts, err := s.Attempts.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}
	latest := scoring.LatestPerQuiz(attempts)

	logins, err := s.Logins.TimestampsByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	users, err := s.Users.List()
	if err != nil {
		return nil, err
	}
	scores, err := s.scoresByUser(users)
	if err != nil {
		return nil, err
	}

	allScores := make([]int, len(users))
	for i, u := range users {
		allScores[i] = scores[u.ID]
	}
	myScore := scores[userID]
	percentile := scoring.Percentile(myScore, allScores)

	return &PersonalKpis{
		TotalScore:       scoring.SumScore(latest),
		QuizzesCompleted: len(latest),
		Accuracy:         scoring.Accuracy(latest),
		Streak:           scoring.WeekdayStreak(logins, s.now()),
		Rank:             scoring.RankPosition(myScore, allScores),
		Total:            len(users),
		Percentile:       percentile,
		Grade:            scoring.Grade(percentile),
		Top10:            s.top10(users, scores),
	}, nil
}

type MemberInfo struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Role model.UserRole `json:"role"`
}

type TeamMetricsRow struct {
	Member           MemberInfo `json:"member"`
	CurrentScore     int        `json:"currentScore"`
	ScoreDelta       int        `json:"scoreDelta"`
	Logins7d         int        `json:"logins7d"`
	WorkWeekDays     [5]bool    `json:"workWeekDays"`
	QuizzesCompleted int        `json:"quizzesCompleted"`
	Accuracy         int        `json:"accuracy"`
	VideosCompleted  int        `json:"videosCompleted"`
	CompletionPct    int        `json:"completionPct"`
}

type TeamMetrics struct {
	Rows   []TeamMetricsRow `json:"rows"`
	TeamID uint             `json:"teamId"`
}

// TeamMetrics 经理团队视图。七日增量定义为当前总分减去
// "只用严格早于七天前完成的尝试"算出的总分，口径同个人仪表盘。
func (s *ScoringService) TeamMetrics(teamID uint) (*TeamMetrics, error) {
	members, err := s.Users.ListByTeam(teamID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sevenDaysAgo := now.Add(-7 * 24 * time.Hour)
	monday := scoring.MostRecentMonday(now)
	videoCount := s.Questions.VideoCount()

	rows := make([]TeamMetricsRow, 0, len(members))
	for _, member := range members {
		attempts, err := s.Attempts.FindCompletedByUser(member.ID)
		if err != nil {
			return nil, err
		}

		latest := scoring.LatestPerQuiz(attempts)
		currentScore := scoring.SumScore(latest)

		var beforeCutoff []model.QuizAttempt
		for _, a := range attempts {
			if a.CompletedAt != nil && a.CompletedAt.Before(sevenDaysAgo) {
				beforeCutoff = append(beforeCutoff, a)
			}
		}
		scoreBefore := scoring.SumScore(scoring.LatestPerQuiz(beforeCutoff))

		logins7d, err := s.Logins.CountSince(member.ID, sevenDaysAgo)
		if err != nil {
			return nil, err
		}
		weekLogins, err := s.Logins.TimestampsByUser(member.ID, &monday)
		if err != nil {
			return nil, err
		}

		videosCompleted, err := s.Progress.CountDoneByUser(member.ID)
		if err != nil {
			return nil, err
		}
		completionPct := 0
		if videoCount > 0 {
			completionPct = int(float64(videosCompleted)/float64(videoCount)*100 + 0.5)
		}

		rows = append(rows, TeamMetricsRow{
			Member: MemberInfo{
				ID:   member.ExternalID,
				Name: member.Name,
				Role: member.Role,
			},
			CurrentScore:     currentScore,
			ScoreDelta:       currentScore - scoreBefore,
			Logins7d:         int(logins7d),
			WorkWeekDays:     scoring.WorkWeekDays(weekLogins, now),
			QuizzesCompleted: len(latest),
			Accuracy:         scoring.Accuracy(latest),
			VideosCompleted:  int(videosCompleted),
			CompletionPct:    completionPct,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CurrentScore > rows[j].CurrentScore
	})

	return &TeamMetrics{Rows: rows, TeamID: teamID}, nil
}

type AttemptHistory struct {
	Attempts []model.QuizAttempt `json:"attempts"`
	Best     *model.QuizAttempt  `json:"best"`
}

// AttemptHistory 某用户在一个视频上的全部尝试（按序号升序）及其最高分一次
func (s *ScoringService) AttemptHistory(userID uint, videoID string) (*AttemptHistory, error) {
	attempts, err := s.Attempts.FindByUserAndQuiz(userID, videoID)
	if err != nil {
		return nil, err
	}

	history := &AttemptHistory{Attempts: attempts}
	for i := range attempts {
		if history.Best == nil || attempts[i].ScoreEarned > history.Best.ScoreEarned {
			history.Best = &attempts[i]
		}
	}
	return history, nil
}

// scoresByUser 全员"每测验最新一次"总分，一次查询分组计算
func (s *ScoringService) scoresByUser(users []model.User) (map[uint]int, error) {
	all, err := s.Attempts.FindAllCompleted()
	if err != nil {
		return nil, err
	}

	byUser := make(map[uint][]model.QuizAttempt)
	for _, a := range all {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	scores := make(map[uint]int, len(users))
	for _, u := range users {
		scores[u.ID] = scoring.SumScore(scoring.LatestPerQuiz(byUser[u.ID]))
	}
	return scores, nil
}

// top10 排行榜：分数降序，同分保持目录顺序，失效后重建并写回缓存
func (s *ScoringService) top10(users []model.User, scores map[uint]int) []model.LeaderboardEntry {
	ctx := context.Background()
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx); ok {
			return cached
		}
	}

	entries := make([]model.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = model.LeaderboardEntry{
			ID:    u.ExternalID,
			Name:  u.Name,
			Score: scores[u.ID],
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	for i := range entries {
		entries[i].Position = i + 1
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, entries); err != nil {
			logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries
}
