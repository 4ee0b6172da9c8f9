package model

// 培训目录由打包的 training.json 提供，只读，不入库。
// 结构：步骤 -> 主题 -> 视频（可带测验）。

type QuizQuestion struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation"`
}

type VideoQuiz struct {
	Questions []QuizQuestion `json:"questions"`
}

type Video struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Channel  string     `json:"channel"`
	URL      string     `json:"url"`
	Level    string     `json:"level"`
	Duration string     `json:"duration"`
	TopPick  bool       `json:"top_pick"`
	Quiz     *VideoQuiz `json:"quiz,omitempty"`
}

type Topic struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Videos      []Video `json:"videos"`
}

type Step struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Topics []Topic `json:"topics"`
}

type TrainingData struct {
	Portal struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
	} `json:"portal"`
	Steps []Step `json:"steps"`
}

// PublicQuestion 去掉答案下标和解析的题目视图，发给客户端的目录只带这个
type PublicQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

type PublicQuiz struct {
	Questions []PublicQuestion `json:"questions"`
}

type PublicVideo struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Channel  string      `json:"channel"`
	URL      string      `json:"url"`
	Level    string      `json:"level"`
	Duration string      `json:"duration"`
	TopPick  bool        `json:"top_pick"`
	Quiz     *PublicQuiz `json:"quiz,omitempty"`
}

type PublicTopic struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Videos      []PublicVideo `json:"videos"`
}

type PublicStep struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Topics []PublicTopic `json:"topics"`
}

type PublicTrainingData struct {
	Portal struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
	} `json:"portal"`
	Steps []PublicStep `json:"steps"`
}

// Sanitized 标准答案只存在于服务端，目录出接口前必须经过这里
func (d *TrainingData) Sanitized() *PublicTrainingData {
	out := &PublicTrainingData{Portal: d.Portal}
	for _, step := range d.Steps {
		ps := PublicStep{ID: step.ID, Title: step.Title}
		for _, topic := range step.Topics {
			pt := PublicTopic{ID: topic.ID, Title: topic.Title, Description: topic.Description}
			for _, video := range topic.Videos {
				pv := PublicVideo{
					ID:       video.ID,
					Title:    video.Title,
					Channel:  video.Channel,
					URL:      video.URL,
					Level:    video.Level,
					Duration: video.Duration,
					TopPick:  video.TopPick,
				}
				if video.Quiz != nil {
					quiz := &PublicQuiz{}
					for _, q := range video.Quiz.Questions {
						quiz.Questions = append(quiz.Questions, PublicQuestion{
							ID:       q.ID,
							Question: q.Question,
							Choices:  q.Choices,
						})
					}
					pv.Quiz = quiz
				}
				pt.Videos = append(pt.Videos, pv)
			}
			ps.Topics = append(ps.Topics, pt)
		}
		out.Steps = append(out.Steps, ps)
	}
	return out
}

// ScoredResult 一次提交的纯评分结果，字段落入 QuizAttempt 后即丢弃
type ScoredResult struct {
	TotalQuestions  int `json:"totalQuestions"`
	CorrectAnswers  int `json:"correctAnswers"`
	FirstTryCorrect int `json:"firstTryCorrect"`
	ScoreEarned     int `json:"scoreEarned"`
}
