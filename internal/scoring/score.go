package scoring

import "training_portal_backend/internal/model"

// ScoreQuizAttempt 按标准题库对一次提交评分，服务端为唯一计分来源。
//
// 规则：
//   - 只有提交时的最终选择等于正确答案才算答对，首次点击不影响对错；
//   - 首试加分要求该题答对、首次点击即正确、且整次提交是该测验的第一次尝试；
//   - 未作答或索引越界的题不计分也不报错；
//   - TotalQuestions 恒为题库题数，与实际作答多少无关。
//
// 纯函数，对任何输入都不返回错误。
func ScoreQuizAttempt(questions []model.QuizQuestion, answers []model.AnswerSubmission, isFirstAttempt bool) model.ScoredResult {
	answerMap := make(map[string]model.AnswerSubmission, len(answers))
	for _, a := range answers {
		answerMap[a.QuestionID] = a
	}

	correctAnswers := 0
	firstTryCorrect := 0

	for _, q := range questions {
		answer, ok := answerMap[q.ID]
		if !ok {
			continue
		}

		finalCorrect := answer.FinalSelectedIndex == q.AnswerIndex
		firstCorrect := answer.FirstSelectedIndex == q.AnswerIndex

		if finalCorrect {
			correctAnswers++
		}
		if finalCorrect && firstCorrect && isFirstAttempt {
			firstTryCorrect++
		}
	}

	return model.ScoredResult{
		TotalQuestions:  len(questions),
		CorrectAnswers:  correctAnswers,
		FirstTryCorrect: firstTryCorrect,
		ScoreEarned:     CalcQuizPoints(len(questions), correctAnswers, firstTryCorrect),
	}
}
