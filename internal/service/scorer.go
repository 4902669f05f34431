package service

import (
	"strings"

	"talenthub_backend/internal/model"
)

// Scorer computes (score, maxScore, passed) from a submitted answer payload.
// It is an explicit strategy so the default policy below can be replaced
// without touching the state machine.
type Scorer interface {
	Score(interviewType model.InterviewType, answers []model.AnswerRecord) (score, maxScore int, passed bool)
}

// CompletionScorer is the shipped scoring policy.
//
// MCQ answers are graded by exact option match. Everything else uses a
// completion heuristic: a trimmed response longer than 10 characters counts as
// answered. That heuristic judges completion, not correctness. It is the
// literal production behavior and is preserved as-is; swap in another Scorer
// rather than changing it here.
type CompletionScorer struct{}

const passRatio = 0.6

func NewCompletionScorer() *CompletionScorer {
	return &CompletionScorer{}
}

func (s *CompletionScorer) Score(interviewType model.InterviewType, answers []model.AnswerRecord) (int, int, bool) {
	maxScore := len(answers)
	score := 0

	for _, a := range answers {
		switch a.Kind {
		case model.AnswerKindMCQ:
			if a.SelectedOption != "" && a.SelectedOption == a.CorrectOption {
				score++
			}
		default:
			// free_text and code fall through to the completion heuristic.
			if len(strings.TrimSpace(a.Response)) > 10 {
				score++
			}
		}
	}

	passed := maxScore > 0 && float64(score)/float64(maxScore) >= passRatio
	return score, maxScore, passed
}
