// internal/app/features/quiz/scoring.go
package quiz

import (
	"github.com/matematikhane/matematikhane/internal/domain/models"
)

// PassPercent is the minimum score, in percent, counted as a pass.
const PassPercent = 70

// QuestionResult reports the outcome for one question.
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

// Result is a scored quiz attempt.
type Result struct {
	Total     int              `json:"total"`
	Correct   int              `json:"correct"`
	Percent   int              `json:"percent"`
	Passed    bool             `json:"passed"`
	Questions []QuestionResult `json:"questions"`
}

// Score grades a quiz attempt. Answers are keyed by question id and hold the
// selected option text; a question with no entry counts as incorrect. The
// correct option is resolved from the answer letter (A maps to options[0]),
// and comparison is by exact option text.
func Score(q models.Quiz, answers map[string]string) Result {
	res := Result{
		Total:     len(q.Questions),
		Questions: make([]QuestionResult, 0, len(q.Questions)),
	}

	for _, question := range q.Questions {
		correctText := correctOption(question)
		selected := answers[question.ID]
		ok := selected != "" && selected == correctText
		if ok {
			res.Correct++
		}
		res.Questions = append(res.Questions, QuestionResult{
			QuestionID:    question.ID,
			Selected:      selected,
			CorrectAnswer: correctText,
			Correct:       ok,
		})
	}

	if res.Total > 0 {
		res.Percent = res.Correct * 100 / res.Total
	}
	res.Passed = res.Percent >= PassPercent
	return res
}

// correctOption maps the stored answer letter to its option text. A letter
// outside A..D (or beyond the option list) yields "", which no selection can
// match.
func correctOption(q models.Question) string {
	if len(q.CorrectAnswer) != 1 {
		return ""
	}
	idx := int(q.CorrectAnswer[0] - 'A')
	if idx < 0 || idx >= len(q.Options) {
		return ""
	}
	return q.Options[idx]
}
