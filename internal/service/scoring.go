package service

import (
	"strings"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"
)

// SubmittedMCQAnswer is a student's selection for one MCQ.
type SubmittedMCQAnswer struct {
	QuestionID     string `json:"questionId" binding:"required"`
	SelectedOption string `json:"selectedOption" binding:"required"`
}

// SubmittedTextAnswer is a student's free-text response for one subjective or
// code question.
type SubmittedTextAnswer struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// ScoreMCQ grades submitted MCQ selections against the paper's question set.
// Correctness is value equality on the option letter. A submission referencing
// a question id that is not on the paper is a data-integrity fault and fails
// the whole scoring pass; questions with no submission are simply not scored.
func ScoreMCQ(submitted []SubmittedMCQAnswer, questions []model.MCQQuestion) ([]model.EvaluatedMCQAnswer, float64, error) {
	byID := make(map[string]model.MCQQuestion, len(questions))
	for _, q := range questions {
		byID[q.QuestionID] = q
	}

	evaluated := make([]model.EvaluatedMCQAnswer, 0, len(submitted))
	total := 0.0
	for _, ans := range submitted {
		q, ok := byID[ans.QuestionID]
		if !ok {
			return nil, 0, util.Validation("mcq answer references unknown question %q", ans.QuestionID)
		}

		selected := strings.ToUpper(strings.TrimSpace(ans.SelectedOption))
		correct := selected == strings.ToUpper(strings.TrimSpace(q.CorrectOption))

		marks := 0.0
		if correct {
			marks = q.Marks
		}
		total += marks

		evaluated = append(evaluated, model.EvaluatedMCQAnswer{
			QuestionID:     ans.QuestionID,
			SelectedOption: selected,
			IsCorrect:      correct,
			MarksAwarded:   marks,
		})
	}

	return evaluated, total, nil
}

// MatchAnswers pairs submissions with the paper's question set. The output
// has exactly one entry per question, in question-set order; unanswered
// questions get an empty placeholder and submissions for unknown question ids
// are dropped.
func MatchAnswers(submitted []SubmittedTextAnswer, questions []model.TextQuestion) []model.EvaluatedTextAnswer {
	byID := make(map[string]string, len(submitted))
	for _, ans := range submitted {
		if _, ok := byID[ans.QuestionID]; !ok {
			byID[ans.QuestionID] = ans.Answer
		}
	}

	matched := make([]model.EvaluatedTextAnswer, 0, len(questions))
	for _, q := range questions {
		matched = append(matched, model.EvaluatedTextAnswer{
			QuestionID:   q.QuestionID,
			QuestionText: q.Text,
			Answer:       byID[q.QuestionID],
			MarksAwarded: 0,
			MaxMarks:     q.Marks,
		})
	}
	return matched
}

// Classify buckets an achieved/total ratio. Lower bounds are inclusive and
// the mapping is invariant under scaling both arguments.
func Classify(achieved, total float64) model.ResultCategory {
	if total <= 0 {
		return model.CategoryWeak
	}
	ratio := achieved / total
	switch {
	case ratio >= 0.85:
		return model.CategoryExcellent
	case ratio >= 0.65:
		return model.CategoryGood
	case ratio >= 0.50:
		return model.CategoryAverage
	default:
		return model.CategoryWeak
	}
}

// ClampMarks bounds a mark into [0, max].
func ClampMarks(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func sumMCQMarks(answers []model.EvaluatedMCQAnswer) float64 {
	total := 0.0
	for _, a := range answers {
		total += a.MarksAwarded
	}
	return total
}

func sumTextMarks(answers []model.EvaluatedTextAnswer) float64 {
	total := 0.0
	for _, a := range answers {
		total += a.MarksAwarded
	}
	return total
}
