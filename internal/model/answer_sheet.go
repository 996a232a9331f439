package model

import (
	"encoding/json"
	"time"
)

// EvaluatedMCQAnswer is one locally scored MCQ response.
type EvaluatedMCQAnswer struct {
	QuestionID     string  `json:"questionId"`
	SelectedOption string  `json:"selectedOption"`
	IsCorrect      bool    `json:"isCorrect"`
	MarksAwarded   float64 `json:"marksAwarded"`
}

// EvaluatedTextAnswer is one AI-graded subjective or code response. MaxMarks
// is carried so later mark overrides can be clamped without refetching the
// paper.
type EvaluatedTextAnswer struct {
	QuestionID   string  `json:"questionId"`
	QuestionText string  `json:"questionText"`
	Answer       string  `json:"answer"`
	MarksAwarded float64 `json:"marksAwarded"`
	MaxMarks     float64 `json:"maxMarks"`
	AIFeedback   string  `json:"aiFeedback,omitempty"`
}

// AnswerSheet is the persisted record of one student's graded responses for
// one exam attempt. The unique index on (student_id, exam_id) is the atomic
// claim that makes duplicate submissions a storage-level conflict.
// swagger:model AnswerSheet
type AnswerSheet struct {
	UUIDBase
	StudentID         string          `gorm:"uniqueIndex:idx_sheet_student_exam;type:varchar(36);not null" json:"studentId"`
	ExamID            string          `gorm:"uniqueIndex:idx_sheet_student_exam;type:varchar(36);not null" json:"examId"`
	MCQAnswers        json.RawMessage `gorm:"type:json" json:"mcqAnswers"`
	SubjectiveAnswers json.RawMessage `gorm:"type:json" json:"subjectiveAnswers"`
	CodeAnswers       json.RawMessage `gorm:"type:json" json:"codeAnswers"`
	AchievedMarks     float64         `gorm:"default:0" json:"achievedMarks"`
	IsSubmitted       bool            `gorm:"default:false" json:"isSubmitted"`
	SubmitTime        *time.Time      `json:"submitTime"`
}

func (AnswerSheet) TableName() string {
	return "answer_sheets"
}

func (s *AnswerSheet) DecodeMCQ() ([]EvaluatedMCQAnswer, error) {
	var as []EvaluatedMCQAnswer
	if len(s.MCQAnswers) == 0 {
		return as, nil
	}
	err := json.Unmarshal(s.MCQAnswers, &as)
	return as, err
}

func (s *AnswerSheet) DecodeSubjective() ([]EvaluatedTextAnswer, error) {
	var as []EvaluatedTextAnswer
	if len(s.SubjectiveAnswers) == 0 {
		return as, nil
	}
	err := json.Unmarshal(s.SubjectiveAnswers, &as)
	return as, err
}

func (s *AnswerSheet) DecodeCode() ([]EvaluatedTextAnswer, error) {
	var as []EvaluatedTextAnswer
	if len(s.CodeAnswers) == 0 {
		return as, nil
	}
	err := json.Unmarshal(s.CodeAnswers, &as)
	return as, err
}
