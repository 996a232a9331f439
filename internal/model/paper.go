package model

import "encoding/json"

// OptionLabels are the canonical MCQ option labels. The correct option is
// always stored as one of these letters, never as an index.
var OptionLabels = []string{"A", "B", "C", "D"}

// MCQQuestion is one generated multiple-choice question. Options are ordered
// and addressed by letter label.
type MCQQuestion struct {
	QuestionID    string   `json:"questionId"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correctOption"`
	Marks         float64  `json:"marks"`
}

// TextQuestion is a generated subjective or code question.
type TextQuestion struct {
	QuestionID string  `json:"questionId"`
	Text       string  `json:"text"`
	Marks      float64 `json:"marks"`
}

// ExamPaper is the AI-generated paper assigned to one student for one exam.
// swagger:model ExamPaper
type ExamPaper struct {
	UUIDBase
	ExamID              string          `gorm:"uniqueIndex:idx_paper_student_exam;type:varchar(36);not null" json:"examId"`
	StudentID           string          `gorm:"uniqueIndex:idx_paper_student_exam;type:varchar(36);not null" json:"studentId"`
	MCQQuestions        json.RawMessage `gorm:"type:json" json:"mcqQuestions"`
	SubjectiveQuestions json.RawMessage `gorm:"type:json" json:"subjectiveQuestions"`
	CodeQuestions       json.RawMessage `gorm:"type:json" json:"codeQuestions"`
	IsSubmitted         bool            `gorm:"default:false" json:"isSubmitted"`
}

func (ExamPaper) TableName() string {
	return "exam_papers"
}

func (p *ExamPaper) DecodeMCQ() ([]MCQQuestion, error) {
	var qs []MCQQuestion
	if len(p.MCQQuestions) == 0 {
		return qs, nil
	}
	err := json.Unmarshal(p.MCQQuestions, &qs)
	return qs, err
}

func (p *ExamPaper) DecodeSubjective() ([]TextQuestion, error) {
	var qs []TextQuestion
	if len(p.SubjectiveQuestions) == 0 {
		return qs, nil
	}
	err := json.Unmarshal(p.SubjectiveQuestions, &qs)
	return qs, err
}

func (p *ExamPaper) DecodeCode() ([]TextQuestion, error) {
	var qs []TextQuestion
	if len(p.CodeQuestions) == 0 {
		return qs, nil
	}
	err := json.Unmarshal(p.CodeQuestions, &qs)
	return qs, err
}
