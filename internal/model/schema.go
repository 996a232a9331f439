package model

// ExamSchema is the question-paper blueprint the AI generates papers from.
// swagger:model ExamSchema
type ExamSchema struct {
	UUIDBase
	ExamID                 string  `gorm:"uniqueIndex;type:varchar(36);not null" json:"examId"`
	MCQCount               int     `gorm:"default:0" json:"mcqCount"`
	MCQMarks               float64 `gorm:"default:0" json:"mcqMarks"`
	SubjectiveCount        int     `gorm:"default:0" json:"subjectiveCount"`
	SubjectiveMarks        float64 `gorm:"default:0" json:"subjectiveMarks"`
	CodeCount              int     `gorm:"default:0" json:"codeCount"`
	CodeMarks              float64 `gorm:"default:0" json:"codeMarks"`
	Difficulty             string  `gorm:"size:20;default:'medium'" json:"difficulty"`
	Syllabus               string  `gorm:"type:text" json:"syllabus"`
	EvaluationInstructions string  `gorm:"type:text" json:"evaluationInstructions"`
}

func (ExamSchema) TableName() string {
	return "exam_schemas"
}
