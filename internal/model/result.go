package model

// ResultCategory is the qualitative performance bucket derived from the
// achieved-vs-total marks ratio.
type ResultCategory string

const (
	CategoryWeak      ResultCategory = "weak"
	CategoryAverage   ResultCategory = "average"
	CategoryGood      ResultCategory = "good"
	CategoryExcellent ResultCategory = "excellent"
)

// Rank orders categories for comparison; higher is better.
func (c ResultCategory) Rank() int {
	switch c {
	case CategoryExcellent:
		return 3
	case CategoryGood:
		return 2
	case CategoryAverage:
		return 1
	default:
		return 0
	}
}

// Result is the derived summary record, one-to-one with an AnswerSheet. Only
// the marks, breakdown and category fields are ever mutated after creation.
// swagger:model Result
type Result struct {
	UUIDBase
	AnswerSheetID   string         `gorm:"uniqueIndex;type:varchar(36);not null" json:"answerSheetId"`
	StudentID       string         `gorm:"index;type:varchar(36);not null" json:"studentId"`
	ExamID          string         `gorm:"index;type:varchar(36);not null" json:"examId"`
	AchievedMarks   float64        `gorm:"default:0" json:"achievedMarks"`
	MCQMarks        float64        `gorm:"default:0" json:"mcqMarks"`
	SubjectiveMarks float64        `gorm:"default:0" json:"subjectiveMarks"`
	CodeMarks       float64        `gorm:"default:0" json:"codeMarks"`
	Category        ResultCategory `gorm:"size:20" json:"category"`
	Feedback        string         `gorm:"type:text" json:"feedback"`
}

func (Result) TableName() string {
	return "results"
}
