package model

type QueryStatus string

const (
	QueryPending  QueryStatus = "pending"
	QueryResolved QueryStatus = "resolved"
	QueryRejected QueryStatus = "rejected"
)

// Query is a student-raised re-evaluation request against a result.
// swagger:model Query
type Query struct {
	UUIDBase
	StudentID     string      `gorm:"index;type:varchar(36);not null" json:"studentId"`
	ExamID        string      `gorm:"index;type:varchar(36);not null" json:"examId"`
	ResultID      string      `gorm:"index;type:varchar(36);not null" json:"resultId"`
	QueryText     string      `gorm:"type:text;not null" json:"queryText"`
	Status        QueryStatus `gorm:"size:20;default:'pending'" json:"status"`
	AdminResponse string      `gorm:"type:text" json:"adminResponse"`
	ResolvedBy    string      `gorm:"type:varchar(36)" json:"resolvedBy"`
}

func (Query) TableName() string {
	return "queries"
}
