package model

import "time"

// swagger:model Exam
type Exam struct {
	UUIDBase
	Title           string    `gorm:"size:255;not null" json:"title"`
	Subject         string    `gorm:"size:255;not null" json:"subject"`
	Semester        int       `gorm:"default:0" json:"semester"`
	TotalMarks      float64   `gorm:"not null" json:"totalMarks"`
	PassingMarks    float64   `gorm:"default:0" json:"passingMarks"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `gorm:"default:0" json:"durationMinutes"`
	CreatedBy       string    `gorm:"index;type:varchar(36)" json:"createdBy"`
}

func (Exam) TableName() string {
	return "exams"
}

// Window reports whether t falls inside the exam's scheduled window.
func (e *Exam) Window(t time.Time) bool {
	return !t.Before(e.StartTime) && !t.After(e.EndTime)
}
