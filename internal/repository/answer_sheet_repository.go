package repository

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"

	"gorm.io/gorm"
)

type AnswerSheetRepository struct {
	DB *gorm.DB
}

func NewAnswerSheetRepository(db *gorm.DB) *AnswerSheetRepository {
	return &AnswerSheetRepository{DB: db}
}

func (r *AnswerSheetRepository) FindByID(id string) (*model.AnswerSheet, error) {
	var s model.AnswerSheet
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *AnswerSheetRepository) FindByStudentAndExam(studentID, examID string) (*model.AnswerSheet, error) {
	var s model.AnswerSheet
	err := r.DB.First(&s, "student_id = ? AND exam_id = ?", studentID, examID).Error
	return &s, err
}

func (r *AnswerSheetRepository) ListByExam(examID string) ([]model.AnswerSheet, error) {
	var sheets []model.AnswerSheet
	err := r.DB.Where("exam_id = ?", examID).Find(&sheets).Error
	return sheets, err
}
