package repository

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) FindByID(id string) (*model.Result, error) {
	var res model.Result
	err := r.DB.First(&res, "id = ?", id).Error
	return &res, err
}

func (r *ResultRepository) FindByAnswerSheetID(sheetID string) (*model.Result, error) {
	var res model.Result
	err := r.DB.First(&res, "answer_sheet_id = ?", sheetID).Error
	return &res, err
}

func (r *ResultRepository) FindByStudentAndExam(studentID, examID string) (*model.Result, error) {
	var res model.Result
	err := r.DB.First(&res, "student_id = ? AND exam_id = ?", studentID, examID).Error
	return &res, err
}

func (r *ResultRepository) ListByExam(examID string, page, limit int) ([]model.Result, int64, error) {
	var results []model.Result
	var total int64
	query := r.DB.Model(&model.Result{}).Where("exam_id = ?", examID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("achieved_marks desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}
