package repository

import (
	"time"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id string) (*model.Exam, error) {
	var e model.Exam
	err := r.DB.First(&e, "id = ?", id).Error
	return &e, err
}

func (r *ExamRepository) List(page, limit int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64
	query := r.DB.Model(&model.Exam{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("start_time desc").Offset(offset).Limit(limit).Find(&exams).Error
	return exams, total, err
}

func (r *ExamRepository) ListUpcomingForSemester(semester int, now time.Time) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("semester = ? AND end_time >= ?", semester, now).
		Order("start_time asc").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) Delete(id string) error {
	return r.DB.Delete(&model.Exam{}, "id = ?", id).Error
}
