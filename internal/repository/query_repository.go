package repository

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"

	"gorm.io/gorm"
)

type QueryRepository struct {
	DB *gorm.DB
}

func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{DB: db}
}

func (r *QueryRepository) Create(q *model.Query) error {
	return r.DB.Create(q).Error
}

func (r *QueryRepository) FindByID(id string) (*model.Query, error) {
	var q model.Query
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QueryRepository) ListByStudent(studentID string) ([]model.Query, error) {
	var qs []model.Query
	err := r.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&qs).Error
	return qs, err
}

func (r *QueryRepository) ListByExam(examID string, status model.QueryStatus) ([]model.Query, error) {
	var qs []model.Query
	query := r.DB.Where("exam_id = ?", examID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at asc").Find(&qs).Error
	return qs, err
}

func (r *QueryRepository) Update(q *model.Query) error {
	return r.DB.Save(q).Error
}
