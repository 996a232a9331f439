package repository

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"

	"gorm.io/gorm"
)

type PaperRepository struct {
	DB *gorm.DB
}

func NewPaperRepository(db *gorm.DB) *PaperRepository {
	return &PaperRepository{DB: db}
}

func (r *PaperRepository) Create(paper *model.ExamPaper) error {
	return r.DB.Create(paper).Error
}

func (r *PaperRepository) FindByID(id string) (*model.ExamPaper, error) {
	var p model.ExamPaper
	err := r.DB.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *PaperRepository) FindByStudentAndExam(studentID, examID string) (*model.ExamPaper, error) {
	var p model.ExamPaper
	err := r.DB.First(&p, "student_id = ? AND exam_id = ?", studentID, examID).Error
	return &p, err
}

func (r *PaperRepository) ListByExam(examID string) ([]model.ExamPaper, error) {
	var papers []model.ExamPaper
	err := r.DB.Where("exam_id = ?", examID).Find(&papers).Error
	return papers, err
}

func (r *PaperRepository) Update(paper *model.ExamPaper) error {
	return r.DB.Save(paper).Error
}
