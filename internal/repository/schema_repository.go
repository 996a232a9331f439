package repository

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"

	"gorm.io/gorm"
)

type SchemaRepository struct {
	DB *gorm.DB
}

func NewSchemaRepository(db *gorm.DB) *SchemaRepository {
	return &SchemaRepository{DB: db}
}

func (r *SchemaRepository) Create(schema *model.ExamSchema) error {
	return r.DB.Create(schema).Error
}

func (r *SchemaRepository) FindByExamID(examID string) (*model.ExamSchema, error) {
	var s model.ExamSchema
	err := r.DB.First(&s, "exam_id = ?", examID).Error
	return &s, err
}

func (r *SchemaRepository) Update(schema *model.ExamSchema) error {
	return r.DB.Save(schema).Error
}

func (r *SchemaRepository) DeleteByExamID(examID string) error {
	return r.DB.Delete(&model.ExamSchema{}, "exam_id = ?", examID).Error
}
