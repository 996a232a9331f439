package service

import (
	"errors"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"gorm.io/gorm"
)

type SchemaService struct {
	Repo  *repository.SchemaRepository
	Exams *repository.ExamRepository
}

func NewSchemaService(repo *repository.SchemaRepository, exams *repository.ExamRepository) *SchemaService {
	return &SchemaService{Repo: repo, Exams: exams}
}

type SchemaReq struct {
	MCQCount               *int     `json:"mcqCount"`
	MCQMarks               *float64 `json:"mcqMarks"`
	SubjectiveCount        *int     `json:"subjectiveCount"`
	SubjectiveMarks        *float64 `json:"subjectiveMarks"`
	CodeCount              *int     `json:"codeCount"`
	CodeMarks              *float64 `json:"codeMarks"`
	Difficulty             *string  `json:"difficulty"`
	Syllabus               *string  `json:"syllabus"`
	EvaluationInstructions *string  `json:"evaluationInstructions"`
}

func (s *SchemaService) CreateSchema(examID string, req SchemaReq) (*model.ExamSchema, error) {
	if _, err := s.Exams.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, util.Internal("load exam", err)
	}

	schema := &model.ExamSchema{ExamID: examID}
	applySchemaReq(schema, req)

	if schema.MCQCount+schema.SubjectiveCount+schema.CodeCount == 0 {
		return nil, util.Validation("schema must define at least one question")
	}

	if err := s.Repo.Create(schema); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.Conflict("schema already exists for this exam")
		}
		return nil, util.Internal("create schema", err)
	}
	return schema, nil
}

func (s *SchemaService) GetSchema(examID string) (*model.ExamSchema, error) {
	schema, err := s.Repo.FindByExamID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchemaNotFound
		}
		return nil, util.Internal("load schema", err)
	}
	return schema, nil
}

func (s *SchemaService) UpdateSchema(examID string, req SchemaReq) (*model.ExamSchema, error) {
	schema, err := s.GetSchema(examID)
	if err != nil {
		return nil, err
	}

	applySchemaReq(schema, req)
	if schema.MCQCount+schema.SubjectiveCount+schema.CodeCount == 0 {
		return nil, util.Validation("schema must define at least one question")
	}

	if err := s.Repo.Update(schema); err != nil {
		return nil, util.Internal("update schema", err)
	}
	return schema, nil
}

func applySchemaReq(schema *model.ExamSchema, req SchemaReq) {
	if req.MCQCount != nil {
		schema.MCQCount = *req.MCQCount
	}
	if req.MCQMarks != nil {
		schema.MCQMarks = *req.MCQMarks
	}
	if req.SubjectiveCount != nil {
		schema.SubjectiveCount = *req.SubjectiveCount
	}
	if req.SubjectiveMarks != nil {
		schema.SubjectiveMarks = *req.SubjectiveMarks
	}
	if req.CodeCount != nil {
		schema.CodeCount = *req.CodeCount
	}
	if req.CodeMarks != nil {
		schema.CodeMarks = *req.CodeMarks
	}
	if req.Difficulty != nil {
		schema.Difficulty = *req.Difficulty
	}
	if req.Syllabus != nil {
		schema.Syllabus = *req.Syllabus
	}
	if req.EvaluationInstructions != nil {
		schema.EvaluationInstructions = *req.EvaluationInstructions
	}
}
