package service

import (
	"errors"
	"time"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"gorm.io/gorm"
)

type ExamService struct {
	Repo    *repository.ExamRepository
	Schemas *repository.SchemaRepository
}

func NewExamService(repo *repository.ExamRepository, schemas *repository.SchemaRepository) *ExamService {
	return &ExamService{Repo: repo, Schemas: schemas}
}

type ExamReq struct {
	Title           *string    `json:"title"`
	Subject         *string    `json:"subject"`
	Semester        *int       `json:"semester"`
	TotalMarks      *float64   `json:"totalMarks"`
	PassingMarks    *float64   `json:"passingMarks"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	DurationMinutes *int       `json:"durationMinutes"`
}

func (s *ExamService) CreateExam(adminID string, req ExamReq) (*model.Exam, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.Validation("title is required")
	}
	if req.Subject == nil || *req.Subject == "" {
		return nil, util.Validation("subject is required")
	}
	if req.TotalMarks == nil || *req.TotalMarks <= 0 {
		return nil, util.Validation("totalMarks must be positive")
	}
	if req.StartTime == nil || req.EndTime == nil || !req.EndTime.After(*req.StartTime) {
		return nil, util.Validation("exam window must have startTime before endTime")
	}

	exam := &model.Exam{
		Title:      *req.Title,
		Subject:    *req.Subject,
		TotalMarks: *req.TotalMarks,
		StartTime:  *req.StartTime,
		EndTime:    *req.EndTime,
		CreatedBy:  adminID,
	}
	if req.Semester != nil {
		exam.Semester = *req.Semester
	}
	if req.PassingMarks != nil {
		exam.PassingMarks = *req.PassingMarks
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}

	if err := s.Repo.Create(exam); err != nil {
		return nil, util.Internal("create exam", err)
	}
	return exam, nil
}

func (s *ExamService) GetExam(id string) (*model.Exam, error) {
	exam, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, util.Internal("load exam", err)
	}
	return exam, nil
}

func (s *ExamService) ListExams(page, limit int) ([]model.Exam, int64, error) {
	exams, total, err := s.Repo.List(page, limit)
	if err != nil {
		return nil, 0, util.Internal("list exams", err)
	}
	return exams, total, nil
}

func (s *ExamService) ListUpcomingForStudent(student *model.User) ([]model.Exam, error) {
	exams, err := s.Repo.ListUpcomingForSemester(student.Semester, time.Now())
	if err != nil {
		return nil, util.Internal("list upcoming exams", err)
	}
	return exams, nil
}

func (s *ExamService) UpdateExam(id string, req ExamReq) (*model.Exam, error) {
	exam, err := s.GetExam(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Subject != nil {
		exam.Subject = *req.Subject
	}
	if req.Semester != nil {
		exam.Semester = *req.Semester
	}
	if req.TotalMarks != nil {
		exam.TotalMarks = *req.TotalMarks
	}
	if req.PassingMarks != nil {
		exam.PassingMarks = *req.PassingMarks
	}
	if req.StartTime != nil {
		exam.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		exam.EndTime = *req.EndTime
	}
	if req.DurationMinutes != nil {
		exam.DurationMinutes = *req.DurationMinutes
	}
	if !exam.EndTime.After(exam.StartTime) {
		return nil, util.Validation("exam window must have startTime before endTime")
	}

	if err := s.Repo.Update(exam); err != nil {
		return nil, util.Internal("update exam", err)
	}
	return exam, nil
}

func (s *ExamService) DeleteExam(id string) error {
	if _, err := s.GetExam(id); err != nil {
		return err
	}
	if err := s.Schemas.DeleteByExamID(id); err != nil {
		return util.Internal("delete exam schema", err)
	}
	if err := s.Repo.Delete(id); err != nil {
		return util.Internal("delete exam", err)
	}
	return nil
}
