package service

import (
	"errors"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"gorm.io/gorm"
)

type ResultService struct {
	Repo   *repository.ResultRepository
	Sheets *repository.AnswerSheetRepository
	Exams  *repository.ExamRepository
}

func NewResultService(repo *repository.ResultRepository, sheets *repository.AnswerSheetRepository, exams *repository.ExamRepository) *ResultService {
	return &ResultService{Repo: repo, Sheets: sheets, Exams: exams}
}

// ResultDetail is a result joined with its graded answers for review.
type ResultDetail struct {
	Result            *model.Result               `json:"result"`
	Passed            bool                        `json:"passed"`
	MCQAnswers        []model.EvaluatedMCQAnswer  `json:"mcqAnswers"`
	SubjectiveAnswers []model.EvaluatedTextAnswer `json:"subjectiveAnswers"`
	CodeAnswers       []model.EvaluatedTextAnswer `json:"codeAnswers"`
}

func (s *ResultService) GetStudentResult(studentID, examID string) (*ResultDetail, error) {
	result, err := s.Repo.FindByStudentAndExam(studentID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, util.Internal("load result", err)
	}
	return s.detail(result)
}

func (s *ResultService) GetByAnswerSheet(sheetID string) (*ResultDetail, error) {
	result, err := s.Repo.FindByAnswerSheetID(sheetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, util.Internal("load result", err)
	}
	return s.detail(result)
}

func (s *ResultService) detail(result *model.Result) (*ResultDetail, error) {
	sheet, err := s.Sheets.FindByID(result.AnswerSheetID)
	if err != nil {
		return nil, util.Internal("load answer sheet", err)
	}

	mcq, err := sheet.DecodeMCQ()
	if err != nil {
		return nil, util.Internal("decode mcq answers", err)
	}
	subj, err := sheet.DecodeSubjective()
	if err != nil {
		return nil, util.Internal("decode subjective answers", err)
	}
	code, err := sheet.DecodeCode()
	if err != nil {
		return nil, util.Internal("decode code answers", err)
	}

	passed := false
	if exam, err := s.Exams.FindByID(result.ExamID); err == nil {
		passed = result.AchievedMarks >= exam.PassingMarks
	}

	return &ResultDetail{
		Result:            result,
		Passed:            passed,
		MCQAnswers:        mcq,
		SubjectiveAnswers: subj,
		CodeAnswers:       code,
	}, nil
}

func (s *ResultService) ListByExam(examID string, page, limit int) ([]model.Result, int64, error) {
	results, total, err := s.Repo.ListByExam(examID, page, limit)
	if err != nil {
		return nil, 0, util.Internal("list results", err)
	}
	return results, total, nil
}

// ExamStats summarizes an exam's results.
type ExamStats struct {
	Submissions int64            `json:"submissions"`
	Average     float64          `json:"average"`
	Highest     float64          `json:"highest"`
	Lowest      float64          `json:"lowest"`
	Categories  map[string]int64 `json:"categories"`
}

func (s *ResultService) ExamStats(examID string) (*ExamStats, error) {
	stats := &ExamStats{Categories: map[string]int64{}}

	row := s.Repo.DB.Model(&model.Result{}).
		Select("COUNT(*) as submissions, COALESCE(AVG(achieved_marks),0) as average, COALESCE(MAX(achieved_marks),0) as highest, COALESCE(MIN(achieved_marks),0) as lowest").
		Where("exam_id = ?", examID).Row()
	if err := row.Scan(&stats.Submissions, &stats.Average, &stats.Highest, &stats.Lowest); err != nil {
		return nil, util.Internal("aggregate results", err)
	}

	type categoryCount struct {
		Category string
		Count    int64
	}
	var counts []categoryCount
	if err := s.Repo.DB.Model(&model.Result{}).
		Select("category, COUNT(*) as count").
		Where("exam_id = ?", examID).
		Group("category").
		Scan(&counts).Error; err != nil {
		return nil, util.Internal("aggregate categories", err)
	}
	for _, c := range counts {
		stats.Categories[c.Category] = c.Count
	}

	return stats, nil
}
