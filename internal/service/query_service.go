package service

import (
	"errors"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QueryService handles student re-evaluation queries. Resolving a query may
// carry mark overrides, which run through the EvaluationService so totals and
// categories stay consistent.
type QueryService struct {
	Repo       *repository.QueryRepository
	Results    *repository.ResultRepository
	Evaluation *EvaluationService
}

func NewQueryService(repo *repository.QueryRepository, results *repository.ResultRepository, evaluation *EvaluationService) *QueryService {
	return &QueryService{Repo: repo, Results: results, Evaluation: evaluation}
}

type RaiseQueryReq struct {
	ExamID    string `json:"examId" binding:"required"`
	QueryText string `json:"queryText" binding:"required"`
}

func (s *QueryService) RaiseQuery(studentID string, req RaiseQueryReq) (*model.Query, error) {
	result, err := s.Results.FindByStudentAndExam(studentID, req.ExamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, util.Internal("load result", err)
	}

	query := &model.Query{
		StudentID: studentID,
		ExamID:    req.ExamID,
		ResultID:  result.ID,
		QueryText: req.QueryText,
		Status:    model.QueryPending,
	}
	if err := s.Repo.Create(query); err != nil {
		return nil, util.Internal("create query", err)
	}
	return query, nil
}

func (s *QueryService) ListForStudent(studentID string) ([]model.Query, error) {
	qs, err := s.Repo.ListByStudent(studentID)
	if err != nil {
		return nil, util.Internal("list queries", err)
	}
	return qs, nil
}

func (s *QueryService) ListForExam(examID string, status model.QueryStatus) ([]model.Query, error) {
	qs, err := s.Repo.ListByExam(examID, status)
	if err != nil {
		return nil, util.Internal("list queries", err)
	}
	return qs, nil
}

type ResolveQueryReq struct {
	Status      model.QueryStatus `json:"status" binding:"required"`
	Response    string            `json:"response"`
	MarkUpdates []MarkUpdate      `json:"markUpdates"`
}

// ResolveQuery closes a pending query. When the resolution grants mark
// changes, they are applied through the recalculation pipeline before the
// query is marked resolved.
func (s *QueryService) ResolveQuery(adminID, queryID string, req ResolveQueryReq) (*model.Query, *MarkUpdateOutcome, error) {
	if req.Status != model.QueryResolved && req.Status != model.QueryRejected {
		return nil, nil, util.Validation("status must be %q or %q", model.QueryResolved, model.QueryRejected)
	}

	query, err := s.Repo.FindByID(queryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQueryNotFound
		}
		return nil, nil, util.Internal("load query", err)
	}
	if query.Status != model.QueryPending {
		return nil, nil, util.Conflict("query already resolved")
	}

	var outcome *MarkUpdateOutcome
	if req.Status == model.QueryResolved && len(req.MarkUpdates) > 0 {
		result, err := s.Results.FindByID(query.ResultID)
		if err != nil {
			return nil, nil, util.Internal("load result", err)
		}
		outcome, err = s.Evaluation.UpdateMarks(result.AnswerSheetID, req.MarkUpdates)
		if err != nil {
			return nil, nil, err
		}
	}

	query.Status = req.Status
	query.AdminResponse = req.Response
	query.ResolvedBy = adminID
	if err := s.Repo.Update(query); err != nil {
		return nil, nil, util.Internal("update query", err)
	}

	logger.Log.Info("query resolved",
		zap.String("queryId", queryID),
		zap.String("status", string(req.Status)),
		zap.String("adminId", adminID),
	)

	return query, outcome, nil
}
