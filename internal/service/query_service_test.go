package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"gorm.io/gorm"
)

func newQueryService(db *gorm.DB, evaluation *EvaluationService) *QueryService {
	return NewQueryService(repository.NewQueryRepository(db), repository.NewResultRepository(db), evaluation)
}

func TestRaiseQueryRequiresResult(t *testing.T) {
	db := newTestDB(t)
	svc := newQueryService(db, nil)

	_, err := svc.RaiseQuery("student-1", RaiseQueryReq{ExamID: "no-such-exam", QueryText: "please recheck"})
	if !errors.Is(err, util.ErrResultNotFound) {
		t.Fatalf("got %v, want ErrResultNotFound", err)
	}
}

func TestResolveQueryWithMarkUpdates(t *testing.T) {
	db := newTestDB(t)
	srv := gradingStub(t, 4, 8)
	defer srv.Close()

	evaluation := newEvaluationService(t, db, srv.URL)
	svc := newQueryService(db, evaluation)
	exam := seedExamAndPaper(t, db, "student-1")

	sheet, _, err := evaluation.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	query, err := svc.RaiseQuery("student-1", RaiseQueryReq{ExamID: exam.ID, QueryText: "s1 deserves full marks"})
	if err != nil {
		t.Fatalf("raise query: %v", err)
	}
	if query.Status != model.QueryPending {
		t.Fatalf("new query status = %v", query.Status)
	}

	resolved, outcome, err := svc.ResolveQuery("admin-1", query.ID, ResolveQueryReq{
		Status:      model.QueryResolved,
		Response:    "agreed, regraded",
		MarkUpdates: []MarkUpdate{{QuestionType: "subjective", QuestionID: "s1", NewMarks: 5}},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != model.QueryResolved || resolved.ResolvedBy != "admin-1" {
		t.Errorf("resolved = %+v", resolved)
	}
	if outcome == nil || outcome.AchievedMarks != 18 {
		t.Errorf("outcome = %+v, want achieved 18 (5+5+8)", outcome)
	}

	var result model.Result
	if err := db.Where("answer_sheet_id = ?", sheet.ID).First(&result).Error; err != nil {
		t.Fatalf("reload result: %v", err)
	}
	if result.SubjectiveMarks != 5 || result.AchievedMarks != 18 {
		t.Errorf("result = achieved %v subj %v, want 18/5", result.AchievedMarks, result.SubjectiveMarks)
	}

	// a resolved query cannot be resolved again
	_, _, err = svc.ResolveQuery("admin-1", query.ID, ResolveQueryReq{Status: model.QueryRejected})
	if util.KindOf(err) != util.KindConflict {
		t.Fatalf("re-resolve: got %v, want conflict", err)
	}
}

func TestResolveQueryRejectedSkipsMarkUpdates(t *testing.T) {
	db := newTestDB(t)
	srv := gradingStub(t, 4, 8)
	defer srv.Close()

	evaluation := newEvaluationService(t, db, srv.URL)
	svc := newQueryService(db, evaluation)
	exam := seedExamAndPaper(t, db, "student-1")

	sheet, _, err := evaluation.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	query, err := svc.RaiseQuery("student-1", RaiseQueryReq{ExamID: exam.ID, QueryText: "recheck"})
	if err != nil {
		t.Fatalf("raise query: %v", err)
	}

	_, outcome, err := svc.ResolveQuery("admin-1", query.ID, ResolveQueryReq{
		Status:      model.QueryRejected,
		Response:    "grading stands",
		MarkUpdates: []MarkUpdate{{QuestionType: "subjective", QuestionID: "s1", NewMarks: 5}},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome != nil {
		t.Errorf("rejected query applied mark updates: %+v", outcome)
	}

	var fresh model.AnswerSheet
	if err := db.First(&fresh, "id = ?", sheet.ID).Error; err != nil {
		t.Fatalf("reload sheet: %v", err)
	}
	if fresh.AchievedMarks != 17 {
		t.Errorf("AchievedMarks = %v, want unchanged 17", fresh.AchievedMarks)
	}
}

func TestResolveQueryInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newQueryService(db, nil)

	_, _, err := svc.ResolveQuery("admin-1", "some-query", ResolveQueryReq{Status: "pending"})
	if util.KindOf(err) != util.KindValidation {
		t.Fatalf("got %v, want validation error", err)
	}
}
