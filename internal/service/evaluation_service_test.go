package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/config"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one named in-memory db per test; cache=shared keeps it alive across
	// pooled connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Exam{},
		&model.ExamSchema{},
		&model.ExamPaper{},
		&model.AnswerSheet{},
		&model.Result{},
		&model.Query{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func newEvaluationService(t *testing.T, db *gorm.DB, aiURL string) *EvaluationService {
	t.Helper()
	ai := NewAIService(config.AIConfig{BaseURL: aiURL, TimeoutSeconds: 5})
	return NewEvaluationService(
		repository.NewAnswerSheetRepository(db),
		repository.NewResultRepository(db),
		repository.NewPaperRepository(db),
		repository.NewExamRepository(db),
		repository.NewSchemaRepository(db),
		ai,
		db,
	)
}

func seedExamAndPaper(t *testing.T, db *gorm.DB, studentID string) *model.Exam {
	t.Helper()
	exam := &model.Exam{
		Title:      "Midterm",
		Subject:    "Operating Systems",
		TotalMarks: 20,
		StartTime:  time.Now().Add(-time.Hour),
		EndTime:    time.Now().Add(time.Hour),
	}
	if err := db.Create(exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}

	mcq, _ := json.Marshal([]model.MCQQuestion{
		{QuestionID: "m1", Text: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectOption: "B", Marks: 2},
		{QuestionID: "m2", Text: "3+3?", Options: []string{"5", "6", "7", "8"}, CorrectOption: "B", Marks: 3},
	})
	subj, _ := json.Marshal([]model.TextQuestion{
		{QuestionID: "s1", Text: "Explain paging.", Marks: 5},
	})
	code, _ := json.Marshal([]model.TextQuestion{
		{QuestionID: "c1", Text: "Write FizzBuzz.", Marks: 10},
	})
	paper := &model.ExamPaper{
		ExamID:              exam.ID,
		StudentID:           studentID,
		MCQQuestions:        mcq,
		SubjectiveQuestions: subj,
		CodeQuestions:       code,
	}
	if err := db.Create(paper).Error; err != nil {
		t.Fatalf("seed paper: %v", err)
	}
	return exam
}

// gradingStub answers every evaluate-exam call with fixed per-question marks.
func gradingStub(t *testing.T, subjMarks, codeMarks float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req EvaluateExamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode grading request: %v", err)
		}
		res := EvaluationResult{}
		for _, a := range req.SubjectiveAnswers {
			res.Subjective = append(res.Subjective, AIQuestionScore{QuestionID: a.QuestionID, MarksAwarded: subjMarks, AIFeedback: "ok"})
		}
		for _, a := range req.CodeAnswers {
			res.Code = append(res.Code, AIQuestionScore{QuestionID: a.QuestionID, MarksAwarded: codeMarks, AIFeedback: "ok"})
		}
		res.Other.FeedbackSummary = "solid work"
		json.NewEncoder(w).Encode(map[string]EvaluationResult{"evaluationResult": res})
	}))
}

func submission() SubmitAnswersRequest {
	return SubmitAnswersRequest{
		MCQAnswers: []SubmittedMCQAnswer{
			{QuestionID: "m1", SelectedOption: "B"},
			{QuestionID: "m2", SelectedOption: "B"},
		},
		SubjectiveAnswers: []SubmittedTextAnswer{
			{QuestionID: "s1", Answer: "pages map virtual to physical frames"},
		},
		CodeAnswers: []SubmittedTextAnswer{
			{QuestionID: "c1", Answer: "for i := 1; i <= n; i++ { ... }"},
		},
	}
}

func TestSubmitAnswers(t *testing.T) {
	db := newTestDB(t)
	srv := gradingStub(t, 4, 8)
	defer srv.Close()

	svc := newEvaluationService(t, db, srv.URL)
	exam := seedExamAndPaper(t, db, "student-1")

	sheet, result, err := svc.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if err != nil {
		t.Fatalf("SubmitAnswers returned error: %v", err)
	}

	// 2+3 MCQ, 4 subjective, 8 code
	if sheet.AchievedMarks != 17 {
		t.Errorf("sheet.AchievedMarks = %v, want 17", sheet.AchievedMarks)
	}
	if !sheet.IsSubmitted || sheet.SubmitTime == nil {
		t.Error("sheet not marked submitted")
	}
	if result.MCQMarks != 5 || result.SubjectiveMarks != 4 || result.CodeMarks != 8 {
		t.Errorf("breakdown = %v/%v/%v, want 5/4/8", result.MCQMarks, result.SubjectiveMarks, result.CodeMarks)
	}
	if result.Category != model.CategoryExcellent {
		t.Errorf("category = %v, want excellent (17/20)", result.Category)
	}
	if result.Feedback != "solid work" {
		t.Errorf("feedback = %q", result.Feedback)
	}

	var paper model.ExamPaper
	if err := db.Where("exam_id = ? AND student_id = ?", exam.ID, "student-1").First(&paper).Error; err != nil {
		t.Fatalf("reload paper: %v", err)
	}
	if !paper.IsSubmitted {
		t.Error("paper not flagged submitted")
	}

	var stored model.Result
	if err := db.Where("answer_sheet_id = ?", sheet.ID).First(&stored).Error; err != nil {
		t.Fatalf("result row not persisted: %v", err)
	}
}

func TestSubmitAnswersDuplicate(t *testing.T) {
	db := newTestDB(t)
	srv := gradingStub(t, 4, 8)
	defer srv.Close()

	svc := newEvaluationService(t, db, srv.URL)
	exam := seedExamAndPaper(t, db, "student-1")

	first, _, err := svc.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, _, err = svc.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("second submit: got %v, want ErrAlreadySubmitted", err)
	}

	var sheets []model.AnswerSheet
	if err := db.Where("exam_id = ?", exam.ID).Find(&sheets).Error; err != nil {
		t.Fatalf("list sheets: %v", err)
	}
	if len(sheets) != 1 || sheets[0].ID != first.ID {
		t.Errorf("expected only the first sheet to survive, got %d sheets", len(sheets))
	}
}

func TestSubmitAnswersAIFailureLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := newEvaluationService(t, db, srv.URL)
	exam := seedExamAndPaper(t, db, "student-1")

	_, _, err := svc.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if err == nil {
		t.Fatal("expected upstream error")
	}
	if util.KindOf(err) != util.KindUpstream {
		t.Errorf("error kind = %v, want upstream", util.KindOf(err))
	}

	var count int64
	db.Model(&model.AnswerSheet{}).Count(&count)
	if count != 0 {
		t.Errorf("answer sheets persisted after AI failure: %d", count)
	}
	var paper model.ExamPaper
	db.Where("exam_id = ?", exam.ID).First(&paper)
	if paper.IsSubmitted {
		t.Error("paper flagged submitted after failed evaluation")
	}
}

func TestSubmitAnswersIncompleteGrading(t *testing.T) {
	db := newTestDB(t)
	// returns no scores at all
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]EvaluationResult{"evaluationResult": {}})
	}))
	defer srv.Close()

	svc := newEvaluationService(t, db, srv.URL)
	exam := seedExamAndPaper(t, db, "student-1")

	_, _, err := svc.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if util.KindOf(err) != util.KindUpstream {
		t.Fatalf("got %v, want upstream error for incomplete grading", err)
	}
}

func TestSubmitAnswersNoPaper(t *testing.T) {
	db := newTestDB(t)
	srv := gradingStub(t, 0, 0)
	defer srv.Close()

	svc := newEvaluationService(t, db, srv.URL)
	exam := seedExamAndPaper(t, db, "student-1")

	_, _, err := svc.SubmitAnswers(context.Background(), "student-2", exam.ID, submission())
	if !errors.Is(err, util.ErrPaperNotFound) {
		t.Fatalf("got %v, want ErrPaperNotFound", err)
	}
}

func TestUpdateMarks(t *testing.T) {
	db := newTestDB(t)
	srv := gradingStub(t, 4, 8)
	defer srv.Close()

	svc := newEvaluationService(t, db, srv.URL)
	exam := seedExamAndPaper(t, db, "student-1")

	sheet, _, err := svc.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	outcome, err := svc.UpdateMarks(sheet.ID, []MarkUpdate{
		{QuestionType: "subjective", QuestionID: "s1", NewMarks: 5},
		{QuestionType: "code", QuestionID: "c1", NewMarks: 25}, // clamped to 10
		{QuestionType: "code", QuestionID: "ghost", NewMarks: 3},
	})
	if err != nil {
		t.Fatalf("UpdateMarks: %v", err)
	}

	if len(outcome.Applied) != 2 {
		t.Errorf("applied = %d updates, want 2", len(outcome.Applied))
	}
	// 5 MCQ + 5 subjective + 10 code (clamped)
	if outcome.AchievedMarks != 20 {
		t.Errorf("AchievedMarks = %v, want 20", outcome.AchievedMarks)
	}

	var result model.Result
	if err := db.Where("answer_sheet_id = ?", sheet.ID).First(&result).Error; err != nil {
		t.Fatalf("reload result: %v", err)
	}
	if result.AchievedMarks != 20 || result.SubjectiveMarks != 5 || result.CodeMarks != 10 {
		t.Errorf("result = %v (subj %v, code %v), want 20 (5, 10)", result.AchievedMarks, result.SubjectiveMarks, result.CodeMarks)
	}
	if result.Category != model.CategoryExcellent {
		t.Errorf("category = %v, want excellent", result.Category)
	}
}

func TestUpdateMarksEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(t, db, "http://unused")

	_, err := svc.UpdateMarks("some-sheet", nil)
	if util.KindOf(err) != util.KindValidation {
		t.Fatalf("got %v, want validation error for empty update list", err)
	}
}

func TestUpdateMarksUnknownSheet(t *testing.T) {
	db := newTestDB(t)
	svc := newEvaluationService(t, db, "http://unused")

	_, err := svc.UpdateMarks("missing", []MarkUpdate{{QuestionType: "code", QuestionID: "c1", NewMarks: 1}})
	if !errors.Is(err, util.ErrSheetNotFound) {
		t.Fatalf("got %v, want ErrSheetNotFound", err)
	}
}

func TestUpdateMarksNoMatches(t *testing.T) {
	db := newTestDB(t)
	srv := gradingStub(t, 4, 8)
	defer srv.Close()

	svc := newEvaluationService(t, db, srv.URL)
	exam := seedExamAndPaper(t, db, "student-1")

	sheet, _, err := svc.SubmitAnswers(context.Background(), "student-1", exam.ID, submission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	outcome, err := svc.UpdateMarks(sheet.ID, []MarkUpdate{
		{QuestionType: "essay", QuestionID: "s1", NewMarks: 5},
		{QuestionType: "code", QuestionID: "ghost", NewMarks: 3},
	})
	if err != nil {
		t.Fatalf("UpdateMarks: %v", err)
	}
	if len(outcome.Applied) != 0 {
		t.Errorf("applied = %d, want 0", len(outcome.Applied))
	}
	if outcome.AchievedMarks != 17 {
		t.Errorf("AchievedMarks = %v, want unchanged 17", outcome.AchievedMarks)
	}
}
