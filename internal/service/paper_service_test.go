package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/config"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"gorm.io/gorm"
)

func newPaperService(db *gorm.DB, aiURL string) *PaperService {
	ai := NewAIService(config.AIConfig{BaseURL: aiURL, TimeoutSeconds: 5})
	return NewPaperService(
		repository.NewPaperRepository(db),
		repository.NewExamRepository(db),
		repository.NewSchemaRepository(db),
		ai,
		nil, // paper caching is optional
	)
}

func seedExamWithSchema(t *testing.T, db *gorm.DB, start, end time.Time) *model.Exam {
	t.Helper()
	exam := &model.Exam{
		Title:           "Finals",
		Subject:         "Databases",
		TotalMarks:      20,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: 60,
	}
	if err := db.Create(exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	schema := &model.ExamSchema{
		ExamID:          exam.ID,
		MCQCount:        2,
		MCQMarks:        2,
		SubjectiveCount: 1,
		SubjectiveMarks: 6,
		CodeCount:       1,
		CodeMarks:       10,
		Difficulty:      "medium",
		Syllabus:        "joins, indexing, transactions",
	}
	if err := db.Create(schema).Error; err != nil {
		t.Fatalf("seed schema: %v", err)
	}
	return exam
}

func generationStub(t *testing.T, paper GeneratedPaper) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/generate-paper" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(paper)
	}))
}

func wellFormedPaper() GeneratedPaper {
	return GeneratedPaper{
		MCQQuestions: []model.MCQQuestion{
			{QuestionID: "m1", Text: "Which join keeps unmatched rows?", Options: []string{"inner", "outer", "cross", "self"}, CorrectOption: "B", Marks: 2},
			{QuestionID: "m2", Text: "ACID's I stands for?", Options: []string{"Index", "Isolation", "Integrity", "Input"}, CorrectOption: "B", Marks: 2},
		},
		SubjectiveQuestions: []model.TextQuestion{
			{QuestionID: "s1", Text: "Explain B-tree indexing.", Marks: 6},
		},
		CodeQuestions: []model.TextQuestion{
			{QuestionID: "c1", Text: "Write a query with a window function.", Marks: 10},
		},
	}
}

func TestGetPaperForStudentGeneratesOnFirstAccess(t *testing.T) {
	db := newTestDB(t)
	srv := generationStub(t, wellFormedPaper())
	defer srv.Close()

	svc := newPaperService(db, srv.URL)
	exam := seedExamWithSchema(t, db, time.Now().Add(-time.Minute), time.Now().Add(time.Hour))

	view, err := svc.GetPaperForStudent(context.Background(), "student-1", exam.ID)
	if err != nil {
		t.Fatalf("GetPaperForStudent: %v", err)
	}
	if len(view.MCQQuestions) != 2 || len(view.SubjectiveQuestions) != 1 || len(view.CodeQuestions) != 1 {
		t.Errorf("question counts = %d/%d/%d, want 2/1/1",
			len(view.MCQQuestions), len(view.SubjectiveQuestions), len(view.CodeQuestions))
	}

	var persisted model.ExamPaper
	if err := db.Where("exam_id = ? AND student_id = ?", exam.ID, "student-1").First(&persisted).Error; err != nil {
		t.Fatalf("paper not persisted: %v", err)
	}

	// second fetch reuses the stored paper instead of regenerating
	again, err := svc.GetPaperForStudent(context.Background(), "student-1", exam.ID)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if again.PaperID != view.PaperID {
		t.Errorf("second fetch assigned a different paper: %s vs %s", again.PaperID, view.PaperID)
	}
}

func TestGetPaperForStudentStripsAnswerKey(t *testing.T) {
	db := newTestDB(t)
	srv := generationStub(t, wellFormedPaper())
	defer srv.Close()

	svc := newPaperService(db, srv.URL)
	exam := seedExamWithSchema(t, db, time.Now().Add(-time.Minute), time.Now().Add(time.Hour))

	view, err := svc.GetPaperForStudent(context.Background(), "student-1", exam.ID)
	if err != nil {
		t.Fatalf("GetPaperForStudent: %v", err)
	}
	raw, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	if strings.Contains(string(raw), "correctOption") {
		t.Error("student paper view leaks the answer key")
	}
}

func TestGetPaperForStudentOutsideWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newPaperService(db, "http://unused")

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"not yet open", time.Now().Add(time.Hour), time.Now().Add(2 * time.Hour)},
		{"already closed", time.Now().Add(-2 * time.Hour), time.Now().Add(-time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exam := seedExamWithSchema(t, db, tt.start, tt.end)
			_, err := svc.GetPaperForStudent(context.Background(), "student-1", exam.ID)
			if !errors.Is(err, util.ErrExamWindowClosed) {
				t.Fatalf("got %v, want ErrExamWindowClosed", err)
			}
		})
	}
}

func TestGetPaperForStudentRejectsMalformedGeneration(t *testing.T) {
	bad := wellFormedPaper()
	bad.MCQQuestions[0].CorrectOption = "E"

	db := newTestDB(t)
	srv := generationStub(t, bad)
	defer srv.Close()

	svc := newPaperService(db, srv.URL)
	exam := seedExamWithSchema(t, db, time.Now().Add(-time.Minute), time.Now().Add(time.Hour))

	_, err := svc.GetPaperForStudent(context.Background(), "student-1", exam.ID)
	if util.KindOf(err) != util.KindUpstream {
		t.Fatalf("got %v, want upstream error", err)
	}

	var count int64
	db.Model(&model.ExamPaper{}).Count(&count)
	if count != 0 {
		t.Errorf("malformed paper was persisted")
	}
}

func TestGetPaperForStudentSchemaCountMismatch(t *testing.T) {
	short := wellFormedPaper()
	short.MCQQuestions = short.MCQQuestions[:1]

	db := newTestDB(t)
	srv := generationStub(t, short)
	defer srv.Close()

	svc := newPaperService(db, srv.URL)
	exam := seedExamWithSchema(t, db, time.Now().Add(-time.Minute), time.Now().Add(time.Hour))

	_, err := svc.GetPaperForStudent(context.Background(), "student-1", exam.ID)
	if util.KindOf(err) != util.KindUpstream {
		t.Fatalf("got %v, want upstream error for schema mismatch", err)
	}
}
