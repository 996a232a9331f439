package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaperService assigns AI-generated question papers to students. Papers are
// generated lazily on first fetch inside the exam window, persisted, and
// cached in redis until the window closes.
type PaperService struct {
	Repo    *repository.PaperRepository
	Exams   *repository.ExamRepository
	Schemas *repository.SchemaRepository
	AI      *AIService
	Redis   *redis.Client
}

func NewPaperService(
	repo *repository.PaperRepository,
	exams *repository.ExamRepository,
	schemas *repository.SchemaRepository,
	ai *AIService,
	rdb *redis.Client,
) *PaperService {
	return &PaperService{Repo: repo, Exams: exams, Schemas: schemas, AI: ai, Redis: rdb}
}

// StudentMCQ is an MCQ with the answer key stripped.
type StudentMCQ struct {
	QuestionID string   `json:"questionId"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Marks      float64  `json:"marks"`
}

// StudentPaper is the paper view served to the examinee.
type StudentPaper struct {
	PaperID             string               `json:"paperId"`
	ExamID              string               `json:"examId"`
	MCQQuestions        []StudentMCQ         `json:"mcqQuestions"`
	SubjectiveQuestions []model.TextQuestion `json:"subjectiveQuestions"`
	CodeQuestions       []model.TextQuestion `json:"codeQuestions"`
	DurationMinutes     int                  `json:"durationMinutes"`
	EndTime             time.Time            `json:"endTime"`
}

func paperCacheKey(examID, studentID string) string {
	return fmt.Sprintf("exgen:paper:%s:%s", examID, studentID)
}

// GetPaperForStudent returns the student's paper for an exam, generating and
// assigning one on first access. Access is limited to the exam window.
func (s *PaperService) GetPaperForStudent(ctx context.Context, studentID, examID string) (*StudentPaper, error) {
	exam, err := s.Exams.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, util.Internal("load exam", err)
	}

	now := time.Now()
	if !exam.Window(now) {
		return nil, util.ErrExamWindowClosed
	}

	if cached := s.cachedPaper(ctx, studentID, examID); cached != nil {
		return s.studentView(cached, exam)
	}

	paper, err := s.Repo.FindByStudentAndExam(studentID, examID)
	if err == nil {
		s.cachePaper(ctx, paper, exam.EndTime)
		return s.studentView(paper, exam)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Internal("load exam paper", err)
	}

	paper, err = s.generatePaper(ctx, studentID, examID, exam)
	if err != nil {
		return nil, err
	}
	s.cachePaper(ctx, paper, exam.EndTime)
	return s.studentView(paper, exam)
}

func (s *PaperService) generatePaper(ctx context.Context, studentID, examID string, exam *model.Exam) (*model.ExamPaper, error) {
	schema, err := s.Schemas.FindByExamID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchemaNotFound
		}
		return nil, util.Internal("load schema", err)
	}

	generated, err := s.AI.GeneratePaper(ctx, GeneratePaperRequest{
		Subject:         exam.Subject,
		Syllabus:        schema.Syllabus,
		Difficulty:      schema.Difficulty,
		MCQCount:        schema.MCQCount,
		MCQMarks:        schema.MCQMarks,
		SubjectiveCount: schema.SubjectiveCount,
		SubjectiveMarks: schema.SubjectiveMarks,
		CodeCount:       schema.CodeCount,
		CodeMarks:       schema.CodeMarks,
	})
	if err != nil {
		return nil, util.Upstream("AI paper generation failed", err)
	}

	if err := validateGeneratedPaper(generated, schema); err != nil {
		return nil, err
	}

	mcqJSON, _ := json.Marshal(generated.MCQQuestions)
	subjJSON, _ := json.Marshal(generated.SubjectiveQuestions)
	codeJSON, _ := json.Marshal(generated.CodeQuestions)

	paper := &model.ExamPaper{
		ExamID:              examID,
		StudentID:           studentID,
		MCQQuestions:        mcqJSON,
		SubjectiveQuestions: subjJSON,
		CodeQuestions:       codeJSON,
	}

	if err := s.Repo.Create(paper); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent first fetch: the other request won, reuse its paper.
			existing, ferr := s.Repo.FindByStudentAndExam(studentID, examID)
			if ferr != nil {
				return nil, util.Internal("load assigned paper", ferr)
			}
			return existing, nil
		}
		return nil, util.Internal("persist exam paper", err)
	}

	logger.Log.Info("exam paper generated",
		zap.String("studentId", studentID),
		zap.String("examId", examID),
	)
	return paper, nil
}

// validateGeneratedPaper rejects AI output that does not honor the schema or
// uses option labels outside the canonical A-D set.
func validateGeneratedPaper(p *GeneratedPaper, schema *model.ExamSchema) error {
	if len(p.MCQQuestions) != schema.MCQCount ||
		len(p.SubjectiveQuestions) != schema.SubjectiveCount ||
		len(p.CodeQuestions) != schema.CodeCount {
		return util.Upstream("AI returned a paper that does not match the schema", nil)
	}
	labels := make(map[string]bool, len(model.OptionLabels))
	for _, l := range model.OptionLabels {
		labels[l] = true
	}
	for _, q := range p.MCQQuestions {
		if len(q.Options) != len(model.OptionLabels) || !labels[q.CorrectOption] {
			return util.Upstream("AI returned a malformed MCQ", nil)
		}
	}
	return nil
}

func (s *PaperService) cachedPaper(ctx context.Context, studentID, examID string) *model.ExamPaper {
	if s.Redis == nil {
		return nil
	}
	raw, err := s.Redis.Get(ctx, paperCacheKey(examID, studentID)).Bytes()
	if err != nil {
		return nil
	}
	var paper model.ExamPaper
	if err := json.Unmarshal(raw, &paper); err != nil {
		return nil
	}
	return &paper
}

func (s *PaperService) cachePaper(ctx context.Context, paper *model.ExamPaper, windowEnd time.Time) {
	if s.Redis == nil {
		return
	}
	ttl := time.Until(windowEnd)
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(paper)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, paperCacheKey(paper.ExamID, paper.StudentID), raw, ttl).Err(); err != nil {
		logger.Log.Warn("paper cache write failed", zap.Error(err))
	}
}

func (s *PaperService) studentView(paper *model.ExamPaper, exam *model.Exam) (*StudentPaper, error) {
	mcqs, err := paper.DecodeMCQ()
	if err != nil {
		return nil, util.Internal("decode mcq questions", err)
	}
	subj, err := paper.DecodeSubjective()
	if err != nil {
		return nil, util.Internal("decode subjective questions", err)
	}
	code, err := paper.DecodeCode()
	if err != nil {
		return nil, util.Internal("decode code questions", err)
	}

	studentMCQs := make([]StudentMCQ, 0, len(mcqs))
	for _, q := range mcqs {
		studentMCQs = append(studentMCQs, StudentMCQ{
			QuestionID: q.QuestionID,
			Text:       q.Text,
			Options:    q.Options,
			Marks:      q.Marks,
		})
	}

	return &StudentPaper{
		PaperID:             paper.ID,
		ExamID:              paper.ExamID,
		MCQQuestions:        studentMCQs,
		SubjectiveQuestions: subj,
		CodeQuestions:       code,
		DurationMinutes:     exam.DurationMinutes,
		EndTime:             exam.EndTime,
	}, nil
}
