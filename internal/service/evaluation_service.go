package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EvaluationService owns the answer-evaluation pipeline: local MCQ scoring,
// answer matching, the AI grading call, persistence of the answer sheet and
// result, and post-hoc mark overrides. No other service mutates an
// AnswerSheet or Result.
type EvaluationService struct {
	Sheets  *repository.AnswerSheetRepository
	Results *repository.ResultRepository
	Papers  *repository.PaperRepository
	Exams   *repository.ExamRepository
	Schemas *repository.SchemaRepository
	AI      *AIService
	DB      *gorm.DB
}

func NewEvaluationService(
	sheets *repository.AnswerSheetRepository,
	results *repository.ResultRepository,
	papers *repository.PaperRepository,
	exams *repository.ExamRepository,
	schemas *repository.SchemaRepository,
	ai *AIService,
	db *gorm.DB,
) *EvaluationService {
	return &EvaluationService{
		Sheets:  sheets,
		Results: results,
		Papers:  papers,
		Exams:   exams,
		Schemas: schemas,
		AI:      ai,
		DB:      db,
	}
}

type SubmitAnswersRequest struct {
	MCQAnswers        []SubmittedMCQAnswer  `json:"mcqAnswers"`
	SubjectiveAnswers []SubmittedTextAnswer `json:"subjectiveAnswers"`
	CodeAnswers       []SubmittedTextAnswer `json:"codeAnswers"`
}

// SubmitAnswers evaluates one student's submission for one exam and persists
// the answer sheet and derived result in a single transaction. The AI call
// happens before anything is written: if it fails, nothing is persisted and
// the submission stays retryable. A duplicate submission surfaces as a
// conflict via the unique (student, exam) index, so two racing submits cannot
// both win.
func (s *EvaluationService) SubmitAnswers(ctx context.Context, studentID, examID string, req SubmitAnswersRequest) (*model.AnswerSheet, *model.Result, error) {
	exam, err := s.Exams.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrExamNotFound
		}
		return nil, nil, util.Internal("load exam", err)
	}

	paper, err := s.Papers.FindByStudentAndExam(studentID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrPaperNotFound
		}
		return nil, nil, util.Internal("load exam paper", err)
	}
	if paper.IsSubmitted {
		return nil, nil, util.ErrAlreadySubmitted
	}

	mcqQuestions, err := paper.DecodeMCQ()
	if err != nil {
		return nil, nil, util.Internal("decode mcq questions", err)
	}
	subjQuestions, err := paper.DecodeSubjective()
	if err != nil {
		return nil, nil, util.Internal("decode subjective questions", err)
	}
	codeQuestions, err := paper.DecodeCode()
	if err != nil {
		return nil, nil, util.Internal("decode code questions", err)
	}

	mcqEvaluated, mcqTotal, err := ScoreMCQ(req.MCQAnswers, mcqQuestions)
	if err != nil {
		return nil, nil, err
	}

	subjMatched := MatchAnswers(req.SubjectiveAnswers, subjQuestions)
	codeMatched := MatchAnswers(req.CodeAnswers, codeQuestions)

	instructions := ""
	if schema, err := s.Schemas.FindByExamID(examID); err == nil {
		instructions = schema.EvaluationInstructions
	}

	evalResult, err := s.AI.EvaluateExam(ctx, EvaluateExamRequest{
		SubjectiveAnswers:      toAIPayload(subjMatched),
		CodeAnswers:            toAIPayload(codeMatched),
		EvaluationInstructions: instructions,
	})
	if err != nil {
		return nil, nil, util.Upstream("AI evaluation failed", err)
	}

	subjEvaluated, err := mergeAIScores(subjMatched, evalResult.Subjective)
	if err != nil {
		return nil, nil, err
	}
	codeEvaluated, err := mergeAIScores(codeMatched, evalResult.Code)
	if err != nil {
		return nil, nil, err
	}

	subjTotal := sumTextMarks(subjEvaluated)
	codeTotal := sumTextMarks(codeEvaluated)
	achieved := mcqTotal + subjTotal + codeTotal

	mcqJSON, _ := json.Marshal(mcqEvaluated)
	subjJSON, _ := json.Marshal(subjEvaluated)
	codeJSON, _ := json.Marshal(codeEvaluated)

	now := time.Now()
	sheet := &model.AnswerSheet{
		StudentID:         studentID,
		ExamID:            examID,
		MCQAnswers:        mcqJSON,
		SubjectiveAnswers: subjJSON,
		CodeAnswers:       codeJSON,
		AchievedMarks:     achieved,
		IsSubmitted:       true,
		SubmitTime:        &now,
	}

	result := &model.Result{
		StudentID:       studentID,
		ExamID:          examID,
		AchievedMarks:   achieved,
		MCQMarks:        mcqTotal,
		SubjectiveMarks: subjTotal,
		CodeMarks:       codeTotal,
		Category:        Classify(achieved, exam.TotalMarks),
		Feedback:        evalResult.Other.FeedbackSummary,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sheet).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrAlreadySubmitted
			}
			return err
		}

		if err := tx.Model(&model.ExamPaper{}).
			Where("id = ?", paper.ID).
			Update("is_submitted", true).Error; err != nil {
			return err
		}

		result.AnswerSheetID = sheet.ID
		return tx.Create(result).Error
	})
	if err != nil {
		var appErr *util.AppError
		if errors.As(err, &appErr) {
			return nil, nil, appErr
		}
		return nil, nil, util.Internal("persist evaluation", err)
	}

	logger.Log.Info("answers evaluated",
		zap.String("studentId", studentID),
		zap.String("examId", examID),
		zap.Float64("achievedMarks", achieved),
		zap.String("category", string(result.Category)),
	)

	return sheet, result, nil
}

func toAIPayload(matched []model.EvaluatedTextAnswer) []AIAnswerPayload {
	payload := make([]AIAnswerPayload, 0, len(matched))
	for _, m := range matched {
		payload = append(payload, AIAnswerPayload{
			QuestionID: m.QuestionID,
			Question:   m.QuestionText,
			Answer:     m.Answer,
			MaxMarks:   m.MaxMarks,
		})
	}
	return payload
}

// mergeAIScores folds AI-returned marks into the matched answers. The AI must
// return one score per question in the same order it was sent; anything else
// is an incomplete grading and fails the submission. Marks are clamped into
// [0, maxMarks] regardless of what the AI returns.
func mergeAIScores(matched []model.EvaluatedTextAnswer, scores []AIQuestionScore) ([]model.EvaluatedTextAnswer, error) {
	if len(scores) != len(matched) {
		return nil, util.Upstream("AI returned incomplete grading", nil)
	}
	merged := make([]model.EvaluatedTextAnswer, len(matched))
	for i, m := range matched {
		score := scores[i]
		if score.QuestionID != m.QuestionID {
			return nil, util.Upstream("AI grading out of order", nil)
		}
		m.MarksAwarded = ClampMarks(score.MarksAwarded, m.MaxMarks)
		m.AIFeedback = score.AIFeedback
		merged[i] = m
	}
	return merged, nil
}

// MarkUpdate is one admin-issued correction to a question's awarded marks.
type MarkUpdate struct {
	QuestionType string  `json:"questionType" binding:"required"`
	QuestionID   string  `json:"questionId" binding:"required"`
	NewMarks     float64 `json:"newMarks"`
}

type MarkUpdateOutcome struct {
	Applied       []MarkUpdate `json:"applied"`
	AchievedMarks float64      `json:"achievedMarks"`
}

// UpdateMarks applies manual mark corrections to an answer sheet. MCQ marks
// are not editable. Updates naming an unknown section or question id are
// skipped; the outcome reports what was actually applied. Totals are always
// recomputed from the full answer collection, never from deltas, and the
// result record is re-derived in the same transaction.
func (s *EvaluationService) UpdateMarks(sheetID string, updates []MarkUpdate) (*MarkUpdateOutcome, error) {
	if len(updates) == 0 {
		return nil, util.Validation("update list must not be empty")
	}

	sheet, err := s.Sheets.FindByID(sheetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSheetNotFound
		}
		return nil, util.Internal("load answer sheet", err)
	}

	mcqAnswers, err := sheet.DecodeMCQ()
	if err != nil {
		return nil, util.Internal("decode mcq answers", err)
	}
	subjAnswers, err := sheet.DecodeSubjective()
	if err != nil {
		return nil, util.Internal("decode subjective answers", err)
	}
	codeAnswers, err := sheet.DecodeCode()
	if err != nil {
		return nil, util.Internal("decode code answers", err)
	}

	applied := make([]MarkUpdate, 0, len(updates))
	for _, u := range updates {
		var target []model.EvaluatedTextAnswer
		switch strings.ToLower(u.QuestionType) {
		case "subjective":
			target = subjAnswers
		case "code":
			target = codeAnswers
		default:
			continue
		}

		for i := range target {
			if target[i].QuestionID == u.QuestionID {
				target[i].MarksAwarded = ClampMarks(u.NewMarks, target[i].MaxMarks)
				u.NewMarks = target[i].MarksAwarded
				applied = append(applied, u)
				break
			}
		}
	}

	mcqTotal := sumMCQMarks(mcqAnswers)
	subjTotal := sumTextMarks(subjAnswers)
	codeTotal := sumTextMarks(codeAnswers)
	achieved := mcqTotal + subjTotal + codeTotal

	subjJSON, _ := json.Marshal(subjAnswers)
	codeJSON, _ := json.Marshal(codeAnswers)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.AnswerSheet{}).
			Where("id = ?", sheet.ID).
			Updates(map[string]interface{}{
				"subjective_answers": subjJSON,
				"code_answers":       codeJSON,
				"achieved_marks":     achieved,
			}).Error; err != nil {
			return err
		}

		result, err := s.Results.FindByAnswerSheetID(sheet.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		exam, err := s.Exams.FindByID(sheet.ExamID)
		if err != nil {
			return err
		}

		return tx.Model(&model.Result{}).
			Where("id = ?", result.ID).
			Updates(map[string]interface{}{
				"achieved_marks":   achieved,
				"mcq_marks":        mcqTotal,
				"subjective_marks": subjTotal,
				"code_marks":       codeTotal,
				"category":         Classify(achieved, exam.TotalMarks),
			}).Error
	})
	if err != nil {
		return nil, util.Internal("persist mark updates", err)
	}

	logger.Log.Info("marks updated",
		zap.String("answerSheetId", sheetID),
		zap.Int("applied", len(applied)),
		zap.Float64("achievedMarks", achieved),
	)

	return &MarkUpdateOutcome{Applied: applied, AchievedMarks: achieved}, nil
}
