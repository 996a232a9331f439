package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/config"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/monitoring"
)

// AIService is the client for the external AI service that generates exam
// papers and grades free-text answers. Every call carries a bounded timeout;
// callers must treat any error as fatal to the operation in flight.
type AIService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// AIAnswerPayload is one matched answer sent for grading. Every question on
// the paper appears exactly once, answered or not.
type AIAnswerPayload struct {
	QuestionID string  `json:"questionId"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	MaxMarks   float64 `json:"maxMarks"`
}

type EvaluateExamRequest struct {
	SubjectiveAnswers      []AIAnswerPayload `json:"subjective_answers"`
	CodeAnswers            []AIAnswerPayload `json:"code_answers"`
	EvaluationInstructions string            `json:"evaluation_instructions"`
}

// AIQuestionScore is the per-question grade returned by the AI service.
type AIQuestionScore struct {
	QuestionID   string  `json:"questionId"`
	MarksAwarded float64 `json:"marksAwarded"`
	AIFeedback   string  `json:"aiFeedback"`
}

type EvaluationResult struct {
	Subjective []AIQuestionScore `json:"subjective"`
	Code       []AIQuestionScore `json:"code"`
	Other      struct {
		FeedbackSummary string `json:"feedbackSummary"`
	} `json:"other"`
}

type evaluateExamResponse struct {
	EvaluationResult EvaluationResult `json:"evaluationResult"`
}

// EvaluateExam grades the matched subjective and code answers in one
// synchronous round trip.
func (s *AIService) EvaluateExam(ctx context.Context, req EvaluateExamRequest) (*EvaluationResult, error) {
	start := time.Now()
	var resp evaluateExamResponse
	err := s.post(ctx, "/api/v1/evaluate-exam", req, &resp)
	monitoring.ObserveAICall("evaluate_exam", start, err)
	if err != nil {
		return nil, err
	}
	return &resp.EvaluationResult, nil
}

type GeneratePaperRequest struct {
	Subject                string  `json:"subject"`
	Syllabus               string  `json:"syllabus"`
	Difficulty             string  `json:"difficulty"`
	MCQCount               int     `json:"mcq_count"`
	MCQMarks               float64 `json:"mcq_marks"`
	SubjectiveCount        int     `json:"subjective_count"`
	SubjectiveMarks        float64 `json:"subjective_marks"`
	CodeCount              int     `json:"code_count"`
	CodeMarks              float64 `json:"code_marks"`
}

type GeneratedPaper struct {
	MCQQuestions        []model.MCQQuestion  `json:"mcqQuestions"`
	SubjectiveQuestions []model.TextQuestion `json:"subjectiveQuestions"`
	CodeQuestions       []model.TextQuestion `json:"codeQuestions"`
}

// GeneratePaper asks the AI service for a fresh question paper built from the
// exam schema.
func (s *AIService) GeneratePaper(ctx context.Context, req GeneratePaperRequest) (*GeneratedPaper, error) {
	start := time.Now()
	var paper GeneratedPaper
	err := s.post(ctx, "/api/v1/generate-paper", req, &paper)
	monitoring.ObserveAICall("generate_paper", start, err)
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (s *AIService) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode AI response: %w", err)
	}
	return nil
}
