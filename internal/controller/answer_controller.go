package controller

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	Evaluation *service.EvaluationService
}

func NewAnswerController(evaluation *service.EvaluationService) *AnswerController {
	return &AnswerController{Evaluation: evaluation}
}

// @Summary Submit answers for an exam
// @Description Evaluates the submission (MCQ locally, subjective/code via the AI service) and persists the answer sheet and result. A second submission for the same exam is rejected as a conflict.
// @Tags answers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Param body body service.SubmitAnswersRequest true "submitted answers"
// @Success 201 {object} util.Response
// @Router /api/exams/{examId}/submit [post]
func (ctl *AnswerController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	sheet, result, err := ctl.Evaluation.SubmitAnswers(c.Request.Context(), claims.UserID, c.Param("examId"), req)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.Created(c, gin.H{"answerSheet": sheet, "result": result}, "answers evaluated")
}

// @Summary Override marks on an answer sheet
// @Description Applies admin mark corrections to subjective/code answers, recomputes totals from the full answer collection and re-derives the result category.
// @Tags answers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "answer sheet id"
// @Param body body []service.MarkUpdate true "mark updates"
// @Success 200 {object} util.Response
// @Router /api/admin/answer-sheets/{id}/marks [put]
func (ctl *AnswerController) UpdateMarks(c *gin.Context) {
	var updates []service.MarkUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	outcome, err := ctl.Evaluation.UpdateMarks(c.Param("id"), updates)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, outcome, "marks updated")
}
