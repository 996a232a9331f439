package controller

import (
	"strconv"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{Service: svc}
}

// @Summary The authenticated student's result for an exam
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Success 200 {object} util.Response
// @Router /api/exams/{examId}/result [get]
func (ctl *ResultController) GetMyResult(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	detail, err := ctl.Service.GetStudentResult(claims.UserID, c.Param("examId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, detail, "ok")
}

// @Summary List results for an exam
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{examId}/results [get]
func (ctl *ResultController) ListByExam(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, total, err := ctl.Service.ListByExam(c.Param("examId"), page, limit)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: results, Total: total, Page: page, Limit: limit}, "ok")
}

// @Summary Aggregate statistics for an exam's results
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{examId}/results/stats [get]
func (ctl *ResultController) Stats(c *gin.Context) {
	stats, err := ctl.Service.ExamStats(c.Param("examId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, stats, "ok")
}
