package controller

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

type PaperController struct {
	Service *service.PaperService
}

func NewPaperController(svc *service.PaperService) *PaperController {
	return &PaperController{Service: svc}
}

// @Summary Fetch the authenticated student's paper for an exam
// @Description Generates and assigns a paper on first access inside the exam window. Answer keys are never included.
// @Tags papers
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Success 200 {object} util.Response
// @Router /api/exams/{examId}/paper [get]
func (ctl *PaperController) GetMyPaper(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	paper, err := ctl.Service.GetPaperForStudent(c.Request.Context(), claims.UserID, c.Param("examId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, paper, "ok")
}
