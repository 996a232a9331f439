package controller

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

type QueryController struct {
	Service *service.QueryService
}

func NewQueryController(svc *service.QueryService) *QueryController {
	return &QueryController{Service: svc}
}

// @Summary Raise a re-evaluation query
// @Tags queries
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RaiseQueryReq true "query payload"
// @Success 201 {object} util.Response
// @Router /api/queries [post]
func (ctl *QueryController) Raise(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.RaiseQueryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	query, err := ctl.Service.RaiseQuery(claims.UserID, req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Created(c, query, "query raised")
}

// @Summary The authenticated student's queries
// @Tags queries
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/queries [get]
func (ctl *QueryController) ListMine(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	queries, err := ctl.Service.ListForStudent(claims.UserID)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, queries, "ok")
}

// @Summary List queries raised against an exam
// @Tags queries
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Param status query string false "pending | resolved | rejected"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{examId}/queries [get]
func (ctl *QueryController) ListForExam(c *gin.Context) {
	status := model.QueryStatus(c.Query("status"))
	queries, err := ctl.Service.ListForExam(c.Param("examId"), status)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, queries, "ok")
}

// @Summary Resolve a query, optionally overriding marks
// @Tags queries
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "query id"
// @Param body body service.ResolveQueryReq true "resolution"
// @Success 200 {object} util.Response
// @Router /api/admin/queries/{id}/resolve [put]
func (ctl *QueryController) Resolve(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.ResolveQueryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	query, outcome, err := ctl.Service.ResolveQuery(claims.UserID, c.Param("id"), req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, gin.H{"query": query, "markUpdates": outcome}, "query resolved")
}
