package controller

import (
	"strconv"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Service *service.ExamService
	Users   *service.UserService
}

func NewExamController(svc *service.ExamService, users *service.UserService) *ExamController {
	return &ExamController{Service: svc, Users: users}
}

// @Summary Create an exam
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExamReq true "exam definition"
// @Success 201 {object} util.Response
// @Router /api/admin/exams [post]
func (ctl *ExamController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.ExamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exam, err := ctl.Service.CreateExam(claims.UserID, req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Created(c, exam, "exam created")
}

// @Summary List exams
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/exams [get]
func (ctl *ExamController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	exams, total, err := ctl.Service.ListExams(page, limit)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: exams, Total: total, Page: page, Limit: limit}, "ok")
}

// @Summary Get one exam
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Success 200 {object} util.Response
// @Router /api/exams/{examId} [get]
func (ctl *ExamController) Get(c *gin.Context) {
	exam, err := ctl.Service.GetExam(c.Param("examId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, exam, "ok")
}

// @Summary Upcoming exams for the authenticated student
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/exams/upcoming [get]
func (ctl *ExamController) Upcoming(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	student, err := ctl.Users.GetByID(claims.UserID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	exams, err := ctl.Service.ListUpcomingForStudent(student)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, exams, "ok")
}

// @Summary Update an exam
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Param body body service.ExamReq true "fields to update"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{examId} [put]
func (ctl *ExamController) Update(c *gin.Context) {
	var req service.ExamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exam, err := ctl.Service.UpdateExam(c.Param("examId"), req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, exam, "exam updated")
}

// @Summary Delete an exam
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{examId} [delete]
func (ctl *ExamController) Delete(c *gin.Context) {
	if err := ctl.Service.DeleteExam(c.Param("examId")); err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, nil, "exam deleted")
}
