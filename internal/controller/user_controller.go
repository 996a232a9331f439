package controller

import (
	"strconv"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// @Summary List student accounts
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param semester query int false "filter by semester"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/students [get]
func (ctl *UserController) ListStudents(c *gin.Context) {
	semester, _ := strconv.Atoi(c.DefaultQuery("semester", "0"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	students, total, err := ctl.Service.ListStudents(semester, page, limit)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: students, Total: total, Page: page, Limit: limit}, "ok")
}
