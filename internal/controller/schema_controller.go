package controller

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

type SchemaController struct {
	Service *service.SchemaService
}

func NewSchemaController(svc *service.SchemaService) *SchemaController {
	return &SchemaController{Service: svc}
}

// @Summary Create a question-paper schema for an exam
// @Tags schemas
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Param body body service.SchemaReq true "schema definition"
// @Success 201 {object} util.Response
// @Router /api/admin/exams/{examId}/schema [post]
func (ctl *SchemaController) Create(c *gin.Context) {
	var req service.SchemaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	schema, err := ctl.Service.CreateSchema(c.Param("examId"), req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Created(c, schema, "schema created")
}

// @Summary Get an exam's schema
// @Tags schemas
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{examId}/schema [get]
func (ctl *SchemaController) Get(c *gin.Context) {
	schema, err := ctl.Service.GetSchema(c.Param("examId"))
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, schema, "ok")
}

// @Summary Update an exam's schema
// @Tags schemas
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path string true "exam id"
// @Param body body service.SchemaReq true "fields to update"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{examId}/schema [put]
func (ctl *SchemaController) Update(c *gin.Context) {
	var req service.SchemaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	schema, err := ctl.Service.UpdateSchema(c.Param("examId"), req)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, schema, "schema updated")
}
