package controller

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth  *service.AuthService
	Users *service.UserService
}

func NewAuthController(auth *service.AuthService, users *service.UserService) *AuthController {
	return &AuthController{Auth: auth, Users: users}
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Semester int    `json:"semester"`
	Branch   string `json:"branch"`
}

// @Summary Register a student account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerReq true "registration payload"
// @Success 201 {object} util.Response
// @Router /api/auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Student,
		Semester: req.Semester,
		Branch:   req.Branch,
	}
	if err := ctl.Auth.Register(user); err != nil {
		util.RespondError(c, err)
		return
	}

	util.Created(c, user, "registered")
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginReq true "credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	token, user, err := ctl.Auth.Login(req.Email, req.Password)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, gin.H{"token": token, "user": user}, "logged in")
}

// @Summary Current authenticated user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/auth/me [get]
func (ctl *AuthController) Me(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	user, err := ctl.Users.GetByID(claims.UserID)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	util.Success(c, user, "ok")
}
