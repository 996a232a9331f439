package controller

import (
	"net/http"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary Liveness and database health
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (ctl *HealthController) HealthCheck(c *gin.Context) {
	sqlDB, err := ctl.DB.DB()
	if err != nil {
		util.Error(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if err := sqlDB.Ping(); err != nil {
		util.Error(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	util.Success(c, gin.H{"status": "ok"}, "healthy")
}
