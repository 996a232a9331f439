package app

import (
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/docs"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/config"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/middleware"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/model"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)

	student := group.Group("")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/exams/upcoming", c.exam.Upcoming)
		student.GET("/exams/:examId", c.exam.Get)
		student.GET("/exams/:examId/paper", c.paper.GetMyPaper)
		student.POST("/exams/:examId/submit", c.answer.Submit)
		student.GET("/exams/:examId/result", c.result.GetMyResult)

		student.POST("/queries", c.query.Raise)
		student.GET("/queries", c.query.ListMine)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/exams", c.exam.Create)
		admin.GET("/exams", c.exam.List)
		admin.PUT("/exams/:examId", c.exam.Update)
		admin.DELETE("/exams/:examId", c.exam.Delete)

		admin.POST("/exams/:examId/schema", c.schema.Create)
		admin.GET("/exams/:examId/schema", c.schema.Get)
		admin.PUT("/exams/:examId/schema", c.schema.Update)

		admin.GET("/exams/:examId/results", c.result.ListByExam)
		admin.GET("/exams/:examId/results/stats", c.result.Stats)
		admin.GET("/exams/:examId/queries", c.query.ListForExam)

		admin.PUT("/answer-sheets/:id/marks", c.answer.UpdateMarks)
		admin.PUT("/queries/:id/resolve", c.query.Resolve)

		admin.GET("/students", c.user.ListStudents)
	}
}
