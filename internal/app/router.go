package app

import (
	"campus_backend/docs"
	"campus_backend/internal/config"
	"campus_backend/internal/middleware"
	"campus_backend/internal/model"
	"campus_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerSharedRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
		a.registerTrainerRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/stores", c.result.Stores)
		public.POST("/auth/student/login", c.auth.StudentLogin)
		public.POST("/auth/trainer/login", c.auth.TrainerLogin)
	}
}

// Routes both roles use once logged in.
func (a *App) registerSharedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/manuals", c.manual.List)
	rg.GET("/manuals/:id", c.manual.Get)
	rg.POST("/chat", c.chat.Ask)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("")
	student.Use(middleware.RoleMiddleware(model.RoleStudent))
	{
		student.POST("/quiz/start", c.quiz.Start)
		student.POST("/quiz/retry", c.quiz.Retry)
		student.GET("/quiz/session", c.quiz.Current)
		student.DELETE("/quiz/session", c.quiz.Abandon)
		student.POST("/quiz/answer", c.quiz.Answer)
		student.POST("/quiz/answer/matching", c.quiz.AnswerMatching)
		student.POST("/quiz/navigate", c.quiz.Navigate)
		student.POST("/quiz/time", c.quiz.SyncTime)
		student.POST("/quiz/finish", c.quiz.Finish)

		student.GET("/results/me", c.result.MyHistory)
		student.GET("/stats/me", c.stats.MyProfile)
	}
}

func (a *App) registerTrainerRoutes(rg *gin.RouterGroup, c *controllers) {
	trainer := rg.Group("")
	trainer.Use(middleware.RoleMiddleware(model.RoleTrainer))
	{
		trainer.PUT("/auth/trainer/password", c.auth.RotatePassword)

		trainer.POST("/manuals", c.manual.Upload)
		trainer.DELETE("/manuals/:id", c.manual.Delete)
		trainer.POST("/manuals/reset", c.manual.Reset)

		trainer.GET("/stats/students", c.stats.Students)
		trainer.GET("/stats/students/:student", c.stats.StudentProfile)
		trainer.GET("/stats/categories", c.stats.Categories)
		trainer.GET("/stats/global", c.stats.Global)

		trainer.GET("/students/:student/results", c.result.StudentHistory)
		trainer.DELETE("/students/:student/results", c.result.ClearHistory)
		trainer.DELETE("/students/:student/results/:id", c.result.DeleteResult)
		trainer.PUT("/students/:student/results/:id/certificate", c.result.SetCertificateName)
		trainer.DELETE("/students/:student", c.result.DeleteStudent)
	}
}
