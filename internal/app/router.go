package app

import (
	"study_quiz_backend/docs"
	"study_quiz_backend/internal/config"
	"study_quiz_backend/internal/middleware"
	"study_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 学习资料：上传、列表、题目、删除、手动录入解析
		authGroup.POST("/documents", c.document.Upload)
		authGroup.GET("/documents", c.document.List)
		authGroup.POST("/documents/parse", c.document.ParseRawInput)
		authGroup.GET("/documents/:id/questions", c.document.GetQuestions)
		authGroup.DELETE("/documents/:id", c.document.Delete)

		// 单题评测（不经过会话）
		authGroup.POST("/evaluate", c.evaluate.Evaluate)

		// 答题会话
		authGroup.POST("/quiz/sessions", c.quiz.StartSession)
		authGroup.GET("/quiz/sessions/:id/next", c.quiz.NextQuestion)
		authGroup.POST("/quiz/sessions/:id/answer", c.quiz.Answer)
		authGroup.PATCH("/quiz/sessions/:id", c.quiz.UpdateSession)
	}
}
