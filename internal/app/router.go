package app

import (
	"assessment_backend/docs"
	"assessment_backend/internal/config"
	"assessment_backend/internal/middleware"
	"assessment_backend/internal/model"
	"assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// 学生/通用 授权接口
		a.registerAttemptRoutes(authGroup, c)

		// 教师相关接口
		a.registerAuthoringRoutes(authGroup, c)

		// 统计分析接口
		a.registerAnalyticsRoutes(authGroup, c)

		// 控制测试接口
		a.registerControlRoutes(authGroup, c)
	}
}

func (a *App) registerAttemptRoutes(group *gin.RouterGroup, c *controllers) {
	tests := group.Group("/tests")
	{
		tests.GET("/:testId/start", c.assessment.StartAttempt)
		tests.POST("/:testId/progress", c.assessment.SaveProgress)
		tests.GET("/:testId/progress", c.assessment.GetProgress)
		tests.POST("/:testId/submit", c.assessment.Submit)
		tests.GET("/:testId/results", c.assessment.ListTestResults)
	}

	results := group.Group("/test-results")
	{
		results.GET("", c.assessment.ListMyResults)
		results.GET("/:resultId", c.assessment.GetResult)
	}

	group.GET("/modules/:moduleId/tests/available", c.assessment.ListAvailableTests)
}

func (a *App) registerAuthoringRoutes(group *gin.RouterGroup, c *controllers) {
	authoring := group.Group("")
	authoring.Use(middleware.RoleMiddleware(model.Teacher))
	{
		authoring.POST("/modules/:moduleId/tests", c.assessment.CreateTest)
		authoring.DELETE("/modules/:moduleId", c.assessment.DeleteModule)
		authoring.PUT("/tests/:testId", c.assessment.UpdateTest)
		authoring.DELETE("/tests/:testId", c.assessment.DeleteTest)
	}
}

func (a *App) registerAnalyticsRoutes(group *gin.RouterGroup, c *controllers) {
	analytics := group.Group("/analytics")
	{
		analytics.GET("/classes/compare", middleware.RoleMiddleware(model.Admin), c.analytics.CompareClasses)
		analytics.GET("/classes/:grade/stats", c.analytics.GetClassStats)
		analytics.GET("/classes/:grade/timeline", c.analytics.GetClassTimeline)
		analytics.POST("/classes/:grade/export", middleware.RoleMiddleware(model.Teacher), c.report.ExportClassResults)
		analytics.GET("/students/:studentId/timeline", c.analytics.GetStudentTimeline)
		analytics.GET("/teachers/:teacherId/subjects", middleware.RoleMiddleware(model.Teacher), c.analytics.GetTeacherSubjects)
	}

	teacher := group.Group("/teacher/analytics")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("", c.analytics.GetTeacherAnalytics)
		teacher.GET("/subject-modules", c.analytics.GetModuleDifficulty)
		teacher.GET("/subject-modules/options", c.analytics.GetModuleDifficultyOptions)
	}
}

func (a *App) registerControlRoutes(group *gin.RouterGroup, c *controllers) {
	teacherOnly := middleware.RoleMiddleware(model.Teacher)

	controls := group.Group("/control-tests")
	{
		controls.GET("", teacherOnly, c.control.List)
		controls.POST("", teacherOnly, c.control.Create)
		controls.GET("/:testId", c.control.Get)
		controls.PUT("/:testId", teacherOnly, c.control.Update)
		controls.DELETE("/:testId", teacherOnly, c.control.Delete)
		controls.POST("/:testId/submit", middleware.RoleMiddleware(model.Student), c.control.Submit)
		controls.GET("/:testId/results", teacherOnly, c.control.Results)
	}

	group.GET("/student/control-tests", middleware.RoleMiddleware(model.Student), c.control.ListForStudent)
	group.GET("/teacher/control-tests/results", teacherOnly, c.control.TeacherResults)
}
