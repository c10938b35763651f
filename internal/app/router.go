package app

import (
	"concept_edu_backend/docs"
	"concept_edu_backend/internal/config"
	"concept_edu_backend/internal/middleware"
	"concept_edu_backend/internal/model"
	"concept_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(authGroup *gin.RouterGroup, c *controllers) {
	// 用户资料
	authGroup.GET("/user/profile", c.user.GetProfile)
	authGroup.PUT("/user/profile", c.user.UpdateProfile)

	// 概念与掌握
	concepts := authGroup.Group("/concepts")
	{
		concepts.GET("", c.concept.ListConcepts)
		concepts.GET("/unlocked", c.mastery.GetUnlockedConcepts)
		concepts.GET("/:id", c.concept.GetConcept)
		concepts.GET("/:id/mastery", c.mastery.GetRecord)
		concepts.POST("/:id/description-read", c.mastery.MarkDescriptionRead)
		concepts.POST("/:id/video-watched", c.mastery.MarkVideoWatched)
		concepts.GET("/:id/quiz", c.quiz.GetQuiz)
		concepts.POST("/:id/quiz", c.quiz.SubmitQuiz)
		concepts.POST("/:id/practice", c.quiz.SubmitPractice)
	}

	// 课程、路径与进度
	courses := authGroup.Group("/courses")
	{
		courses.GET("", c.course.ListCourses)
		courses.GET("/:id", c.course.GetCourse)
		courses.POST("/:id/enroll", c.course.Enroll)
		courses.GET("/:id/progress", c.course.GetProgress)
		courses.GET("/:id/path", c.path.BuildPath)
		courses.GET("/:id/routes", c.path.GetRoutes)
		courses.POST("/:id/routes/select", c.path.SelectRoute)
	}
}

func (a *App) registerTeacherRoutes(authGroup *gin.RouterGroup, c *controllers) {
	teacher := authGroup.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/concepts", c.concept.CreateConcept)
		teacher.PUT("/concepts/:id", c.concept.UpdateConcept)
		teacher.DELETE("/concepts/:id", c.concept.DeleteConcept)

		teacher.POST("/courses", c.course.CreateCourse)
		teacher.PUT("/courses/:id", c.course.UpdateCourse)
		teacher.DELETE("/courses/:id", c.course.DeleteCourse)
		teacher.POST("/courses/:id/concepts", c.course.AttachConcept)
		teacher.DELETE("/courses/:id/concepts/:conceptId", c.course.DetachConcept)

		teacher.POST("/quizzes", c.quiz.CreateQuiz)
	}
}

func (a *App) registerAdminRoutes(authGroup *gin.RouterGroup, c *controllers) {
	admin := authGroup.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id", c.user.AdminUpdateUser)
	}
}
