package app

import (
	"campus_hub_backend/docs"
	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/middleware"
	"campus_hub_backend/internal/model"
	"campus_hub_backend/pkg/monitoring"

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
		a.registerProfessorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.GET("/auth/login", c.auth.GithubLogin)
		public.GET("/auth/callback", c.auth.GithubCallback)
		public.POST("/auth/logout", c.auth.Logout)
		public.POST("/auth/professor/register", c.auth.RegisterProfessor)
		public.POST("/auth/professor/login", c.auth.LoginProfessor)

		public.POST("/user/signup", c.user.CompleteSignup)

		// Browsing stays open; anything that writes needs a login.
		public.GET("/questions", middleware.TryAuthMiddleware(a.Config), c.question.GetQuestions)
		public.GET("/questions/:id", middleware.TryAuthMiddleware(a.Config), c.question.GetQuestion)
		public.GET("/projects", middleware.TryAuthMiddleware(a.Config), c.project.GetProjects)
		public.GET("/projects/:id", middleware.TryAuthMiddleware(a.Config), c.project.GetProject)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)
	group.GET("/user/courses", c.user.MyCourses)
	group.GET("/user/:username", c.user.GetUser)

	group.POST("/teams/register", c.team.Register)
	group.GET("/teams/:course_code", c.team.GetTeams)

	group.GET("/evaluation/criteria/:course_code", c.evaluation.GetCriteria)
	group.GET("/evaluation/assignment/:course_code", c.evaluation.GetAssignment)
	group.POST("/evaluation/submit", c.evaluation.SubmitEvaluation)
	group.GET("/evaluation/results/:course_code", c.evaluation.GetResults)

	group.POST("/questions", c.question.CreateQuestion)
	group.POST("/questions/:id/answers", c.question.AddAnswer)
	group.POST("/questions/:id/resolve", c.question.ToggleResolve)
	group.POST("/questions/classify", c.question.ClassifyQuestion)
	group.GET("/scores/:student_id", c.question.GetScores)
	group.POST("/scores", c.question.UpdateScore)

	group.POST("/projects", c.project.SaveProject)
	group.POST("/projects/:id/comments", c.project.AddComment)
	group.POST("/projects/:id/previews", c.project.UploadPreviews)

	group.GET("/schedule/professors", c.schedule.AvailableProfessors)
	group.GET("/schedule/availability/:professor_id", c.schedule.GetAvailability)
	group.POST("/schedule/reservations", c.schedule.MakeReservation)
	group.GET("/schedule/reservations", c.schedule.MyReservations)

	group.GET("/problems", c.problem.GetProblems)
	group.GET("/problems/:id", c.problem.GetProblem)
	group.POST("/problems/:id/submit", c.problem.Submit)
}

func (a *App) registerProfessorRoutes(group *gin.RouterGroup, c *controllers) {
	professor := group.Group("/")
	professor.Use(middleware.RoleMiddleware(model.RoleProfessor))
	{
		professor.POST("/courses", c.course.SaveCourses)
		professor.GET("/courses", c.course.GetCourses)
		professor.GET("/courses/:code", c.course.GetCourse)
		professor.DELETE("/courses", c.course.DeleteCourses)

		professor.POST("/students", c.course.SaveStudents)
		professor.GET("/students", c.course.GetStudents)
		professor.GET("/students/:student_id/courses", c.course.StudentCourses)
		professor.DELETE("/students", c.course.RemoveStudents)

		professor.POST("/evaluation/criteria", c.evaluation.SaveCriteria)
		professor.PUT("/evaluation/criteria", c.evaluation.UpdateCriteria)
		professor.POST("/evaluation/start/:course_code", c.evaluation.StartEvaluation)
		professor.GET("/evaluation/progress/:course_code", c.evaluation.GetProgress)

		professor.POST("/schedule/availability", c.schedule.SaveAvailability)
		professor.GET("/schedule/reservations/all", c.schedule.AllReservations)

		professor.POST("/problems", c.problem.CreateProblem)
		professor.DELETE("/projects/:id", c.project.DeleteProject)
	}
}
