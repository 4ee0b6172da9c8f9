package app

import (
	"training_portal_backend/docs"
	"training_portal_backend/internal/middleware"
	"training_portal_backend/internal/model"
	"training_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
		public.GET("/auth/sso-callback", c.auth.SSOCallback)
	}

	// 需要会话的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(s.auth), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/me", c.auth.Me)

		authGroup.GET("/training", c.progress.GetCatalog)
		authGroup.GET("/progress", c.progress.GetProgress)
		authGroup.POST("/progress", c.progress.SetProgress)

		authGroup.POST("/quiz/submit", c.quiz.Submit)
		authGroup.GET("/quiz/:videoId/attempts", c.quiz.History)

		authGroup.GET("/dashboard/kpis", c.dashboard.GetKpis)

		// 经理视图
		manager := authGroup.Group("/manager")
		manager.Use(middleware.RoleMiddleware(model.Manager))
		{
			manager.GET("/metrics", c.manager.GetTeamMetrics)
		}

		// 管理端
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/users", c.admin.ListUsers)
			admin.POST("/users", c.admin.CreateUser)
			admin.PUT("/users/:id", c.admin.UpdateUser)
			admin.DELETE("/users/:id", c.admin.DeleteUser)

			admin.GET("/teams", c.admin.ListTeams)
			admin.POST("/teams", c.admin.CreateTeam)
			admin.PUT("/teams/:id", c.admin.UpdateTeam)
			admin.DELETE("/teams/:id", c.admin.DeleteTeam)

			admin.POST("/import", c.admin.ImportUsers)
		}
	}
}
