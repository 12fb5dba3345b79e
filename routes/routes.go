package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/controllers"
	"github.com/focusup-app/focusup-backend/middleware"
	"github.com/focusup-app/focusup-backend/ratelimit"
	"github.com/focusup-app/focusup-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	// Limite de tentativas de autenticação (estado em memória;
	// trocar o store por um compartilhado em deploys com várias instâncias)
	controllers.AuthLimiter = ratelimit.New(ratelimit.NewMemoryStore())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", middleware.DBMiddleware(db), controllers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	auth := api.Group("/auth")
	{
		auth.POST("/cadastro", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
		auth.POST("/esqueci-senha", controllers.ForgotPassword)
		auth.POST("/redefinir-senha", controllers.ResetPassword)
		auth.POST("/alterar-senha", middleware.AuthMiddleware(), controllers.ChangePassword)
	}

	user := api.Group("")
	user.Use(middleware.AuthMiddleware())
	{
		// Matérias
		user.POST("/materias", controllers.CreateSubject)
		user.GET("/materias", controllers.GetSubjects)
		user.PUT("/materias/:id", controllers.UpdateSubject)
		user.DELETE("/materias/:id", controllers.DeleteSubject)

		// Atividades
		user.POST("/atividades", controllers.CreateActivity)
		user.GET("/atividades", controllers.GetActivities)
		user.PUT("/atividades/:id", controllers.UpdateActivity)
		user.DELETE("/atividades/:id", controllers.DeleteActivity)

		// Metas
		user.POST("/metas", controllers.CreateGoal)
		user.GET("/metas", controllers.GetGoals)
		user.PUT("/metas/:id", controllers.UpdateGoal)
		user.PATCH("/metas/:id/concluir", controllers.CompleteGoal)
		user.DELETE("/metas/:id", controllers.DeleteGoal)

		// Notificações
		user.GET("/notificacoes", controllers.GetNotifications)
		user.GET("/notificacoes/nao-lidas", controllers.GetUnreadCount)
		user.PATCH("/notificacoes/:id/lida", controllers.MarkNotificationAsRead)
		user.PATCH("/notificacoes/lidas", controllers.MarkAllAsRead)
		user.DELETE("/notificacoes/:id", controllers.DeleteNotification)
		user.DELETE("/notificacoes/lidas", controllers.DeleteReadNotifications)

		// Dashboard
		user.GET("/dashboard", controllers.GetDashboard)
		user.GET("/dashboard/eventos", controllers.GetCalendarEvents)
		user.GET("/dashboard/sugestoes", controllers.GetStudySuggestions)

		// Perfil
		user.GET("/perfil", controllers.GetProfile)
		user.PUT("/perfil", controllers.UpdateProfile)
		user.POST("/perfil/foto", controllers.UploadProfilePhoto)
		user.GET("/perfil/conquistas", controllers.GetUserBadges)
		user.DELETE("/perfil", controllers.DeleteAccount)
	}

	r.GET("/ws/notificacoes", ws.HandleNotificationWebSocket)

	return r
}
