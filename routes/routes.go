package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sahayata/handlers"
	"sahayata/middleware"
)

// RegisterAuthRoutes registers sign-up, login and the current-user endpoint.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.SignupHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.GET("/me", middleware.JWTAuthMiddleware(hb.Tokens), hb.Auth.MeHandler)
	}
}

func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/profiles")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		api.GET("", hb.Profile.GetProfileHandler)
		api.PUT("", hb.Profile.UpdateProfileHandler)
		api.PUT("/device-token", hb.Profile.UpdateDeviceTokenHandler)
	}
}

// RegisterCareRoutes registers the appointment and routine endpoints the
// reminder engine feeds on.
func RegisterCareRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	appointments := r.Group("/api/appointments")
	{
		appointments.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		appointments.GET("", hb.Care.ListAppointmentsHandler)
		appointments.POST("", hb.Care.CreateAppointmentHandler)
		appointments.PUT("/:id", hb.Care.UpdateAppointmentHandler)
		appointments.DELETE("/:id", hb.Care.DeleteAppointmentHandler)
	}

	routines := r.Group("/api/routines")
	{
		routines.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		routines.GET("", hb.Care.ListRoutinesHandler)
		routines.POST("", hb.Care.CreateRoutineHandler)
		routines.PUT("/:id", hb.Care.UpdateRoutineHandler)
		routines.DELETE("/:id", hb.Care.DeleteRoutineHandler)
	}
}

func RegisterRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/medical-records")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		api.GET("", hb.Records.ListRecordsHandler)
		api.POST("", hb.Records.CreateRecordHandler)
		api.GET("/files/:key", hb.Records.DownloadAttachmentHandler)
		api.PUT("/:id", hb.Records.UpdateRecordHandler)
		api.DELETE("/:id", hb.Records.DeleteRecordHandler)
	}
}

// RegisterCommunityRoutes registers support groups and their chat rooms.
func RegisterCommunityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	groups := r.Group("/api/groups")
	{
		groups.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		groups.GET("", hb.Community.ListGroupsHandler)
		groups.POST("", hb.Community.CreateGroupHandler)
		groups.POST("/:groupId/toggle", hb.Community.ToggleMembershipHandler)
	}

	chats := r.Group("/api/chats")
	{
		chats.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		chats.GET("/:groupId", hb.Community.ListMessagesHandler)
		chats.POST("/:groupId", hb.Community.PostMessageHandler)
	}
}

func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		api.GET("", hb.Notifications.ListNotificationsHandler)
		api.PUT("/read-all", hb.Notifications.MarkAllReadHandler)
		api.PUT("/:id/read", hb.Notifications.MarkReadHandler)
		api.POST("/test", hb.Notifications.SendTestHandler)
	}

	r.GET("/api/stream", middleware.JWTAuthMiddleware(hb.Tokens), hb.Stream.EventsHandler)
}

// RegisterDebugRoutes registers the manual reminder check and test SMS
// endpoints. They are unauthenticated, so production deployments turn them
// off with DEBUG_ENDPOINTS=false.
func RegisterDebugRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.Debug == nil {
		return
	}
	api := r.Group("/api/debug")
	{
		api.POST("/reminders/check", hb.Debug.CheckRemindersHandler)
		api.POST("/test-sms", hb.Debug.TestSMSHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterCareRoutes(r, hb)
	RegisterRecordRoutes(r, hb)
	RegisterCommunityRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterDebugRoutes(r, hb)
}
