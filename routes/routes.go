package routes

import (
	"time"

	"shiffy/handlers"
	"shiffy/middleware"
	"shiffy/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWeekRoutes registers the public week window endpoints.
func RegisterWeekRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/weeks")
	{
		api.GET("", hb.GetWeekWindowHandler)
		api.GET("/start", hb.GetWeekStartHandler)
	}
}

// RegisterScheduleRoutes registers schedule endpoints. Generation and
// publishing are manager-only.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedules")
	{
		api.Use(middleware.ShopContextMiddleware())
		api.GET("", hb.GetScheduleWindowHandler)
		api.GET("/:weekStart", hb.GetScheduleHandler)

		manager := api.Group("")
		manager.Use(middleware.RequireRole(utils.RoleManager))
		manager.POST("/:weekStart/generate", hb.GenerateScheduleHandler)
		manager.POST("/:weekStart/publish", hb.PublishScheduleHandler)
	}
}

// RegisterPreferenceRoutes registers shift preference endpoints.
func RegisterPreferenceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/preferences")
	{
		api.Use(middleware.ShopContextMiddleware())
		api.POST("", hb.SubmitPreferencesHandler)
		api.GET("/:weekStart", middleware.RequireRole(utils.RoleManager), hb.ListPreferencesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Authorization", "Content-Type",
			utils.HeaderShopID, utils.HeaderUserID, utils.HeaderUserRole,
		},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterWeekRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterPreferenceRoutes(r, hb)
}
