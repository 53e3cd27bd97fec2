// internal/app/router.go
package app

import (
	announcementHandler "cprice-service/internal/handlers/announcement"
	authHandler "cprice-service/internal/handlers/auth"
	businessTypeHandler "cprice-service/internal/handlers/businesstype"
	dashboardHandler "cprice-service/internal/handlers/dashboard"
	inquiryHandler "cprice-service/internal/handlers/inquiry"
	priceHandler "cprice-service/internal/handlers/price"
	settingHandler "cprice-service/internal/handlers/setting"
	userHandler "cprice-service/internal/handlers/user"
	wsHandler "cprice-service/internal/handlers/ws"
	"cprice-service/internal/middleware"
	"cprice-service/internal/pkg/permission"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler         *authHandler.AuthHandler
	InquiryHandler      *inquiryHandler.InquiryHandler
	DashboardHandler    *dashboardHandler.DashboardHandler
	PriceHandler        *priceHandler.PriceHandler
	BusinessTypeHandler *businessTypeHandler.BusinessTypeHandler
	AnnouncementHandler *announcementHandler.AnnouncementHandler
	UserHandler         *userHandler.UserHandler
	SettingHandler      *settingHandler.SettingHandler
	WSHandler           *wsHandler.WebSocketHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health & Metrics ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Routes ====================
	public := api.Group("/public")
	{
		public.POST("/inquiries", h.InquiryHandler.Submit)
		public.GET("/prices", h.PriceHandler.SearchPublic)
		public.GET("/business-types", h.BusinessTypeHandler.ListActive)
		public.GET("/settings", h.SettingHandler.GetPublic)
	}

	// ==================== Auth ====================
	api.POST("/auth/login", h.AuthHandler.Login)

	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.GET("/me", h.AuthHandler.Me)
		authProtected.POST("/verify", h.AuthHandler.Verify)
		authProtected.POST("/change-password", h.AuthHandler.ChangePassword)
	}

	// ==================== Dashboard ====================
	dashboard := api.Group("/dashboard")
	dashboard.Use(h.AuthMiddleware.Auth())
	{
		dashboard.GET("", h.DashboardHandler.Overview)
	}

	// ==================== Inquiry Workflow ====================
	inquiries := api.Group("")
	inquiries.Use(h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequirePermission(permission.ModuleInquiries, permission.ActionView)
		update := h.AuthMiddleware.RequirePermission(permission.ModuleInquiries, permission.ActionUpdate)

		inquiries.GET("/inquiries", view, h.InquiryHandler.List)
		inquiries.GET("/inquiries/:id", view, h.InquiryHandler.Get)

		inquiries.POST("/claim-inquiry/:id", update, h.InquiryHandler.Claim)
		inquiries.POST("/release-inquiry/:id", update, h.InquiryHandler.Release)
		inquiries.PUT("/inquiry/:id/status", update, h.InquiryHandler.UpdateStatus)

		// Admin overrides
		inquiries.PUT("/inquiries/:id/assign", h.AuthMiddleware.AdminOnly(), h.InquiryHandler.Assign)
		inquiries.POST("/auto-release-expired", h.AuthMiddleware.AdminOnly(), h.InquiryHandler.AutoRelease)
	}

	// ==================== Prices ====================
	prices := api.Group("/prices")
	prices.Use(h.AuthMiddleware.Auth())
	{
		prices.GET("", h.AuthMiddleware.RequirePermission(permission.ModulePrices, permission.ActionView), h.PriceHandler.List)
		prices.GET("/:id", h.AuthMiddleware.RequirePermission(permission.ModulePrices, permission.ActionView), h.PriceHandler.Get)
		prices.POST("", h.AuthMiddleware.RequirePermission(permission.ModulePrices, permission.ActionCreate), h.PriceHandler.Create)
		prices.PUT("/:id", h.AuthMiddleware.RequirePermission(permission.ModulePrices, permission.ActionUpdate), h.PriceHandler.Update)
		prices.DELETE("/:id", h.AuthMiddleware.RequirePermission(permission.ModulePrices, permission.ActionDelete), h.PriceHandler.Delete)
	}

	// ==================== Business Types ====================
	businessTypes := api.Group("/business-types")
	businessTypes.Use(h.AuthMiddleware.Auth())
	{
		businessTypes.GET("", h.AuthMiddleware.RequirePermission(permission.ModuleBusinessTypes, permission.ActionView), h.BusinessTypeHandler.List)
		businessTypes.GET("/:id", h.AuthMiddleware.RequirePermission(permission.ModuleBusinessTypes, permission.ActionView), h.BusinessTypeHandler.Get)
		businessTypes.GET("/:id/stats", h.AuthMiddleware.RequirePermission(permission.ModuleBusinessTypes, permission.ActionView), h.BusinessTypeHandler.Stats)
		businessTypes.POST("", h.AuthMiddleware.RequirePermission(permission.ModuleBusinessTypes, permission.ActionCreate), h.BusinessTypeHandler.Create)
		businessTypes.PUT("/:id", h.AuthMiddleware.RequirePermission(permission.ModuleBusinessTypes, permission.ActionUpdate), h.BusinessTypeHandler.Update)
		businessTypes.DELETE("/:id", h.AuthMiddleware.RequirePermission(permission.ModuleBusinessTypes, permission.ActionDelete), h.BusinessTypeHandler.Delete)
	}

	// ==================== Announcements ====================
	announcements := api.Group("/announcements")
	announcements.Use(h.AuthMiddleware.Auth())
	{
		announcements.GET("", h.AuthMiddleware.RequirePermission(permission.ModuleAnnouncements, permission.ActionView), h.AnnouncementHandler.List)
		announcements.GET("/:id", h.AuthMiddleware.RequirePermission(permission.ModuleAnnouncements, permission.ActionView), h.AnnouncementHandler.Get)
		announcements.POST("", h.AuthMiddleware.RequirePermission(permission.ModuleAnnouncements, permission.ActionCreate), h.AnnouncementHandler.Create)
		announcements.PUT("/batch/status", h.AuthMiddleware.RequirePermission(permission.ModuleAnnouncements, permission.ActionUpdate), h.AnnouncementHandler.UpdateStatusBatch)
		announcements.PUT("/:id", h.AuthMiddleware.RequirePermission(permission.ModuleAnnouncements, permission.ActionUpdate), h.AnnouncementHandler.Update)
		announcements.DELETE("/:id", h.AuthMiddleware.RequirePermission(permission.ModuleAnnouncements, permission.ActionDelete), h.AnnouncementHandler.Delete)
	}

	// ==================== Users (admin only) ====================
	users := api.Group("/users")
	users.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly())
	{
		users.GET("", h.UserHandler.List)
		users.GET("/:id", h.UserHandler.Get)
		users.POST("", h.UserHandler.Create)
		users.PUT("/:id", h.UserHandler.Update)
		users.PUT("/:id/reset-password", h.UserHandler.ResetPassword)
		users.DELETE("/:id", h.UserHandler.Deactivate)
	}
	api.GET("/permissions", h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly(), h.UserHandler.PermissionDefinitions)

	// ==================== Settings (admin only) ====================
	settings := api.Group("/settings")
	settings.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly())
	{
		settings.GET("", h.SettingHandler.GetAll)
		settings.PUT("", h.SettingHandler.Update)
		settings.POST("/reset", h.SettingHandler.Reset)
	}

	// ==================== WebSocket Stats (admin only) ====================
	api.GET("/ws/stats", h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly(), h.WSHandler.Stats)
}
