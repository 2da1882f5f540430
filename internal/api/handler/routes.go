package handler

import (
	"estatehub/backend/internal/metrics"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the whole API on r. limiter guards authenticated routes.
func (h *Handler) RegisterRoutes(r *gin.Engine, limiter *RateLimiter) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/properties", h.ListProperties)
	api.GET("/properties/:id", h.GetProperty)
	api.GET("/properties/:id/reviews", h.ListReviews)

	authed := api.Group("")
	authed.Use(h.RequireAuth(h.Accounts))
	if limiter != nil {
		authed.Use(limiter.Middleware())
	}

	authed.GET("/users/me", h.Me)

	authed.POST("/properties", h.CreateProperty)
	authed.GET("/properties/mine", h.MyProperties)
	authed.PUT("/properties/:id", h.UpdateProperty)
	authed.POST("/properties/:id/reviews", h.CreateReview)

	authed.POST("/bookings", h.CreateBooking)
	authed.GET("/bookings/mine", h.MyBookings)
	authed.GET("/bookings/owner", h.OwnerBookings)
	authed.PUT("/bookings/:id/status", h.UpdateBookingStatus)

	authed.POST("/messages", h.SendMessage)
	authed.GET("/messages/inbox", h.Inbox)
	authed.GET("/messages/conversations/:userId", h.Conversation)
	authed.PUT("/messages/:id/read", h.MarkMessageRead)

	authed.GET("/notifications", h.ListNotifications)
	authed.GET("/notifications/unread-count", h.UnreadCount)
	authed.GET("/notifications/stream", h.StreamNotifications)
	authed.PUT("/notifications/read-all", h.MarkAllNotificationsRead)
	authed.PUT("/notifications/:id/read", h.MarkNotificationRead)
	authed.DELETE("/notifications/:id", h.DeleteNotification)

	authed.POST("/complaints", h.CreateComplaint)
	authed.POST("/complaints/property", h.CreatePropertyComplaint)
	authed.GET("/complaints/mine", h.MyComplaints)

	authed.POST("/appeals", h.CreateAppeal)
	authed.GET("/appeals", h.ListAppeals)
	authed.GET("/appeals/my-appeals", h.MyAppeals)
	authed.GET("/appeals/:id", h.GetAppeal)
	authed.PUT("/appeals/:id/resolve", RequireAdmin(), h.ResolveAppeal)

	admin := authed.Group("/admin", RequireAdmin())
	admin.GET("/complaints", h.AdminListComplaints)
	admin.GET("/complaints/:id", h.AdminGetComplaint)
	admin.PUT("/complaints/:id/status", h.AdminUpdateComplaintStatus)
	admin.GET("/properties", h.AdminListProperties)
	admin.PUT("/properties/:id/status", h.AdminUpdatePropertyStatus)
	admin.DELETE("/properties/:id", h.AdminDeleteProperty)
	admin.PUT("/users/:id/ban", h.BanUser)
	admin.PUT("/users/:id/unban", h.UnbanUser)
}
