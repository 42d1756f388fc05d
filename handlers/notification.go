package handlers

import (
	"net/http"

	"barberbook/middleware"
	"barberbook/models"
	"barberbook/services/notification"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the notification feed over HTTP.
type NotificationHandler struct {
	svc notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// recipientKeyFor maps a session onto its feed scope: admins share the
// "admin" broadcast feed, clients get their own.
func recipientKeyFor(user models.User) string {
	if user.Role == models.RoleAdmin {
		return models.RecipientAdmin
	}
	return user.ID
}

// ListHandler returns a one-shot snapshot of the acting session's feed,
// along with the derived unread count.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	feed, err := h.svc.Snapshot(recipientKeyFor(user))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load notifications", err.Error())
		return
	}
	if feed == nil {
		feed = []models.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": feed,
		"unread_count":  notification.UnreadCount(feed),
	})
}

// MarkReadHandler flips one notification of the acting session's feed to
// read. The recipient scope rides in the update filter, so a session cannot
// flip records addressed to someone else.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	id := c.Param("id")
	if err := h.svc.MarkRead(recipientKeyFor(user), id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notification read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MarkAllReadHandler flips every unread record of the current feed
// snapshot. The snapshot is taken server-side at call time; records landing
// afterwards stay unread.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	user, ok := middleware.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	feed, err := h.svc.Snapshot(recipientKeyFor(user))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load notifications", err.Error())
		return
	}
	if err := h.svc.MarkAllRead(feed); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notifications read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
