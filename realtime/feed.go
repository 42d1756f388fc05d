package realtime

import (
	"net/http"
	"time"

	"barberbook/models"
	"barberbook/services/appointment"
	"barberbook/services/notification"
	"barberbook/services/session"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is delegated to the CORS layer in front of us.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedHandler streams live views over websockets. One subscription handle
// is opened per connection and torn down on every exit path.
type FeedHandler struct {
	sessions      session.SessionService
	notifications notification.NotificationService
	appointments  appointment.AppointmentService
}

func NewFeedHandler(
	sessions session.SessionService,
	notifications notification.NotificationService,
	appointments appointment.AppointmentService,
) *FeedHandler {
	return &FeedHandler{
		sessions:      sessions,
		notifications: notifications,
		appointments:  appointments,
	}
}

// authenticate resolves the session from the token query parameter.
// Browsers cannot set headers on websocket dials, so the ID token rides in
// the query string.
func (h *FeedHandler) authenticate(c *gin.Context) (models.User, bool) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return models.User{}, false
	}
	user, err := h.sessions.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return models.User{}, false
	}
	return *user, true
}

// NotificationFeedHandler streams the acting session's notification feed.
// Every underlying change re-delivers the full bounded set.
func (h *FeedHandler) NotificationFeedHandler(c *gin.Context) {
	user, ok := h.authenticate(c)
	if !ok {
		return
	}

	recipientKey := user.ID
	if user.Role == models.RoleAdmin {
		recipientKey = models.RecipientAdmin
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub, err := h.notifications.Subscribe(c.Request.Context(), recipientKey)
	if err != nil {
		utils.GetLogger().Warn("notification subscribe failed",
			zap.String("recipient_id", recipientKey), zap.Error(err))
		return
	}
	defer sub.Close()

	go discardReads(conn, sub.Close)

	for feed := range sub.C {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(feed); err != nil {
			return
		}
	}
}

// AppointmentFeedHandler streams the appointments visible to the acting
// session: clients watch their own records, admins the whole agenda.
func (h *FeedHandler) AppointmentFeedHandler(c *gin.Context) {
	user, ok := h.authenticate(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	feed, err := h.appointments.Subscribe(c.Request.Context(), user)
	if err != nil {
		utils.GetLogger().Warn("appointment subscribe failed",
			zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	defer feed.Close()

	go discardReads(conn, feed.Close)

	for appts := range feed.C {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(appts); err != nil {
			return
		}
	}
}

// discardReads drains inbound frames so pings are answered and a closed
// peer tears the subscription down promptly.
func discardReads(conn *websocket.Conn, onClose func()) {
	defer onClose()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
