package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sahayata/middleware"
	"sahayata/services/realtime"
	"sahayata/utils"
)

const defaultHeartbeat = 25 * time.Second

// StreamHandler pushes notification and group-chat events to the browser over
// server-sent events.
type StreamHandler struct {
	Subscriber realtime.Subscriber
	Heartbeat  time.Duration
}

func NewStreamHandler(sub realtime.Subscriber) *StreamHandler {
	return &StreamHandler{Subscriber: sub, Heartbeat: defaultHeartbeat}
}

// EventsHandler handles GET /api/stream?groups=a,b. The caller always
// receives its own notifications plus the rooms of the listed groups.
func (h *StreamHandler) EventsHandler(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()
	topics := streamTopics(middleware.UserID(c), c.Query("groups"))

	sub, err := h.Subscriber.Subscribe(ctx, topics...)
	if err != nil {
		logger.Error("Failed to subscribe to events", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "real-time updates unavailable", "")
		return
	}
	defer sub.Close()

	heartbeat := h.Heartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"topics": topics})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-ctx.Done():
			return false
		}
	})
	logger.Debug("Event stream closed")
}

func streamTopics(userID, groups string) []string {
	topics := []string{realtime.NotificationTopic(userID)}
	seen := map[string]bool{}
	for _, id := range strings.Split(groups, ",") {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		topics = append(topics, realtime.GroupTopic(id))
	}
	return topics
}
