package endpoints

import (
	"careers"
	"careers/internal/api/handler/middleware"
	"careers/internal/api/handler/response"
	websocket2 "careers/internal/api/handler/websocket"
	"careers/internal/api/models"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin
		return true
	},
}

type websocketHandler struct {
	hub       *websocket2.Hub
	processor *websocket2.MessageProcessor
	logger    zerolog.Logger
	config    careers.AppConfig
}

func newWebSocketHandler(hub *websocket2.Hub, processor *websocket2.MessageProcessor) *websocketHandler {
	return &websocketHandler{
		hub:       hub,
		processor: processor,
		logger:    careers.Logger,
		config:    careers.GetConfig(),
	}
}

// WebSocketHandler sets up the live board routes. The board channel is
// recruiter-only.
func WebSocketHandler(router *graceful.Graceful, hub *websocket2.Hub, processor *websocket2.MessageProcessor) {
	h := newWebSocketHandler(hub, processor)

	wsRoutes := router.Group("/api/v1/ws")
	wsRoutes.Use(middleware.AuthMiddleware(h.config))
	wsRoutes.Use(middleware.RequireRole(models.RoleRecruiter))
	{
		wsRoutes.GET("/board", h.handleBoard)
		wsRoutes.GET("/board/users", h.getActiveUsers)
		wsRoutes.GET("/stats", h.getRoomStats)
	}
}

// handleBoard upgrades the connection and joins the board room. An optional
// jobId query narrows the room to one job; 0 is the all-jobs board.
func (slf *websocketHandler) handleBoard(c *gin.Context) {
	var jobID uint64
	if raw := c.Query("jobId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job ID"})
			return
		}
		jobID = parsed
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}
	username, exists := c.Get("username")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}

	// Create unique client ID
	clientID := uuid.New().String()

	client := websocket2.NewClient(
		clientID,
		userID.(uint),
		username.(string),
		uint(jobID),
		slf.hub,
		conn,
		slf.processor,
		slf.logger,
	)

	// Register client
	slf.hub.Register <- client

	slf.logger.Info().
		Str("clientId", clientID).
		Uint("userId", userID.(uint)).
		Uint("jobId", uint(jobID)).
		Msg("Board connection established")

	// Start client goroutines
	go client.WritePump()
	go client.ReadPump()
}

// getActiveUsers returns the recruiters currently watching a board room
func (slf *websocketHandler) getActiveUsers(c *gin.Context) {
	var jobID uint64
	if raw := c.Query("jobId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid job ID"})
			return
		}
		jobID = parsed
	}

	users := slf.hub.GetActiveUsersInRoom(uint(jobID))
	c.JSON(http.StatusOK, gin.H{
		"jobId": jobID,
		"users": users,
	})
}

// getRoomStats returns statistics about all active board rooms
func (slf *websocketHandler) getRoomStats(c *gin.Context) {
	stats := slf.hub.GetRoomStats()
	c.JSON(http.StatusOK, gin.H{
		"rooms": stats,
	})
}
