// internal/infra/httpapi/server.go
package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"scan_review_notifier/internal/app"
)

// Server exposes the event intake consumed by the document store's eventing
// plus the small device/preference surface used by the client app.
type Server struct {
	router         *gin.Engine
	notifier       app.NotifierService
	accountService *app.AccountService
	db             *sql.DB
	logger         *logrus.Logger
}

func NewServer(
	notifier app.NotifierService,
	accountService *app.AccountService,
	db *sql.DB,
	logger *logrus.Logger,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:         router,
		notifier:       notifier,
		accountService: accountService,
		db:             db,
		logger:         logger,
	}
	s.registerRoutes(router)
	return s
}

// Handler returns the http.Handler so the caller owns the http.Server and
// its shutdown.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes(router *gin.Engine) {
	v1 := router.Group("/v1")
	{
		// Change-event intake. The event source delivers at-least-once and
		// retries on any non-2xx response.
		v1.POST("/events/scan-requests", s.handleScanRequestEvent)

		accounts := v1.Group("/accounts")
		{
			accounts.PUT("/:id/device", s.handleRegisterDevice)
			accounts.PUT("/:id/preferences", s.handleSetPreferences)
		}
	}

	router.GET("/healthz", s.handleHealth)
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
