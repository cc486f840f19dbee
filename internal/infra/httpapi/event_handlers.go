// internal/infra/httpapi/event_handlers.go
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"scan_review_notifier/internal/app"
	"scan_review_notifier/internal/domain/scan"
	idb "scan_review_notifier/internal/infra/database"
)

const (
	eventTypeCreated = "created"
	eventTypeUpdated = "updated"
)

// scanRequestDoc mirrors the record state carried inside a change event.
type scanRequestDoc struct {
	ID                    string `json:"id"`
	Status                string `json:"status"`
	UserID                string `json:"userId"`
	UserName              string `json:"userName"`
	ExpertName            string `json:"expertName"`
	ExpertsNotified       bool   `json:"expertsNotified"`
	UserNotifiedCompleted bool   `json:"userNotifiedCompleted"`
}

type changeEventRequest struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId"`
	Before    *scanRequestDoc `json:"before"`
	After     *scanRequestDoc `json:"after"`
}

func (d *scanRequestDoc) toRequest(requestID string) *scan.Request {
	id := d.ID
	if id == "" {
		id = requestID
	}
	return &scan.Request{
		ID:                    id,
		Status:                scan.Status(d.Status),
		UserID:                d.UserID,
		UserName:              d.UserName,
		ExpertName:            d.ExpertName,
		ExpertsNotified:       d.ExpertsNotified,
		UserNotifiedCompleted: d.UserNotifiedCompleted,
	}
}

// handleScanRequestEvent accepts one change notification per call. Deciding
// "no notification due" is still a handled event (204); only an outright
// failure of a mandatory step reports non-2xx so the source retries. The
// retry is safe: admission re-checks the persisted dedup flag.
func (s *Server) handleScanRequestEvent(c *gin.Context) {
	var req changeEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event body: " + err.Error()})
		return
	}
	if req.After == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event is missing the new record state"})
		return
	}
	if req.RequestID == "" && req.After.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event is missing the request id"})
		return
	}

	log := s.logger.WithFields(logrus.Fields{
		"activationId": uuid.NewString(),
		"eventType":    req.Type,
		"requestId":    req.RequestID,
	})
	log.Debug("Change event received.")

	ctx := c.Request.Context()
	var err error
	switch req.Type {
	case eventTypeCreated:
		err = s.notifier.HandleScanRequestCreated(ctx, req.After.toRequest(req.RequestID))
	case eventTypeUpdated:
		if req.Before == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "update event is missing the prior record state"})
			return
		}
		err = s.notifier.HandleScanRequestUpdated(ctx, req.Before.toRequest(req.RequestID), req.After.toRequest(req.RequestID))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type: " + req.Type})
		return
	}

	if err != nil {
		log.WithError(err).Error("Event handling failed.")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type registerDeviceRequest struct {
	FCMToken string `json:"fcmToken"`
}

func (s *Server) handleRegisterDevice(c *gin.Context) {
	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	err := s.accountService.RegisterDevice(c.Request.Context(), c.Param("id"), req.FCMToken)
	switch {
	case errors.Is(err, app.ErrTokenRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, idb.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}

type preferencesRequest struct {
	EnableNotifications *bool `json:"enableNotifications"`
}

func (s *Server) handleSetPreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if req.EnableNotifications == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enableNotifications is required"})
		return
	}

	err := s.accountService.SetNotificationPreference(c.Request.Context(), c.Param("id"), *req.EnableNotifications)
	switch {
	case errors.Is(err, idb.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}
