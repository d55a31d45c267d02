package paymentsession

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Seam for handler tests.
var newService = NewService

// GET /api/payment/session/:sessionId
//
// Resolution order: sweep a lapsed pending record, reject on the security
// predicates before any payment details are assembled, then enrich with
// form data. A rejected session never leaks customer PII in its error body.
func GetPaymentSession(c *gin.Context) {
	sessionID := c.Param("sessionId")
	svc := newService()

	res, err := svc.Resolve(sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		log.WithField("session_id", sessionID).WithError(err).Error("Session resolution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
		return
	}

	svc.Sweep(res)

	gate := svc.Evaluate(res)
	if gate.TooOld {
		c.JSON(http.StatusGone, gin.H{"error": "This session has expired. Please start a new checkout."})
		return
	}
	if gate.AlreadyUsed {
		c.JSON(http.StatusConflict, gin.H{"error": "This booking has already been scheduled"})
		return
	}

	fd := svc.AssembleFormData(res)
	c.JSON(http.StatusOK, buildView(res, gate, fd))
}

// POST /api/payment/session/:sessionId/refresh
//
// Same pipeline, lightweight echo. Runs the full resolver so a refresh
// issued before the webhook lands can still observe the paid state.
func RefreshPaymentSession(c *gin.Context) {
	sessionID := c.Param("sessionId")
	svc := newService()

	res, err := svc.Resolve(sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		log.WithField("session_id", sessionID).WithError(err).Error("Session refresh failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh session"})
		return
	}

	svc.Sweep(res)
	c.JSON(http.StatusOK, buildRefreshView(res))
}
