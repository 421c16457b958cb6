package handlers

import (
	"context"
	"net/http"

	"paymentrelay/internal/domain/callback"

	"github.com/gin-gonic/gin"
)

// StatusReader reads the last-known status snapshot for a payment.
type StatusReader interface {
	GetStatus(ctx context.Context, paymentID string) (*callback.StatusSnapshot, error)
}

// PaymentHandler serves the polling endpoint backed by the status cache.
type PaymentHandler struct {
	statuses StatusReader
}

func NewPaymentHandler(statuses StatusReader) PaymentHandler {
	return PaymentHandler{statuses: statuses}
}

// GetStatus answers from the cache only. A miss means the status expired or
// was never written; clients fall back to the order endpoint.
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	paymentID := c.Param("payment_id")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing payment_id"})
		return
	}

	snapshot, err := h.statuses.GetStatus(c.Request.Context(), paymentID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "status cache unavailable"})
		return
	}
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "no cached status for payment"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
