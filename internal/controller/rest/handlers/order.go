package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"paymentrelay/internal/domain/callback"
	"paymentrelay/internal/domain/order"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service *order.Service
}

func NewOrderHandler(service *order.Service) OrderHandler {
	return OrderHandler{service: service}
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order_id must be an integer"})
		return
	}

	res, err := h.service.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *OrderHandler) Filter(c *gin.Context) {
	query, err := parseOrdersQuery(c.Query("order_id"), c.Query("ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.GetOrders(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus applies an operator-driven status change, outside the
// callback flow.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order_id must be an integer"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "details": err.Error()})
		return
	}

	status, err := h.service.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		case errors.Is(err, callback.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "store unavailable"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "status": status})
}

// parseOrdersQuery accepts either a single order_id or a comma-separated
// ids list.
func parseOrdersQuery(rawOrderID, rawIDs string) (order.OrdersQuery, error) {
	var query order.OrdersQuery

	if rawOrderID != "" {
		id, err := strconv.ParseInt(rawOrderID, 10, 64)
		if err != nil {
			return order.OrdersQuery{}, errors.New("order_id must be an integer")
		}
		query.IDs = append(query.IDs, id)
		return query, nil
	}

	if rawIDs == "" {
		return query, nil
	}
	for _, raw := range strings.Split(rawIDs, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return order.OrdersQuery{}, errors.New("ids must be a comma-separated list of integers")
		}
		query.IDs = append(query.IDs, id)
	}
	return query, nil
}
