package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"productreview/review-api-service/internal/app/reviewapi/entity"
	"productreview/review-api-service/internal/app/reviewapi/service"
)

type PriceAlertHandler struct {
	alerts service.PriceAlertServiceInterface
}

func NewPriceAlertHandler(alerts service.PriceAlertServiceInterface) *PriceAlertHandler {
	return &PriceAlertHandler{alerts: alerts}
}

// RecentDrops обрабатывает GET /api/price-alerts/drops
func (h *PriceAlertHandler) RecentDrops(c *gin.Context) {
	drops, err := h.alerts.RecentDrops(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get price drops"})
		return
	}

	c.JSON(http.StatusOK, drops)
}

// UpdatePrice обрабатывает PUT /api/products/:id/price
func (h *PriceAlertHandler) UpdatePrice(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
		return
	}

	product, err := h.alerts.ChangePrice(c.Request.Context(), productID, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update price"})
		return
	}

	c.JSON(http.StatusOK, product)
}
