package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"productreview/review-api-service/internal/app/reviewapi/entity"
	"productreview/review-api-service/internal/app/reviewapi/service"
)

type AIHandler struct {
	summaries service.SummaryServiceInterface
}

func NewAIHandler(summaries service.SummaryServiceInterface) *AIHandler {
	return &AIHandler{summaries: summaries}
}

// Chat обрабатывает POST /api/ai/chat
func (h *AIHandler) Chat(c *gin.Context) {
	var req entity.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	answer, err := h.summaries.Chat(c.Request.Context(), req.Question, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to answer"})
		return
	}

	c.JSON(http.StatusOK, entity.ChatResponse{Answer: answer})
}

// ChatAboutProduct обрабатывает POST /api/ai/chat/product/:productId
func (h *AIHandler) ChatAboutProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	answer, err := h.summaries.Chat(c.Request.Context(), req.Question, &productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to answer"})
		return
	}

	c.JSON(http.StatusOK, entity.ChatResponse{Answer: answer})
}

// Compare обрабатывает POST /api/ai/compare
func (h *AIHandler) Compare(c *gin.Context) {
	var req entity.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least 2 product ids are required"})
		return
	}

	resp, err := h.summaries.CompareWithAnalysis(c.Request.Context(), req.ProductIDs)
	if err != nil {
		if errors.Is(err, service.ErrTooFewProducts) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least 2 product ids are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compare products"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
