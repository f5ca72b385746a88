package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"productreview/review-api-service/internal/app/reviewapi/entity"
	"productreview/review-api-service/internal/app/reviewapi/service"
)

type ProductHandler struct {
	products service.ProductServiceInterface
}

func NewProductHandler(products service.ProductServiceInterface) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts обрабатывает GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	q := entity.ProductQuery{
		Page:     parseIntDefault(c.Query("page"), 0),
		Size:     parseIntDefault(c.Query("size"), 20),
		Sort:     c.Query("sort"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	q.MinPrice = parseFloatParam(c.Query("minPrice"))
	q.MaxPrice = parseFloatParam(c.Query("maxPrice"))
	q.MinRating = parseFloatParam(c.Query("minRating"))

	page, err := h.products.ListProducts(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetProduct обрабатывает GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetCategories обрабатывает GET /api/products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.products.GetCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CompareProducts обрабатывает GET /api/products/compare?ids=1,2,3
func (h *ProductHandler) CompareProducts(c *gin.Context) {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ids parameter"})
		return
	}

	products, err := h.products.CompareProducts(c.Request.Context(), ids)
	if err != nil {
		if errors.Is(err, service.ErrTooFewProducts) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least 2 product ids are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compare products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetReviews обрабатывает GET /api/products/:id/reviews
func (h *ProductHandler) GetReviews(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	page := parseIntDefault(c.Query("page"), 0)
	size := parseIntDefault(c.Query("size"), 10)

	var rating *int
	if raw := c.Query("rating"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		rating = &parsed
	}

	reviews, err := h.products.GetReviews(c.Request.Context(), productID, page, size, rating)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview обрабатывает POST /api/products/:id/reviews
func (h *ProductHandler) CreateReview(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	review, err := h.products.AddReview(c.Request.Context(), productID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// MarkReviewHelpful обрабатывает PUT /api/products/reviews/:reviewId/helpful
func (h *ProductHandler) MarkReviewHelpful(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	review, err := h.products.MarkReviewHelpful(c.Request.Context(), reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark review helpful"})
		return
	}

	c.JSON(http.StatusOK, review)
}
