package entity

import "time"

// ProductQuery - параметры листинга товаров
type ProductQuery struct {
	Page      int
	Size      int
	Sort      string // формат "field,dir", белый список полей в репозитории
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}

// ProductDetail - карточка товара с агрегатами по отзывам
type ProductDetail struct {
	Product
	RatingBreakdown map[int]int64 `json:"ratingBreakdown"`
	AISummary       *string       `json:"aiSummary,omitempty"`
}

// CreateReviewRequest - тело POST /api/products/{id}/reviews
type CreateReviewRequest struct {
	ReviewerName string `json:"reviewerName" binding:"required,min=2,max=50"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"required,min=3,max=2000"`
}

// ChatRequest - тело POST /api/ai/chat/product/{productId}
type ChatRequest struct {
	Question string `json:"question" binding:"required,min=1,max=500"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

// CompareRequest - тело POST /api/ai/compare
type CompareRequest struct {
	ProductIDs []int64 `json:"productIds" binding:"required,min=2"`
}

type CompareResponse struct {
	Products []Product `json:"products"`
	Analysis string    `json:"analysis"`
}

// PriceDropResponse - запись фида GET /api/price-alerts/drops
type PriceDropResponse struct {
	ProductID     int64     `json:"productId"`
	ProductName   string    `json:"productName"`
	OldPrice      float64   `json:"oldPrice"`
	NewPrice      float64   `json:"newPrice"`
	ChangePercent float64   `json:"changePercent"`
	ChangedAt     time.Time `json:"changedAt"`
}

// UpdatePriceRequest - тело PUT /api/products/{id}/price
type UpdatePriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
