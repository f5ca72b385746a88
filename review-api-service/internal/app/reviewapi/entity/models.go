package entity

import (
	"time"
)

// Product представляет товар каталога в PostgreSQL.
// AverageRating и ReviewCount - денормализованные агрегаты, сервер
// пересчитывает их при каждом новом отзыве.
type Product struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" gorm:"not null;index"`
	Description   string    `json:"description"`
	Category      string    `json:"category" gorm:"index"`
	Price         float64   `json:"price" gorm:"not null"`
	ImageURL      *string   `json:"imageUrl,omitempty"`
	AverageRating float64   `json:"averageRating" gorm:"default:0"`
	ReviewCount   int       `json:"reviewCount" gorm:"default:0"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// PriceHistory представляет одну смену цены товара
type PriceHistory struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID int64     `json:"productId" gorm:"not null;index"`
	OldPrice  float64   `json:"oldPrice" gorm:"not null"`
	NewPrice  float64   `json:"newPrice" gorm:"not null"`
	ChangedAt time.Time `json:"changedAt" gorm:"not null;index"`
}

// Review представляет отзыв в MongoDB. ID - целочисленный, выдается
// из счетчика в коллекции counters, а не ObjectID: клиенты работают
// с числовыми id.
type Review struct {
	ID           int64     `json:"id" bson:"_id"`
	ProductID    int64     `json:"productId" bson:"product_id"`
	ReviewerName string    `json:"reviewerName" bson:"reviewer_name"`
	Rating       int       `json:"rating" bson:"rating"` // Оценка от 1 до 5
	Comment      string    `json:"comment" bson:"comment"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	HelpfulCount int       `json:"helpfulCount" bson:"helpful_count"`
}

// Page представляет страницу пагинированной выдачи.
// Форма полей каноническая для всех клиентов: number/size/first/last.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage собирает страницу из выборки и общего количества
func NewPage[T any](content []T, total int64, number, size int) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        number,
		Size:          size,
		First:         number == 0,
		Last:          number >= totalPages-1,
	}
}

// ReviewEvent представляет событие создания отзыва для Kafka
type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED
	ReviewID  int64     `json:"review_id"`
	ProductID int64     `json:"product_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceDropEvent представляет событие падения цены для Kafka
type PriceDropEvent struct {
	EventType string    `json:"event_type"` // PRICE_DROP
	ProductID int64     `json:"product_id"`
	OldPrice  float64   `json:"old_price"`
	NewPrice  float64   `json:"new_price"`
	Timestamp time.Time `json:"timestamp"`
}
