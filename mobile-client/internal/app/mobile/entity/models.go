package entity

import (
	"time"
)

// Канонические модели клиента. Форма полей совпадает с wire-форматом
// Review API (Spring Data вариант: number/size/first/last), других
// вариантов именования клиент не поддерживает.

// Product представляет снимок товара на момент запроса.
// Клиент никогда не мутирует товар, только заменяет целиком.
type Product struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	Price           float64       `json:"price"`
	ImageURL        *string       `json:"imageUrl,omitempty"`
	AverageRating   float64       `json:"averageRating"`
	ReviewCount     int           `json:"reviewCount"`
	RatingBreakdown map[int]int64 `json:"ratingBreakdown,omitempty"` // звезда 1..5 -> количество, только в detail-ответе
	AISummary       *string       `json:"aiSummary,omitempty"`       // только в detail-ответе
}

// Review представляет отзыв о товаре
type Review struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"productId"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"` // Оценка от 1 до 5
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
	HelpfulCount int       `json:"helpfulCount"`
}

// Page представляет одну страницу сортированной коллекции.
// Конкатенация Content страниц 0..N воспроизводит полный результат
// для фильтра, действовавшего на момент запроса.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"` // индекс страницы, 0-based
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// PriceDrop представляет запись фида падений цены за последние 24 часа
type PriceDrop struct {
	ProductID     int64     `json:"productId"`
	ProductName   string    `json:"productName"`
	OldPrice      float64   `json:"oldPrice"`
	NewPrice      float64   `json:"newPrice"`
	ChangePercent float64   `json:"changePercent"`
	ChangedAt     time.Time `json:"changedAt"`
}

type NotificationType string

const (
	NotificationReview    NotificationType = "review"
	NotificationOrder     NotificationType = "order"
	NotificationSystem    NotificationType = "system"
	NotificationPriceDrop NotificationType = "price_drop"
)

// Notification - локальное уведомление. Создается на клиенте (demo seed
// или из фида падений цены) и никогда не синхронизируется с сервером.
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	Timestamp   time.Time        `json:"timestamp"`
	IsRead      bool             `json:"isRead"`
	ProductID   *int64           `json:"productId,omitempty"`
	ProductName *string          `json:"productName,omitempty"`
}
