package util

import (
	"context"
)

// SummaryCache интерфейс кэша AI-резюме
// Используется для dependency injection и упрощения тестирования
type SummaryCache interface {
	GetSummary(ctx context.Context, productID int64) (string, error)
	SetSummary(ctx context.Context, productID int64, summary string) error
	InvalidateSummary(ctx context.Context, productID int64) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
