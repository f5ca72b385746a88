package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"productreview/mobile-client/internal/app/mobile/entity"
	"productreview/mobile-client/internal/app/mobile/infrastructure"
	"productreview/pkg/logger"
)

// NotificationCenter - локальный центр уведомлений. Начальное
// наполнение поставляет вызывающий (demo seed - его забота, не наша),
// падения цены подтягиваются из серверного фида. Обратно на сервер
// ничего не синхронизируется.
type NotificationCenter struct {
	client infrastructure.BackendClient

	notifications []entity.Notification
	seenDrops     map[string]struct{}
}

func NewNotificationCenter(client infrastructure.BackendClient, seed []entity.Notification) *NotificationCenter {
	c := &NotificationCenter{
		client:        client,
		notifications: make([]entity.Notification, len(seed)),
		seenDrops:     make(map[string]struct{}),
	}
	copy(c.notifications, seed)
	c.sortNewestFirst()
	return c
}

// Add добавляет уведомление, присваивая id при его отсутствии
func (c *NotificationCenter) Add(n entity.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	c.notifications = append(c.notifications, n)
	c.sortNewestFirst()
}

// Notifications возвращает копию списка, новые сверху
func (c *NotificationCenter) Notifications() []entity.Notification {
	out := make([]entity.Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

func (c *NotificationCenter) UnreadCount() int {
	count := 0
	for _, n := range c.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (c *NotificationCenter) MarkAsRead(id string) {
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications[i].IsRead = true
			return
		}
	}
}

func (c *NotificationCenter) MarkAllAsRead() {
	for i := range c.notifications {
		c.notifications[i].IsRead = true
	}
}

// Clear удаляет одно уведомление
func (c *NotificationCenter) Clear(id string) {
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications = append(c.notifications[:i], c.notifications[i+1:]...)
			return
		}
	}
}

func (c *NotificationCenter) ClearAll() {
	c.notifications = nil
}

// RefreshPriceDrops подтягивает фид падений цены и добавляет
// уведомление на каждое еще не виденное падение. Фоновое обновление:
// отказ логируется и не блокирует экран.
func (c *NotificationCenter) RefreshPriceDrops(ctx context.Context) {
	drops, err := c.client.FetchPriceDrops(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to refresh price drops")
		return
	}

	for _, d := range drops {
		key := fmt.Sprintf("%d@%d", d.ProductID, d.ChangedAt.UnixNano())
		if _, seen := c.seenDrops[key]; seen {
			continue
		}
		c.seenDrops[key] = struct{}{}

		productID := d.ProductID
		productName := d.ProductName
		c.Add(entity.Notification{
			Type:  entity.NotificationPriceDrop,
			Title: "Price Drop Alert",
			Body: fmt.Sprintf("%s dropped from $%.2f to $%.2f (%.0f%%)",
				d.ProductName, d.OldPrice, d.NewPrice, d.ChangePercent),
			Timestamp:   d.ChangedAt,
			ProductID:   &productID,
			ProductName: &productName,
		})
	}
}

func (c *NotificationCenter) sortNewestFirst() {
	sort.SliceStable(c.notifications, func(i, j int) bool {
		return c.notifications[i].Timestamp.After(c.notifications[j].Timestamp)
	})
}
