package service

import (
	"context"

	"productreview/mobile-client/internal/app/mobile/entity"
	"productreview/mobile-client/internal/app/mobile/infrastructure"
	"productreview/pkg/logger"
)

// PageFunc выполняет один удаленный вызов за страницей page размера size.
// Фильтр и сортировка замыкаются внутри функции вызывающим.
type PageFunc[T any] func(ctx context.Context, page, size int) (*entity.Page[T], error)

// PageFetcher - конечный автомат постраничной загрузки коллекции.
// Один логический актор: все методы вызываются из одного контекста
// исполнения (UI-цикл), защита от двойной загрузки - флаги
// isLoading/isLoadingMore, не мьютекс. Эпоха инкрементируется на каждом
// Reset; ответ с несовпадающей эпохой отбрасывается целиком, включая
// сброс флагов - их уже владеет новая эпоха.
type PageFetcher[T any] struct {
	fetch    PageFunc[T]
	pageSize int

	items         []T
	page          int
	hasMore       bool
	isLoading     bool
	isLoadingMore bool
	lastError     string
	epoch         uint64

	onChange func()
}

// NewPageFetcher создает фетчер поверх одного удаленного вызова
func NewPageFetcher[T any](fetch PageFunc[T], pageSize int) *PageFetcher[T] {
	return &PageFetcher[T]{
		fetch:    fetch,
		pageSize: pageSize,
		hasMore:  true,
	}
}

// SetOnChange регистрирует уведомление для слоя отрисовки.
// Вызывается после каждой мутации состояния.
func (f *PageFetcher[T]) SetOnChange(fn func()) {
	f.onChange = fn
}

// Reset сбрасывает накопленное состояние и загружает страницу 0.
// Обязателен при любом изменении фильтра или сортировки: продолжать
// пагинацию со старым хвостом после смены фильтра запрещено.
func (f *PageFetcher[T]) Reset(ctx context.Context) {
	f.items = nil
	f.page = 0
	f.hasMore = true
	f.lastError = ""
	// Флаги принадлежат новой эпохе: висящий вызов старой эпохи их
	// больше не тронет, поэтому сбрасываем здесь.
	f.isLoading = false
	f.isLoadingMore = false
	f.epoch++
	f.fetchPage(ctx, 0, false)
}

// LoadMore загружает следующую страницу, если есть что грузить
// и загрузка не идет. Нарушение предусловия - тихий no-op.
func (f *PageFetcher[T]) LoadMore(ctx context.Context) {
	f.fetchPage(ctx, f.page+1, true)
}

// Retry повторяет последний неуспешный запрос: первую страницу, если
// элементов еще нет, иначе следующую.
func (f *PageFetcher[T]) Retry(ctx context.Context) {
	if len(f.items) == 0 {
		f.fetchPage(ctx, 0, false)
		return
	}
	f.fetchPage(ctx, f.page+1, true)
}

func (f *PageFetcher[T]) fetchPage(ctx context.Context, page int, appendPage bool) {
	if f.isLoading || f.isLoadingMore {
		return
	}
	if appendPage && !f.hasMore {
		return
	}

	// Флаг выставляется синхронно до вызова, иначе повторный триггер
	// от скролла успевает проскочить охрану.
	if appendPage {
		f.isLoadingMore = true
	} else {
		f.isLoading = true
	}
	f.notify()

	epoch := f.epoch
	resp, err := f.fetch(ctx, page, f.pageSize)

	if epoch != f.epoch {
		// Устаревший ответ: состоянием владеет более свежая эпоха,
		// не трогаем ничего, включая флаги.
		logger.Debug().Uint64("stale_epoch", epoch).Uint64("current_epoch", f.epoch).Msg("dropping stale page response")
		return
	}

	if appendPage {
		f.isLoadingMore = false
	} else {
		f.isLoading = false
	}

	if err != nil {
		f.lastError = infrastructure.UserMessage(err)
		logger.Error().Err(err).Int("page", page).Msg("failed to fetch page")
		f.notify()
		return
	}

	f.lastError = ""
	if appendPage {
		f.items = append(f.items, resp.Content...)
	} else {
		f.items = resp.Content
	}
	f.hasMore = !resp.Last
	f.page = resp.Number
	f.notify()
}

// Prepend вставляет элемент в голову накопленной коллекции.
// Для оптимистичного показа только что созданной записи.
func (f *PageFetcher[T]) Prepend(item T) {
	f.items = append([]T{item}, f.items...)
	f.notify()
}

// Replace заменяет первый элемент, для которого pred истинен.
// Возвращает false, если такого элемента нет.
func (f *PageFetcher[T]) Replace(pred func(T) bool, item T) bool {
	for i := range f.items {
		if pred(f.items[i]) {
			f.items[i] = item
			f.notify()
			return true
		}
	}
	return false
}

// Items возвращает копию накопленной коллекции
func (f *PageFetcher[T]) Items() []T {
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out
}

func (f *PageFetcher[T]) Page() int           { return f.page }
func (f *PageFetcher[T]) HasMore() bool       { return f.hasMore }
func (f *PageFetcher[T]) IsLoading() bool     { return f.isLoading }
func (f *PageFetcher[T]) IsLoadingMore() bool { return f.isLoadingMore }
func (f *PageFetcher[T]) LastError() string   { return f.lastError }

func (f *PageFetcher[T]) notify() {
	if f.onChange != nil {
		f.onChange()
	}
}
