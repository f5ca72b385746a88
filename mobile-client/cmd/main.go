package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"productreview/mobile-client/internal/app/mobile/config"
	"productreview/mobile-client/internal/app/mobile/entity"
	clienthttp "productreview/mobile-client/internal/app/mobile/infrastructure/http"
	"productreview/mobile-client/internal/app/mobile/service"
	"productreview/pkg/logger"
)

// Демонстрационный консольный обвес вокруг ядра: проходит типичную
// сессию (список, пагинация, карточка, отзывы, сравнение) и оставляет
// фоновый опрос падений цены до SIGINT/SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("mobile-client", cfg.LogLevel)
	logger.Info().Str("base_url", cfg.API.BaseURL).Msg("starting mobile client demo")

	ctx := context.Background()
	client := clienthttp.NewAPIClient(cfg.API.BaseURL, cfg.API.TimeoutSec)

	// === СПИСОК ТОВАРОВ ===
	list := service.NewProductListService(client, cfg.PageSize)
	list.LoadCategories(ctx)
	list.Load(ctx)
	if errMsg := list.Fetcher().LastError(); errMsg != "" {
		logger.Error().Str("error", errMsg).Msg("product list failed to load")
		os.Exit(1)
	}
	fmt.Printf("Categories: %v\n", list.Categories())
	fmt.Printf("Loaded %d products (hasMore=%v)\n", len(list.Fetcher().Items()), list.Fetcher().HasMore())

	for list.Fetcher().HasMore() && len(list.Fetcher().Items()) < 3*cfg.PageSize {
		list.LoadMore(ctx)
	}
	products := list.Fetcher().Items()
	fmt.Printf("After pagination: %d products\n", len(products))

	// === КАРТОЧКА ТОВАРА И ОТЗЫВЫ ===
	if len(products) > 0 {
		detail := service.NewProductDetailService(client, products[0].ID, cfg.PageSize)
		if err := detail.Load(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to load product detail")
		} else {
			p := detail.Product()
			fmt.Printf("\n%s - %.1f★ (%d reviews)\n", p.Name, p.AverageRating, p.ReviewCount)

			analyzer := service.NewReviewAnalyzer(p.Name)
			reviews := detail.Reviews().Items()
			fmt.Println(analyzer.Answer("What is the overall sentiment?", reviews))
			fmt.Println(analyzer.Answer("How many reviews are there?", reviews))
		}
	}

	// === СРАВНЕНИЕ ===
	if len(products) >= 2 {
		list.Selection.EnterSelectionMode()
		list.Selection.Toggle(products[0].ID)
		list.Selection.Toggle(products[1].ID)
		result, err := list.Compare(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("comparison failed")
		} else {
			fmt.Printf("\nComparing %d products:\n%s\n", len(result.Products), result.Analysis)
		}
	}

	// === ФОНОВЫЙ ОПРОС ПАДЕНИЙ ЦЕНЫ ===
	notifications := service.NewNotificationCenter(client, []entity.Notification{})
	notifications.RefreshPriceDrops(ctx)
	fmt.Printf("\nUnread notifications: %d\n", notifications.UnreadCount())

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.PollSchedule, func() {
		notifications.RefreshPriceDrops(context.Background())
		logger.Info().Int("unread", notifications.UnreadCount()).Msg("price drop feed refreshed")
	}); err != nil {
		logger.Fatal().Err(err).Msg("failed to schedule price drop polling")
	}
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	scheduler.Stop()
}
