package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/buchetul-simonei/order-service/internal/app"
	"github.com/buchetul-simonei/order-service/internal/config"
	"github.com/buchetul-simonei/order-service/internal/handler"
	"github.com/buchetul-simonei/order-service/internal/mongodb"
	"github.com/buchetul-simonei/order-service/internal/repo"
	"github.com/buchetul-simonei/order-service/internal/service"

	"github.com/joho/godotenv"
)

// @title           Flower Shop Order API
// @version         1.0
// @description     Order exports, invoices and CRUD for the flower shop storefront
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// A failed connection is tolerated: store-backed endpoints answer 503
	// until the backend is restarted with a reachable store.
	store, err := mongodb.Connect(ctx, conf.Mongo)
	if err != nil {
		logger.Warn("mongodb connection failed, serving without store", slog.Any("error", err))
	}
	if store.Connected() {
		logger.Info("mongodb connected")
		defer store.Close(context.Background())
	}

	ordersRepo := repo.NewOrdersRepo(store)
	orderService := service.NewOrderService(logger, ordersRepo)
	httpHandler := handler.NewHTTPHandler(logger, orderService)

	handler.RegisterMetrics()

	app := app.New(logger, conf)
	app.SetHTTPHandlers(httpHandler)

	app.Start(ctx)
	<-ctx.Done()
	app.Stop()
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
