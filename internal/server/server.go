// Package server boots the HTTP API: config, mongo, redis, storage, the
// payment gateway client, and the router with its middleware chain.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/totaltools/manufacturing-api/app/controllers"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/app/routes"
	"github.com/totaltools/manufacturing-api/app/services"
	"github.com/totaltools/manufacturing-api/config"
	"github.com/totaltools/manufacturing-api/pkg/cache"
	"github.com/totaltools/manufacturing-api/pkg/logger"
	"github.com/totaltools/manufacturing-api/pkg/metrics"
	"github.com/totaltools/manufacturing-api/pkg/middleware"
	"github.com/totaltools/manufacturing-api/pkg/payments"
	"github.com/totaltools/manufacturing-api/pkg/reqid"
	"github.com/totaltools/manufacturing-api/pkg/router"
	"github.com/totaltools/manufacturing-api/pkg/storage"
	"github.com/totaltools/manufacturing-api/pkg/store"
)

const shutdownGrace = 10 * time.Second

func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Connect(ctx, config.MongoURI(), config.MongoDB())
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("mongo close failed", "error", err)
		}
	}()

	if err := st.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Redis is optional: a dead cache degrades product listing to mongo
	// reads, it never takes the API down.
	redis, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}

	pictures, err := storage.FromConfig()
	if err != nil {
		return err
	}

	gateway := payments.NewClient(config.StripeSecret())

	users := repositories.NewUserRepository(st)
	products := repositories.NewProductRepository(st)
	orders := repositories.NewOrderRepository(st)
	reviews := repositories.NewReviewRepository(st)
	profiles := repositories.NewProfileRepository(st)
	contacts := repositories.NewContactRepository(st)

	authService := services.NewAuthService(users)
	orderService := services.NewOrderService(orders)
	paymentService := services.NewPaymentService(gateway)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	routes.RegisterAPI(r, routes.Deps{
		Users:    users,
		Products: controllers.NewProductController(products, redis, pictures),
		Orders:   controllers.NewOrderController(orders, orderService),
		Accounts: controllers.NewUserController(users, authService),
		Reviews:  controllers.NewReviewController(reviews),
		Profiles: controllers.NewProfileController(profiles),
		Contacts: controllers.NewContactController(contacts),
		Payments: controllers.NewPaymentController(paymentService),
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
