package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"petshop-be/internal/auth"
	"petshop-be/internal/cart"
	"petshop-be/internal/config"
	"petshop-be/internal/db"
	"petshop-be/internal/graph"
	"petshop-be/internal/logger"
	"petshop-be/internal/metrics"
	"petshop-be/internal/middleware"
	"petshop-be/internal/notification"
	"petshop-be/internal/order"
	"petshop-be/internal/product"
	"petshop-be/internal/store/memory"
	"petshop-be/internal/telemetry"
	"petshop-be/internal/transport"
	"petshop-be/internal/user"

	"github.com/99designs/gqlgen/graphql/playground"
	"go.uber.org/zap"
)

const (
	serviceName     = "petshop-be"
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
	catalogCacheTTL = 30 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:  serviceName,
		Exporter:     cfg.TraceExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.L().Warn("failed to flush traces", zap.Error(err))
		}
	}()

	var database *sql.DB
	if !cfg.DemoMode {
		database = initDBFunc(cfg)
		defer database.Close()
	}

	handler, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}

	logger.L().Info("server starting",
		zap.String("port", cfg.AppPort),
		zap.Bool("demo_mode", cfg.DemoMode),
		zap.String("stock_policy", cfg.StockPolicy),
	)
	return startServerFunc(ctx, ":"+cfg.AppPort, handler)
}

// repositories groups the storage the API runs on, postgres or the demo store.
type repositories struct {
	products product.Repository
	carts    cart.Repository
	orders   order.Repository
	users    user.Repository
}

func newRepositories(ctx context.Context, cfg *config.Config, database *sql.DB) (repositories, error) {
	if database != nil {
		return repositories{
			products: catalogRepository(ctx, cfg, product.NewRepository(database)),
			carts:    cart.NewRepository(database),
			orders:   order.NewRepository(database),
			users:    user.NewRepository(database),
		}, nil
	}

	store := memory.NewDemoStore()
	if cfg.DemoAdminEmail != "" && cfg.DemoAdminPassword != "" {
		if err := store.SeedAdmin(ctx, cfg.DemoAdminEmail, cfg.DemoAdminPassword); err != nil {
			return repositories{}, fmt.Errorf("seed demo admin: %w", err)
		}
	}
	logger.L().Warn("running on the in-memory demo store, data is lost on restart")

	return repositories{
		products: store.Products(),
		carts:    store.Carts(),
		orders:   store.Orders(),
		users:    store.Users(),
	}, nil
}

// catalogRepository puts the redis cache in front of repo when REDIS_URL is
// set and reachable.
func catalogRepository(ctx context.Context, cfg *config.Config, repo product.Repository) product.Repository {
	if cfg.RedisURL == "" {
		return repo
	}
	client, err := product.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.L().Warn("catalog cache disabled", zap.Error(err))
		return repo
	}
	context.AfterFunc(ctx, func() { client.Close() })
	return product.NewCachedRepository(repo, client, catalogCacheTTL)
}

// newServer wires the API. A nil database selects the in-memory demo store.
// The rate limiter's cleanup loop runs until ctx is done.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, error) {
	loc, err := time.LoadLocation(cfg.ShopTimezone)
	if err != nil {
		return nil, fmt.Errorf("load SHOP_TIMEZONE %q: %w", cfg.ShopTimezone, err)
	}

	repos, err := newRepositories(ctx, cfg, database)
	if err != nil {
		return nil, err
	}

	rec := metrics.New()
	issuer := auth.NewIssuer(cfg.JWTSecret, tokenTTL)

	shop := notification.ShopInfo{
		Name:     cfg.ShopName,
		Phone:    cfg.ShopPhone,
		Email:    cfg.ShopEmail,
		Location: loc,
	}
	channels := []notification.Channel{notification.NewWhatsAppChannel(shop)}
	if cfg.EmailEnabled() {
		channels = append(channels, notification.NewEmailChannel(notification.EmailConfig{
			APIURL:     cfg.EmailAPIURL,
			ServiceID:  cfg.EmailServiceID,
			TemplateID: cfg.EmailTemplateID,
			PublicKey:  cfg.EmailPublicKey,
			PrivateKey: cfg.EmailPrivateKey,
		}))
	} else {
		logger.L().Info("email notifications disabled, EMAIL_SERVICE_ID, EMAIL_TEMPLATE_ID and EMAIL_PUBLIC_KEY are required")
	}

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx)

	srv := graph.NewServer(&graph.Resolver{
		ProductSvc: product.NewService(repos.products),
		Catalog:    repos.products,
		Carts:      repos.carts,
		Workflow: order.NewWorkflow(repos.orders, repos.products, repos.carts,
			order.WithStockPolicy(order.StockPolicy(cfg.StockPolicy)),
			order.WithLocation(loc),
			order.WithMetrics(rec),
		),
		OrderSvc:     order.NewService(repos.orders),
		Notifier:     notification.NewDispatcher(shop, rec, channels...),
		UserSvc:      user.NewService(repos.users, issuer),
		Limiter:      limiter,
		Location:     loc,
		EnforceStock: cfg.CartEnforceStock,
	})

	mux := http.NewServeMux()
	mux.Handle("/query", middleware.Chain(srv,
		middleware.AuthMiddleware(issuer),
		limiter.Middleware,
		transport.Middleware,
	))
	if !cfg.IsProduction() {
		mux.Handle("GET /{$}", playground.Handler("GraphQL Playground", "/query"))
	}
	mux.Handle("GET /metrics", rec.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.Chain(mux,
		telemetry.Middleware(serviceName),
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
	), nil
}

func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
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

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
