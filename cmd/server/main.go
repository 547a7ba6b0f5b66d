package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"scooter-rental/internal/config"
	"scooter-rental/internal/controllers"
	"scooter-rental/internal/db"
	"scooter-rental/internal/logger"
	"scooter-rental/internal/middleware"
	"scooter-rental/internal/redis"
	"scooter-rental/internal/repository"
	"scooter-rental/internal/repository/memory"
	"scooter-rental/internal/services"
	"scooter-rental/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	l := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err := run(cfg, l); err != nil {
		l.WithError(err).Fatal("server stopped")
	}
}

type stores struct {
	accounts repository.AccountRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	ping     controllers.Check
	close    func() error
}

func openStores(cfg *config.Config, l *log.Logger) (*stores, error) {
	if cfg.DBDriver == config.DriverMemory {
		l.Warn("using in-memory store, data is lost on restart")
		m := memory.New()
		return &stores{
			accounts: m.Accounts(),
			products: m.Products(),
			orders:   m.Orders(),
			ping:     func(context.Context) error { return nil },
			close:    func() error { return nil },
		}, nil
	}

	gdb, err := db.Open(cfg.DatabaseDSN, cfg.DBMaxOpenConns, l)
	if err != nil {
		return nil, err
	}
	policy := repository.Policy{
		Timeout:    cfg.StoreTimeout,
		MaxRetries: cfg.StoreMaxRetries,
		RetryBase:  cfg.StoreRetryBase,
	}
	return &stores{
		accounts: repository.NewAccounts(gdb, policy),
		products: repository.NewProducts(gdb, policy),
		orders:   repository.NewOrders(gdb, policy),
		ping:     func(ctx context.Context) error { return db.Ping(ctx, gdb) },
		close:    func() error { return db.Close(gdb) },
	}, nil
}

func run(cfg *config.Config, l *log.Logger) error {
	st, err := openStores(cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			l.WithError(err).Warn("closing store")
		}
	}()

	rdb, err := redis.New(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return err
	}
	defer rdb.Close()

	var mailer services.Mailer
	if smtp := utils.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromEmail); smtp.Configured() {
		mailer = smtp
	} else {
		l.Warn("SMTP not configured, verification codes are only logged")
	}

	// account cut-offs must outlive every token they can invalidate
	cutoffTTL := cfg.TokenTTL
	if cutoffTTL > 0 {
		cutoffTTL += time.Minute
	}
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, redis.NewRevocationList(rdb, cutoffTTL))
	accounts := services.NewAccountService(
		st.accounts, tokens,
		redis.NewAttemptCounter(rdb, cfg.CodeAttemptWindow),
		mailer, l,
		services.AccountOptions{CodeTTL: cfg.CodeTTL, MaxAttempts: cfg.CodeMaxAttempts},
	)
	orders := services.NewOrderService(st.accounts, st.products, st.orders, l)
	products := services.NewProductService(st.products, cfg.SortNearby)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 5*time.Minute)
	jobs := cron.New()
	if _, err := jobs.AddJob("@every 1m", limiter); err != nil {
		return fmt.Errorf("schedule limiter sweep: %w", err)
	}
	jobs.Start()
	defer jobs.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(l))
	controllers.Register(r, controllers.Handlers{
		Accounts: controllers.NewAccountController(accounts, l),
		Orders:   controllers.NewOrderController(orders, l),
		Products: controllers.NewProductController(products, l),
		Health: controllers.NewHealthController(map[string]controllers.Check{
			"store": st.ping,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}, l),
		Tokens:  tokens,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		l.WithField("port", cfg.Port).Info("web server start")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	l.Info("shutting down web server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	l.Info("web server was shut down")
	return nil
}
