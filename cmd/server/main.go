package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/matchday-tickets/internal/catalog"
	"github.com/iliyamo/matchday-tickets/internal/config"
	"github.com/iliyamo/matchday-tickets/internal/database"
	"github.com/iliyamo/matchday-tickets/internal/handler"
	"github.com/iliyamo/matchday-tickets/internal/kv"
	"github.com/iliyamo/matchday-tickets/internal/queue"
	"github.com/iliyamo/matchday-tickets/internal/router"
	"github.com/iliyamo/matchday-tickets/internal/service"
	"github.com/iliyamo/matchday-tickets/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// run owns every resource main opens, so its deferred closes run before
// main exits with a failure status.
func run() error {
	cfg := config.Load()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: caching and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	users, db, err := openUserStore(cfg, rdb)
	if err != nil {
		return fmt.Errorf("user store (%s): %w", cfg.StoreDriver, err)
	}
	if db != nil {
		defer db.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var bookingOpts []handler.BookingOption
	if cfg.EventsEnabled {
		bookingOpts = append(bookingOpts, handler.WithNotifier(service.NewBookingPublisher(cfg.RabbitURL)))
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.RabbitURL, cfg.LogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking-consumer: stopped: %v", err)
			}
		}()
	}

	e := router.New(cfg, router.Deps{
		Users:       users,
		Events:      catalog.NewEvents(catalog.MockEvents()),
		Layouts:     catalog.NewLayouts(catalog.DefaultSections()),
		Menu:        catalog.NewMenu(catalog.MockMenu()),
		Sessions:    session.NewRegistry(),
		Redis:       rdb,
		Cache:       config.LoadCacheConfig(),
		RateLimit:   config.LoadRateLimitConfig(),
		BookingOpts: bookingOpts,
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)

	srvErr := make(chan error, 1)
	go func() { srvErr <- e.Start(addr) }()

	var runErr error
	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
	return runErr
}

// openUserStore picks the backend of the per-device user record.  The
// returned *sql.DB is non-nil only for the mysql driver.
func openUserStore(cfg config.Config, rdb *redis.Client) (kv.Store, *sql.DB, error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		if rdb == nil {
			return nil, nil, errors.New("STORE_DRIVER=redis but redis is unavailable")
		}
		return kv.WithPrefix(kv.NewRedis(rdb), "users:"), nil, nil
	case config.StoreMySQL:
		db, err := database.Open(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		store := kv.NewMySQL(db)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, db, nil
	}
	return kv.NewMemory(), nil, nil
}
