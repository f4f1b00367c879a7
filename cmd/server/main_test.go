package main

import (
	"context"
	"testing"

	"github.com/iliyamo/matchday-tickets/internal/config"
)

func TestOpenUserStore(t *testing.T) {
	t.Parallel()

	t.Run("memory by default", func(t *testing.T) {
		store, db, err := openUserStore(config.Config{StoreDriver: config.StoreMemory}, nil)
		if err != nil || db != nil || store == nil {
			t.Fatalf("expected an in-memory store, got %v %v %v", store, db, err)
		}
		ctx := context.Background()
		if err := store.Set(ctx, "k", []byte("v")); err != nil {
			t.Fatalf("set: %v", err)
		}
	})

	t.Run("redis without a client", func(t *testing.T) {
		store, db, err := openUserStore(config.Config{StoreDriver: config.StoreRedis}, nil)
		if err == nil || store != nil || db != nil {
			t.Fatalf("expected an error without redis, got %v %v %v", store, db, err)
		}
	})
}
