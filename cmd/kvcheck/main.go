package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"nex-terminal-be/internal/config"
	"nex-terminal-be/pkg/kvstore"

	"github.com/fatih/color"
)

// kvcheck round-trips every store primitive the orchestration layer uses.
// Run against the configured driver before pointing a deployment at it.
func main() {
	cfg := config.Load()

	fmt.Printf("Driver: %s\n", cfg.Store.Driver)

	store, err := kvstore.NewStore(cfg.Store.Driver, cfg.Store.RedisURL)
	if err != nil {
		fail("create store", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if redisStore, ok := store.(*kvstore.RedisStore); ok {
		checkStep("PING", redisStore.Ping(ctx))
	}

	key := "kvcheck:probe"

	checkStep("SET", store.Set(ctx, key, "probe", 30*time.Second))

	val, found, err := store.Get(ctx, key)
	checkStep("GET", err)
	if !found || val != "probe" {
		fail("GET", fmt.Errorf("expected %q, got %q (found=%v)", "probe", val, found))
	}

	count, err := store.Incr(ctx, key+":counter")
	checkStep("INCR", err)
	fmt.Printf("  counter = %d\n", count)
	checkStep("EXPIRE", store.Expire(ctx, key+":counter", 30*time.Second))

	listKey := key + ":list"
	checkStep("LPUSH", store.LPush(ctx, listKey, "a"))
	checkStep("LPUSH", store.LPush(ctx, listKey, "b"))
	checkStep("LTRIM", store.LTrim(ctx, listKey, 0, 9))

	items, err := store.LRange(ctx, listKey, 0, -1)
	checkStep("LRANGE", err)
	fmt.Printf("  list = %v\n", items)

	n, err := store.LLen(ctx, listKey)
	checkStep("LLEN", err)
	fmt.Printf("  llen = %d\n", n)

	checkStep("EXPIRE", store.Expire(ctx, listKey, 30*time.Second))

	color.Green("✅ all store primitives OK")
}

func checkStep(name string, err error) {
	if err != nil {
		fail(name, err)
	}
	color.Cyan("  %s ok", name)
}

func fail(step string, err error) {
	color.Red("❌ %s failed: %v", step, err)
	os.Exit(1)
}
