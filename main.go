package main

import (
	"go.uber.org/zap"

	"github.com/cppla/aiblog/cache"
	"github.com/cppla/aiblog/config"
	"github.com/cppla/aiblog/routes"
	"github.com/cppla/aiblog/timeline"
	"github.com/cppla/aiblog/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase()

	// A broken cache backend only disables caching; the timeline then always recomputes
	store, err := cache.Open(cfg.CacheBackend, utils.GetRedis())
	if err != nil {
		utils.Logger.Warn("timeline cache disabled", zap.String("backend", cfg.CacheBackend), zap.Error(err))
		store = nil
	}
	if ms, ok := store.(*cache.MemoryStore); ok {
		defer ms.Close()
	}
	tl := timeline.New(store, cfg.CacheTTL(), utils.Logger.Named("timeline"))

	r := routes.SetupRouter(db, tl)

	utils.Sugar.Infof("Starting server on port %s (graceful), page size %d, cache %s ttl %s",
		cfg.AppPort, cfg.PageSize, cfg.CacheBackend, cfg.CacheTTL())
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
