package main

import (
	"context"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/auth"
	"resume-builder/internal/cache"
	"resume-builder/internal/config"
	"resume-builder/internal/export"
	"resume-builder/internal/logger"
	infra "resume-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	pool, err := infra.NewResumePool(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("connect to resumes DB")
	}
	defer pool.Close()

	var ownerCache cache.Cache
	if cfg.Store.RedisAddr != "" {
		rc := cache.NewRedis(cfg.Store.RedisAddr)
		if err := rc.Ping(ctx); err != nil {
			log.WithError(err).Fatal("connect to redis")
		}
		ownerCache = rc
	} else {
		log.Info("REDIS_ADDR not set, using in-process ownership cache")
		ownerCache = cache.NewMemory()
	}

	store := repo.NewResumeRepo(pool, ownerCache, cfg.Store.OwnerTTL, log)
	renderer := infra.NewChromedpRenderer(cfg.Export.ChromePath)
	exporter := export.NewExporter(renderer)
	identity := auth.NewJWTIdentity(cfg.Auth.JWTSecret)

	app := fiber.New(fiber.Config{AppName: "resume-builder"})
	h := httpadapter.NewHandler(store, exporter, log)
	httpadapter.RegisterRoutes(app, h, identity, log)

	log.WithField("port", cfg.Server.Port).Info("server listening")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
