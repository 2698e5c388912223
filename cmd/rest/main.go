package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"portfolio-cms-be/internal/bootstrap"
	"portfolio-cms-be/internal/config"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/server"
	"portfolio-cms-be/internal/tracer"
	"portfolio-cms-be/pkg/database"
	"portfolio-cms-be/pkg/events"

	"gorm.io/gorm"
)

const logModule = "MAIN"

// NATS durable names may not contain these.
var durableSafe = strings.NewReplacer(".", "-", " ", "-", "*", "-", ">", "-")

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.Tracing, sysLogger)
	defer shutdownTracer(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Database (optional)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	// 5. Start Background Services
	if err := container.InvalidationService.Consume(ctx); err != nil {
		sysLogger.Error(logModule, "invalidation consumer failed to start", map[string]interface{}{"error": err.Error()})
	}
	if container.NatsSubscriber != nil {
		// One durable per instance so every instance sees every bulk run.
		durable := "content-invalidation-" + durableSafe.Replace(cfg.App.InstanceId)
		if err := container.NatsSubscriber.Subscribe(ctx, events.TypeContentBulkUpdated, durable, container.InvalidationService.HandleEvent); err != nil {
			sysLogger.Error(logModule, "nats subscription failed", map[string]interface{}{"error": err.Error()})
		}
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(10 * time.Second); err != nil {
			sysLogger.Error(logModule, "shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	if err := srv.Run(); err != nil {
		sysLogger.Error(logModule, "server stopped", map[string]interface{}{"error": err.Error()})
	}
}
