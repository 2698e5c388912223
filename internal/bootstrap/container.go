package bootstrap

import (
	"context"
	"path/filepath"
	"time"

	"portfolio-cms-be/internal/config"
	"portfolio-cms-be/internal/controller"
	"portfolio-cms-be/internal/entity"
	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/cache"
	"portfolio-cms-be/internal/repository/memory"
	"portfolio-cms-be/internal/repository/unitofwork"
	"portfolio-cms-be/internal/seed"
	"portfolio-cms-be/internal/service"
	"portfolio-cms-be/pkg/bulk"
	pktNats "portfolio-cms-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const logModule = "BOOTSTRAP"

type Container struct {
	// Controllers
	AdminListController controller.IAdminListController
	DiscoveryController controller.IDiscoveryController

	// Background Services (Exposed for main.go to run)
	InvalidationService service.IInvalidationService
	NatsSubscriber      *pktNats.Subscriber

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every dependency. A nil db runs the service on the
// seeded in-memory catalog.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Storage
	pages, err := cache.New(ctx, cfg.Cache.Driver, cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err != nil {
		return nil, err
	}

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db, pages, sysLogger)
	} else {
		catalog := seed.Sample(time.Now().UTC())
		sysLogger.Warn(logModule, "no database configured, serving the in-memory sample catalog", map[string]interface{}{
			"records": catalog.Count(),
		})
		uowFactory = unitofwork.NewStaticRepositoryFactory(
			memory.NewContentRepository(entity.ContentKindPost, catalog.Posts...),
			memory.NewContentRepository(entity.ContentKindInsight, catalog.Insights...),
			memory.NewContentRepository(entity.ContentKindSeries, catalog.Series...),
			memory.NewContentRepository(entity.ContentKindPhoto, catalog.Photos...),
			pages,
			sysLogger,
		)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// NATS is optional: without it invalidation stays local to this instance.
	var bus service.EventBus
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn(logModule, "failed to connect NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			bus = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn(logModule, "failed to connect NATS subscriber", map[string]interface{}{"error": err.Error()})
		} else {
			c.NatsSubscriber = natsSub
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 3. Services
	bulkLogger := logger.NewIsolatedLogger(filepath.Join(filepath.Dir(cfg.App.LogFilePath), "bulk.log"))
	coordinator := bulk.NewCoordinator(bulk.Config{
		Concurrency: cfg.Query.BulkConcurrency,
		Logger:      bulkLogger,
	})

	lang := entity.ParseLang(cfg.Query.DefaultLang)
	publisherService := service.NewPublisherService(pubSub, bus, sysLogger)
	adminListService := service.NewAdminListService(uowFactory, coordinator, publisherService, service.AdminListConfig{
		PageSize:    cfg.Query.AdminPageSize,
		DefaultLang: lang,
		SessionTTL:  cfg.Query.SessionTTL,
	}, sysLogger)
	discoveryService := service.NewDiscoveryService(uowFactory, service.DiscoveryConfig{
		PageSize:    cfg.Query.PublicPageSize,
		Debounce:    cfg.Query.SearchDebounce,
		DefaultLang: lang,
		SessionTTL:  cfg.Query.SessionTTL,
	}, sysLogger)
	c.InvalidationService = service.NewInvalidationService(pubSub, pages, discoveryService, sysLogger)

	// 4. Controllers
	c.AdminListController = controller.NewAdminListController(adminListService)
	c.DiscoveryController = controller.NewDiscoveryController(discoveryService)

	return c, nil
}

// Close releases bus connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
