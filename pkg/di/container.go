package di

import (
	"fmt"

	convrepo "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/repository"
	convservice "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/service"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/cache"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/config"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/logger"
	qarepo "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/qa/repository"
	qaservice "github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/qa/service"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	Warehouse           *convrepo.WarehouseRepository
	Logger              *logger.Logger
	Remote              *cache.Remote
	ConversationService *convservice.ConversationService
	AssessmentService   *qaservice.AssessmentService
}

// New creates a new dependency injection container
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger) (*Container, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if log == nil {
		log = logger.New(logger.Config{Level: cfg.Logging.Level, JSON: cfg.Logging.Format == "json"})
	}

	warehouseRepo := convrepo.NewWarehouseRepository(db)
	counts := cache.New(cfg.Cache.CountTTL, cfg.Cache.PurgeWindow, cfg.Cache.MaxSize)

	// The remote cache is optional; when Redis is not configured the filter
	// catalog is simply rebuilt per request.
	var remote *cache.Remote
	var remoteCache convservice.RemoteCache
	if cfg.Redis.Enabled {
		remote = cache.NewRemote(cfg.Redis.Addr, cfg.Redis.DB)
		remoteCache = remote
	}

	conversationService := convservice.NewConversationService(warehouseRepo, counts, remoteCache, convservice.Options{
		CountTTL:  cfg.Cache.CountTTL,
		FilterTTL: cfg.Cache.FilterTTL,
	})

	assessmentService := qaservice.NewAssessmentService(qarepo.NewMemoryStore())

	return &Container{
		Warehouse:           warehouseRepo,
		Logger:              log,
		Remote:              remote,
		ConversationService: conversationService,
		AssessmentService:   assessmentService,
	}, nil
}

// Close releases the container's external connections
func (c *Container) Close() error {
	if c.Remote != nil {
		if err := c.Remote.Close(); err != nil {
			return err
		}
	}
	if c.Warehouse != nil {
		return c.Warehouse.Close()
	}
	return nil
}
