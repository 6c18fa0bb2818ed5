package di

import (
	"context"
	"fmt"

	"github.com/LiamPeng/NYU-CC-k8s/application/serviceimpl"
	"github.com/LiamPeng/NYU-CC-k8s/domain/ports"
	"github.com/LiamPeng/NYU-CC-k8s/domain/repositories"
	"github.com/LiamPeng/NYU-CC-k8s/domain/services"
	"github.com/LiamPeng/NYU-CC-k8s/infrastructure/memory"
	"github.com/LiamPeng/NYU-CC-k8s/infrastructure/messaging"
	"github.com/LiamPeng/NYU-CC-k8s/infrastructure/mongodb"
	natspkg "github.com/LiamPeng/NYU-CC-k8s/infrastructure/nats"
	"github.com/LiamPeng/NYU-CC-k8s/infrastructure/postgres"
	redispkg "github.com/LiamPeng/NYU-CC-k8s/infrastructure/redis"
	"github.com/LiamPeng/NYU-CC-k8s/interfaces/api/handlers"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/config"
	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	RedisClient *redispkg.Client // Redis list cache (optional)
	NATSClient  *natspkg.Client  // NATS change events (optional)
	StoreName   string           // ชื่อ backend ที่ใช้ใน readiness reason

	// Repositories
	TodoRepository repositories.TodoRepository

	// Messaging Ports
	TodoEvents ports.TodoEventPublisher

	// Services
	TodoService   services.TodoService
	HealthService services.HealthService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initStore(); err != nil {
		return err
	}

	c.initCache()
	c.initMessaging()
	c.initServices()

	logger.Info("Container initialized", "store", c.StoreName)
	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

// initStore เปิด connection ของ backend ตาม STORE_DRIVER แล้วสร้าง index ครั้งเดียว
func (c *Container) initStore() error {
	timeout := c.Config.Store.Timeout

	switch c.Config.Store.Driver {
	case config.DriverMongo:
		client, err := mongodb.NewClient(mongodb.DatabaseConfig{
			URI:        c.Config.Mongo.URI,
			Database:   c.Config.Mongo.Database,
			Collection: c.Config.Mongo.Collection,
			Timeout:    timeout,
		})
		if err != nil {
			return err
		}
		c.TodoRepository = mongodb.NewTodoRepository(client, c.Config.Mongo.Database, c.Config.Mongo.Collection)
		c.StoreName = "mongodb"
		logger.Info("MongoDB connected", "database", c.Config.Mongo.Database, "collection", c.Config.Mongo.Collection)

	case config.DriverPostgres:
		db, err := postgres.NewDatabase(postgres.DatabaseConfig{
			Host:     c.Config.Database.Host,
			Port:     c.Config.Database.Port,
			User:     c.Config.Database.User,
			Password: c.Config.Database.Password,
			DBName:   c.Config.Database.DBName,
			SSLMode:  c.Config.Database.SSLMode,
			Timeout:  timeout,
		})
		if err != nil {
			return err
		}
		c.TodoRepository = postgres.NewTodoRepository(db)
		c.StoreName = "postgres"
		logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	case config.DriverMemory:
		c.TodoRepository = memory.NewTodoRepository()
		c.StoreName = "memory"
		logger.Warn("Using in-memory todo store (data is lost on restart)")

	default:
		return fmt.Errorf("unsupported store driver %q", c.Config.Store.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := c.TodoRepository.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}
	logger.Info("Store indexes ensured", "store", c.StoreName)
	return nil
}

// initCache: Redis เป็น optional ถ้าต่อไม่ได้ก็ทำงานต่อโดยไม่มี cache
func (c *Container) initCache() {
	if c.Config.Redis.URL == "" {
		return
	}
	redisClient, err := redispkg.NewClient(&c.Config.Redis, c.Config.Store.Timeout)
	if err != nil {
		logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		return
	}
	c.RedisClient = redisClient
	logger.Info("Redis client initialized", "ttl", c.Config.Redis.CacheTTL.String())
}

// initMessaging: NATS เป็น optional ถ้าไม่มีใช้ noop publisher
func (c *Container) initMessaging() {
	c.TodoEvents = messaging.NewNoopTodoPublisher()
	if c.Config.NATS.URL == "" {
		return
	}

	natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
		URL:     c.Config.NATS.URL,
		Timeout: c.Config.Store.Timeout,
	})
	if err != nil {
		logger.Warn("NATS client initialization failed (events disabled)", "error", err)
		return
	}
	c.NATSClient = natsClient
	c.TodoEvents = messaging.NewNATSTodoPublisher(natsClient.Conn(), c.Config.NATS.SubjectPrefix)
	logger.Info("NATS client initialized", "url", c.Config.NATS.URL, "subject_prefix", c.Config.NATS.SubjectPrefix)
}

func (c *Container) initServices() {
	if c.RedisClient != nil {
		c.TodoService = serviceimpl.NewTodoServiceWithCache(c.TodoRepository, c.TodoEvents, c.RedisClient)
	} else {
		c.TodoService = serviceimpl.NewTodoService(c.TodoRepository, c.TodoEvents)
	}
	c.HealthService = serviceimpl.NewHealthService(c.TodoRepository, c.StoreName, c.Config.Store.Timeout)
	logger.Info("Services initialized")
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	// Close NATS connection
	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	// Close store connection
	if c.TodoRepository != nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.Config.Store.Timeout)
		defer cancel()
		if err := c.TodoRepository.Close(ctx); err != nil {
			logger.Warn("Failed to close store connection", "store", c.StoreName, "error", err)
		} else {
			logger.Info("Store connection closed", "store", c.StoreName)
		}
	}

	logger.Info("Cleanup completed")
	return logger.Close()
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		TodoService:   c.TodoService,
		HealthService: c.HealthService,
		PageTitle:     c.Config.App.Title,
		PageHeading:   c.Config.App.Heading,
	}
}
