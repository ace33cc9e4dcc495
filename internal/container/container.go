// Package container builds every shared component once from config and hands
// them to the router and binaries explicitly.
package container

import (
	"context"
	"fmt"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/jobboard/config"
	"github.com/oksasatya/jobboard/internal/application"
	"github.com/oksasatya/jobboard/internal/domain/repository"
	"github.com/oksasatya/jobboard/internal/infrastructure/cache"
	"github.com/oksasatya/jobboard/internal/infrastructure/memory"
	"github.com/oksasatya/jobboard/internal/infrastructure/mongodb"
	"github.com/oksasatya/jobboard/internal/infrastructure/search"
	"github.com/oksasatya/jobboard/internal/infrastructure/storage"
	"github.com/oksasatya/jobboard/internal/interface/middleware"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	// Optional infrastructure; nil when not configured.
	Mongo   *mongo.Client
	Redis   *redis.Client
	ES      *elasticsearch.Client
	GCS     *gcs.Client
	Rabbit  *helpers.RabbitPublisher
	Metrics *middleware.Metrics

	UserRepo repository.UserRepository
	JobRepo  repository.JobRepository
	PostRepo repository.PostRepository

	Storage  storage.ObjectStorage
	Notifier *application.Notifier

	Users *application.UserService
	Jobs  *application.JobService
	Posts *application.PostService

	closers []func()
}

// New connects the configured backends. Only the document store is
// mandatory; Redis, Elasticsearch, RabbitMQ and object storage degrade to
// disabled with a warning.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Cfg: cfg, Logger: logger, JWT: helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)}

	if err := c.initStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initRedis(ctx)
	c.initSearch(ctx)
	if err := c.initStorage(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initQueue()
	if cfg.MetricsEnabled {
		c.Metrics = newMetrics(cfg.AppName)
	}
	c.wire()
	return c, nil
}

// NewInMemory builds a container over a fresh in-memory store with every
// optional backend disabled.
func NewInMemory(cfg *config.Config, logger *logrus.Logger) *Container {
	store := memory.NewStore()
	c := &Container{
		Cfg:      cfg,
		Logger:   logger,
		JWT:      helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		UserRepo: store.Users(),
		JobRepo:  store.Jobs(),
		PostRepo: store.Posts(),
		Storage:  storage.Disabled{},
	}
	c.wire()
	return c
}

func (c *Container) initStore(ctx context.Context) error {
	if c.Cfg.UseMemoryStore() {
		store := memory.NewStore()
		c.UserRepo, c.JobRepo, c.PostRepo = store.Users(), store.Jobs(), store.Posts()
		c.Logger.Warn("using in-memory store; data is lost on restart")
		return nil
	}

	client, err := mongodb.NewClient(ctx, c.Cfg.MongoURI, c.Cfg.MongoMaxPoolSize, c.Cfg.MongoConnectTimeout)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	c.Mongo = client
	c.closers = append(c.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	})

	if c.Cfg.MigrationsEnabled {
		if err := mongodb.RunMigrations(client, c.Cfg.MongoDatabase, c.Logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	db := client.Database(c.Cfg.MongoDatabase)
	c.UserRepo = mongodb.NewUserRepository(db)
	c.JobRepo = mongodb.NewJobRepository(db)
	c.PostRepo = mongodb.NewPostRepository(db)
	return nil
}

func (c *Container) initRedis(ctx context.Context) {
	if c.Cfg.RedisAddr == "" {
		return
	}
	rdb := helpers.NewRedisClient(c.Cfg.RedisAddr, c.Cfg.RedisPassword, c.Cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		c.Logger.WithError(err).WithField("addr", c.Cfg.RedisAddr).Warn("redis unavailable; rate limiting and profile cache disabled")
		_ = rdb.Close()
		return
	}
	c.Redis = rdb
	c.closers = append(c.closers, func() { _ = rdb.Close() })
}

func (c *Container) initSearch(ctx context.Context) {
	addrs := c.Cfg.ESAddrs()
	if len(addrs) == 0 {
		return
	}
	es, err := helpers.NewESClient(helpers.ESConfig{
		Addrs:    addrs,
		Username: c.Cfg.ElasticsearchUser,
		Password: c.Cfg.ElasticsearchPass,
	})
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = helpers.PingES(pingCtx, es)
		cancel()
	}
	if err != nil {
		c.Logger.WithError(err).Warn("elasticsearch unavailable; discover falls back to substring search")
		return
	}
	c.ES = es
}

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Cfg.StorageDriver {
	case "gcs":
		client, err := storage.NewGCSClient(ctx, c.Cfg.GCSCredentialsJSONPath)
		if err != nil {
			return fmt.Errorf("init gcs: %w", err)
		}
		c.GCS = client
		c.closers = append(c.closers, func() { _ = client.Close() })
		c.Storage = storage.NewGCS(client, c.Cfg.GCSBucket)
	case "s3":
		s, err := storage.NewS3(ctx, storage.S3Options{
			Region:    c.Cfg.S3Region,
			Endpoint:  c.Cfg.S3Endpoint,
			AccessKey: c.Cfg.S3AccessKey,
			SecretKey: c.Cfg.S3SecretKey,
			Bucket:    c.Cfg.S3Bucket,
			PublicURL: c.Cfg.S3PublicURL,
		})
		if err != nil {
			return fmt.Errorf("init s3: %w", err)
		}
		c.Storage = s
	default:
		c.Storage = storage.Disabled{}
	}
	return nil
}

func (c *Container) initQueue() {
	if c.Cfg.RabbitMQURL == "" || !c.Cfg.MailSendEnabled {
		return
	}
	pub, err := helpers.NewRabbitPublisher(c.Cfg.RabbitMQURL, c.Cfg.RabbitMQEmailQueue)
	if err != nil {
		c.Logger.WithError(err).Warn("rabbitmq unavailable; email notifications disabled")
		return
	}
	c.Rabbit = pub
	c.closers = append(c.closers, pub.Close)
}

func newMetrics(appName string) *middleware.Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return middleware.NewMetrics(metricsNamespace(appName), reg)
}

var metricsNamespace = strings.NewReplacer("-", "_", " ", "_", ".", "_").Replace

// wire builds the services. Optional collaborators are assigned only when
// present so the services see nil interfaces, not typed nils.
func (c *Container) wire() {
	var pub application.Publisher
	if c.Rabbit != nil {
		pub = c.Rabbit
	}
	c.Notifier = application.NewNotifier(pub, c.Cfg, c.Logger)

	users := application.NewUserService(c.UserRepo, c.JWT, c.Logger)
	users.Notifier = c.Notifier
	if c.Storage != nil {
		users.Storage = c.Storage
	}
	if c.Redis != nil {
		users.Cache = cache.NewProfileCache(c.Redis, c.Cfg.ProfileCacheTTL)
	}
	if idx := search.NewUserIndex(c.ES, c.Cfg.ESUsersIndex); idx.Enabled() {
		users.Index = idx
	}
	c.Users = users
	c.Jobs = application.NewJobService(c.JobRepo, c.UserRepo, c.Notifier, c.Logger)
	c.Posts = application.NewPostService(c.PostRepo, c.UserRepo)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
