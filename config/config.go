package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Document store
	DBDriver            string // mongo or memory
	MongoURI            string
	MongoDatabase       string
	MongoMaxPoolSize    uint64
	MongoConnectTimeout time.Duration
	MigrationsEnabled   bool

	// Redis
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ProfileCacheTTL time.Duration

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Object storage for profile images
	StorageDriver          string // gcs, s3 or none
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used
	S3Bucket               string
	S3Region               string
	S3Endpoint             string // MinIO or other S3-compatible endpoint
	S3AccessKey            string
	S3SecretKey            string
	S3PublicURL            string

	// Mailgun
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunSender  string
	MailgunAPIBase string // empty for the US region

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Elasticsearch
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESUsersIndex       string

	// Links for emails
	AppURL      string
	CompanyName string
	SupportURL  string

	// Email sending toggle
	MailSendEnabled bool

	// Prometheus /metrics
	MetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool

	// Redis fixed-window limiter on mutation routes
	RateLimitEnabled bool
	RateLimitMax     int
	RateLimitWindow  time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "jobboard"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "5000"),
		GinMode: getenv("GIN_MODE", "release"),

		DBDriver:            strings.ToLower(getenv("DB_DRIVER", "mongo")),
		MongoURI:            getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getenv("MONGO_DATABASE", "jobboard"),
		MongoMaxPoolSize:    uint64(getint("MONGO_MAX_POOL_SIZE", 50)),
		MongoConnectTimeout: getdur("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		MigrationsEnabled:   getbool("MIGRATIONS_ENABLED", true),

		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getenv("REDIS_PASSWORD", ""),
		RedisDB:         getint("REDIS_DB", 0),
		ProfileCacheTTL: getdur("PROFILE_CACHE_TTL", 5*time.Minute),

		JWTSecret: getenv("JWT_SECRET", "devsecret"),
		JWTTTL:    getdur("JWT_TTL", 7*24*time.Hour),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		StorageDriver:          strings.ToLower(getenv("STORAGE_DRIVER", "none")),
		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),
		S3Bucket:               getenv("S3_BUCKET", ""),
		S3Region:               getenv("S3_REGION", "us-east-1"),
		S3Endpoint:             getenv("S3_ENDPOINT", ""),
		S3AccessKey:            getenv("S3_ACCESS_KEY", ""),
		S3SecretKey:            getenv("S3_SECRET_KEY", ""),
		S3PublicURL:            getenv("S3_PUBLIC_URL", ""),

		MailgunDomain:  getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:  getenv("MAILGUN_API_KEY", ""),
		MailgunSender:  getenv("MAILGUN_SENDER", ""),
		MailgunAPIBase: getenv("MAILGUN_API_BASE", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESUsersIndex:       getenv("ES_USERS_INDEX", "users"),

		AppURL:      getenv("APP_URL", "http://localhost:3000"),
		CompanyName: getenv("COMPANY_NAME", ""),
		SupportURL:  getenv("SUPPORT_URL", ""),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", true),
		MetricsEnabled:  getbool("METRICS_ENABLED", true),
		HTTPLogEnabled:  getbool("HTTP_LOG_ENABLED", false),

		RateLimitEnabled: getbool("RATE_LIMIT_ENABLED", true),
		RateLimitMax:     getint("RATE_LIMIT_MAX", 60),
		RateLimitWindow:  getdur("RATE_LIMIT_WINDOW", time.Minute),
	}
}

// UseMemoryStore reports whether repositories should live in process memory.
func (c *Config) UseMemoryStore() bool { return c.DBDriver == "memory" }

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string { return splitCSV(c.CORSAllowedOrigins) }

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string { return splitCSV(c.ElasticsearchAddrs) }

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
