package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	ServerPort        int
	Env               string
	DBDriver          string
	Database          DatabaseConfig
	Mongo             MongoConfig
	Session           SessionConfig
	Redis             RedisConfig
	MQ                MQConfig
	RabbitMQ          RabbitMQConfig
	PubSub            PubSubConfig
	Storage           StorageConfig
	Minio             MinioConfig
	GCS               GCSConfig
	S3                S3Config
	SeedAdminPassword string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	UseSSL       bool
	MaxOpenConns int
	MaxIdleConns int
}

type MongoConfig struct {
	URI      string
	Database string
}

type SessionConfig struct {
	Secret   string
	TTLHours int
	// Store is either "memory" or "redis".
	Store string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MQConfig struct {
	// Backend is one of "none", "memory", "rabbitmq" or "pubsub".
	Backend string
	Channel string
}

type RabbitMQConfig struct {
	URL             string
	QueueDurable    bool
	QueueAutoDelete bool
	PrefetchCount   int
}

type PubSubConfig struct {
	ProjectID          string
	CredentialsFile    string
	SubscriptionSuffix string
}

type StorageConfig struct {
	// Backend is one of "none", "memory", "minio", "gcs" or "s3".
	Backend string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Production reports whether the service runs with production settings.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         getEnvInt("DB_PORT", 5432),
		User:         getEnv("DB_USER", "easytech"),
		Password:     getEnv("DB_PASSWORD", ""),
		DBName:       getEnv("DB_NAME", "easytech"),
		UseSSL:       getEnvBool("DB_SSL", false),
		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Env:        getEnv("ENV", "production"),
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
		Database:   dbConfig,
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "easytech"),
		},
		Session: SessionConfig{
			Secret:   strings.TrimSpace(os.Getenv("SESSION_SECRET")),
			TTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
			Store:    strings.ToLower(getEnv("SESSION_STORE", "memory")),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MQ: MQConfig{
			Backend: strings.ToLower(getEnv("MQ_BACKEND", "none")),
			Channel: getEnv("EVENTS_CHANNEL", "site-events"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:             getEnv("RABBITMQ_URL", ""),
			QueueDurable:    getEnvBool("RABBITMQ_QUEUE_DURABLE", true),
			QueueAutoDelete: getEnvBool("RABBITMQ_QUEUE_AUTO_DELETE", false),
			PrefetchCount:   getEnvInt("RABBITMQ_PREFETCH", 10),
		},
		PubSub: PubSubConfig{
			ProjectID:          getEnv("PUBSUB_PROJECT_ID", ""),
			CredentialsFile:    getEnv("PUBSUB_CREDENTIALS_FILE", ""),
			SubscriptionSuffix: getEnv("PUBSUB_SUBSCRIPTION_SUFFIX", "-sub"),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(getEnv("STORAGE_BACKEND", "none")),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "easytech-media"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		GCS: GCSConfig{
			Bucket:          getEnv("GCS_BUCKET", ""),
			ProjectID:       getEnv("GCS_PROJECT_ID", ""),
			CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		},
		S3: S3Config{
			Bucket:    getEnv("AWS_S3_BUCKET", ""),
			Region:    getEnv("AWS_REGION", "us-east-1"),
			AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(valueStr)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}
