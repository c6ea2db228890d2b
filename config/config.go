package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Upload   UploadConfig
	Mailer   MailerConfig
	RabbitMQ RabbitMQConfig
}

type ServerConfig struct {
	Port        string
	Environment string
	LogLevel    string
	BaseURL     string // 通知信中的活動連結前綴
}

// IsProduction 決定錯誤回應是否隱藏細節
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	EventTTL time.Duration
}

type UploadConfig struct {
	CloudinaryURL string
	Folder        string
}

type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type RabbitMQConfig struct {
	URL string
}

var AppConfig *Config

func LoadConfig() *Config {
	env := getEnv("GO_ENV", "development")

	// production 依賴系統環境變數，其餘環境嘗試讀取 .env
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: env,
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		},
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Cache:    GetCacheConfig(),
		Upload: UploadConfig{
			CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
			Folder:        getEnv("UPLOAD_FOLDER", "DevEvent"),
		},
		Mailer: MailerConfig{
			Provider:    getEnv("MAIL_PROVIDER", "noop"),
			FromAddress: getEnv("MAIL_FROM_ADDRESS", "no-reply@devevent.local"),
			FromName:    getEnv("MAIL_FROM_NAME", "DevEvent"),
			SES: SESConfig{
				Region:          getEnv("AWS_REGION", "us-east-1"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			},
		},
		RabbitMQ: RabbitMQConfig{
			URL: getEnv("RABBITMQ_URL", ""),
		},
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "8080", Environment: "test", LogLevel: "debug", BaseURL: "http://localhost:3000"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Cache:    CacheConfig{EventTTL: time.Minute},
		Upload:   UploadConfig{Folder: "DevEventTest"},
		Mailer:   MailerConfig{Provider: "noop"},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetCacheConfig() CacheConfig {
	ttl, err := time.ParseDuration(getEnv("EVENT_CACHE_TTL", "5m"))
	if err != nil {
		panic(err)
	}
	return CacheConfig{EventTTL: ttl}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
