package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file (if any) and builds Configs from the environment.
func Load() Configs {
	if err := godotenv.Load(); err != nil {
		log.Println("Not found .env file, using environment variables only")
	}

	return Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "mysql"),
			Password: getEnv("MYSQL_PASSWORD", "mysql"),
			Database: getEnv("MYSQL_DATABASE", "groove"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{
				Host: getEnv("API_HOST", "localhost"),
				Port: getEnv("API_PORT", "8080"),
				Cert: getEnv("SERVER_CERT", ""),
				Key:  getEnv("SERVER_KEY", ""),
			},
			MaxLimit:     parseInt(getEnv("API_MAX_LIMIT", "50")),
			DefaultLimit: parseInt(getEnv("API_DEFAULT_LIMIT", "20")),
			AllowOrigins: strings.Split(getEnv("API_ALLOW_ORIGINS", "*"), ","),
		},
		Auth: AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "5m")),
			},
			RefreshToken: TokenConfigs{
				Name:       "refresh_token",
				Expiration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "720h")),
			},
		},
		Storage: StorageConfigs{
			Type: getEnv("STORAGE_TYPE", "local"),
			Local: LocalStorageConfigs{
				RootDir:   getEnv("LOCAL_STORAGE_DIR", "./uploads"),
				URLPrefix: getEnv("LOCAL_STORAGE_URL_PREFIX", "/uploads"),
			},
			S3: S3Configs{
				Region:         getEnv("STORAGE_REGION", "auto"),
				Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
				PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
				AccessKey:      getEnv("STORAGE_ACCESS_KEY", "access_key"),
				SecretKey:      getEnv("STORAGE_SECRET_KEY", "secret_key"),
				Bucket:         getEnv("STORAGE_BUCKET", "images"),
				SSLDisabled:    parseBool(getEnv("STORAGE_SSL_DISABLED", "true")),
			},
		},
		File: FileConfigs{
			MaxSize:          int64(parseInt(getEnv("MAX_UPLOAD_FILE", "10485760"))),
			ProfileImageSize: uint(parseInt(getEnv("PROFILE_IMAGE_SIZE", "512"))),
		},
		Feed: FeedConfigs{
			HotWindow: parseDuration(getEnv("HOT_FEED_WINDOW", "336h")),
		},
		Redis: RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: KafkaConfigs{
			Addr:    getEnv("KAFKA_ADDRESS", "localhost:9092"),
			Enabled: parseBool(getEnv("KAFKA_ENABLED", "false")),
		},
		SnowFlake: SnowFlakeConfigs{
			NodeID: int64(parseInt(getEnv("SNOWFLAKE_NODE_ID", "1"))),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return duration
}

func parseInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}

	return i
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		panic(err)
	}

	return b
}
