package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	S3       S3Config
	JWT      JWTConfig
	Rating   RatingConfig
	Feed     FeedConfig
	Tasks    TasksConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

type JWTConfig struct {
	Secret    string
	ExpiryMin int
}

type RatingConfig struct {
	PrimaryWeight    float64
	BehavioralWeight float64
}

type FeedConfig struct {
	PreloadCount int
}

type TasksConfig struct {
	// Cron specs for the periodic jobs, asynq scheduler syntax.
	RatingSweepSpec  string
	MatchArchiveSpec string
	// Matches still active after this long without a chat get archived.
	StaleMatchAge time.Duration
	Concurrency   int
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	setDefaults()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: viper.GetDuration("REDIS_CACHE_TTL"),
		},
		S3: S3Config{
			Endpoint:  viper.GetString("S3_ENDPOINT"),
			AccessKey: viper.GetString("S3_ACCESS_KEY"),
			SecretKey: viper.GetString("S3_SECRET_KEY"),
			Bucket:    viper.GetString("S3_BUCKET_NAME"),
			Secure:    viper.GetBool("S3_SECURE"),
		},
		JWT: JWTConfig{
			Secret:    viper.GetString("JWT_SECRET"),
			ExpiryMin: viper.GetInt("JWT_EXPIRY_MIN"),
		},
		Rating: RatingConfig{
			PrimaryWeight:    viper.GetFloat64("PRIMARY_RATING_WEIGHT"),
			BehavioralWeight: viper.GetFloat64("BEHAVIORAL_RATING_WEIGHT"),
		},
		Feed: FeedConfig{
			PreloadCount: viper.GetInt("PROFILES_PRELOAD_COUNT"),
		},
		Tasks: TasksConfig{
			RatingSweepSpec:  viper.GetString("RATING_SWEEP_CRON"),
			MatchArchiveSpec: viper.GetString("MATCH_ARCHIVE_CRON"),
			StaleMatchAge:    viper.GetDuration("STALE_MATCH_AGE"),
			Concurrency:      viper.GetInt("WORKER_CONCURRENCY"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "dating_bot")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_CACHE_TTL", time.Hour)
	viper.SetDefault("S3_ENDPOINT", "localhost:9000")
	viper.SetDefault("S3_ACCESS_KEY", "minioadmin")
	viper.SetDefault("S3_SECRET_KEY", "minioadmin")
	viper.SetDefault("S3_BUCKET_NAME", "dating-bot")
	viper.SetDefault("JWT_EXPIRY_MIN", 60*24)
	viper.SetDefault("PRIMARY_RATING_WEIGHT", 0.4)
	viper.SetDefault("BEHAVIORAL_RATING_WEIGHT", 0.6)
	viper.SetDefault("PROFILES_PRELOAD_COUNT", 10)
	viper.SetDefault("RATING_SWEEP_CRON", "0 * * * *")
	viper.SetDefault("MATCH_ARCHIVE_CRON", "0 0 * * *")
	viper.SetDefault("STALE_MATCH_AGE", 30*24*time.Hour)
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("LOG_LEVEL", "info")
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if sum := c.Rating.PrimaryWeight + c.Rating.BehavioralWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("rating weights must sum to 1, got %.3f", sum)
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
