package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Google   GoogleConfig
	S3       S3Config
	Queue    QueueConfig
}

type ServerConfig struct {
	Host string
	Port int
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
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type QueueConfig struct {
	Concurrency int
}

var (
	instance *Config
	once     sync.Once
)

// Load reads configuration from environment variables (a .env file is
// loaded by the server before this runs).
func Load() (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()
		v.AutomaticEnv()

		v.SetDefault("SERVER_HOST", "0.0.0.0")
		v.SetDefault("SERVER_PORT", 7070)
		v.SetDefault("DB_HOST", "localhost")
		v.SetDefault("DB_PORT", 5432)
		v.SetDefault("DB_USER", "postgres")
		v.SetDefault("DB_PASSWORD", "postgres")
		v.SetDefault("DB_NAME", "tennismate")
		v.SetDefault("DB_SSL_MODE", "disable")
		v.SetDefault("REDIS_ADDR", "localhost:6379")
		v.SetDefault("REDIS_PASSWORD", "")
		v.SetDefault("REDIS_DB", 0)
		v.SetDefault("JWT_EXPIRY_HOURS", 72)
		v.SetDefault("S3_REGION", "auto")
		v.SetDefault("QUEUE_CONCURRENCY", 10)

		cfg := &Config{
			Server: ServerConfig{
				Host: v.GetString("SERVER_HOST"),
				Port: v.GetInt("SERVER_PORT"),
			},
			Database: DatabaseConfig{
				Host:     v.GetString("DB_HOST"),
				Port:     v.GetInt("DB_PORT"),
				User:     v.GetString("DB_USER"),
				Password: v.GetString("DB_PASSWORD"),
				DBName:   v.GetString("DB_NAME"),
				SSLMode:  v.GetString("DB_SSL_MODE"),
			},
			Redis: RedisConfig{
				Addr:     v.GetString("REDIS_ADDR"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
			},
			JWT: JWTConfig{
				Secret:      v.GetString("JWT_SECRET"),
				ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
			},
			Google: GoogleConfig{
				ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
				ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
				RedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
			},
			S3: S3Config{
				Region:    v.GetString("S3_REGION"),
				Bucket:    v.GetString("S3_BUCKET"),
				Endpoint:  v.GetString("S3_ENDPOINT"),
				AccessKey: v.GetString("S3_ACCESS_KEY"),
				SecretKey: v.GetString("S3_SECRET_KEY"),
				PublicURL: v.GetString("S3_PUBLIC_URL"),
			},
			Queue: QueueConfig{
				Concurrency: v.GetInt("QUEUE_CONCURRENCY"),
			},
		}

		if cfg.JWT.Secret == "" {
			err = fmt.Errorf("JWT_SECRET is required")
			return
		}

		instance = cfg
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// Get returns the loaded configuration. Panics if Load was never called.
func Get() *Config {
	if instance == nil {
		panic("config: Load must be called before Get")
	}
	return instance
}

// GetSafe returns the configuration and whether it has been initialized.
func GetSafe() (*Config, bool) {
	return instance, instance != nil
}
