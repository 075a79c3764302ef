package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreRedis     = "redis"
	StorePostgres  = "postgres"
	StoreFirestore = "firestore"
	StoreMemory    = "memory"

	BroadcastLocal = "local"
	BroadcastRedis = "redis"
)

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string        `yaml:"http-port" env:"PORT" env-default:"3001"`
	Store        string        `yaml:"store" env:"STORE" env-default:"redis"`
	Broadcast    string        `yaml:"broadcast" env:"BROADCAST" env-default:"local"`
	AllowOrigins []string      `yaml:"allow-origins" env:"ALLOW_ORIGINS" env-default:"http://localhost:3000"`
	SessionTTL   time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"0s"`
	ReapInterval time.Duration `yaml:"reap-interval" env:"REAP_INTERVAL" env-default:"10m"`
	Redis        Redis         `yaml:"redis"`
	Postgres     Postgres      `yaml:"postgres"`
	Firestore    Firestore     `yaml:"firestore"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN" env-default:""`
}

type Firestore struct {
	ProjectID       string `yaml:"project-id" env:"FIRESTORE_PROJECT_ID" env-default:""`
	CredentialsFile string `yaml:"credentials-file" env:"FIRESTORE_CREDENTIALS_FILE" env-default:"serviceAccountKey.json"`
	Collection      string `yaml:"collection" env:"FIRESTORE_COLLECTION" env-default:"games"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// LoadFromEnv - builds the config from environment variables only.
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Store {
	case StoreRedis, StoreMemory:
	case StorePostgres:
		if that.Postgres.DSN == "" {
			return errors.New("postgres store requires postgres.dsn")
		}
	case StoreFirestore:
		if that.Firestore.ProjectID == "" {
			return errors.New("firestore store requires firestore.project-id")
		}
	default:
		return fmt.Errorf("unknown store %q", that.Store)
	}

	switch that.Broadcast {
	case BroadcastLocal, BroadcastRedis:
	default:
		return fmt.Errorf("unknown broadcast %q", that.Broadcast)
	}

	if that.SessionTTL < 0 {
		return errors.New("session-ttl must not be negative")
	}

	if that.SessionTTL > 0 && that.ReapInterval <= 0 {
		return errors.New("reap-interval must be positive when session-ttl is set")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
