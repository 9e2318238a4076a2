package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// PortalConfig is the configuration of the portal server.
type PortalConfig struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	Backend BackendConfig
	Redis   RedisConfig
	Twilio  TwilioConfig
}

// BackendConfig locates the studio backend the API client facade talks to.
type BackendConfig struct {
	BaseURL      string `env:"BACKEND_URL,   default=http://localhost:8081"`
	ServiceToken string `env:"BACKEND_TOKEN"`
}

// TwilioConfig holds the WhatsApp messaging provider credentials. All four
// values must be set for the notification webhook to deliver anything.
type TwilioConfig struct {
	AccountSID   string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken    string `env:"TWILIO_AUTH_TOKEN"`
	WhatsAppFrom string `env:"TWILIO_WHATSAPP_FROM"`
	AdminTo      string `env:"ADMIN_WHATSAPP"`
}

// BackendServerConfig is the configuration of the reference backend server.
type BackendServerConfig struct {
	Port         string `env:"PORT,       default=8081"`
	Env          string `env:"ENV,        default=development"`
	LogLevel     string `env:"LOG_LEVEL,  default=info"`
	ServiceToken string `env:"BACKEND_TOKEN"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=studio_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// LoadPortal reads portal configuration from the environment. A local .env
// file is applied first when present.
func LoadPortal(ctx context.Context) (*PortalConfig, error) {
	_ = godotenv.Load()

	var cfg PortalConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadBackend reads backend server configuration from the environment.
func LoadBackend(ctx context.Context) (*BackendServerConfig, error) {
	_ = godotenv.Load()

	var cfg BackendServerConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
