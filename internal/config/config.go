package config

import "github.com/caarlos0/env/v10"

// UserConfig centraliza la configuración del servicio de usuarios.
type UserConfig struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"3000"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string `env:"SMTP_USER"`
	SMTPPass      string `env:"SMTP_PASS"`
	SMTPFrom      string `env:"SMTP_FROM"`
	SMTPFromName  string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS    bool   `env:"SMTP_USE_TLS" envDefault:"false"`
}

// BillingConfig centraliza la configuración del servicio de facturación.
type BillingConfig struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"3001"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	EventsStream  string `env:"USER_EVENTS_STREAM" envDefault:"user.events"`
	EventsGroup   string `env:"USER_EVENTS_GROUP" envDefault:"billing"`
}

// LoadUserConfig carga la configuración desde variables de entorno.
func LoadUserConfig() (*UserConfig, error) {
	var cfg UserConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadBillingConfig carga la configuración desde variables de entorno.
func LoadBillingConfig() (*BillingConfig, error) {
	var cfg BillingConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
