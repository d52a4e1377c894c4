package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds everything the service needs at startup. It is built once
// in main and handed to the handlers, nothing reads the environment after
// Load returns.
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	DatabaseURL string `env:"DATABASE_URL" env-default:"host=localhost user=postgres password=postgres dbname=dreamboard port=5432 sslmode=disable"`

	AdminPassword string `env:"ADMIN_PASSWORD" env-required:"true"`

	RecaptchaSiteKey   string `env:"RECAPTCHA_SITE_KEY"`
	RecaptchaSecretKey string `env:"RECAPTCHA_SECRET_KEY"`
	RecaptchaVerifyURL string `env:"RECAPTCHA_VERIFY_URL" env-default:"https://www.google.com/recaptcha/api/siteverify"`

	ImageDir       string `env:"IMAGE_DIR" env-default:"./web/static/images"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`

	SessionSecret string `env:"SESSION_SECRET" env-default:"secret_key_change_me"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	// Missing .env is fine, env vars may come from the system
	_ = godotenv.Load()

	conf := &Config{}
	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return conf, nil
}
