package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	MongoURI  string `env:"MONGODB_URI" envDefault:"mongodb://127.0.0.1:27017"`
	MongoName string `env:"MONGODB_DB" envDefault:"jupiter"`

	JWTSecret string `env:"JWT_SECRET,required"`

	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	WorkerConcurrency int `env:"WORKER_CONCURRENCY" envDefault:"4"`
}

// Load reads configuration from the environment, after loading a .env file if
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
