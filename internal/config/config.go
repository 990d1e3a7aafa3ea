// Package config loads runtime configuration from the environment and an
// optional spark.yaml file. A .env file in the working directory is read
// first so local setups work without exporting variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	DataDir string
	Debug   bool
	JSONLog bool

	Server struct {
		Port int
	}

	Gemini struct {
		APIKey string
		Model  string
	}

	Engine struct {
		RequestTimeout       time.Duration
		IdentityCutoff       float64
		IdentityUniqueCutoff float64
		EligibilityThreshold float64
		CandidateThreshold   float64
	}
}

// Load reads configuration with precedence: defaults < spark.yaml < SPARK_*
// environment variables. The Gemini key is not required here; commands that
// call the model check RequireGeminiKey themselves so seeding and CRUD work
// offline.
func Load() (Config, error) {
	// Missing .env is fine; it only feeds the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("data-dir", "./data")
	v.SetDefault("debug", false)
	v.SetDefault("json-log", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("gemini.api-key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("engine.request-timeout", "60s")
	v.SetDefault("engine.identity-cutoff", 80.0)
	v.SetDefault("engine.identity-unique-cutoff", 95.0)
	v.SetDefault("engine.eligibility-threshold", 40.0)
	v.SetDefault("engine.candidate-threshold", 60.0)

	v.SetConfigName("spark")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("SPARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	cfg.DataDir = v.GetString("data-dir")
	cfg.Debug = v.GetBool("debug")
	cfg.JSONLog = v.GetBool("json-log")
	cfg.Server.Port = v.GetInt("server.port")
	cfg.Gemini.APIKey = v.GetString("gemini.api-key")
	cfg.Gemini.Model = v.GetString("gemini.model")
	cfg.Engine.RequestTimeout = v.GetDuration("engine.request-timeout")
	cfg.Engine.IdentityCutoff = v.GetFloat64("engine.identity-cutoff")
	cfg.Engine.IdentityUniqueCutoff = v.GetFloat64("engine.identity-unique-cutoff")
	cfg.Engine.EligibilityThreshold = v.GetFloat64("engine.eligibility-threshold")
	cfg.Engine.CandidateThreshold = v.GetFloat64("engine.candidate-threshold")

	return cfg, nil
}

// RequireGeminiKey fails when no API key is configured.
func (c Config) RequireGeminiKey() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return errors.New("gemini api key is not configured (set SPARK_GEMINI_API_KEY)")
	}
	return nil
}
