package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Interpretation
	Parser    ParserConfig
	Ollama    OllamaConfig
	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// ParserConfig tunes the interpretation cascade.
type ParserConfig struct {
	Timezone            string
	CacheCapacity       int
	SimilarityThreshold float64
	MinFuzzyLength      int
	RuleEngine          string // after_pattern | replace_pattern | disabled
	WarmupInputs        []string
	WarmupConcurrency   int
}

// OllamaConfig configures the inference service.
type OllamaConfig struct {
	Enabled      bool
	URL          string
	Model        string
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

type RateLimitConfig struct {
	PerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/intent/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/intent/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Parser
	cfg.Parser.Timezone = viper.GetString("parser.timezone")
	cfg.Parser.CacheCapacity = viper.GetInt("parser.cache_capacity")
	cfg.Parser.SimilarityThreshold = viper.GetFloat64("parser.similarity_threshold")
	cfg.Parser.MinFuzzyLength = viper.GetInt("parser.min_fuzzy_length")
	cfg.Parser.RuleEngine = viper.GetString("parser.rule_engine")
	cfg.Parser.WarmupConcurrency = viper.GetInt("parser.warmup_concurrency")

	cfg.Parser.WarmupInputs = warmupInputs(viper.Get("parser.warmup_inputs"))

	// Ollama
	cfg.Ollama.Enabled = viper.GetBool("ollama.enabled")
	cfg.Ollama.URL = expandEnvVar(viper.GetString("ollama.url"))
	if host := viper.GetString("ollama_host"); host != "" {
		cfg.Ollama.URL = host
	}
	cfg.Ollama.Model = viper.GetString("ollama.model")
	cfg.Ollama.Timeout = viper.GetDuration("ollama.timeout")
	cfg.Ollama.ProbeTimeout = viper.GetDuration("ollama.probe_timeout")

	cfg.RateLimit.PerMin = viper.GetInt("rate_limit.per_min")

	if err := validateParserConfig(&cfg.Parser); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Parser defaults
	viper.SetDefault("parser.timezone", "UTC")
	viper.SetDefault("parser.cache_capacity", 1000)
	viper.SetDefault("parser.similarity_threshold", 0.85)
	viper.SetDefault("parser.min_fuzzy_length", 3)
	viper.SetDefault("parser.rule_engine", "after_pattern")
	viper.SetDefault("parser.warmup_inputs", []string{})
	viper.SetDefault("parser.warmup_concurrency", 4)

	// Ollama defaults
	viper.SetDefault("ollama.enabled", true)
	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("ollama.model", "qwen2.5:7b")
	viper.SetDefault("ollama.timeout", "15s")
	viper.SetDefault("ollama.probe_timeout", "2s")

	viper.SetDefault("rate_limit.per_min", 120)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// warmupInputs accepts a YAML list or a comma-separated env string.
func warmupInputs(raw any) []string {
	var items []string
	switch v := raw.(type) {
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []any:
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
	}

	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// validateParserConfig validates the parser configuration
func validateParserConfig(cfg *ParserConfig) error {
	if cfg.CacheCapacity <= 0 {
		return fmt.Errorf("parser.cache_capacity must be positive, got %d", cfg.CacheCapacity)
	}
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		return fmt.Errorf("parser.similarity_threshold must be in (0, 1], got %v", cfg.SimilarityThreshold)
	}
	switch cfg.RuleEngine {
	case "after_pattern", "replace_pattern", "disabled":
	default:
		return fmt.Errorf("parser.rule_engine %q is not one of after_pattern, replace_pattern, disabled", cfg.RuleEngine)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("parser.timezone: %w", err)
	}
	return nil
}
