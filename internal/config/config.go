package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Placeholder values shipped in the example .env; credentials still equal to
// these are treated as unconfigured.
const (
	PlaceholderSMTPUser     = "your_email@gmail.com"
	PlaceholderSMTPPassword = "your_app_password_here"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Groq     GroqConfig     `json:"groq"`
	SMTP     SMTPConfig     `json:"smtp"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslmode"`
}

// GroqConfig points the OpenAI-compatible client at the Groq endpoint.
type GroqConfig struct {
	BaseURL     string  `json:"base_url"`
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

// Configured reports whether real SMTP credentials are present. Placeholder
// sentinels from the sample configuration do not count.
func (c SMTPConfig) Configured() bool {
	if c.User == "" || c.Password == "" {
		return false
	}
	if c.User == PlaceholderSMTPUser || c.Password == PlaceholderSMTPPassword {
		return false
	}
	return true
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".recapd"))
	}

	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "recapd")
	viper.SetDefault("database.database", "recapd")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("groq.model", "llama3-8b-8192")
	viper.SetDefault("groq.temperature", 0.3)
	viper.SetDefault("groq.max_tokens", 2048)
	viper.SetDefault("smtp.port", 587)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := createDefaultConfig()
			loadEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvOverrides(&cfg)

	return &cfg, nil
}

func createDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 5000,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "recapd",
			Password: "",
			Database: "recapd",
			SSLMode:  "disable",
		},
		Groq: GroqConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "llama3-8b-8192",
			Temperature: 0.3,
			MaxTokens:   2048,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
	}
}

func loadEnvOverrides(cfg *Config) {
	if port := os.Getenv("RECAPD_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if host := os.Getenv("RECAPD_HOST"); host != "" {
		cfg.Server.Host = host
	}

	// Database overrides
	if dbHost := os.Getenv("POSTGRES_HOST"); dbHost != "" {
		cfg.Database.Host = dbHost
	}
	if dbPort := os.Getenv("POSTGRES_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			cfg.Database.Port = port
		}
	}
	if dbUser := os.Getenv("POSTGRES_USER"); dbUser != "" {
		cfg.Database.User = dbUser
	}
	if dbPass := os.Getenv("POSTGRES_PASSWORD"); dbPass != "" {
		cfg.Database.Password = dbPass
	}
	if dbName := os.Getenv("POSTGRES_DB"); dbName != "" {
		cfg.Database.Database = dbName
	}

	// Summarization overrides
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.Groq.APIKey = key
	}
	if model := os.Getenv("GROQ_MODEL"); model != "" {
		cfg.Groq.Model = model
	}

	// Mail transport overrides, names kept for .env compatibility
	if host := os.Getenv("EMAIL_HOST"); host != "" {
		cfg.SMTP.Host = host
	}
	if port := os.Getenv("EMAIL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if user := os.Getenv("EMAIL_USER"); user != "" {
		cfg.SMTP.User = user
	}
	if pass := os.Getenv("EMAIL_PASS"); pass != "" {
		cfg.SMTP.Password = pass
	}
}
