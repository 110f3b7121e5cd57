package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// Database
	DBPath string

	// LLM
	LLMBaseURL string
	LLMToken   string
	LLMModel   string

	// Rate limiting for /ask
	AskRatePerSec float64
	AskBurst      int

	// Client
	ServerURL string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:           getEnvOrDefault("PORT", "5000"),
		AllowedOrigins: splitList(getEnvOrDefault("ALLOWED_ORIGINS", "*")),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		DBPath:         getEnvOrDefault("DB_PATH", "askbox.db"),
		LLMBaseURL:     getEnvOrDefault("LLM_BASE_URL", "http://localhost:11434/v1/"),
		LLMToken:       getEnvOrDefault("OPENAI_API_KEY", "fake"),
		LLMModel:       getEnvOrDefault("LLM_MODEL", "llama3.1:8b"),
		AskRatePerSec:  getEnvAsFloatOrDefault("ASK_RATE_PER_SEC", 2),
		AskBurst:       getEnvAsIntOrDefault("ASK_BURST", 5),
		ServerURL:      getEnvOrDefault("ASKBOX_SERVER", "http://localhost:5000"),
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f < 0 {
		return defaultVal
	}
	return f
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
