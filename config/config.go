package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. The language vocabulary and matching threshold live here
// so the analysis components take them as explicit inputs.
type Config struct {
	OutputDir    string
	AnalysisDir  string
	EstimatesDir string
	CardListsDir string

	DefaultWaitSeconds int
	MaxRetries         int
	ChromeBin          string
	LogLevel           string

	Languages       []string
	PrimaryLanguage string
	MatchThreshold  float64
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		OutputDir:    getEnv("OUTPUT_DIR", "./output"),
		AnalysisDir:  getEnv("ANALYSIS_DIR", "./output_analysis"),
		EstimatesDir: getEnv("ESTIMATES_DIR", "./deck_estimates"),
		CardListsDir: getEnv("CARD_LISTS_DIR", "./card_lists"),

		DefaultWaitSeconds: getEnvInt("DEFAULT_WAIT_SECONDS", 3),
		MaxRetries:         getEnvInt("MAX_RETRIES", 3),
		ChromeBin:          getEnv("CHROME_BIN", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),

		Languages:       getEnvList("LANGUAGES", "English,German,Spanish,French,Italian"),
		PrimaryLanguage: getEnv("PRIMARY_LANGUAGE", "English"),
		MatchThreshold:  getEnvFloat("MATCH_THRESHOLD", 0.6),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
