package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	ListenAddr    = ":8080"
	SessionSecret = ""
	CORSOrigins   []string

	// Gemini settings
	GeminiAPIKey  = ""
	GeminiBaseURL = ""
	InsightModel  = "gemini-3-flash-preview"
	ImageModel    = "gemini-2.5-flash-image"
	LocationModel = "gemini-2.5-flash-lite-latest"

	// Outbound model throttle, 0 disables
	ModelRPS   = 2.0
	ModelBurst = 4

	// Inbound limit on /api/tools
	ToolsRPS   = 1.0
	ToolsBurst = 3

	// Media settings
	MaxUploadBytes = int64(8 << 20)

	// Seed article, empty means the built-in one
	SeedArticlePath = ""

	// Logging
	LogLevel  = "info"
	LogFormat = "text"
	LogFile   = ""
)

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found or error loading it.")
	}

	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	SessionSecret = os.Getenv("SESSION_SECRET")
	if SessionSecret == "" {
		SessionSecret = randomSecret()
		fmt.Fprintln(os.Stderr, "SESSION_SECRET not set; using a random key, sessions end on restart.")
	}
	CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))

	GeminiAPIKey = getEnv("GEMINI_API_KEY", os.Getenv("API_KEY"))
	GeminiBaseURL = getEnv("GEMINI_BASE_URL", "")
	InsightModel = getEnv("INSIGHT_MODEL", InsightModel)
	ImageModel = getEnv("IMAGE_MODEL", ImageModel)
	LocationModel = getEnv("LOCATION_MODEL", LocationModel)

	ModelRPS = parseFloat("MODEL_RPS", ModelRPS)
	ModelBurst = parseInt("MODEL_BURST", ModelBurst)
	ToolsRPS = parseFloat("TOOLS_RPS", ToolsRPS)
	ToolsBurst = parseInt("TOOLS_BURST", ToolsBurst)

	if mb := parseInt("MAX_UPLOAD_MB", 0); mb > 0 {
		MaxUploadBytes = int64(mb) << 20
	}

	SeedArticlePath = getEnv("SEED_ARTICLE", "")

	LogLevel = getEnv("LOG_LEVEL", LogLevel)
	LogFormat = getEnv("LOG_FORMAT", LogFormat)
	LogFile = getEnv("LOG_FILE", "")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("read random session key: %v", err))
	}
	return hex.EncodeToString(buf)
}

func parseInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil {
			return val
		}
	}
	return fallback
}

func parseFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			return val
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
