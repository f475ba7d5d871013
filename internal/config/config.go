package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"nex-terminal-be/internal/constant"
	"nex-terminal-be/pkg/fallback"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Store  StoreConfig
	Keys   APIKeys
	Studio StudioConfig
	Models ModelsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type StoreConfig struct {
	Driver   string // "redis" or "memory"
	RedisURL string
}

type APIKeys struct {
	OpenRouter  string
	HuggingFace string
	Tavily      string
}

type StudioConfig struct {
	DailyLimit int
}

// ModelsConfig carries the routes resolved once at startup; request handling
// never consults the environment.
type ModelsConfig struct {
	Routes fallback.Routes
}

// hardcodedDefault is the last-resort model identifier.
const hardcodedDefault = "openai/gpt-4o-mini"

// Compiled per-mode defaults, used when the mode env var is unset.
var defaultModels = map[string]string{
	constant.ModeNormal:     "openai/gpt-4o-mini",
	constant.ModePensante:   "openai/gpt-4.1",
	constant.ModeEngenheiro: "deepseek/deepseek-coder",
	constant.ModeRapido:     "mistralai/mistral-small",
}

// Compiled per-mode alternates. A mode missing here has no fallback unless
// its env var supplies one.
var defaultAlternates = map[string]string{
	constant.ModeNormal:     "mistralai/mistral-small",
	constant.ModePensante:   "openai/gpt-4o-mini",
	constant.ModeEngenheiro: "openai/gpt-4o-mini",
}

var modeEnvNames = map[string]string{
	constant.ModeNormal:     "MODEL_NORMAL",
	constant.ModePensante:   "MODEL_PENSANTE",
	constant.ModeEngenheiro: "MODEL_ENGENHEIRO",
	constant.ModeRapido:     "MODEL_RAPIDO",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Store: StoreConfig{
			Driver:   getEnv("KV_DRIVER", "redis"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Keys: APIKeys{
			OpenRouter:  getEnv("OPENROUTER_API_KEY", ""),
			HuggingFace: getEnv("HF_API_KEY", ""),
			Tavily:      getEnv("TAVILY_API_KEY", ""),
		},
		Studio: StudioConfig{
			DailyLimit: getEnvAsInt("STUDIO_DAILY_LIMIT", 2),
		},
		Models: ModelsConfig{
			Routes: loadModelRoutes(),
		},
	}
}

// loadModelRoutes collapses the layered lookup (mode env var -> compiled
// per-mode default -> DEFAULT_MODEL -> hard-coded identifier) into a plain
// mode map, resolved exactly once.
func loadModelRoutes() fallback.Routes {
	globalDefault := getEnv("DEFAULT_MODEL", hardcodedDefault)

	modes := make(map[string]fallback.ModelConfig, len(modeEnvNames))
	for mode, envName := range modeEnvNames {
		primary := getEnv(envName, "")
		if primary == "" {
			primary = defaultModels[mode]
		}
		if primary == "" {
			primary = globalDefault
		}

		alternate := getEnv(envName+"_FALLBACK", "")
		if alternate == "" {
			alternate = defaultAlternates[mode]
		}

		modes[mode] = fallback.ModelConfig{
			Primary:   primary,
			Alternate: alternate,
		}
	}

	var allowed []string
	if raw := getEnv("ALLOWED_MODELS", ""); raw != "" {
		for _, m := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(m); trimmed != "" {
				allowed = append(allowed, trimmed)
			}
		}
	}

	return fallback.Routes{
		Modes:         modes,
		Default:       fallback.ModelConfig{Primary: globalDefault},
		AllowedModels: allowed,
	}
}

func getEnv(key, fallbackValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallbackValue
}

func getEnvAsInt(key string, fallbackValue int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallbackValue
}
