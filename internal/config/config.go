package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dsharma08k/monday-bi-agent/internal/clean"
)

const (
	defaultMondayAPIURL               = "https://api.monday.com/v2"
	defaultListenAddr                 = ":7860"
	defaultDBPath                     = "./bi-agent.db"
	defaultExternalHTTPTimeoutSeconds = 30
)

type Config struct {
	MondayAPIToken          string `yaml:"monday_api_token"`
	MondayAPIURL            string `yaml:"monday_api_url"`
	MondayDealsBoardID      string `yaml:"monday_deals_board_id"`
	MondayWorkOrdersBoardID string `yaml:"monday_workorders_board_id"`

	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	OpenAIBaseURL   string `yaml:"openai_base_url"`

	ListenAddr                 string `yaml:"listen_addr"`
	DBPath                     string `yaml:"db_path"`
	ColumnMapPath              string `yaml:"column_map_path"`
	AuditSchedule              string `yaml:"audit_schedule"`
	ExternalHTTPTimeoutSeconds int    `yaml:"external_http_timeout_seconds"`
}

// LoadConfig reads config.yaml (or CONFIG_PATH), applies env-var overrides
// and defaults, and fails fast on anything invalid.
func LoadConfig() Config {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.MondayAPIToken, "MONDAY_API_TOKEN")
	envOverride(&cfg.MondayAPIURL, "MONDAY_API_URL")
	envOverride(&cfg.MondayDealsBoardID, "MONDAY_DEALS_BOARD_ID")
	envOverride(&cfg.MondayWorkOrdersBoardID, "MONDAY_WORKORDERS_BOARD_ID")
	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&cfg.OpenAIBaseURL, "OPENAI_BASE_URL")
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ColumnMapPath, "COLUMN_MAP_PATH")
	envOverride(&cfg.AuditSchedule, "AUDIT_SCHEDULE")
	envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS")

	// Defaults
	if cfg.MondayAPIURL == "" {
		cfg.MondayAPIURL = defaultMondayAPIURL
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "anthropic"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = defaultExternalHTTPTimeoutSeconds
	}

	// Validate required fields
	required := map[string]string{
		"monday_api_token":           cfg.MondayAPIToken,
		"monday_deals_board_id":      cfg.MondayDealsBoardID,
		"monday_workorders_board_id": cfg.MondayWorkOrdersBoardID,
	}
	for name, val := range required {
		if val == "" {
			log.Fatalf("Required config '%s' is not set (via config.yaml or env var)", name)
		}
	}

	switch cfg.LLMProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatalf("anthropic_api_key is required when llm_provider=anthropic")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("openai_api_key is required when llm_provider=openai")
		}
	default:
		log.Fatalf("llm_provider must be 'anthropic' or 'openai', got '%s'", cfg.LLMProvider)
	}

	if cfg.ExternalHTTPTimeoutSeconds < 0 {
		log.Fatalf("invalid external_http_timeout_seconds '%d': must be >= 0", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.ColumnMapPath != "" {
		if _, err := clean.LoadColumnMap(cfg.ColumnMapPath); err != nil {
			log.Fatalf("invalid column_map_path '%s': %v", cfg.ColumnMapPath, err)
		}
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
