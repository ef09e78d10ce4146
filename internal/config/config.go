package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the service reads at startup.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	DB     DBConfig
	Mail   MailConfig
	Log    LogConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		DB:     loadDBConfig(),
		Mail:   loadMailConfig(),
		Log:    LogConfig{Mode: getEnvOrDefault("LOG_MODE", "dev")},
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// LogConfig selects the logger mode.
type LogConfig struct {
	Mode string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	if strings.Contains(port, ":") {
		// Allow ":5000" or "127.0.0.1:5000" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the generation backend and the fallback policy.
type AIConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	BaseURL   string
	Region    string

	// Models is the ordered provider preference list. Earlier entries are
	// tried first; order changes only by redeploying configuration.
	Models []string

	Temperature *float64
	TopP        *float64
	MaxTokens   *int

	// FallbackDelay is the pause between attempts against distinct models,
	// so consecutive failures do not burst the API into a harder rate limit.
	FallbackDelay time.Duration

	// AttemptTimeout bounds a single provider call.
	AttemptTimeout time.Duration
}

// Enabled reports whether credentials and at least one model are configured.
func (c AIConfig) Enabled() bool {
	return len(c.Models) > 0 && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a chat model bound to one named model from the
// fallback list.
func (c AIConfig) NewChatModel(ctx context.Context, modelName string) (model.ChatModel, error) {
	if modelName == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if c.APIKey == "" && (c.AccessKey == "" || c.SecretKey == "") {
		return nil, fmt.Errorf("ark credentials missing: provide ARK_API_KEY or ARK_ACCESS_KEY + ARK_SECRET_KEY")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       modelName,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	delayMS, err := parseOptionalIntEnv("AI_FALLBACK_DELAY_MS")
	if err != nil {
		return AIConfig{}, err
	}
	delay := 300 * time.Millisecond
	if delayMS != nil {
		delay = time.Duration(*delayMS) * time.Millisecond
	}

	attemptSec, err := parseOptionalIntEnv("AI_ATTEMPT_TIMEOUT_SECONDS")
	if err != nil {
		return AIConfig{}, err
	}
	attemptTimeout := 15 * time.Second
	if attemptSec != nil {
		attemptTimeout = time.Duration(*attemptSec) * time.Second
	}

	return AIConfig{
		APIKey:         strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:      strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:      strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		BaseURL:        getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:         getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Models:         parseListEnv("AI_MODEL_FALLBACKS", os.Getenv("ARK_MODEL")),
		Temperature:    temperature,
		TopP:           topP,
		MaxTokens:      maxTokens,
		FallbackDelay:  delay,
		AttemptTimeout: attemptTimeout,
	}, nil
}

// DBConfig selects the record store backend. A postgres DSN wins when set;
// otherwise an embedded sqlite file is used.
type DBConfig struct {
	PostgresDSN string
	SQLitePath  string
}

func loadDBConfig() DBConfig {
	return DBConfig{
		PostgresDSN: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:  getEnvOrDefault("SQLITE_PATH", "mainframe.db"),
	}
}

// MailConfig describes the SMTP relay for welcome mail.
type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Enabled reports whether the relay is configured.
func (c MailConfig) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

func loadMailConfig() MailConfig {
	return MailConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:     getEnvOrDefault("SMTP_PORT", "587"),
		Username: strings.TrimSpace(os.Getenv("EMAIL_USER")),
		Password: strings.TrimSpace(os.Getenv("EMAIL_PASS")),
		From:     getEnvOrDefault("EMAIL_FROM", `"AshStar Mainframe" <no-reply@ashstar.com>`),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// parseListEnv splits a comma-separated value, falling back to a single
// entry when the list variable is unset.
func parseListEnv(key, fallback string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = strings.TrimSpace(fallback)
	}
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	models := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			models = append(models, trimmed)
		}
	}
	return models
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
