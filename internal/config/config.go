package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jorgeberrex/mars-api/internal/models"
)

type Config struct {
	// Auth
	Token string

	// Listeners
	HTTPPort int
	WSPort   int
	Debug    bool

	// Stores
	MongoURL  string
	RedisHost string

	// Privacy
	EnableIPHashing bool

	// Webhooks
	PunishmentsWebhookURL string
	ReportsWebhookURL     string
	NotesWebhookURL       string

	// Worker pool
	WorkerCount int
	QueueSize   int

	// Cache lifetimes
	PlayerCacheLifetime time.Duration
	MatchCacheLifetime  time.Duration

	// Static data from YAML files
	Data Data
}

// Data holds the operator-editable YAML datasets served verbatim by the API.
type Data struct {
	LevelColors     []models.LevelColor
	JoinSounds      []models.JoinSound
	Broadcasts      []models.Broadcast
	PunishmentTypes []models.PunishmentType
}

// Load reads configuration from the environment, an optional
// config.properties file, and the YAML data files.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort: getEnvInt("MARS_HTTP_PORT", 8000),
		WSPort:   getEnvInt("MARS_WS_PORT", 7000),
		Debug:    getEnvBool("MARS_DEBUG", false),

		MongoURL:  getEnv("MARS_MONGO_URL", "mongodb://localhost:27017"),
		RedisHost: getEnv("MARS_REDIS_HOST", "localhost:6379"),

		EnableIPHashing: getEnvBool("MARS_ENABLE_IP_HASHING", false),

		WorkerCount: getEnvInt("MARS_WORKER_COUNT", 4),
		QueueSize:   getEnvInt("MARS_QUEUE_SIZE", 10000),

		PlayerCacheLifetime: getEnvDuration("MARS_PLAYER_CACHE_LIFETIME", 3*time.Hour),
		MatchCacheLifetime:  getEnvDuration("MARS_MATCH_CACHE_LIFETIME", 24*time.Hour),
	}

	// A properties file can override the store and webhook settings; env
	// vars still win for everything they set explicitly.
	propsPath := getEnv("MARS_CONFIG_PATH", "./config.properties")
	if props, err := readProperties(propsPath); err == nil {
		applyProperties(cfg, props)
	}

	cfg.PunishmentsWebhookURL = getEnv("MARS_PUNISHMENTS_WEBHOOK_URL", cfg.PunishmentsWebhookURL)
	cfg.ReportsWebhookURL = getEnv("MARS_REPORTS_WEBHOOK_URL", cfg.ReportsWebhookURL)
	cfg.NotesWebhookURL = getEnv("MARS_NOTES_WEBHOOK_URL", cfg.NotesWebhookURL)

	// Critical configuration - fail if missing
	var err error
	if cfg.Token, err = getEnvRequired("MARS_API_TOKEN"); err != nil {
		return nil, err
	}

	if err := loadData(&cfg.Data); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyProperties(cfg *Config, props map[string]string) {
	for k, v := range props {
		switch k {
		case "listen-port":
			if i, err := strconv.Atoi(v); err == nil {
				cfg.HTTPPort = i
			}
		case "socket-port":
			if i, err := strconv.Atoi(v); err == nil {
				cfg.WSPort = i
			}
		case "mongo-url":
			cfg.MongoURL = v
		case "redis-host":
			cfg.RedisHost = v
		case "enable-ip-hashing":
			if b, err := strconv.ParseBool(v); err == nil {
				cfg.EnableIPHashing = b
			}
		case "webhooks.punishments":
			cfg.PunishmentsWebhookURL = v
		case "webhooks.reports":
			cfg.ReportsWebhookURL = v
		case "webhooks.notes":
			cfg.NotesWebhookURL = v
		}
	}
}

func loadData(data *Data) error {
	files := []struct {
		path string
		out  any
	}{
		{getEnv("MARS_LEVEL_COLORS_PATH", "./level_colors.yml"), &data.LevelColors},
		{getEnv("MARS_JOIN_SOUNDS_PATH", "./join_sounds.yml"), &data.JoinSounds},
		{getEnv("MARS_BROADCASTS_PATH", "./broadcasts.yml"), &data.Broadcasts},
		{getEnv("MARS_PUNTYPES_PATH", "./punishment_types.yml"), &data.PunishmentTypes},
	}
	for _, f := range files {
		raw, err := os.ReadFile(f.path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("reading %s: %w", f.path, err)
		}
		if err := yaml.Unmarshal(raw, f.out); err != nil {
			return fmt.Errorf("parsing %s: %w", f.path, err)
		}
	}
	return nil
}

// readProperties parses a minimal java-style properties file: one
// key=value per line, # and ! comments.
func readProperties(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	props := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return props, scanner.Err()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
