package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DiscordToken string `validate:"required"`
	DatabaseURL  string `validate:"required"`

	// Remote console
	MinecraftServerIP string        `validate:"required"`
	RCONPort          int           `validate:"required,min=1,max=65535"`
	RCONPassword      string        `validate:"required"`
	RCONTimeout       time.Duration `validate:"gt=0"`
	MinecraftWorld    string        `validate:"required"`
	MarkerIcon        string        `validate:"required"`
	MarkerY           int

	// Chat routing
	AdminChannelID string        `validate:"required"`
	AddChannelID   string        `validate:"required"`
	DialogTimeout  time.Duration `validate:"gt=0"`
	CommandRate    string        `validate:"required"` // ulule/limiter formatted rate, e.g. "20-M"

	OpsAddr      string // empty disables the ops server
	IsProduction bool
	LogLevel     string `validate:"oneof=debug info warn error"`
}

// requiredKeys are read from the environment with no default.
var requiredKeys = []string{
	"DISCORD_TOKEN",
	"PGSQL_URL",
	"MINECRAFT_SERVER_IP",
	"RCON_PORT",
	"RCON_PASSWORD",
	"ADMIN_CHANNEL_ID",
	"ADD_CHANNEL_ID",
	"MINECRAFT_WORLD",
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Missing required keys fail fast.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DIALOG_TIMEOUT", "60s")
	v.SetDefault("RCON_TIMEOUT", "10s")
	v.SetDefault("MARKER_ICON", "star")
	v.SetDefault("MARKER_Y", 64)
	v.SetDefault("COMMAND_RATE", "20-M")
	v.SetDefault("OPS_ADDR", ":9090")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	dialogTimeout, err := parseDuration(v, "DIALOG_TIMEOUT")
	if err != nil {
		return nil, err
	}
	rconTimeout, err := parseDuration(v, "RCON_TIMEOUT")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DiscordToken:      v.GetString("DISCORD_TOKEN"),
		DatabaseURL:       v.GetString("PGSQL_URL"),
		MinecraftServerIP: v.GetString("MINECRAFT_SERVER_IP"),
		RCONPort:          v.GetInt("RCON_PORT"),
		RCONPassword:      v.GetString("RCON_PASSWORD"),
		RCONTimeout:       rconTimeout,
		MinecraftWorld:    v.GetString("MINECRAFT_WORLD"),
		MarkerIcon:        v.GetString("MARKER_ICON"),
		MarkerY:           v.GetInt("MARKER_Y"),
		AdminChannelID:    v.GetString("ADMIN_CHANNEL_ID"),
		AddChannelID:      v.GetString("ADD_CHANNEL_ID"),
		DialogTimeout:     dialogTimeout,
		CommandRate:       v.GetString("COMMAND_RATE"),
		OpsAddr:           v.GetString("OPS_ADDR"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid configuration: %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.OpsAddr == "" {
		log.Println("Warning: OPS_ADDR is empty. Health and metrics endpoints are disabled.")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}
