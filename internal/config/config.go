// Package config loads parley configuration: defaults, then the config file,
// then PARLEY_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/parleychat/parley/internal/types"
)

// Config is the root configuration structure.
type Config struct {
	Gateway GatewayConfig `mapstructure:"gateway"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Updates UpdatesConfig `mapstructure:"updates"`
	Log     LogConfig     `mapstructure:"log"`
}

// GatewayConfig locates the chat gateway.
type GatewayConfig struct {
	// URL is the websocket endpoint (ws:// or wss://).
	URL string `mapstructure:"url"`

	// Token is the pre-issued auth token; login flows are out of scope.
	Token string `mapstructure:"token"`
}

// ChatConfig controls the conversation list screen.
type ChatConfig struct {
	PageSize       int  `mapstructure:"page_size"`
	IncludeBlocked bool `mapstructure:"include_blocked"`
	Sounds         bool `mapstructure:"sounds"`
	ShowStatus     bool `mapstructure:"show_status"`
	ShowReceipts   bool `mapstructure:"show_receipts"`
}

// UpdatesConfig holds the four update-settings toggles.
type UpdatesConfig struct {
	Replies        bool `mapstructure:"replies"`
	CustomMessages bool `mapstructure:"custom_messages"`
	GroupActions   bool `mapstructure:"group_actions"`
	CallActivities bool `mapstructure:"call_activities"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Settings converts the toggles to the domain type.
func (u UpdatesConfig) Settings() types.UpdateSettings {
	return types.UpdateSettings{
		Replies:        u.Replies,
		CustomMessages: u.CustomMessages,
		GroupActions:   u.GroupActions,
		CallActivities: u.CallActivities,
	}
}

// Load reads configuration from path, or from the default location when path
// is empty. A missing config file is fine; defaults and env still apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PARLEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "parley"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("gateway.url", "ws://localhost:8080/ws")
	v.SetDefault("chat.page_size", 30)
	v.SetDefault("chat.include_blocked", false)
	v.SetDefault("chat.sounds", true)
	v.SetDefault("chat.show_status", true)
	v.SetDefault("chat.show_receipts", true)
	v.SetDefault("updates.replies", true)
	v.SetDefault("updates.custom_messages", true)
	v.SetDefault("updates.group_actions", true)
	v.SetDefault("updates.call_activities", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", defaultLogFile())
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "parley", "parley.log")
}
