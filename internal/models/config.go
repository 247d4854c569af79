package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a single invocation. It is
// constructed once in cmd and passed to every component constructor.
type Config struct {
	Hostname       string `mapstructure:"TOAST_HOSTNAME"`
	ClientID       string `mapstructure:"TOAST_CLIENT_ID"`
	ClientSecret   string `mapstructure:"TOAST_CLIENT_SECRET"`
	RestaurantGUID string `mapstructure:"TOAST_RESTAURANT_GUID"`

	TokenCacheFile string        `mapstructure:"TOKEN_CACHE_FILE"`
	MenuCacheFile  string        `mapstructure:"MENU_CACHE_FILE"`
	APITimeout     time.Duration `mapstructure:"API_TIMEOUT"`

	// Restaurant info used on generated menus
	RestaurantName    string `mapstructure:"RESTAURANT_NAME"`
	RestaurantAddress string `mapstructure:"RESTAURANT_ADDRESS"`
	RestaurantPhone   string `mapstructure:"RESTAURANT_PHONE"`
	RestaurantWebsite string `mapstructure:"RESTAURANT_WEBSITE"`
	RestaurantTagline string `mapstructure:"RESTAURANT_TAGLINE"`

	// Report output
	OutputDir     string `mapstructure:"OUTPUT_DIR"`
	UploadEnabled bool   `mapstructure:"REPORT_UPLOAD_ENABLED"`
	S3Bucket      string `mapstructure:"REPORT_S3_BUCKET"`
	S3Region      string `mapstructure:"REPORT_S3_REGION"`
}

// LoadConfig reads configuration from environment variables, with an optional
// .env-style file for local development.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()

	viper.SetDefault("TOAST_HOSTNAME", "")
	viper.SetDefault("TOAST_CLIENT_ID", "")
	viper.SetDefault("TOAST_CLIENT_SECRET", "")
	viper.SetDefault("TOAST_RESTAURANT_GUID", "")
	viper.SetDefault("TOKEN_CACHE_FILE", "token_cache.json")
	viper.SetDefault("MENU_CACHE_FILE", "menu_cache.json")
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("RESTAURANT_NAME", "Restaurant")
	viper.SetDefault("RESTAURANT_ADDRESS", "")
	viper.SetDefault("RESTAURANT_PHONE", "")
	viper.SetDefault("RESTAURANT_WEBSITE", "")
	viper.SetDefault("RESTAURANT_TAGLINE", "")
	viper.SetDefault("OUTPUT_DIR", ".")
	viper.SetDefault("REPORT_UPLOAD_ENABLED", false)
	viper.SetDefault("REPORT_S3_BUCKET", "")
	viper.SetDefault("REPORT_S3_REGION", "us-east-1")

	// Config file is optional; env vars alone are enough
	_ = viper.ReadInConfig()

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Hostname = cleanHostname(config.Hostname)
	return &config, nil
}

func (cfg *Config) validate() error {
	var missing []string
	for name, v := range map[string]string{
		"TOAST_HOSTNAME":        cfg.Hostname,
		"TOAST_CLIENT_ID":       cfg.ClientID,
		"TOAST_CLIENT_SECRET":   cfg.ClientSecret,
		"TOAST_RESTAURANT_GUID": cfg.RestaurantGUID,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if _, err := uuid.Parse(cfg.RestaurantGUID); err != nil {
		return fmt.Errorf("TOAST_RESTAURANT_GUID is not a valid GUID: %w", err)
	}
	if cfg.UploadEnabled && cfg.S3Bucket == "" {
		return fmt.Errorf("REPORT_S3_BUCKET is required when REPORT_UPLOAD_ENABLED is set")
	}
	return nil
}

// cleanHostname strips any protocol prefix; the client always speaks https.
func cleanHostname(hostname string) string {
	hostname = strings.TrimPrefix(hostname, "https://")
	hostname = strings.TrimPrefix(hostname, "http://")
	return strings.TrimSuffix(hostname, "/")
}

// BaseURL returns the https base URL for all API calls.
func (cfg *Config) BaseURL() string {
	return "https://" + cfg.Hostname
}

// AuthHeaders returns the headers every authenticated request carries.
func (cfg *Config) AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization":                "Bearer " + token,
		"Toast-Restaurant-External-ID": cfg.RestaurantGUID,
		"Content-Type":                 "application/json",
	}
}
