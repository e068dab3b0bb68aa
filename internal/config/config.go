package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. Everything comes from
// the environment; there is no config file.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	// BaseURL is the public address of this server. It is both the OAuth
	// redirect URI and the PayPal return/cancel target, carrying only query
	// parameters on the way back (no path).
	BaseURL string `mapstructure:"BASE_URL"`
	// ClientURL, when set, enables CORS for a separately hosted frontend.
	ClientURL string `mapstructure:"CLIENT_URL"`

	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`

	SessionSigningKey string `mapstructure:"SESSION_SIGNING_KEY"`

	PaypalBaseAPIURL   string `mapstructure:"PAYPAL_BASE_API_URL"`
	PaypalClientID     string `mapstructure:"PAYPAL_CLIENT_ID"`
	PaypalClientSecret string `mapstructure:"PAYPAL_CLIENT_SECRET"`

	// OpenAIAPIKey powers the outfit recommender. Optional: without it the
	// recommender is disabled and add-to-cart simply returns no suggestion.
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("PAYPAL_BASE_API_URL", "https://api-m.sandbox.paypal.com")

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("BASE_URL")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("GOOGLE_CLIENT_ID")
	viper.BindEnv("GOOGLE_CLIENT_SECRET")
	viper.BindEnv("SESSION_SIGNING_KEY")
	viper.BindEnv("PAYPAL_BASE_API_URL")
	viper.BindEnv("PAYPAL_CLIENT_ID")
	viper.BindEnv("PAYPAL_CLIENT_SECRET")
	viper.BindEnv("OPENAI_API_KEY")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.GoogleApplicationCredentials == "" && cfg.FirebaseServiceAccountJSONBase64 == "" {
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}
	if cfg.SessionSigningKey == "" {
		return nil, errors.New("SESSION_SIGNING_KEY is required")
	}
	if cfg.PaypalClientID == "" || cfg.PaypalClientSecret == "" {
		return nil, errors.New("PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET are required")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It will panic if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
