package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	S3            S3Config           `mapstructure:"s3"`
	Auth          AuthConfig         `mapstructure:"auth"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// CredentialConfig is one portal login. Passwords are stored as bcrypt
// hashes, never plaintext.
type CredentialConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
	AccessType   string `mapstructure:"access_type"`
}

// AuthConfig selects the token scheme. "unsigned" reproduces the legacy
// base64 token; "signed" switches to HS256 and requires a secret.
type AuthConfig struct {
	Scheme          string             `mapstructure:"scheme"`
	Secret          string             `mapstructure:"secret"`
	TokenTTL        time.Duration      `mapstructure:"token_ttl"`
	DefaultClientID string             `mapstructure:"default_client_id"`
	Credentials     []CredentialConfig `mapstructure:"credentials"`
}

// NotificationConfig holds the fixed recipients of workflow emails.
type NotificationConfig struct {
	AssessorEmail string `mapstructure:"assessor_email"`
	ClientEmail   string `mapstructure:"client_email"`
	ClientName    string `mapstructure:"client_name"`
}

// ErrConfigMissing is returned when store or blob credentials are absent.
var ErrConfigMissing = errors.New("configuration missing")

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	viper.AutomaticEnv()
	// Use replacer for nested keys e.g., server.address -> SERVER_ADDRESS
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Set default values ---
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "assessment_portal")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("auth.scheme", "unsigned")
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("auth.default_client_id", "default")
	viper.SetDefault("notifications.assessor_email", "assessment@alphacloud.example")
	viper.SetDefault("notifications.client_email", "contact@client.example")
	viper.SetDefault("notifications.client_name", "Client")

	// --- Read Config File ---
	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file not found; rely on defaults and env vars
		err = nil
	} else if err != nil {
		return
	}

	// --- Unmarshal Config ---
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, config.validate()
}

// validate catches fatal misconfiguration before any request is served.
func (c Config) validate() error {
	if c.Database.URI == "" || c.Database.Name == "" {
		return ErrConfigMissing
	}
	if c.S3.BucketName == "" {
		return ErrConfigMissing
	}
	if c.Auth.Scheme == "signed" && c.Auth.Secret == "" {
		return ErrConfigMissing
	}
	return nil
}
