package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const DefaultFile = "config.json"

type Config struct {
	Supabase    SupabaseConfig    `mapstructure:"supabase"`
	GoogleDrive GoogleDriveConfig `mapstructure:"google_drive"`
	Sync        SyncConfig        `mapstructure:"sync"`
	History     HistoryConfig     `mapstructure:"history"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type SupabaseConfig struct {
	EndpointURL     string `mapstructure:"endpoint_url" validate:"required,url"`
	Region          string `mapstructure:"region" validate:"required"`
	BucketName      string `mapstructure:"bucket_name" validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id" validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required"`
}

type GoogleDriveConfig struct {
	AuthMode      string  `mapstructure:"auth_mode" validate:"oneof=oauth session"`
	SessionToken  string  `mapstructure:"session_token" validate:"required_if=AuthMode session"`
	FolderID      string  `mapstructure:"folder_id"`
	Query         string  `mapstructure:"query"`
	MaxFileSizeMB float64 `mapstructure:"max_file_size_mb" validate:"min=0"`
	PageSize      int     `mapstructure:"page_size" validate:"min=1,max=1000"`
	OnPageError   string  `mapstructure:"on_page_error" validate:"oneof=keep-partial abort"`
}

type SyncConfig struct {
	BatchSize               int     `mapstructure:"batch_size" validate:"min=1"`
	DelayBetweenBatches     float64 `mapstructure:"delay_between_batches" validate:"min=0"`
	SkipExisting            bool    `mapstructure:"skip_existing"`
	PreserveFolderStructure bool    `mapstructure:"preserve_folder_structure"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// MaxFileSizeBytes converts the configured ceiling to bytes. Zero disables
// the ceiling.
func (c GoogleDriveConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB * 1024 * 1024)
}

func (c SyncConfig) Delay() time.Duration {
	return time.Duration(c.DelayBetweenBatches * float64(time.Second))
}

func LoadFromFile(filename string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(filename)
	v.SetConfigType("json")

	v.SetEnvPrefix("DRIVESYNC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("google_drive.auth_mode", "oauth")
	v.SetDefault("google_drive.max_file_size_mb", 100)
	v.SetDefault("google_drive.page_size", 100)
	v.SetDefault("google_drive.on_page_error", "keep-partial")

	v.SetDefault("sync.batch_size", 10)
	v.SetDefault("sync.delay_between_batches", 1)
	v.SetDefault("sync.skip_existing", true)
	v.SetDefault("sync.preserve_folder_structure", false)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.db_path", "drivesync.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

func validateConfig(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(cfg)
}
