package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"slotpatch/core/database"
	"slotpatch/core/logger"
	"slotpatch/core/pipeline"
	"slotpatch/core/scan"
	"slotpatch/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Files names the binaries, the address range file and the translation table.
	Files pipeline.Files `mapstructure:"files"`
	// Scan holds string scanner settings.
	Scan scan.Config `mapstructure:"scan"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the artifact bucket (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the translation memory.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and the .env file in dir.
func LoadConfig(dir string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. FILES_ORIGINAL -> files.original)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
