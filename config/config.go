// Package config holds the environment-driven settings and the
// manufacturers file. Settings come from the environment (optionally
// via a .env file loaded by main); the manufacturers list lives in a
// JSON file with a fixed external schema.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings is the environment-driven configuration for one run.
type Settings struct {
	// MongoURL is the document-store connection string.
	MongoURL string `mapstructure:"mongo_url"`
	// MongoDB is the document-store database name.
	MongoDB string `mapstructure:"mongo_db"`
	// ProductLimit caps the number of products accumulated per
	// manufacturer. Zero means unlimited. A non-zero limit enables
	// fast mode: image rendering is skipped for the whole run.
	ProductLimit int `mapstructure:"product_limit"`
	// OutputDir is the root of the local extraction tree.
	OutputDir string `mapstructure:"output_dir"`
}

// FastMode reports whether a product cap is configured.
func (s *Settings) FastMode() bool { return s.ProductLimit > 0 }

// Load reads settings from the environment, applying defaults.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetDefault("mongo_url", "mongodb://localhost:27017")
	v.SetDefault("mongo_db", "catalogs")
	v.SetDefault("product_limit", 0)
	v.SetDefault("output_dir", "extracted_data")

	// Bare env names, matching the deployment convention. An env var
	// set to the empty string counts as set, so validation sees it.
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	if err := v.BindEnv("mongo_url", "MONGO_URL"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("mongo_db", "MONGO_DB"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("product_limit", "PRODUCT_LIMIT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("output_dir", "OUTPUT_DIR"); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := validate(&s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// validate checks the loaded settings.
func validate(s *Settings) error {
	if s.MongoURL == "" {
		return fmt.Errorf("document store URL must not be empty (set MONGO_URL)")
	}
	if s.MongoDB == "" {
		return fmt.Errorf("document store database must not be empty (set MONGO_DB)")
	}
	if s.ProductLimit < 0 {
		return fmt.Errorf("product limit must be >= 0, got %d", s.ProductLimit)
	}
	return nil
}
