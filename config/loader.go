package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied to zero-valued settings after loading
const (
	DefaultPort         = 16182
	DefaultMaxSessions  = 1000
	DefaultIdleMinutes  = 30
	DefaultLogLevel     = "info"
	DefaultTimeoutMS    = 10000
	DefaultConcurrency  = 4
	DefaultTimezone     = "UTC"
	DefaultLongitude    = -0.1278
	DefaultLatitude     = 51.5574
	DefaultZoom         = 11
	DefaultRetainFactor = 0.3
	DefaultZoomStep     = 0.3
	DefaultMaxZoom      = 13
	DefaultTransitionMS = 1000
	DefaultInitialDay   = "Monday"
	DefaultFormat       = "json"
)

// Config is the global application configuration
var Config AppConfig

// searchPaths are tried in order by LoadAppConfig
var searchPaths = []string{"config.yml", "./config/config.yml"}

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	var data []byte
	var err error
	for _, p := range searchPaths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// LoadAppConfigFrom loads the configuration from an explicit path
func LoadAppConfigFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	Config = cfg
	return nil
}

// Parse decodes, defaults and validates a YAML document
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	cfg.ApplyDefaults()
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks struct tags and cross-field rules
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	if cfg.View.MaxZoom < cfg.View.Zoom {
		return errors.New("view.maxZoom must not be below view.zoom")
	}
	seen := map[string]bool{}
	for _, t := range cfg.Traces {
		if seen[t.Name] {
			return fmt.Errorf("duplicate trace name %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// ApplyDefaults fills zero values with their defaults
func (c *AppConfig) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxSessions == 0 {
		c.Server.MaxSessions = DefaultMaxSessions
	}
	if c.Server.SessionIdleMinutes == 0 {
		c.Server.SessionIdleMinutes = DefaultIdleMinutes
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Loader.TimeoutMS == 0 {
		c.Loader.TimeoutMS = DefaultTimeoutMS
	}
	if c.Loader.Concurrency == 0 {
		c.Loader.Concurrency = DefaultConcurrency
	}
	if c.Loader.Timezone == "" {
		c.Loader.Timezone = DefaultTimezone
	}
	if c.View.Longitude == 0 && c.View.Latitude == 0 {
		c.View.Longitude = DefaultLongitude
		c.View.Latitude = DefaultLatitude
	}
	if c.View.Zoom == 0 {
		c.View.Zoom = DefaultZoom
	}
	if c.View.RetainFactor == 0 {
		c.View.RetainFactor = DefaultRetainFactor
	}
	if c.View.ZoomStep == 0 {
		c.View.ZoomStep = DefaultZoomStep
	}
	if c.View.MaxZoom == 0 {
		c.View.MaxZoom = DefaultMaxZoom
	}
	if c.View.TransitionMS == 0 {
		c.View.TransitionMS = DefaultTransitionMS
	}
	if c.Filter.InitialDay == "" {
		c.Filter.InitialDay = DefaultInitialDay
	}
	for i := range c.Traces {
		if c.Traces[i].Format == "" {
			c.Traces[i].Format = DefaultFormat
		}
	}
}
