package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
	// MaxSessions caps live viewer sessions
	MaxSessions int `yaml:"maxSessions" validate:"gte=0"`
	// SessionIdleMinutes evicts sessions unused for this long
	SessionIdleMinutes int `yaml:"sessionIdleMinutes" validate:"gte=0"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Path  string `yaml:"path"`
}

// LoaderConfig controls the initial bulk fetch of trace documents
type LoaderConfig struct {
	TimeoutMS   int    `yaml:"timeoutMS" validate:"gte=0"`
	Concurrency int    `yaml:"concurrency" validate:"gte=0"`
	Timezone    string `yaml:"timezone" validate:"omitempty,timezone"`
}

// ViewConfig contains the initial camera and the transition tuning
type ViewConfig struct {
	Longitude    float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
	Latitude     float64 `yaml:"latitude" validate:"gte=-90,lte=90"`
	Zoom         float64 `yaml:"zoom" validate:"gte=0"`
	RetainFactor float64 `yaml:"retainFactor" validate:"gte=0,lt=1"`
	ZoomStep     float64 `yaml:"zoomStep" validate:"gte=0"`
	MaxZoom      float64 `yaml:"maxZoom" validate:"gte=0"`
	TransitionMS int     `yaml:"transitionMS" validate:"gte=0"`
}

// FilterConfig contains the initial filter state
type FilterConfig struct {
	InitialDay string `yaml:"initialDay" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

// ProfileConfig describes the person behind a trace
type ProfileConfig struct {
	Age         int    `yaml:"age" validate:"gte=0"`
	Occupation  string `yaml:"occupation"`
	Description string `yaml:"description"`
}

// TraceConfig is a single trace document to load
type TraceConfig struct {
	Name      string        `yaml:"name" validate:"required"`
	Source    string        `yaml:"source" validate:"required"`
	Format    string        `yaml:"format" validate:"omitempty,oneof=json gtfsrt"`
	VehicleID string        `yaml:"vehicleID"`
	Color     []int         `yaml:"color" validate:"omitempty,len=3,dive,gte=0,lte=255"`
	Profile   ProfileConfig `yaml:"profile"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Loader  LoaderConfig  `yaml:"loader"`
	View    ViewConfig    `yaml:"view"`
	Filter  FilterConfig  `yaml:"filter"`
	Traces  []TraceConfig `yaml:"traces" validate:"dive"`
}
