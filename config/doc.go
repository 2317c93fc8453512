// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Traces are listed in display order; a trace's position in that list decides
// its default color, and its profile travels with it even when an earlier
// trace fails to load.
package config
