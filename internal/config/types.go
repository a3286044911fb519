package config

import "github.com/calegray/siteshell/internal/nav"

// Config is the top-level siteshell configuration, corresponding to
// siteshell.yml.
type Config struct {
	Site        SiteConfig       `yaml:"site" koanf:"site"`
	Server      ServerConfig     `yaml:"server" koanf:"server"`
	Navigation  []nav.Item       `yaml:"navigation" koanf:"navigation"`
	Breadcrumbs BreadcrumbConfig `yaml:"breadcrumbs" koanf:"breadcrumbs"`
	Theme       ThemeConfig      `yaml:"theme" koanf:"theme"`
	Viewport    ViewportConfig   `yaml:"viewport" koanf:"viewport"`
}

// SiteConfig identifies the site the shell serves.
type SiteConfig struct {
	Name    string `yaml:"name" koanf:"name"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int    `yaml:"port" koanf:"port"`
	DataDir  string `yaml:"data_dir" koanf:"data_dir"` // SQLite preference store lives here
	AllowAll bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// BreadcrumbConfig tunes trail derivation.
type BreadcrumbConfig struct {
	// Exclude lists doublestar globs of routes that get no trail.
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// ThemeConfig holds theme persistence settings.
type ThemeConfig struct {
	StorageKey string `yaml:"storage_key" koanf:"storage_key"`
	Default    string `yaml:"default" koanf:"default"`
}

// ViewportConfig tunes breakpoint classification.
type ViewportConfig struct {
	DebounceMS   int `yaml:"debounce_ms" koanf:"debounce_ms"`
	InitialWidth int `yaml:"initial_width" koanf:"initial_width"`
}
