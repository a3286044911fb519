package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/calegray/siteshell/internal/nav"
	"github.com/calegray/siteshell/internal/theme"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SITESHELL_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		// A file that declares its own navigation replaces the seed
		// entirely; merging the two would duplicate hrefs.
		if k.Exists("navigation") {
			cfg.Navigation = nil
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SITESHELL_SERVER.PORT -> server.port, etc.
	if err := k.Load(env.Provider("SITESHELL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SITESHELL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. Navigation
// items are validated by building the tree; see Tree.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}

	if len(c.Navigation) == 0 {
		return fmt.Errorf("navigation is required")
	}
	if _, err := nav.NewTree(c.Navigation); err != nil {
		return err
	}

	if c.Theme.Default != "" && !theme.ValidPreference(c.Theme.Default) {
		return fmt.Errorf("invalid theme default %q: must be one of light, dark, high-contrast, system", c.Theme.Default)
	}

	if c.Viewport.DebounceMS < 0 {
		return fmt.Errorf("viewport debounce_ms must be non-negative")
	}
	if c.Viewport.InitialWidth < 0 {
		return fmt.Errorf("viewport initial_width must be non-negative")
	}

	return nil
}

// Tree builds the validated navigation tree from the configured items.
func (c *Config) Tree() (*nav.Tree, error) {
	return nav.NewTree(c.Navigation)
}
