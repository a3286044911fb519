package config

import "github.com/calegray/siteshell/internal/nav"

// DefaultNavigation is the seed hierarchy for a freshly initialized site.
func DefaultNavigation() []nav.Item {
	return []nav.Item{
		{ID: "home", Label: "Home", Href: "/", Order: 0},
		{ID: "services", Label: "Services", Href: "/services", Order: 1, Children: []nav.Item{
			{ID: "services-tax", Label: "Tax Services", Href: "/services/tax", Order: 0},
			{ID: "services-advisory", Label: "Advisory", Href: "/services/advisory", Order: 1},
		}},
		{ID: "about", Label: "About", Href: "/about", Order: 2},
		{ID: "contact", Label: "Contact", Href: "/contact", Order: 3},
		{ID: "portal", Label: "Client Portal", Href: "/portal", Order: 4, Visibility: nav.VisibilityAuthenticated},
		{ID: "privacy", Label: "Privacy", Href: "/privacy", Order: 0, Position: nav.PositionSecondary},
		{ID: "terms", Label: "Terms", Href: "/terms", Order: 1, Position: nav.PositionSecondary},
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name: "siteshell",
		},
		Server: ServerConfig{
			Port:    8750,
			DataDir: ".siteshell",
		},
		Navigation: DefaultNavigation(),
		Theme: ThemeConfig{
			StorageKey: "siteshell.theme",
			Default:    "system",
		},
		Viewport: ViewportConfig{
			DebounceMS:   100,
			InitialWidth: 1024,
		},
	}
}
