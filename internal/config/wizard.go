package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to siteshell! Let's configure your site shell.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.Site.Name,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.Site.Name = name

	// 2. Base URL.
	urlPrompt := promptui.Prompt{
		Label:   "Base URL (used in structured data, optional)",
		Default: "",
	}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.Site.BaseURL = baseURL

	// 3. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. Default theme.
	themePrompt := promptui.Select{
		Label: "Default theme preference",
		Items: []string{"system", "light", "dark", "high-contrast"},
	}
	_, themeStr, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.Theme.Default = themeStr

	// 5. Seed navigation.
	seedPrompt := promptui.Select{
		Label: "Seed the example navigation tree (edit it in the config file afterwards)",
		Items: []string{"yes", "no (start empty)"},
	}
	seedIdx, _, err := seedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("navigation seed: %w", err)
	}
	if seedIdx == 1 {
		cfg.Navigation = nil
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration written to %s\n", path)
	return cfg, nil
}
