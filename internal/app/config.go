package app

import (
	"github.com/raysh454/formpilot/internal/page"
)

// Config contains the runtime configuration shared by the assistant and its
// collaborators. Kept small; add fields as wiring requires them.
type Config struct {
	// StorageRoot is the base path where the assistant database lives.
	StorageRoot string

	// PageCfg selects and tunes the page session backend.
	PageCfg page.Config
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		StorageRoot: "~/.config/formpilot",
		PageCfg:     page.DefaultConfig(),
	}
}
