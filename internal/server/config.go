package server

import (
	"github.com/raysh454/formpilot/internal/app"
	"github.com/raysh454/formpilot/internal/interfaces"
)

// Config configures the API server.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// AppConfig configures the assistant the server wraps. Nil means
	// app.DefaultConfig().
	AppConfig *app.Config

	// Logger is optional; a stdout JSON logger is used when nil.
	Logger interfaces.Logger
}
