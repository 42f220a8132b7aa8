package page

import "time"

type Backend string

const (
	BackendHTMLDoc  Backend = "htmldoc"
	BackendChromedp Backend = "chromedp"
)

// Config selects and tunes the session backend.
type Config struct {
	// Backend is the registered backend name. Defaults to htmldoc.
	Backend Backend

	// Timeout bounds navigation / fetching of a single page.
	Timeout time.Duration

	// IdleAfter is how long the network must stay quiet before the
	// chromedp backend considers a page settled.
	IdleAfter time.Duration

	// Headless controls browser visibility for the chromedp backend.
	Headless bool
}

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendHTMLDoc,
		Timeout:   30 * time.Second,
		IdleAfter: 2 * time.Second,
		Headless:  true,
	}
}
