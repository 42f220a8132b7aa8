// Command apiserver runs the FormPilot API server.
// Usage: go run ./cmd/apiserver [-addr :8080] [-backend htmldoc|chromedp]
package main

import (
	"flag"
	"log"

	"github.com/raysh454/formpilot/internal/app"
	"github.com/raysh454/formpilot/internal/page"
	"github.com/raysh454/formpilot/internal/server"

	_ "github.com/raysh454/formpilot/docs/swagger" // swagger spec registration
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	backend := flag.String("backend", string(page.BackendHTMLDoc), "page backend (htmldoc or chromedp)")
	storage := flag.String("storage", "~/.config/formpilot", "storage root directory")
	headless := flag.Bool("headless", true, "run the chromedp backend headless")
	flag.Parse()

	cfg := app.DefaultConfig()
	cfg.StorageRoot = *storage
	cfg.PageCfg.Backend = page.Backend(*backend)
	cfg.PageCfg.Headless = *headless

	srv, err := server.NewServer(server.Config{
		ListenAddr: *addr,
		AppConfig:  cfg,
	})
	if err != nil {
		log.Fatalf("Server setup error: %v", err)
	}
	defer srv.Close()

	log.Printf("FormPilot API listening on %s (backend=%s)", *addr, *backend)
	log.Printf("Swagger UI at http://localhost%s/swagger/index.html", *addr)
	if err := srv.HTTPServer().ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
