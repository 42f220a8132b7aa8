// Command demoserver starts the FormPilot demo form server.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/raysh454/formpilot/internal/demoserver"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   FormPilot Demo Server - Autofill Demo")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("This server provides demo forms for the FormPilot")
	fmt.Println("assistant: a signup form, a checkout form with")
	fmt.Println("payment fields (hard-blocked), and a contact form.")
	fmt.Println()
	fmt.Println("Switch page versions via POST /demo/set-version to")
	fmt.Println("see stale locators surface as not_found at apply time.")
	fmt.Println()

	server := demoserver.NewDemoServer(cfg)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
