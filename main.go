package main

import (
	"context"
	"fmt"
	"net/http/httptest"

	"github.com/raysh454/formpilot/internal/demoserver"
	"github.com/raysh454/formpilot/internal/model"
	"github.com/raysh454/formpilot/internal/page"
	"github.com/raysh454/formpilot/internal/plan"
)

func main() {
	// Serve the demo checkout form in-process
	demo := demoserver.NewDemoServer(demoserver.DefaultConfig())
	server := httptest.NewServer(demo.Handler())
	defer server.Close()

	ctx := context.Background()

	opener := page.NewHTMLDocOpener(page.DefaultConfig(), nil)
	session, err := opener.Open(ctx, server.URL+"/checkout")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer session.Close()

	fields, err := session.Fields(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	profile := model.DefaultProfile()
	profile[model.FieldFullName] = "Jordan Fox"
	profile[model.FieldEmail] = "jordan@example.com"
	profile[model.FieldAddress1] = "1 Main St"
	profile[model.FieldCity] = "Springfield"

	items := plan.Build(fields, profile, model.DefaultSettings())
	for _, item := range items {
		fmt.Printf("%-30s %-12s %-8s %s\n", item.Locator, item.FieldType, item.Action, item.Reason)
	}
}
