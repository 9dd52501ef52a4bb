package main

import (
	"context"
	"log"

	"github.com/faithguard/faithguard/internal/app"
	"github.com/faithguard/faithguard/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	// No push provider or geolocation source is wired on this build; both
	// features degrade to disabled.
	a, err := app.New(ctx, cfg, nil, nil)
	if err != nil {
		log.Fatal(err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
