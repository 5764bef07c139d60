package main

import (
	"context"
	"time"

	"github.com/niksmo/electrostyle/config"
	"github.com/niksmo/electrostyle/internal/app"
	"github.com/niksmo/electrostyle/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	storefront.Close(ctx)
}
