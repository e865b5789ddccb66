package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/paratodos/storefront/config"
	"github.com/paratodos/storefront/internal/app"
	"github.com/paratodos/storefront/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	_ = godotenv.Load()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	storefront.Close(ctx)
}
