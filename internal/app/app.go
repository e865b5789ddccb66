// Package app wires the adapters and the core service together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/paratodos/storefront/config"
	"github.com/paratodos/storefront/internal/adapter/filestore"
	"github.com/paratodos/storefront/internal/adapter/httphandler"
	"github.com/paratodos/storefront/internal/adapter/openai"
	"github.com/paratodos/storefront/internal/adapter/pdftext"
	"github.com/paratodos/storefront/internal/adapter/storage"
	"github.com/paratodos/storefront/internal/core/service"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqldb      storage.SQLDB
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()

	files := app.initFileStore()
	svc := app.initCoreService(files)
	app.initHTTPServer(svc, files)

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initFileStore() filestore.FileStore {
	const op = "App.initFileStore"

	files, err := filestore.New(app.cfg.UploadsDir)
	if err != nil {
		app.fallDown(op, err)
	}
	return files
}

func (app *App) initCoreService(files filestore.FileStore) service.Service {
	const op = "App.initCoreService"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb

	if app.cfg.LLM.APIKey == "" {
		slog.Warn("llm api key is not configured, " +
			"catalog ingestion will extract zero products")
	}

	extractor := openai.NewExtractor(openai.Config{
		APIKey:  app.cfg.LLM.APIKey,
		BaseURL: app.cfg.LLM.BaseURL,
		Model:   app.cfg.LLM.Model,
		Timeout: time.Duration(app.cfg.LLM.TimeoutSeconds) * time.Second,
	})

	return service.New(
		storage.NewStoresRepository(sqldb),
		storage.NewProductsRepository(sqldb),
		storage.NewLeadsRepository(sqldb),
		files,
		pdftext.New(),
		extractor,
		app.cfg.PlaceholderImageURL,
	)
}

func (app *App) initHTTPServer(
	svc service.Service, files filestore.FileStore,
) {
	mux := http.NewServeMux()
	httphandler.RegisterStores(mux, svc)
	httphandler.RegisterProducts(mux, svc)
	httphandler.RegisterLeads(mux, svc)
	httphandler.RegisterUploads(mux, files)

	handler := httphandler.AllowContent(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
