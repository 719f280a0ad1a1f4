package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"smell-bot/internal/config"
	"smell-bot/internal/controller"
	"smell-bot/internal/extract"
	"smell-bot/internal/handler"
	"smell-bot/internal/service"
	"smell-bot/internal/store"
	"smell-bot/pkg/mcp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var configPath = flag.String("config", "", "Path to configuration file (defaults are used when empty)")
	var scanDir = flag.String("scan", "", "Scan a directory, print the JSON report and exit")
	var longMethods = flag.Int("long-methods", -1, "Override the long method threshold")
	var longParameters = flag.Int("long-parameters", -1, "Override the long parameter list threshold")
	var workers = flag.Int("workers", 0, "Override the number of concurrent file workers")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
		cfg = loaded
	}
	applyOverrides(cfg, *longMethods, *longParameters, *workers)
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	logger, err := newLogger(cfg.App, *scanDir != "")
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.Int("long_methods", cfg.Thresholds.LongMethods),
		zap.Int("long_parameter_methods", cfg.Thresholds.LongParameterMethods),
		zap.String("storage", cfg.Storage.Kind))

	ctx := context.Background()

	registry, err := extract.NewDefaultRegistry(cfg.Scanner.Languages...)
	if err != nil {
		logger.Fatal("Failed to initialize extractors", zap.Error(err))
	}
	registry.WithCache(cfg.Scanner.CacheSize)
	defer registry.Close()

	resultStore, err := store.New(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize result store", zap.Error(err))
	}
	defer resultStore.Close(ctx)

	scanner := service.NewScanner(registry, cfg.ModelThresholds(), resultStore, cfg.Scanner, logger)

	if *scanDir != "" {
		if err := runScan(ctx, scanner, *scanDir); err != nil {
			logger.Fatal("Scan failed", zap.Error(err))
		}
		return
	}

	smellController := controller.NewSmellController(scanner, logger)

	var mcpServer *mcp.SmellServer
	if cfg.Mcp.Enabled {
		mcpServer = mcp.NewSmellServer(scanner, logger)
	}

	router := handler.SetupRouter(smellController, mcpServer, cfg.Mcp.Path, logger)

	logger.Info("Starting server", zap.Int("port", cfg.App.Port), zap.Bool("mcp", cfg.Mcp.Enabled))
	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), router); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// applyOverrides replaces config values with command-line flags that were set
func applyOverrides(cfg *config.Config, longMethods, longParameters, workers int) {
	if longMethods >= 0 {
		cfg.Thresholds.LongMethods = longMethods
	}
	if longParameters >= 0 {
		cfg.Thresholds.LongParameterMethods = longParameters
	}
	if workers > 0 {
		cfg.Scanner.Workers = workers
	}
}

// newLogger builds the production logger. In scan mode logs go to stderr so
// stdout only carries the report.
func newLogger(app config.App, scanMode bool) (*zap.Logger, error) {
	cfgZap := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if app.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(app.LogLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	cfgZap.Level.SetLevel(level)

	if len(app.LogOutputs) > 0 {
		cfgZap.OutputPaths = app.LogOutputs
	}
	if scanMode {
		cfgZap.OutputPaths = []string{"stderr"}
	}

	return cfgZap.Build()
}

func runScan(ctx context.Context, scanner *service.Scanner, dir string) error {
	result, err := scanner.ScanDirectory(ctx, dir)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.Report)
}
