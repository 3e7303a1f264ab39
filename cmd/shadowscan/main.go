package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"shadowscan/internal/config"
	"shadowscan/internal/observability"
	"shadowscan/internal/report"
	"shadowscan/internal/result"
)

var (
	configPath = flag.String("config", "./shadowscan.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run single scan and exit")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode")
	stdin      = flag.Bool("stdin", false, "Analyze source piped on stdin")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("shadowscan v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := io.Writer(os.Stderr)
	if *ui {
		// In UI mode, avoid stderr logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err == nil {
			if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
				output = f
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config; a missing default config file is not an error.
	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) && *configPath == "./shadowscan.toml" {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(2)
		}
	}

	if flag.NArg() > 0 {
		cfg.Paths = flag.Args()
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(2)
	}
	defer app.Close()

	ctx := context.Background()

	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			os.Exit(2)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	if *stdin {
		os.Exit(runStdin(ctx, app))
	}

	// Initial scan
	files, err := app.ScanAll(ctx)
	if err != nil {
		slog.Error("initial scan failed", "error", err)
		os.Exit(2)
	}

	if err := app.GenerateOutputs(files); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}
	app.RecordHistory(files)

	if !*ui {
		if err := report.WriteText(os.Stdout, files); err != nil {
			slog.Error("failed to write findings", "error", err)
			os.Exit(2)
		}
		_ = report.WriteSummary(os.Stderr, files)
	}

	if *once {
		if result.Total(files) > 0 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Watch mode
	if cfg.Observability.MetricsAddr != "" {
		observability.NewServer(cfg.Observability.MetricsAddr).Start()
	}

	if *ui {
		if err := runUI(app, files); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(2)
		}
		return
	}

	if err := app.StartWatcher(func(files []result.File) {
		if err := report.WriteText(os.Stdout, files); err != nil {
			slog.Error("failed to write findings", "error", err)
		}
	}); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(2)
	}

	// Block forever
	select {}
}

func runStdin(ctx context.Context, app *App) int {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		slog.Error("failed to read stdin", "error", err)
		return 2
	}

	findings, err := app.AnalyzeSource(ctx, source)
	if err != nil {
		slog.Error("failed to analyze stdin", "error", err)
		return 2
	}

	files := []result.File{{Path: "stdin", Findings: findings}}
	if err := report.WriteText(os.Stdout, files); err != nil {
		slog.Error("failed to write findings", "error", err)
		return 2
	}
	if len(findings) > 0 {
		return 1
	}
	return 0
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "shadowscan", "shadowscan.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "shadowscan", "shadowscan.log")
	}

	return "shadowscan.log"
}
