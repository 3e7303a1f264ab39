package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"shadowscan/internal/checker"
	"shadowscan/internal/config"
	"shadowscan/internal/history"
	"shadowscan/internal/observability"
	"shadowscan/internal/parser"
	"shadowscan/internal/report"
	"shadowscan/internal/result"
	"shadowscan/internal/scanner"
	"shadowscan/internal/util"
	"shadowscan/internal/watcher"
)

type App struct {
	cfg     *config.Config
	parser  *parser.Parser
	checker *checker.Checker
	scanner *scanner.Scanner
	store   *history.Store
	watcher *watcher.Watcher
}

func NewApp(cfg *config.Config) (*App, error) {
	loader := parser.NewGrammarLoader()

	scan, err := scanner.New(cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, fmt.Errorf("build scanner: %w", err)
	}

	app := &App{
		cfg:     cfg,
		parser:  parser.NewParser(loader),
		checker: checker.New(loader.Python()),
		scanner: scan,
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		app.store = store
	}

	return app, nil
}

// AnalyzeFile parses one Python file and runs the checker over it.
func (a *App) AnalyzeFile(ctx context.Context, path string) (result.File, error) {
	_, span := observability.Tracer.Start(ctx, "app.AnalyzeFile")
	defer span.End()

	parseStart := time.Now()
	tree, source, err := a.parser.ParseFile(path)
	if err != nil {
		return result.File{}, err
	}
	defer tree.Close()
	observability.ParseDuration.Observe(time.Since(parseStart).Seconds())

	analyzeStart := time.Now()
	findings := a.checker.Analyze(tree.RootNode(), source)
	observability.AnalysisDuration.Observe(time.Since(analyzeStart).Seconds())

	observability.FilesScannedTotal.Inc()
	for _, f := range findings {
		observability.FindingsTotal.WithLabelValues(f.Code).Inc()
	}

	return result.File{Path: path, Findings: findings}, nil
}

// AnalyzeSource analyzes raw source text, the path taken for piped input.
func (a *App) AnalyzeSource(ctx context.Context, source []byte) ([]checker.Finding, error) {
	_, span := observability.Tracer.Start(ctx, "app.AnalyzeSource")
	defer span.End()

	tree, err := a.parser.ParseSource(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return a.checker.Analyze(tree.RootNode(), source), nil
}

// ScanAll walks the configured roots and analyzes every Python file found.
// Files that fail to parse are logged and skipped; they never abort the rest
// of the run.
func (a *App) ScanAll(ctx context.Context) ([]result.File, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.ScanAll")
	defer span.End()

	paths, err := a.scanner.Scan(a.cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	files := make([]result.File, 0, len(paths))
	for _, path := range paths {
		file, err := a.AnalyzeFile(ctx, path)
		if err != nil {
			slog.Warn("skipping file", "path", path, "error", err)
			continue
		}
		files = append(files, file)
	}
	return files, nil
}

// AnalyzePaths re-analyzes an explicit set of files, used by watch mode.
func (a *App) AnalyzePaths(ctx context.Context, paths []string) []result.File {
	sort.Strings(paths)

	files := make([]result.File, 0, len(paths))
	for _, path := range paths {
		if !util.FileExists(path) {
			continue
		}
		file, err := a.AnalyzeFile(ctx, path)
		if err != nil {
			slog.Warn("skipping file", "path", path, "error", err)
			continue
		}
		files = append(files, file)
	}
	return files
}

// GenerateOutputs writes the configured report files.
func (a *App) GenerateOutputs(files []result.File) error {
	if a.cfg.Output.JSON != "" {
		data, err := report.GenerateJSON(files)
		if err != nil {
			return fmt.Errorf("generate json report: %w", err)
		}
		if err := util.WriteFileWithDirs(a.cfg.Output.JSON, data, 0o644); err != nil {
			return fmt.Errorf("write json report: %w", err)
		}
	}

	if a.cfg.Output.SARIF != "" {
		data, err := report.GenerateSARIF(util.WorkingDir(), files)
		if err != nil {
			return fmt.Errorf("generate sarif report: %w", err)
		}
		if err := util.WriteFileWithDirs(a.cfg.Output.SARIF, data, 0o644); err != nil {
			return fmt.Errorf("write sarif report: %w", err)
		}
	}

	return nil
}

// RecordHistory persists the run when the history store is enabled.
func (a *App) RecordHistory(files []result.File) {
	if a.store == nil {
		return
	}
	runID, err := a.store.RecordRun(files)
	if err != nil {
		slog.Error("failed to record run", "error", err)
		return
	}
	slog.Debug("recorded run", "run_id", runID, "findings", result.Total(files))
}

// StartWatcher begins watching the configured roots and pushes fresh results
// through onResults after every debounce window.
func (a *App) StartWatcher(onResults func([]result.File)) error {
	w, err := watcher.New(a.cfg.Watch.Debounce, a.cfg.Watch.MaxRescansPerSecond, a.scanner, func(paths []string) {
		files := a.AnalyzePaths(context.Background(), paths)
		a.RecordHistory(files)
		onResults(files)
	})
	if err != nil {
		return err
	}
	if err := w.Watch(a.cfg.Paths); err != nil {
		return err
	}
	a.watcher = w
	return nil
}

func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			return err
		}
	}
	return a.store.Close()
}
