// Package history persists analysis runs so finding counts can be compared
// over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"shadowscan/internal/checker"
	"shadowscan/internal/result"
)

const driverName = "sqlite"

// Run summarizes one analysis pass over a file set.
type Run struct {
	ID           string
	Timestamp    time.Time
	FileCount    int
	FindingCount int
	ByCode       map[string]int
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun stores one run plus its findings and returns the run ID.
func (s *Store) RecordRun(results []result.File) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := summarize(results)

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin run transaction: %w", err)
	}

	_, err = tx.Exec(`
INSERT INTO runs (id, ts_utc, file_count, finding_count, a001_count, a002_count, a003_count)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Timestamp.Format(time.RFC3339Nano),
		run.FileCount,
		run.FindingCount,
		run.ByCode[checker.CodeVariable],
		run.ByCode[checker.CodeArgument],
		run.ByCode[checker.CodeClassAttribute],
	)
	if err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, file := range results {
		for _, f := range file.Findings {
			if _, err := tx.Exec(`
INSERT INTO findings (run_id, file, line, col, code, message)
VALUES (?, ?, ?, ?, ?, ?)`,
				run.ID, file.Path, f.Line, f.Column, f.Code, f.Message,
			); err != nil {
				_ = tx.Rollback()
				return "", fmt.Errorf("insert finding for %s: %w", file.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return run.ID, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
SELECT id, ts_utc, file_count, finding_count, a001_count, a002_count, a003_count
FROM runs ORDER BY ts_utc DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run              Run
			ts               string
			a001, a002, a003 int
		)
		if err := rows.Scan(&run.ID, &ts, &run.FileCount, &run.FindingCount, &a001, &a002, &a003); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", ts, err)
		}
		run.ByCode = map[string]int{
			checker.CodeVariable:       a001,
			checker.CodeArgument:       a002,
			checker.CodeClassAttribute: a003,
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func summarize(results []result.File) Run {
	run := Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		FileCount: len(results),
		ByCode:    make(map[string]int),
	}
	for _, file := range results {
		run.FindingCount += len(file.Findings)
		for _, f := range file.Findings {
			run.ByCode[f.Code]++
		}
	}
	return run
}
