// Package report renders analysis results in the supported output formats.
package report

import (
	"fmt"
	"io"

	"shadowscan/internal/result"
)

// WriteText prints findings in the conventional linter format,
// file:line:col: message, one per line.
func WriteText(w io.Writer, files []result.File) error {
	for _, file := range files {
		for _, f := range file.Findings {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s\n", file.Path, f.Line, f.Column, f.Message); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSummary prints the per-code totals after a scan.
func WriteSummary(w io.Writer, files []result.File) error {
	counts := result.ByCode(files)
	_, err := fmt.Fprintf(w, "%d files scanned, %d findings (A001: %d, A002: %d, A003: %d)\n",
		len(files), result.Total(files), counts["A001"], counts["A002"], counts["A003"])
	return err
}
