// Package result holds the per-file analysis results shared by reporting
// and persistence.
package result

import (
	"shadowscan/internal/checker"
)

// File pairs a source file with its findings, in discovery order.
type File struct {
	Path     string
	Findings []checker.Finding
}

// Total counts findings across all files.
func Total(files []File) int {
	n := 0
	for _, f := range files {
		n += len(f.Findings)
	}
	return n
}

// ByCode tallies findings per message code.
func ByCode(files []File) map[string]int {
	counts := make(map[string]int)
	for _, f := range files {
		for _, finding := range f.Findings {
			counts[finding.Code]++
		}
	}
	return counts
}
