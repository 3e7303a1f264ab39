package report

import (
	"encoding/json"

	"shadowscan/internal/result"
)

type jsonFinding struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Producer string `json:"producer"`
}

type jsonReport struct {
	Findings []jsonFinding `json:"findings"`
	Total    int           `json:"total"`
}

// GenerateJSON renders findings as a flat JSON document in discovery order.
func GenerateJSON(files []result.File) ([]byte, error) {
	doc := jsonReport{Findings: make([]jsonFinding, 0, result.Total(files))}
	for _, file := range files {
		for _, f := range file.Findings {
			doc.Findings = append(doc.Findings, jsonFinding{
				File:     file.Path,
				Line:     f.Line,
				Column:   f.Column,
				Code:     f.Code,
				Message:  f.Message,
				Producer: f.Producer,
			})
		}
	}
	doc.Total = len(doc.Findings)
	return json.MarshalIndent(doc, "", "  ")
}
