package report

import (
	"encoding/json"
	"path/filepath"

	"github.com/google/uuid"

	"shadowscan/internal/checker"
	"shadowscan/internal/result"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	toolVersion = "1.0.0"
)

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool              `json:"tool"`
	AutomationDetails sarifAutomationDetails `json:"automationDetails"`
	Results           []sarifResult          `json:"results"`
}

type sarifAutomationDetails struct {
	GUID string `json:"guid"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

var ruleCatalog = []sarifRule{
	{
		ID:               checker.CodeVariable,
		Name:             "BuiltinShadowedByVariable",
		ShortDescription: sarifMessage{Text: "A variable binding shadows a reserved identifier."},
		DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
	},
	{
		ID:               checker.CodeArgument,
		Name:             "BuiltinShadowedByArgument",
		ShortDescription: sarifMessage{Text: "A function argument shadows a reserved identifier."},
		DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
	},
	{
		ID:               checker.CodeClassAttribute,
		Name:             "BuiltinShadowedByClassAttribute",
		ShortDescription: sarifMessage{Text: "A class attribute shadows a reserved identifier."},
		DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
	},
}

// GenerateSARIF builds a SARIF v2.1.0 document. All file URIs are made
// relative to projectRoot; absolute paths are never included so that reports
// are safe to share.
func GenerateSARIF(projectRoot string, files []result.File) ([]byte, error) {
	results := make([]sarifResult, 0, result.Total(files))

	for _, file := range files {
		uri := relativeURI(projectRoot, file.Path)
		for _, f := range file.Findings {
			results = append(results, sarifResult{
				RuleID:  f.Code,
				Level:   "warning",
				Message: sarifMessage{Text: f.Message},
				Locations: []sarifLocation{
					{
						PhysicalLocation: sarifPhysicalLocation{
							ArtifactLocation: sarifArtifactLocation{
								URI:       uri,
								URIBaseID: "%SRCROOT%",
							},
							Region: &sarifRegion{
								StartLine:   f.Line,
								StartColumn: f.Column,
							},
						},
					},
				},
			})
		}
	}

	doc := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    checker.CheckerName,
						Version: toolVersion,
						Rules:   ruleCatalog,
					},
				},
				AutomationDetails: sarifAutomationDetails{GUID: uuid.NewString()},
				Results:           results,
			},
		},
	}

	return json.MarshalIndent(doc, "", "  ")
}

// relativeURI converts an absolute file path to a forward-slash relative URI
// anchored at projectRoot. If the path is already relative or projectRoot is
// empty, the original path (with forward slashes) is returned.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	// SARIF URIs use forward slashes.
	return filepath.ToSlash(filePath)
}
