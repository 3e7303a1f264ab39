package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shadowscan/internal/checker"
	"shadowscan/internal/result"
)

func sampleFiles() []result.File {
	return []result.File{
		{
			Path: "pkg/mod.py",
			Findings: []checker.Finding{
				{
					Line:     3,
					Column:   1,
					Code:     checker.CodeVariable,
					Message:  `A001 "list" shadows a reserved identifier, consider renaming the variable`,
					Producer: checker.CheckerName,
				},
				{
					Line:     7,
					Column:   9,
					Code:     checker.CodeArgument,
					Message:  `A002 "id" is used as an argument and shadows a reserved identifier, consider renaming the argument`,
					Producer: checker.CheckerName,
				},
			},
		},
		{Path: "pkg/clean.py"},
	}
}

func TestWriteText(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteText(&sb, sampleFiles()))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `pkg/mod.py:3:1: A001 "list" shadows a reserved identifier, consider renaming the variable`, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "pkg/mod.py:7:9: A002"))
}

func TestWriteSummary(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteSummary(&sb, sampleFiles()))

	assert.Contains(t, sb.String(), "2 files scanned, 2 findings")
	assert.Contains(t, sb.String(), "A001: 1")
	assert.Contains(t, sb.String(), "A002: 1")
}

func TestGenerateJSON(t *testing.T) {
	data, err := GenerateJSON(sampleFiles())
	require.NoError(t, err)

	var doc struct {
		Findings []struct {
			File     string `json:"file"`
			Line     int    `json:"line"`
			Code     string `json:"code"`
			Producer string `json:"producer"`
		} `json:"findings"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, 2, doc.Total)
	require.Len(t, doc.Findings, 2)
	assert.Equal(t, "pkg/mod.py", doc.Findings[0].File)
	assert.Equal(t, checker.CodeVariable, doc.Findings[0].Code)
	assert.Equal(t, checker.CheckerName, doc.Findings[0].Producer)
}

func TestGenerateSARIF(t *testing.T) {
	data, err := GenerateSARIF("", sampleFiles())
	require.NoError(t, err)

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			AutomationDetails struct {
				GUID string `json:"guid"`
			} `json:"automationDetails"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]

	assert.Equal(t, checker.CheckerName, run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 3)
	assert.NotEmpty(t, run.AutomationDetails.GUID)

	require.Len(t, run.Results, 2)
	assert.Equal(t, checker.CodeVariable, run.Results[0].RuleID)
	require.Len(t, run.Results[0].Locations, 1)
	assert.Equal(t, "pkg/mod.py", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 3, run.Results[0].Locations[0].PhysicalLocation.Region.StartLine)
}

func TestRelativeURI(t *testing.T) {
	assert.Equal(t, "pkg/mod.py", relativeURI("/repo", "/repo/pkg/mod.py"))
	assert.Equal(t, "pkg/mod.py", relativeURI("", "pkg/mod.py"))
}
