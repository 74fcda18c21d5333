package validate

import (
	"testing"

	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
	"github.com/c360studio/docgraph/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptSchema() *config.Schema {
	return &config.Schema{
		Classes: []config.ClassSchema{
			{
				Name:             "prompt-module",
				Paths:            []string{"modules/"},
				RequiredFields:   []string{"name", "version"},
				RequiredSections: []string{"purpose", "prompt"},
			},
		},
	}
}

func TestValidateDocument_MissingRequiredSection(t *testing.T) {
	v := NewValidator(promptSchema())

	doc := &source.DocumentRecord{
		ID:       "modules/planner.md",
		Layer:    source.LayerPrompts,
		Metadata: source.Metadata{Name: "Module_Planner", Version: "1.0"},
		Sections: []source.Heading{
			{Level: 1, Text: "Planner"},
			{Level: 2, Text: "Purpose"},
		},
	}

	report, ok := v.ValidateDocument(doc)
	require.True(t, ok)

	assert.Equal(t, "prompt-module", report.Class)
	assert.Equal(t, []string{"prompt"}, report.RequiredMissing)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, SeverityCritical, report.Issues[0].Severity)
	assert.Equal(t, "missing section: prompt", report.Issues[0].Message)
	// Three of four required criteria present.
	assert.Equal(t, 75, report.Score)
	assert.False(t, report.Complete())
}

func TestValidateDocument_FullyComplete(t *testing.T) {
	v := NewValidator(promptSchema())

	doc := &source.DocumentRecord{
		ID:       "modules/planner.md",
		Metadata: source.Metadata{Name: "Module_Planner", Version: "1.0"},
		Sections: []source.Heading{
			{Level: 2, Text: "Purpose"},
			{Level: 2, Text: "Prompt Template"},
		},
	}

	report, ok := v.ValidateDocument(doc)
	require.True(t, ok)

	assert.Equal(t, 100, report.Score)
	assert.True(t, report.Complete())
	assert.Empty(t, report.Issues)
}

func TestValidateDocument_VacuousClassScoresFull(t *testing.T) {
	schema := &config.Schema{
		Classes: []config.ClassSchema{{Name: "anything", Paths: []string{"misc/"}}},
	}
	v := NewValidator(schema)

	report, ok := v.ValidateDocument(&source.DocumentRecord{ID: "misc/note.md"})
	require.True(t, ok)
	assert.Equal(t, 100, report.Score)
	assert.True(t, report.Complete())
}

func TestValidateDocument_NoMatchingClassSkips(t *testing.T) {
	v := NewValidator(promptSchema())

	report, ok := v.ValidateDocument(&source.DocumentRecord{ID: "scripts/run.py"})
	assert.False(t, ok)
	assert.Nil(t, report)
}

func TestValidateDocument_RecommendedMissesAreWarnings(t *testing.T) {
	schema := &config.Schema{
		Classes: []config.ClassSchema{
			{
				Name:                "doc",
				Paths:               []string{"docs/"},
				RequiredSections:    []string{"overview"},
				RecommendedFields:   []string{"version"},
				RecommendedSections: []string{"examples"},
			},
		},
	}
	v := NewValidator(schema)

	doc := &source.DocumentRecord{
		ID:       "docs/guide.md",
		Sections: []source.Heading{{Level: 2, Text: "Overview"}},
	}

	report, ok := v.ValidateDocument(doc)
	require.True(t, ok)

	assert.Empty(t, report.RequiredMissing)
	assert.Equal(t, []string{"version", "examples"}, report.RecommendedMissing)
	for _, issue := range report.Issues {
		assert.Equal(t, SeverityWarning, issue.Severity)
	}
	// One of three criteria present.
	assert.Equal(t, 33, report.Score)
}

func TestValidateDocument_DegradedRecordGetsInfoIssue(t *testing.T) {
	v := NewValidator(promptSchema())

	doc := &source.DocumentRecord{
		ID:    "modules/broken.md",
		Error: "invalid UTF-8 encoding",
	}

	report, ok := v.ValidateDocument(doc)
	require.True(t, ok)

	// All four criteria fail against empty content.
	assert.Equal(t, 0, report.Score)
	require.NotEmpty(t, report.Issues)
	assert.Equal(t, SeverityInfo, report.Issues[0].Severity)
	assert.Contains(t, report.Issues[0].Message, "degraded record")
}

func TestValidateAll_AggregatesAndSorts(t *testing.T) {
	v := NewValidator(promptSchema())

	reg := &registry.Registry{
		Docs: map[string]*source.DocumentRecord{
			"modules/b.md": {ID: "modules/b.md"},
			"modules/a.md": {ID: "modules/a.md"},
			"scripts/x.py": {ID: "scripts/x.py"},
		},
		Warnings: []string{"modules/b.md: front matter: parse error"},
	}
	g := graph.NewGraph(reg.IDs())
	g.Warnings = append(g.Warnings, "modules/a.md: dependency \"gone.md\" does not resolve to a known document")

	result := v.ValidateAll(reg, g)

	require.Len(t, result.Reports, 2)
	assert.Equal(t, "modules/a.md", result.Reports[0].ID)
	assert.Equal(t, "modules/b.md", result.Reports[1].ID)
	assert.Equal(t, []string{"scripts/x.py"}, result.Skipped)
	require.NotNil(t, result.Coverage)
	assert.Equal(t, 3, result.Coverage.TotalDocuments)
	assert.Equal(t, 2, result.Coverage.ValidatedDocuments)
	assert.Equal(t, 1, result.Coverage.SkippedDocuments)
	assert.Len(t, result.Warnings, 2)
}

func TestScore_Rounding(t *testing.T) {
	assert.Equal(t, 100, score(0, 0))
	assert.Equal(t, 67, score(2, 3))
	assert.Equal(t, 33, score(1, 3))
	assert.Equal(t, 0, score(0, 4))
	assert.Equal(t, 100, score(4, 4))
}
