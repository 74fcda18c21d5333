package validate

import (
	"testing"

	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/registry"
	"github.com/c360studio/docgraph/source"
	"github.com/stretchr/testify/assert"
)

func reportFixture() *Result {
	schema := &config.Schema{
		Classes: []config.ClassSchema{
			{
				Name:             "prompt-module",
				Paths:            []string{"modules/"},
				RequiredFields:   []string{"name"},
				RequiredSections: []string{"prompt"},
			},
		},
		Coverage: config.CoverageThresholds{MaxOrphans: 0},
	}

	reg := &registry.Registry{Docs: map[string]*source.DocumentRecord{
		"modules/a.md": {ID: "modules/a.md", Layer: source.LayerPrompts},
		"scripts/x.py": {ID: "scripts/x.py", Layer: source.LayerCode},
	}}
	g := graph.NewGraph(reg.IDs())

	return NewValidator(schema).ValidateAll(reg, g)
}

func TestRenderReport_Sections(t *testing.T) {
	out := RenderReport(reportFixture())

	assert.Contains(t, out, "# Documentation Validation Report")
	assert.Contains(t, out, "- **Verdict**: FAIL")
	assert.Contains(t, out, "## Coverage")
	assert.Contains(t, out, "### modules/a.md")
	assert.Contains(t, out, "[critical] missing field: name")
	assert.Contains(t, out, "[critical] missing section: prompt")
	assert.Contains(t, out, "## Coverage Gaps")
	assert.Contains(t, out, "`scripts/x.py`")
}

func TestRenderReport_Deterministic(t *testing.T) {
	assert.Equal(t, RenderReport(reportFixture()), RenderReport(reportFixture()))
}

func TestRenderReport_PassVerdict(t *testing.T) {
	result := &Result{Coverage: &CoverageReport{Pass: true, OrphansPass: true}}
	out := RenderReport(result)
	assert.Contains(t, out, "- **Verdict**: PASS")
	assert.NotContains(t, out, "## Document Issues")
}
