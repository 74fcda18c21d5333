package validate

import (
	"fmt"
	"strings"
)

// RenderReport renders the validation result as a Markdown document.
// The output carries no timestamps or other run-varying content, so
// identical inputs render byte-identical reports.
func RenderReport(result *Result) string {
	var sb strings.Builder

	sb.WriteString("# Documentation Validation Report\n\n")

	verdict := "PASS"
	if !result.Coverage.Pass {
		verdict = "FAIL"
	}
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Verdict**: %s\n", verdict)
	fmt.Fprintf(&sb, "- **Documents**: %d total, %d validated, %d skipped (no schema class)\n",
		result.Coverage.TotalDocuments,
		result.Coverage.ValidatedDocuments,
		result.Coverage.SkippedDocuments)
	fmt.Fprintf(&sb, "- **Issues**: %d critical, %d warning\n\n",
		countSeverity(result, SeverityCritical),
		countSeverity(result, SeverityWarning))

	sb.WriteString("## Coverage\n\n")
	fmt.Fprintf(&sb, "- Orphan documents: %d (max %d) %s\n",
		result.Coverage.OrphanCount, result.Coverage.MaxOrphans,
		passMark(result.Coverage.OrphansPass))
	fmt.Fprintf(&sb, "- Connected documents (>= %d relationships): %d/%d (%.1f%%)\n",
		result.Coverage.MinReferences, result.Coverage.ConnectedCount,
		result.Coverage.TotalDocuments, result.Coverage.ConnectedPercent)
	if result.Coverage.RejectedEdges > 0 {
		fmt.Fprintf(&sb, "- Rejected edges (unknown targets): %d\n", result.Coverage.RejectedEdges)
	}
	for _, cat := range result.Coverage.Categories {
		fmt.Fprintf(&sb, "- %s (%s layer): %d/%d complete (%.1f%%, target %.1f%%) %s\n",
			cat.Name, cat.Layer, cat.Complete, cat.Total,
			cat.Percent, cat.MinPercent, passMark(cat.Pass))
	}
	sb.WriteString("\n")

	var withIssues []*Report
	for _, report := range result.Reports {
		if len(report.Issues) > 0 {
			withIssues = append(withIssues, report)
		}
	}
	if len(withIssues) > 0 {
		sb.WriteString("## Document Issues\n\n")
		for _, report := range withIssues {
			fmt.Fprintf(&sb, "### %s\n\n", report.ID)
			fmt.Fprintf(&sb, "- **Class**: %s\n", report.Class)
			fmt.Fprintf(&sb, "- **Score**: %d\n", report.Score)
			for _, issue := range report.Issues {
				fmt.Fprintf(&sb, "- [%s] %s\n", issue.Severity, issue.Message)
			}
			sb.WriteString("\n")
		}
	}

	if len(result.Skipped) > 0 {
		sb.WriteString("## Coverage Gaps\n\n")
		sb.WriteString("No schema class matches these documents; they are excluded from scoring:\n\n")
		for _, id := range result.Skipped {
			fmt.Fprintf(&sb, "- `%s`\n", id)
		}
		sb.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&sb, "- %s\n", warning)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func countSeverity(result *Result, severity Severity) int {
	n := 0
	for _, report := range result.Reports {
		for _, issue := range report.Issues {
			if issue.Severity == severity {
				n++
			}
		}
	}
	return n
}

func passMark(pass bool) string {
	if pass {
		return "✅"
	}
	return "❌"
}
