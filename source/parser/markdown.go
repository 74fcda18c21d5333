package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/docgraph/source"
	"gopkg.in/yaml.v3"
)

var (
	// headingRe matches ATX headings with the marker captured.
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	// linkRe matches inline markdown links and captures the target.
	linkRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)
)

// MarkdownExtractor extracts front matter, headings, and link references
// from markdown documents.
type MarkdownExtractor struct{}

// NewMarkdownExtractor creates a new markdown extractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

// FileType returns the markdown file-type tag.
func (e *MarkdownExtractor) FileType() source.FileType {
	return source.TypeMarkdown
}

// Extract parses markdown content into a record fragment. Malformed
// front matter degrades to an empty mapping plus a warning; it never
// fails the extraction.
func (e *MarkdownExtractor) Extract(content []byte) *source.Fragment {
	frag := &source.Fragment{}

	body := string(content)
	if strings.HasPrefix(body, "---\n") || strings.HasPrefix(body, "---\r\n") {
		fm, rest, err := splitFrontMatter(body)
		if err != nil {
			frag.Warnings = append(frag.Warnings, fmt.Sprintf("front matter: %v", err))
		} else {
			frag.FrontMatter = fm
			body = rest
		}
	}

	for _, line := range strings.Split(body, "\n") {
		m := headingRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		frag.Headings = append(frag.Headings, source.Heading{
			Level: len(m[1]),
			Text:  m[2],
		})
	}

	if len(frag.Headings) > 0 && frag.Headings[0].Level == 1 {
		frag.Title = frag.Headings[0].Text
	}

	frag.References = extractLinks(body)

	return frag
}

// splitFrontMatter separates the YAML front-matter block from the body.
// The block is delimited by a pair of "---" marker lines at the top of
// the file.
func splitFrontMatter(content string) (map[string]any, string, error) {
	const delimiter = "---"

	start := len(delimiter)
	if len(content) > start && content[start] == '\r' {
		start++
	}
	if len(content) > start && content[start] == '\n' {
		start++
	}

	closeIdx := strings.Index(content[start:], "\n"+delimiter)
	if closeIdx == -1 {
		return nil, content, fmt.Errorf("no closing front-matter delimiter")
	}

	block := content[start : start+closeIdx]

	bodyStart := start + closeIdx + 1 + len(delimiter)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}
	body := ""
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, content, fmt.Errorf("parse YAML front matter: %w", err)
	}

	return fm, body, nil
}

// extractLinks returns the local link targets from markdown content.
// External schemes and pure anchors are skipped; fragment suffixes are
// stripped from local targets.
func extractLinks(body string) []string {
	var refs []string
	seen := make(map[string]bool)

	for _, m := range linkRe.FindAllStringSubmatch(body, -1) {
		target := m[1]
		if strings.HasPrefix(target, "http://") ||
			strings.HasPrefix(target, "https://") ||
			strings.HasPrefix(target, "mailto:") {
			continue
		}
		if idx := strings.Index(target, "#"); idx >= 0 {
			target = target[:idx]
		}
		if target == "" || seen[target] {
			continue
		}
		seen[target] = true
		refs = append(refs, target)
	}

	return refs
}
