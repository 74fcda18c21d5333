package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/docgraph/source"
)

// CodeRules holds the per-language extraction patterns. Each pattern is
// a regular expression with one capture group for the extracted value.
type CodeRules struct {
	// Docstring matches the leading module docstring or comment block.
	Docstring string

	// Class matches class declarations and captures the class name.
	Class string

	// Function matches function declarations and captures the name.
	Function string
}

// DefaultCodeRules returns the built-in extraction patterns for a
// code-like file type.
func DefaultCodeRules(ft source.FileType) CodeRules {
	switch ft {
	case source.TypePython:
		return CodeRules{
			Docstring: `(?s)"""(.*?)"""`,
			Class:     `(?m)^\s*class\s+(\w+)`,
			Function:  `(?m)^\s*def\s+(\w+)`,
		}
	case source.TypeJavaScript, source.TypeTypeScript:
		return CodeRules{
			Docstring: `(?s)/\*\*(.*?)\*/`,
			Class:     `(?m)^\s*(?:export\s+)?class\s+(\w+)`,
			Function:  `(?m)^\s*(?:export\s+)?(?:async\s+)?function\s+(\w+)`,
		}
	default:
		return CodeRules{}
	}
}

// CodeExtractor extracts docstrings, class names, and function names
// from code files using rule-driven patterns.
type CodeExtractor struct {
	fileType  source.FileType
	docstring *regexp.Regexp
	class     *regexp.Regexp
	function  *regexp.Regexp
}

// NewCodeExtractor compiles the given rules into an extractor. An
// invalid pattern is a configuration error and fails construction.
func NewCodeExtractor(ft source.FileType, rules CodeRules) (*CodeExtractor, error) {
	e := &CodeExtractor{fileType: ft}

	var err error
	if rules.Docstring != "" {
		if e.docstring, err = regexp.Compile(rules.Docstring); err != nil {
			return nil, fmt.Errorf("compile docstring pattern for %s: %w", ft, err)
		}
	}
	if rules.Class != "" {
		if e.class, err = regexp.Compile(rules.Class); err != nil {
			return nil, fmt.Errorf("compile class pattern for %s: %w", ft, err)
		}
	}
	if rules.Function != "" {
		if e.function, err = regexp.Compile(rules.Function); err != nil {
			return nil, fmt.Errorf("compile function pattern for %s: %w", ft, err)
		}
	}

	return e, nil
}

// FileType returns the code file-type tag this extractor handles.
func (e *CodeExtractor) FileType() source.FileType {
	return e.fileType
}

// Extract applies the configured patterns to code content. Unmatched
// patterns yield empty lists, not errors.
func (e *CodeExtractor) Extract(content []byte) *source.Fragment {
	frag := &source.Fragment{}
	text := string(content)

	if e.docstring != nil {
		if m := e.docstring.FindStringSubmatch(text); m != nil {
			frag.Docstring = strings.TrimSpace(m[1])
		}
	}
	if e.class != nil {
		for _, m := range e.class.FindAllStringSubmatch(text, -1) {
			frag.Classes = append(frag.Classes, m[1])
		}
	}
	if e.function != nil {
		for _, m := range e.function.FindAllStringSubmatch(text, -1) {
			frag.Functions = append(frag.Functions, m[1])
		}
	}

	return frag
}
