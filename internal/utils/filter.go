package utils

import "strings"

// javaKeywords are control-flow and declaration tokens the regex layer can
// mistake for method or class names.
var javaKeywords = map[string]bool{
	"if": true, "else": true, "switch": true, "case": true,
	"for": true, "while": true, "do": true, "return": true,
	"new": true, "throw": true, "throws": true,
	"try": true, "catch": true, "finally": true,
	"break": true, "continue": true, "instanceof": true,
}

// frameworkTypes are types that show up as pseudo method names when view
// or response plumbing gets matched by the call patterns.
var frameworkTypes = map[string]bool{
	"modelandview": true, "model": true, "void": true,
	"string": true, "responseentity": true, "optional": true,
}

// IsNoise reports whether a name extracted by the regex layer should be
// dropped from the graph and the reports.
func IsNoise(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return true
	}

	lower := strings.ToLower(trimmed)
	if javaKeywords[lower] || frameworkTypes[lower] {
		return true
	}

	if strings.HasSuffix(trimmed, "Exception") || strings.HasSuffix(trimmed, "Error") {
		return true
	}

	return false
}
