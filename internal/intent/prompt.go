package intent

import (
	_ "embed"
	"strings"
)

//go:embed decompose.md
var decomposeTemplate string

// BuildPrompt renders the decomposition prompt for one utterance.
func BuildPrompt(query string) string {
	return strings.ReplaceAll(decomposeTemplate, "{{QUERY}}", query)
}
