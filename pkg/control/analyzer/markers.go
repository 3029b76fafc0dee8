package analyzer

import (
	"regexp"
	"strings"
)

// marker is a single pattern in the construct catalogue.
type marker struct {
	pattern    *regexp.Regexp
	reason     string
	suggestion string
}

func (m marker) matches(source string) bool {
	return m.pattern.MatchString(source)
}

// advancedMarkers catch constructs the condition tree cannot express at all.
// The catalogue is kept small and specific to minimize false positives.
var advancedMarkers = []marker{
	{
		pattern:    regexp.MustCompile(`\[[^\[\]]*\|[^\[\]]*\]|\{[^{}]*\|[^{}]*\}`),
		reason:     "comprehensions",
		suggestion: "Comprehensions have no visual equivalent; keep editing this policy as code",
	},
	{
		pattern:    regexp.MustCompile(`(?m)^\s*(some|every)\s`),
		reason:     "some/every quantifiers",
		suggestion: "Quantified iteration is only editable as code",
	},
	{
		pattern:    regexp.MustCompile(`(?m)\bwith\s+input\b`),
		reason:     "input replacement via 'with'",
		suggestion: "'with' overrides are only editable as code",
	},
	{
		pattern:    regexp.MustCompile(`(?m)^\w+\([^)]*\)\s*(=|\{)`),
		reason:     "function definitions",
		suggestion: "Helper functions are only editable as code",
	},
	{
		pattern:    regexp.MustCompile(`(?m)^\w+\[[^\]]+\]\s*\{`),
		reason:     "partial set/object rules",
		suggestion: "Multi-value rules are only editable as code",
	},
}

// mediumMarkers catch bulk signals: still representable, just unwieldy.
var mediumMarkers = []marker{
	{
		pattern:    regexp.MustCompile(`\}\s*else\s*`),
		reason:     "else chains",
		suggestion: "Ordered else clauses are easier to follow in the code editor",
	},
	{
		pattern:    regexp.MustCompile(`(?m)^\s{8,}\S`),
		reason:     "deeply indented expressions",
		suggestion: "Deeply nested logic may be clearer as code",
	},
}

// clauseHead matches a rule head opening a clause body at column zero.
var clauseHead = regexp.MustCompile(`(?m)^\w+\s*(=\s*\S+\s*)?\{\s*$`)

// clauseCount counts clause bodies in the document.
func clauseCount(source string) int {
	return len(clauseHead.FindAllString(source, -1))
}

// baseImports are the imports the generator itself emits; anything else is an
// advanced signal.
var baseImports = map[string]bool{
	"future.keywords":    true,
	"future.keywords.in": true,
	"rego.v1":            true,
}

var importLine = regexp.MustCompile(`(?m)^import\s+(\S+)`)

// nonBaseImports returns imports outside the base set, in document order.
func nonBaseImports(source string) []string {
	var extra []string
	for _, match := range importLine.FindAllStringSubmatch(source, -1) {
		path := strings.TrimSpace(match[1])
		if !baseImports[path] {
			extra = append(extra, path)
		}
	}
	return extra
}
