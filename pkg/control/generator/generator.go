// Package generator renders a policy draft into Rego source text.
//
// Generation is a pure function of the draft's current field values: the same
// draft always yields byte-identical output, and no well-formed draft can
// make it fail. It is also one-directional; there is no reverse parse from
// edited source text back into a condition tree. Callers track that
// divergence through the draft's SourceKind.
package generator

import (
	"strings"

	"kestrel-hq/forge/pkg/control/ast"
)

// packagePrefix is the fixed module-path prefix every generated policy
// package lives under.
const packagePrefix = "policies"

// indent is the clause-body indentation.
const indent = "    "

// Generate renders the draft into Rego source text.
//
// The emitted document is: a package header derived from the draft name, a
// default-false declaration for the effect, and a single clause binding the
// target resource and enforcement point, asserting any required attributes,
// and emitting one comparison line per enabled rule in the flattened
// condition tree. Disabled rules stay in the tree but contribute nothing.
//
// The flattening mirrors the builder it was lifted from: clause bodies are
// conjunctions, so every leaf rule lands as an AND-ed line in document order
// regardless of its group's combinator. Disjunctive trees are therefore
// approximated; the complexity analyzer is what nudges users toward the raw
// text editor when that matters.
func Generate(draft *ast.Draft) string {
	effect := string(draft.Effect)
	if effect == "" {
		effect = string(ast.EffectAllow)
	}

	var sb strings.Builder

	sb.WriteString("package ")
	sb.WriteString(packagePrefix)
	sb.WriteString(".")
	sb.WriteString(slug(draft.Name))
	sb.WriteString("\n\n")

	sb.WriteString("import future.keywords.in\n\n")

	sb.WriteString("default ")
	sb.WriteString(effect)
	sb.WriteString(" = false\n\n")

	sb.WriteString(effect)
	sb.WriteString(" {\n")

	sb.WriteString(indent)
	sb.WriteString(`input.resource_id == "`)
	sb.WriteString(draft.ResourceID)
	sb.WriteString("\"\n")

	sb.WriteString(indent)
	sb.WriteString(`input.bouncer_id == "`)
	sb.WriteString(draft.BouncerID)
	sb.WriteString("\"\n")

	for _, attr := range draft.RequiredAttributes {
		sb.WriteString(indent)
		sb.WriteString("input.")
		sb.WriteString(attr)
		sb.WriteString("\n")
	}

	for _, rule := range ast.Rules(draft.Conditions) {
		if rule.Disabled {
			continue
		}
		for _, line := range ruleLines(rule) {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("}\n")

	return sb.String()
}

// ruleLines renders a single rule into clause-body lines. Incomplete rules
// produce a best-effort comment placeholder rather than an error.
func ruleLines(r *ast.Rule) []string {
	if !r.Complete() {
		return []string{"# incomplete condition: set an attribute or builtin"}
	}

	var lines []string

	// A builtin call stands on its own truthy line. When an attribute is also
	// set, the builtin supplements the comparison rather than replacing it.
	if r.BuiltinFn != "" {
		lines = append(lines, applyNegate(r.BuiltinFn, r.Negate))
	}

	if r.Attribute != "" {
		lines = append(lines, applyNegate(comparison(r), r.Negate))
	}

	return lines
}

// applyNegate logically inverts an expression with Rego's "not" keyword.
// A double negation cancels instead of stacking.
func applyNegate(expr string, negate bool) string {
	if !negate {
		return expr
	}
	if stripped, ok := strings.CutPrefix(expr, "not "); ok {
		return stripped
	}
	return "not " + expr
}

// slug derives the package name segment from a policy name: lower-cased,
// spaces collapsed to underscores, everything else non-alphanumeric dropped.
func slug(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		case r == ' ' || r == '-':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "unnamed_policy"
	}
	return sb.String()
}
