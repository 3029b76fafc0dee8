package generator

import (
	"strconv"
	"strings"

	"kestrel-hq/forge/pkg/control/ast"
)

// comparison maps a rule's {attribute, operator, value} to a Rego expression.
// Every operator in the enumerated set produces a distinct, recognizable
// fragment for the same attribute/value pair.
func comparison(r *ast.Rule) string {
	ref := "input." + r.Attribute

	switch r.Operator {
	case ast.OperatorEqual:
		return ref + " == " + literal(r.Value)
	case ast.OperatorNotEqual:
		return ref + " != " + literal(r.Value)
	case ast.OperatorGreaterThan:
		return ref + " > " + literal(r.Value)
	case ast.OperatorLessThan:
		return ref + " < " + literal(r.Value)
	case ast.OperatorGreaterEqual:
		return ref + " >= " + literal(r.Value)
	case ast.OperatorLessEqual:
		return ref + " <= " + literal(r.Value)
	case ast.OperatorIn:
		return ref + " in " + listLiteral(r.Value)
	case ast.OperatorNotIn:
		return "not " + ref + " in " + listLiteral(r.Value)
	case ast.OperatorContains:
		return "contains(" + ref + ", " + quote(r.Value) + ")"
	case ast.OperatorStartsWith:
		return "startswith(" + ref + ", " + quote(r.Value) + ")"
	case ast.OperatorEndsWith:
		return "endswith(" + ref + ", " + quote(r.Value) + ")"
	case ast.OperatorRegex:
		return "regex.match(" + quote(r.Value) + ", " + ref + ")"
	default:
		// Unknown operators still render something inspectable; validation is
		// where they get rejected.
		return "# unsupported operator: " + string(r.Operator)
	}
}

// literal renders a scalar comparison operand: numbers and booleans pass
// through raw, everything else is quoted as a string.
func literal(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "true" || trimmed == "false" {
		return trimmed
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil && trimmed != "" {
		return trimmed
	}
	return quote(value)
}

// listLiteral renders a comma-joined value string as a Rego array with each
// element quoted (or raw, for numeric elements).
func listLiteral(value string) string {
	parts := strings.Split(value, ",")
	elems := make([]string, 0, len(parts))
	for _, part := range parts {
		elems = append(elems, literal(strings.TrimSpace(part)))
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// quote renders a string literal, escaping embedded quotes and backslashes.
func quote(s string) string {
	return strconv.Quote(s)
}
