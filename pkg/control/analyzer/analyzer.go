// Package analyzer classifies Rego source text by how faithfully the visual
// condition-tree builder can still represent it.
//
// The analysis is deliberately heuristic: a conservative catalogue of textual
// markers, not a parser. Constructs the tree cannot express (comprehensions,
// quantifiers, helper rules, extra imports) push a policy to "advanced";
// bulk signals (many clauses, deep nesting, else chains) make it "medium".
// Missing an advanced construct is acceptable; flagging a representable
// policy is what the small catalogue guards against.
package analyzer

import "strings"

// Level classifies how adequate the visual builder remains for a policy.
type Level string

const (
	// LevelBasic: the tree editor can represent the policy faithfully.
	LevelBasic Level = "basic"

	// LevelMedium: representable, but bulky enough that the text editor may
	// be more comfortable.
	LevelMedium Level = "medium"

	// LevelAdvanced: the source uses constructs the tree cannot express;
	// editing through the tree would silently drop them.
	LevelAdvanced Level = "advanced"
)

// Report is the outcome of analyzing a policy source document.
type Report struct {
	Level       Level    `json:"level"`
	Reasons     []string `json:"reasons,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// mediumClauseThreshold is the clause count above which a policy is
// considered bulky.
const mediumClauseThreshold = 3

// Analyze inspects Rego source text and classifies it. It never fails; empty
// input is simply basic.
func Analyze(source string) Report {
	report := Report{Level: LevelBasic}
	if strings.TrimSpace(source) == "" {
		return report
	}

	for _, m := range advancedMarkers {
		if m.matches(source) {
			report.Reasons = append(report.Reasons, m.reason)
			report.Suggestions = append(report.Suggestions, m.suggestion)
		}
	}
	if extra := nonBaseImports(source); len(extra) > 0 {
		report.Reasons = append(report.Reasons,
			"imports beyond the base set: "+strings.Join(extra, ", "))
		report.Suggestions = append(report.Suggestions,
			"Extra imports are kept only in the code editor; the visual builder does not manage them")
	}
	if len(report.Reasons) > 0 {
		report.Level = LevelAdvanced
		return report
	}

	if n := clauseCount(source); n > mediumClauseThreshold {
		report.Reasons = append(report.Reasons, "policy has more clauses than the builder displays comfortably")
		report.Suggestions = append(report.Suggestions, "Consider splitting into multiple policies")
	}
	for _, m := range mediumMarkers {
		if m.matches(source) {
			report.Reasons = append(report.Reasons, m.reason)
			report.Suggestions = append(report.Suggestions, m.suggestion)
		}
	}
	if len(report.Reasons) > 0 {
		report.Level = LevelMedium
	}

	return report
}
