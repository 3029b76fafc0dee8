package templates

import (
	"fmt"
	"testing"

	"kestrel-hq/forge/pkg/control/analyzer"
	"kestrel-hq/forge/pkg/control/ast"
	"kestrel-hq/forge/pkg/control/generator"
	"kestrel-hq/forge/pkg/control/validator"
)

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("n%d", n)
	}
}

func TestAll_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, tmpl := range All() {
		if tmpl.ID == "" {
			t.Errorf("template %q has no id", tmpl.Name)
		}
		if seen[tmpl.ID] {
			t.Errorf("duplicate template id %q", tmpl.ID)
		}
		seen[tmpl.ID] = true
		if tmpl.Name == "" || tmpl.Description == "" {
			t.Errorf("template %q missing name or description", tmpl.ID)
		}
	}
}

func TestByID(t *testing.T) {
	if _, ok := ByID("role-gate"); !ok {
		t.Error("ByID(role-gate) not found")
	}
	if _, ok := ByID("missing"); ok {
		t.Error("ByID(missing) found a template")
	}
}

func TestBuild_ProducesEditableDrafts(t *testing.T) {
	for _, tmpl := range All() {
		t.Run(tmpl.ID, func(t *testing.T) {
			draft := tmpl.Build(sequentialIDs())

			if draft.ID == "" {
				t.Error("built draft has no id")
			}
			if draft.Source != ast.SourceTree {
				t.Errorf("built draft source = %q, want tree", draft.Source)
			}
			if draft.Status != ast.StatusDraft {
				t.Errorf("built draft status = %q, want draft", draft.Status)
			}
			if draft.Conditions == nil || ast.CountLeaves(draft.Conditions) == 0 {
				t.Error("built draft has no starting conditions")
			}

			// Templates start incomplete on purpose (no resource chosen yet),
			// but their trees must pass structural validation.
			err := validator.New().Validate(draft)
			if err != nil {
				draft.ResourceID = "res-1"
				draft.BouncerID = "pep-1"
				if err := validator.New().Validate(draft); err != nil {
					t.Errorf("template tree fails validation beyond target fields: %v", err)
				}
			}
		})
	}
}

func TestBuild_FreshIDsPerInstantiation(t *testing.T) {
	tmpl, _ := ByID("role-gate")

	first := tmpl.Build(sequentialIDs())
	second := tmpl.Build(sequentialIDs())

	// Same allocator sequence gives equal ids, but two builds never share
	// node pointers.
	if first.Conditions == second.Conditions {
		t.Error("two builds share the same tree")
	}
	first.Conditions.Conditions[0].(*ast.Rule).Value = "changed"
	if second.Conditions.Conditions[0].(*ast.Rule).Value == "changed" {
		t.Error("mutating one build leaked into the other")
	}
}

// Template output must stay within what the visual builder can represent.
func TestBuild_GeneratesBasicPolicies(t *testing.T) {
	for _, tmpl := range All() {
		t.Run(tmpl.ID, func(t *testing.T) {
			draft := tmpl.Build(sequentialIDs())
			draft.ResourceID = "res-1"
			draft.BouncerID = "pep-1"

			source := generator.Generate(draft)
			report := analyzer.Analyze(source)
			if report.Level == analyzer.LevelAdvanced {
				t.Errorf("template %q generates advanced output (reasons: %v):\n%s",
					tmpl.ID, report.Reasons, source)
			}
		})
	}
}
