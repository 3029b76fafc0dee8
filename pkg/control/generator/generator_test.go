package generator

import (
	"strings"
	"testing"

	"kestrel-hq/forge/pkg/control/ast"
)

func basicDraft() *ast.Draft {
	return &ast.Draft{
		Name:       "Admin Access",
		ResourceID: "res-42",
		BouncerID:  "pep-7",
		Effect:     ast.EffectDeny,
		Conditions: &ast.Group{
			ID: "root",
			Op: ast.GroupOpAnd,
			Conditions: []ast.Node{
				&ast.Rule{ID: "r1", Attribute: "user.role", Operator: ast.OperatorEqual, Value: "admin"},
			},
		},
	}
}

func TestGenerate_Structure(t *testing.T) {
	got := Generate(basicDraft())

	want := `package policies.admin_access

import future.keywords.in

default deny = false

deny {
    input.resource_id == "res-42"
    input.bouncer_id == "pep-7"
    input.user.role == "admin"
}
`
	if got != want {
		t.Errorf("Generate() =\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	draft := basicDraft()

	first := Generate(draft)
	for i := 0; i < 10; i++ {
		if next := Generate(draft); next != first {
			t.Fatalf("generation diverged on call %d:\n%s\nvs\n%s", i+2, next, first)
		}
	}
}

func TestGenerate_ToggleRoundTripIsIdentity(t *testing.T) {
	draft := basicDraft()
	before := Generate(draft)

	// AND -> OR -> AND restores the exact prior output.
	draft.Conditions.Op = draft.Conditions.Op.Toggle()
	draft.Conditions.Op = draft.Conditions.Op.Toggle()

	if after := Generate(draft); after != before {
		t.Errorf("toggle round trip changed output:\n%s\nvs\n%s", after, before)
	}
}

func TestGenerate_NeverFails(t *testing.T) {
	tests := []struct {
		name  string
		draft *ast.Draft
	}{
		{name: "zero draft", draft: &ast.Draft{}},
		{name: "nil conditions", draft: &ast.Draft{Name: "x", Conditions: nil}},
		{
			name: "empty root group",
			draft: &ast.Draft{
				Name:       "Empty",
				Conditions: &ast.Group{ID: "root", Op: ast.GroupOpAnd},
			},
		},
		{
			name: "incomplete rule",
			draft: &ast.Draft{
				Name: "Partial",
				Conditions: &ast.Group{ID: "root", Op: ast.GroupOpAnd, Conditions: []ast.Node{
					&ast.Rule{ID: "r1"},
				}},
			},
		},
		{
			name: "repeat-for-each marker",
			draft: &ast.Draft{
				Name: "Repeat",
				Conditions: &ast.Group{ID: "root", Op: ast.GroupOpAnd, Conditions: []ast.Node{
					&ast.Rule{ID: "r1", Attribute: "user.groups", Operator: ast.OperatorEqual, Value: "x", RepeatForEach: "user.groups"},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.draft)
			if !strings.HasPrefix(got, "package policies.") {
				t.Errorf("output missing package header:\n%s", got)
			}
			if !strings.HasSuffix(got, "}\n") {
				t.Errorf("output missing clause close:\n%s", got)
			}
		})
	}
}

func TestGenerate_SkipsDisabledRules(t *testing.T) {
	draft := basicDraft()
	draft.Conditions.Conditions = append(draft.Conditions.Conditions,
		&ast.Rule{ID: "r2", Attribute: "user.region", Operator: ast.OperatorEqual, Value: "eu", Disabled: true})

	got := Generate(draft)
	if strings.Contains(got, "user.region") {
		t.Errorf("disabled rule rendered:\n%s", got)
	}
	if !strings.Contains(got, `input.user.role == "admin"`) {
		t.Errorf("enabled rule missing:\n%s", got)
	}
}

func TestGenerate_AllRulesDisabled(t *testing.T) {
	draft := basicDraft()
	for _, rule := range ast.Rules(draft.Conditions) {
		rule.Disabled = true
	}

	got := Generate(draft)

	// Only the resource and bouncer binds remain in the clause body.
	want := `package policies.admin_access

import future.keywords.in

default deny = false

deny {
    input.resource_id == "res-42"
    input.bouncer_id == "pep-7"
}
`
	if got != want {
		t.Errorf("Generate() =\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerate_EmptyEffectDefaultsToAllow(t *testing.T) {
	draft := basicDraft()
	draft.Effect = ""

	got := Generate(draft)
	if !strings.Contains(got, "default allow = false") {
		t.Errorf("empty effect did not default to allow:\n%s", got)
	}
	if !strings.Contains(got, "allow {") {
		t.Errorf("clause head missing for defaulted effect:\n%s", got)
	}
}

func TestGenerate_IncompleteRulePlaceholder(t *testing.T) {
	draft := basicDraft()
	draft.Conditions.Conditions = append(draft.Conditions.Conditions, &ast.Rule{ID: "r2"})

	got := Generate(draft)
	if !strings.Contains(got, "# incomplete condition") {
		t.Errorf("incomplete rule has no placeholder:\n%s", got)
	}
}

func TestGenerate_RequiredAttributes(t *testing.T) {
	draft := basicDraft()
	draft.RequiredAttributes = []string{"user.id", "session.token"}

	got := Generate(draft)
	if !strings.Contains(got, "    input.user.id\n") {
		t.Errorf("required attribute user.id not asserted:\n%s", got)
	}
	if !strings.Contains(got, "    input.session.token\n") {
		t.Errorf("required attribute session.token not asserted:\n%s", got)
	}
}

func TestGenerate_FlattensNestedGroups(t *testing.T) {
	draft := basicDraft()
	draft.Conditions.Conditions = append(draft.Conditions.Conditions, &ast.Group{
		ID: "sub",
		Op: ast.GroupOpOr,
		Conditions: []ast.Node{
			&ast.Rule{ID: "r2", Attribute: "user.dept", Operator: ast.OperatorEqual, Value: "eng"},
		},
	})

	got := Generate(draft)
	if !strings.Contains(got, `input.user.role == "admin"`) {
		t.Errorf("root rule missing:\n%s", got)
	}
	if !strings.Contains(got, `input.user.dept == "eng"`) {
		t.Errorf("nested rule missing from flattened clause:\n%s", got)
	}
	// Flattened order follows document order.
	if strings.Index(got, "user.role") > strings.Index(got, "user.dept") {
		t.Errorf("flattened rules out of document order:\n%s", got)
	}
}

func TestGenerate_Negate(t *testing.T) {
	tests := []struct {
		name string
		rule *ast.Rule
		want string
	}{
		{
			name: "negated equality",
			rule: &ast.Rule{ID: "r1", Attribute: "user.banned", Operator: ast.OperatorEqual, Value: "true", Negate: true},
			want: "not input.user.banned == true",
		},
		{
			name: "negated not-in cancels to plain in",
			rule: &ast.Rule{ID: "r1", Attribute: "user.role", Operator: ast.OperatorNotIn, Value: "admin", Negate: true},
			want: `input.user.role in ["admin"]`,
		},
		{
			name: "negated builtin",
			rule: &ast.Rule{ID: "r1", BuiltinFn: "is_weekend(input.ts)", Negate: true},
			want: "not is_weekend(input.ts)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := basicDraft()
			draft.Conditions.Conditions = []ast.Node{tt.rule}

			got := Generate(draft)
			if !strings.Contains(got, "    "+tt.want+"\n") {
				t.Errorf("Generate() missing %q:\n%s", tt.want, got)
			}
			if strings.Contains(got, "not not ") {
				t.Errorf("stacked negation in output:\n%s", got)
			}
		})
	}
}

func TestGenerate_BuiltinSupplementsAttribute(t *testing.T) {
	draft := basicDraft()
	draft.Conditions.Conditions = []ast.Node{
		&ast.Rule{
			ID:        "r1",
			Attribute: "request.ip",
			Operator:  ast.OperatorNotEqual,
			Value:     "",
			BuiltinFn: `net.cidr_contains("10.0.0.0/8", input.request.ip)`,
		},
	}

	got := Generate(draft)
	if !strings.Contains(got, `net.cidr_contains("10.0.0.0/8", input.request.ip)`) {
		t.Errorf("builtin line missing:\n%s", got)
	}
	if !strings.Contains(got, `input.request.ip != ""`) {
		t.Errorf("attribute comparison missing alongside builtin:\n%s", got)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "spaces", in: "Admin Access", want: "admin_access"},
		{name: "hyphens", in: "deny-after-hours", want: "deny_after_hours"},
		{name: "punctuation dropped", in: "VIP (tier 1)!", want: "vip_tier_1"},
		{name: "leading and trailing space", in: "  padded  ", want: "padded"},
		{name: "empty", in: "", want: "unnamed_policy"},
		{name: "only punctuation", in: "!!!", want: "unnamed_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slug(tt.in); got != tt.want {
				t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
