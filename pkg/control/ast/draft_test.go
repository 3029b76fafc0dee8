package ast

import "testing"

func TestDraft_ReadyToPersist(t *testing.T) {
	tests := []struct {
		name     string
		draft    *Draft
		want     bool
	}{
		{
			name:  "all three set",
			draft: &Draft{Name: "Admin Access", ResourceID: "res-1", BouncerID: "pep-1"},
			want:  true,
		},
		{
			name:  "missing name",
			draft: &Draft{ResourceID: "res-1", BouncerID: "pep-1"},
			want:  false,
		},
		{
			name:  "missing resource",
			draft: &Draft{Name: "Admin Access", BouncerID: "pep-1"},
			want:  false,
		},
		{
			name:  "missing bouncer",
			draft: &Draft{Name: "Admin Access", ResourceID: "res-1"},
			want:  false,
		},
		{
			name:  "only name set",
			draft: &Draft{Name: "Admin Access"},
			want:  false,
		},
		{
			name:  "only resource set",
			draft: &Draft{ResourceID: "res-1"},
			want:  false,
		},
		{
			name:  "only bouncer set",
			draft: &Draft{BouncerID: "pep-1"},
			want:  false,
		},
		{
			name:  "whitespace-only name",
			draft: &Draft{Name: "   ", ResourceID: "res-1", BouncerID: "pep-1"},
			want:  false,
		},
		{
			name:  "whitespace-only resource",
			draft: &Draft{Name: "Admin Access", ResourceID: "\t\n", BouncerID: "pep-1"},
			want:  false,
		},
		{
			name:  "everything empty",
			draft: &Draft{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.ReadyToPersist(); got != tt.want {
				t.Errorf("ReadyToPersist() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDraft_Clone(t *testing.T) {
	original := &Draft{
		ID:                 "d1",
		Name:               "Admin Access",
		ResourceID:         "res-1",
		BouncerID:          "pep-1",
		Effect:             EffectAllow,
		RequiredAttributes: []string{"user.id"},
		Conditions: &Group{ID: "root", Op: GroupOpAnd, Conditions: []Node{
			&Rule{ID: "r1", Attribute: "user.role", Operator: OperatorEqual, Value: "admin"},
		}},
		ContextConfig: map[string]any{"enrich": true},
	}

	clone := original.Clone()
	clone.Name = "Changed"
	clone.RequiredAttributes[0] = "other"
	clone.Conditions.Conditions[0].(*Rule).Value = "viewer"
	clone.ContextConfig["enrich"] = false

	if original.Name != "Admin Access" {
		t.Errorf("clone mutation changed original name: %q", original.Name)
	}
	if original.RequiredAttributes[0] != "user.id" {
		t.Errorf("clone mutation changed original required attributes: %v", original.RequiredAttributes)
	}
	if got := original.Conditions.Conditions[0].(*Rule).Value; got != "admin" {
		t.Errorf("clone mutation changed original tree: value = %q", got)
	}
	if original.ContextConfig["enrich"] != true {
		t.Errorf("clone mutation changed original context config")
	}
}

func TestEffect_Valid(t *testing.T) {
	for _, e := range Effects() {
		if !e.Valid() {
			t.Errorf("enumerated effect %q reported invalid", e)
		}
	}
	if Effect("permit").Valid() {
		t.Errorf("Effect(permit).Valid() = true, want false")
	}
	if Effect("").Valid() {
		t.Errorf("empty effect reported valid")
	}
}

func TestOperator_Valid(t *testing.T) {
	for _, op := range Operators() {
		if !op.Valid() {
			t.Errorf("enumerated operator %q reported invalid", op)
		}
	}
	if Operator("==").Valid() {
		t.Errorf("Operator(==).Valid() = true, want false")
	}
}

func TestRule_Complete(t *testing.T) {
	tests := []struct {
		name string
		rule *Rule
		want bool
	}{
		{name: "attribute only", rule: &Rule{Attribute: "user.role"}, want: true},
		{name: "builtin only", rule: &Rule{BuiltinFn: "time.weekday(now)"}, want: true},
		{name: "both", rule: &Rule{Attribute: "a", BuiltinFn: "b"}, want: true},
		{name: "neither", rule: &Rule{ID: "r1", Operator: OperatorEqual, Value: "x"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
