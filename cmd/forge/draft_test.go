package main

import (
	"os"
	"path/filepath"
	"testing"

	"kestrel-hq/forge/pkg/control/ast"
)

func TestReadWriteDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.yaml")
	draft := &ast.Draft{
		ID:         "d1",
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

	if err := writeDraft(path, draft); err != nil {
		t.Fatalf("writeDraft() error = %v", err)
	}

	got, err := readDraft(path)
	if err != nil {
		t.Fatalf("readDraft() error = %v", err)
	}
	if got.Name != "Admin Access" || got.Effect != ast.EffectDeny {
		t.Errorf("draft = %+v", got)
	}
	if got.Conditions == nil || len(got.Conditions.Conditions) != 1 {
		t.Fatalf("conditions did not survive: %+v", got.Conditions)
	}
	rule, ok := got.Conditions.Conditions[0].(*ast.Rule)
	if !ok {
		t.Fatalf("first condition is %T, want *ast.Rule", got.Conditions.Conditions[0])
	}
	if rule.Attribute != "user.role" || rule.Operator != ast.OperatorEqual {
		t.Errorf("rule = %+v", rule)
	}
}

func TestReadDraftNonexistentFile(t *testing.T) {
	if _, err := readDraft(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("readDraft() of missing file succeeded")
	}
}

func TestReadDraftMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("conditions: [not a node"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := readDraft(path); err == nil {
		t.Fatal("readDraft() of malformed YAML succeeded")
	}
}
