package ast

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Trees serialize with an explicit "kind" discriminant on every node so the
// rule/group distinction survives round-trips through draft files and the
// scratch store, instead of being inferred from which fields happen to be set.

const (
	kindRule  = "rule"
	kindGroup = "group"
)

type ruleDoc struct {
	Kind          string   `yaml:"kind" json:"kind"`
	ID            string   `yaml:"id" json:"id"`
	Attribute     string   `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	Operator      Operator `yaml:"operator,omitempty" json:"operator,omitempty"`
	Value         string   `yaml:"value,omitempty" json:"value,omitempty"`
	Negate        bool     `yaml:"negate,omitempty" json:"negate,omitempty"`
	Disabled      bool     `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	RepeatForEach string   `yaml:"repeat_for_each,omitempty" json:"repeat_for_each,omitempty"`
	BuiltinFn     string   `yaml:"builtin_fn,omitempty" json:"builtin_fn,omitempty"`
}

type groupDoc struct {
	Kind       string  `yaml:"kind" json:"kind"`
	ID         string  `yaml:"id" json:"id"`
	Op         GroupOp `yaml:"op" json:"op"`
	Conditions []any   `yaml:"conditions" json:"conditions"`
}

func (r *Rule) doc() ruleDoc {
	return ruleDoc{
		Kind:          kindRule,
		ID:            r.ID,
		Attribute:     r.Attribute,
		Operator:      r.Operator,
		Value:         r.Value,
		Negate:        r.Negate,
		Disabled:      r.Disabled,
		RepeatForEach: r.RepeatForEach,
		BuiltinFn:     r.BuiltinFn,
	}
}

func (d ruleDoc) rule() *Rule {
	return &Rule{
		ID:            d.ID,
		Attribute:     d.Attribute,
		Operator:      d.Operator,
		Value:         d.Value,
		Negate:        d.Negate,
		Disabled:      d.Disabled,
		RepeatForEach: d.RepeatForEach,
		BuiltinFn:     d.BuiltinFn,
	}
}

func (g *Group) doc() groupDoc {
	doc := groupDoc{
		Kind:       kindGroup,
		ID:         g.ID,
		Op:         g.Op,
		Conditions: make([]any, 0, len(g.Conditions)),
	}
	for _, child := range g.Conditions {
		switch c := child.(type) {
		case *Rule:
			doc.Conditions = append(doc.Conditions, c.doc())
		case *Group:
			doc.Conditions = append(doc.Conditions, c.doc())
		}
	}
	return doc
}

// MarshalJSON encodes the rule with its kind discriminant.
func (r *Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.doc())
}

// UnmarshalJSON decodes a rule node.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var doc ruleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = *doc.rule()
	return nil
}

// MarshalJSON encodes the group and its subtree with kind discriminants.
func (g *Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.doc())
}

// UnmarshalJSON decodes a group node, dispatching each child on its kind.
func (g *Group) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string            `json:"id"`
		Op         GroupOp           `json:"op"`
		Conditions []json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.ID = raw.ID
	g.Op = raw.Op
	g.Conditions = nil
	for i, rawChild := range raw.Conditions {
		var probe struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(rawChild, &probe); err != nil {
			return err
		}
		switch probe.Kind {
		case kindRule:
			var rule Rule
			if err := json.Unmarshal(rawChild, &rule); err != nil {
				return err
			}
			g.Conditions = append(g.Conditions, &rule)
		case kindGroup:
			var sub Group
			if err := json.Unmarshal(rawChild, &sub); err != nil {
				return err
			}
			g.Conditions = append(g.Conditions, &sub)
		default:
			return fmt.Errorf("condition %d: unknown node kind %q", i, probe.Kind)
		}
	}
	return nil
}

// MarshalYAML encodes the group and its subtree with kind discriminants.
func (g *Group) MarshalYAML() (any, error) {
	return g.doc(), nil
}

// UnmarshalYAML decodes a group node, dispatching each child on its kind.
func (g *Group) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		ID         string      `yaml:"id"`
		Op         GroupOp     `yaml:"op"`
		Conditions []yaml.Node `yaml:"conditions"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	g.ID = raw.ID
	g.Op = raw.Op
	g.Conditions = nil
	for i := range raw.Conditions {
		child := &raw.Conditions[i]
		var probe struct {
			Kind string `yaml:"kind"`
		}
		if err := child.Decode(&probe); err != nil {
			return err
		}
		switch probe.Kind {
		case kindRule:
			var doc ruleDoc
			if err := child.Decode(&doc); err != nil {
				return err
			}
			g.Conditions = append(g.Conditions, doc.rule())
		case kindGroup:
			var sub Group
			if err := child.Decode(&sub); err != nil {
				return err
			}
			g.Conditions = append(g.Conditions, &sub)
		default:
			return fmt.Errorf("condition %d: unknown node kind %q", i, probe.Kind)
		}
	}
	return nil
}
