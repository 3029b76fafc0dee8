package editor

import (
	"fmt"

	"kestrel-hq/forge/pkg/control/ast"
)

// MutationOp names a structured tree edit.
type MutationOp string

const (
	MutationAddRule    MutationOp = "add_rule"
	MutationAddGroup   MutationOp = "add_group"
	MutationRemove     MutationOp = "remove"
	MutationUpdateRule MutationOp = "update_rule"
	MutationToggleOp   MutationOp = "toggle_op"
)

// Mutation is a structured edit request. Backend suggestions carry their
// "implementation" patches in this shape, so applying a suggestion goes
// through exactly the same mutation path (and the same leaf-limit gate) as a
// hand edit in the builder.
type Mutation struct {
	Op      MutationOp `json:"op" yaml:"op"`
	GroupID string     `json:"group_id,omitempty" yaml:"group_id,omitempty"`
	NodeID  string     `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	Index   int        `json:"index,omitempty" yaml:"index,omitempty"`
	Rule    *RulePatch `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// Apply executes a mutation against the tree and returns the updated tree.
// A *LimitError or *UnknownNodeError passes through from the underlying
// operation with the input tree unchanged.
func (e *Editor) Apply(root *ast.Group, m Mutation) (*ast.Group, error) {
	switch m.Op {
	case MutationAddRule:
		next, err := e.AddRule(root, m.GroupID)
		if err != nil {
			return next, err
		}
		// A suggestion can pre-populate the rule it just added.
		if m.Rule != nil {
			added := next
			group := ast.FindGroup(added, m.GroupID)
			last := group.Conditions[len(group.Conditions)-1]
			return e.UpdateRule(added, last.NodeID(), *m.Rule)
		}
		return next, nil
	case MutationAddGroup:
		return e.AddGroup(root, m.GroupID)
	case MutationRemove:
		return e.RemoveAt(root, m.GroupID, m.Index)
	case MutationUpdateRule:
		if m.Rule == nil {
			return root, fmt.Errorf("update_rule mutation requires a rule patch")
		}
		return e.UpdateRule(root, m.NodeID, *m.Rule)
	case MutationToggleOp:
		return e.ToggleOp(root, m.GroupID)
	default:
		return root, fmt.Errorf("unknown mutation op %q", m.Op)
	}
}
