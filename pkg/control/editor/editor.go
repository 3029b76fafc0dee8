// Package editor mutates condition trees in response to discrete builder
// commands, enforcing the tier leaf-limit at the point of mutation.
//
// Every operation follows an immutable-update discipline: the input tree is
// deep-cloned from the root and the clone is mutated and returned, so callers
// can hold the previous tree for undo or comparison and a refused edit
// provably leaves the original untouched.
package editor

import (
	"fmt"

	"github.com/google/uuid"

	"kestrel-hq/forge/pkg/control/ast"
)

// Editor applies tree mutations under a leaf-limit policy.
type Editor struct {
	limit LeafLimit
	newID func() string
}

// New creates an editor with the given leaf limit. Node ids are fresh UUIDs.
func New(limit LeafLimit) *Editor {
	return &Editor{limit: limit, newID: uuid.NewString}
}

// NewWithIDFunc creates an editor with a caller-supplied id allocator.
// Used by tests that need deterministic ids.
func NewWithIDFunc(limit LeafLimit, newID func() string) *Editor {
	return &Editor{limit: limit, newID: newID}
}

// Limit returns the editor's leaf-limit policy.
func (e *Editor) Limit() LeafLimit { return e.limit }

// NewDraft creates an empty draft with a fresh id and an empty AND root group.
func (e *Editor) NewDraft() *ast.Draft {
	return &ast.Draft{
		ID:     e.newID(),
		Effect: ast.EffectAllow,
		Conditions: &ast.Group{
			ID: e.newID(),
			Op: ast.GroupOpAnd,
		},
		Source: ast.SourceTree,
		Status: ast.StatusDraft,
	}
}

// AddRule appends a new rule with a fresh id, default operator "=", and empty
// attribute/value to the group identified by groupID. If the tree is at the
// leaf cap the input tree is returned unchanged with a *LimitError.
func (e *Editor) AddRule(root *ast.Group, groupID string) (*ast.Group, error) {
	if count := ast.CountLeaves(root); !e.limit.Allows(count) {
		return root, &LimitError{Max: e.limit.Max, Count: count}
	}
	next := root.CloneGroup()
	target := ast.FindGroup(next, groupID)
	if target == nil {
		return root, &UnknownNodeError{ID: groupID}
	}
	target.Conditions = append(target.Conditions, &ast.Rule{
		ID:       e.newID(),
		Operator: ast.OperatorEqual,
	})
	return next, nil
}

// AddGroup appends a new empty AND subgroup to the group identified by
// groupID. The same leaf-cap precondition as AddRule applies, since an added
// group exists to hold at least one more rule.
func (e *Editor) AddGroup(root *ast.Group, groupID string) (*ast.Group, error) {
	if count := ast.CountLeaves(root); !e.limit.Allows(count) {
		return root, &LimitError{Max: e.limit.Max, Count: count}
	}
	next := root.CloneGroup()
	target := ast.FindGroup(next, groupID)
	if target == nil {
		return root, &UnknownNodeError{ID: groupID}
	}
	target.Conditions = append(target.Conditions, &ast.Group{
		ID: e.newID(),
		Op: ast.GroupOpAnd,
	})
	return next, nil
}

// RemoveAt removes the child at index from the identified parent group.
// Groups may become empty; there is no minimum-size constraint.
func (e *Editor) RemoveAt(root *ast.Group, parentID string, index int) (*ast.Group, error) {
	next := root.CloneGroup()
	parent := ast.FindGroup(next, parentID)
	if parent == nil {
		return root, &UnknownNodeError{ID: parentID}
	}
	if index < 0 || index >= len(parent.Conditions) {
		return root, fmt.Errorf("index %d out of range for group %q with %d children", index, parentID, len(parent.Conditions))
	}
	parent.Conditions = append(parent.Conditions[:index], parent.Conditions[index+1:]...)
	return next, nil
}

// RulePatch describes a partial update to a rule's fields. Nil fields are
// left unchanged.
type RulePatch struct {
	Attribute     *string       `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Operator      *ast.Operator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value         *string       `json:"value,omitempty" yaml:"value,omitempty"`
	Negate        *bool         `json:"negate,omitempty" yaml:"negate,omitempty"`
	Disabled      *bool         `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	RepeatForEach *string       `json:"repeat_for_each,omitempty" yaml:"repeat_for_each,omitempty"`
	BuiltinFn     *string       `json:"builtin_fn,omitempty" yaml:"builtin_fn,omitempty"`
}

// UpdateRule applies a patch to the rule identified by nodeID.
func (e *Editor) UpdateRule(root *ast.Group, nodeID string, patch RulePatch) (*ast.Group, error) {
	next := root.CloneGroup()
	node := ast.FindNode(next, nodeID)
	rule, ok := node.(*ast.Rule)
	if !ok {
		return root, &UnknownNodeError{ID: nodeID}
	}
	if patch.Attribute != nil {
		rule.Attribute = *patch.Attribute
	}
	if patch.Operator != nil {
		rule.Operator = *patch.Operator
	}
	if patch.Value != nil {
		rule.Value = *patch.Value
	}
	if patch.Negate != nil {
		rule.Negate = *patch.Negate
	}
	if patch.Disabled != nil {
		rule.Disabled = *patch.Disabled
	}
	if patch.RepeatForEach != nil {
		rule.RepeatForEach = *patch.RepeatForEach
	}
	if patch.BuiltinFn != nil {
		rule.BuiltinFn = *patch.BuiltinFn
	}
	return next, nil
}

// ToggleOp flips AND and OR on the group identified by groupID. The toggle
// does not cascade to child groups.
func (e *Editor) ToggleOp(root *ast.Group, groupID string) (*ast.Group, error) {
	next := root.CloneGroup()
	target := ast.FindGroup(next, groupID)
	if target == nil {
		return root, &UnknownNodeError{ID: groupID}
	}
	target.Op = target.Op.Toggle()
	return next, nil
}
