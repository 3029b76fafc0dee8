// Package validator checks policy drafts before they are handed to the
// backend: the minimal completeness gate for save/test/deploy, and a
// structural pass over the condition tree that accumulates every problem
// with a suggested fix instead of stopping at the first.
package validator

import (
	"fmt"
	"strings"

	"kestrel-hq/forge/pkg/control/ast"
	ctrlErrors "kestrel-hq/forge/pkg/control/errors"
)

// maxDepth caps group nesting. Deeper trees are almost certainly a runaway
// UI loop rather than a real policy.
const maxDepth = 10

// Validator validates policy drafts.
type Validator struct {
	errors *ctrlErrors.ErrorList
}

// New creates a new draft validator.
func New() *Validator {
	return &Validator{errors: ctrlErrors.NewErrorList()}
}

// Validate performs a full validation pass over the draft: completeness
// gates, effect, and the condition tree. It returns an
// *errors.ErrorList, or nil when the draft is clean.
func (v *Validator) Validate(draft *ast.Draft) error {
	v.errors = ctrlErrors.NewErrorList()

	v.validateCompleteness(draft)
	v.validateEffect(draft)
	v.validateTree(draft.Conditions)

	return v.errors.ToError()
}

// validateCompleteness mirrors the save/test/deploy gate: name, resource, and
// enforcement point must all be non-blank.
func (v *Validator) validateCompleteness(draft *ast.Draft) {
	if strings.TrimSpace(draft.Name) == "" {
		v.errors.Add(&ctrlErrors.Error{
			Type:       ctrlErrors.ErrorTypeValidation,
			Field:      "name",
			Message:    "policy name is required",
			Suggestion: ctrlErrors.SuggestMissingField("name", "'Admin Access'"),
		})
	}
	if strings.TrimSpace(draft.ResourceID) == "" {
		v.errors.Add(&ctrlErrors.Error{
			Type:       ctrlErrors.ErrorTypeValidation,
			Field:      "resource_id",
			Message:    "target resource is required",
			Suggestion: "Select a resource for this policy to protect",
		})
	}
	if strings.TrimSpace(draft.BouncerID) == "" {
		v.errors.Add(&ctrlErrors.Error{
			Type:       ctrlErrors.ErrorTypeValidation,
			Field:      "bouncer_id",
			Message:    "enforcement point is required",
			Suggestion: "Selecting a resource auto-populates its paired enforcement point",
		})
	}
}

func (v *Validator) validateEffect(draft *ast.Draft) {
	if draft.Effect == "" || draft.Effect.Valid() {
		return
	}
	valid := make([]string, 0, len(ast.Effects()))
	for _, e := range ast.Effects() {
		valid = append(valid, string(e))
	}
	v.errors.Add(&ctrlErrors.Error{
		Type:       ctrlErrors.ErrorTypeSemantic,
		Field:      "effect",
		Message:    fmt.Sprintf("unknown effect %q", draft.Effect),
		Suggestion: ctrlErrors.SuggestClosest(string(draft.Effect), valid),
	})
}

// validateTree checks the condition tree: unique node ids, known operators
// and combinators, complete rules, and bounded nesting depth.
func (v *Validator) validateTree(root *ast.Group) {
	if root == nil {
		return
	}
	seen := make(map[string]bool)
	v.validateGroup(root, seen, 1)
}

func (v *Validator) validateGroup(g *ast.Group, seen map[string]bool, depth int) {
	if depth > maxDepth {
		v.errors.AddNodeError(
			ctrlErrors.ErrorTypeStructural,
			g.ID,
			fmt.Sprintf("condition tree exceeds maximum nesting depth of %d", maxDepth),
			"Flatten nested groups or split the policy",
		)
		return
	}

	v.checkID(g.ID, seen)

	if !g.Op.Valid() {
		v.errors.AddNodeError(
			ctrlErrors.ErrorTypeSemantic,
			g.ID,
			fmt.Sprintf("unknown group combinator %q", g.Op),
			ctrlErrors.SuggestClosest(string(g.Op), []string{string(ast.GroupOpAnd), string(ast.GroupOpOr)}),
		)
	}

	for _, child := range g.Conditions {
		switch c := child.(type) {
		case *ast.Rule:
			v.validateRule(c, seen)
		case *ast.Group:
			v.validateGroup(c, seen, depth+1)
		}
	}
}

func (v *Validator) validateRule(r *ast.Rule, seen map[string]bool) {
	v.checkID(r.ID, seen)

	// The operator only participates when the rule compares an attribute;
	// builtin-only rules carry no operator.
	if r.Attribute != "" && !r.Operator.Valid() {
		valid := make([]string, 0, len(ast.Operators()))
		for _, op := range ast.Operators() {
			valid = append(valid, string(op))
		}
		v.errors.AddNodeError(
			ctrlErrors.ErrorTypeSemantic,
			r.ID,
			fmt.Sprintf("unknown operator %q", r.Operator),
			ctrlErrors.SuggestClosest(string(r.Operator), valid),
		)
	}

	if !r.Complete() {
		v.errors.AddNodeError(
			ctrlErrors.ErrorTypeStructural,
			r.ID,
			"condition has no attribute and no builtin function",
			"Pick an attribute (e.g. 'user.role') or a builtin, or remove the condition",
		)
	}
}

func (v *Validator) checkID(id string, seen map[string]bool) {
	if id == "" {
		v.errors.AddError(ctrlErrors.ErrorTypeStructural, "tree node is missing an id")
		return
	}
	if seen[id] {
		v.errors.AddNodeError(
			ctrlErrors.ErrorTypeStructural,
			id,
			fmt.Sprintf("duplicate node id %q", id),
			"",
		)
	}
	seen[id] = true
}
