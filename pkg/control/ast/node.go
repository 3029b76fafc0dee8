package ast

// GroupOp is the boolean combinator a group applies across its direct children.
type GroupOp string

const (
	GroupOpAnd GroupOp = "AND"
	GroupOpOr  GroupOp = "OR"
)

// Toggle returns the opposite combinator. Toggling does not cascade to children.
func (op GroupOp) Toggle() GroupOp {
	if op == GroupOpAnd {
		return GroupOpOr
	}
	return GroupOpAnd
}

// Valid reports whether the combinator is one of AND/OR.
func (op GroupOp) Valid() bool {
	return op == GroupOpAnd || op == GroupOpOr
}

// Operator is a comparison operator in a condition rule.
type Operator string

const (
	OperatorEqual        Operator = "="
	OperatorNotEqual     Operator = "!="
	OperatorGreaterThan  Operator = ">"
	OperatorLessThan     Operator = "<"
	OperatorGreaterEqual Operator = ">="
	OperatorLessEqual    Operator = "<="
	OperatorIn           Operator = "in"
	OperatorNotIn        Operator = "not in"
	OperatorContains     Operator = "contains"
	OperatorStartsWith   Operator = "startswith"
	OperatorEndsWith     Operator = "endswith"
	OperatorRegex        Operator = "regex"
)

// Operators returns every operator the builder accepts, in display order.
func Operators() []Operator {
	return []Operator{
		OperatorEqual,
		OperatorNotEqual,
		OperatorGreaterThan,
		OperatorLessThan,
		OperatorGreaterEqual,
		OperatorLessEqual,
		OperatorIn,
		OperatorNotIn,
		OperatorContains,
		OperatorStartsWith,
		OperatorEndsWith,
		OperatorRegex,
	}
}

// Valid reports whether the operator is one of the enumerated set.
func (o Operator) Valid() bool {
	for _, op := range Operators() {
		if o == op {
			return true
		}
	}
	return false
}

// Node is a node in a condition tree: either a *Rule leaf or a nested *Group.
// The set of implementations is closed; consumers switch on the concrete type.
type Node interface {
	// NodeID returns the node's unique identifier within the tree.
	NodeID() string

	// Clone returns a deep copy of the node. Trees own their children by
	// value, so a clone shares no structure with the original.
	Clone() Node

	isNode()
}

// Rule is a single leaf predicate: an attribute path into the evaluation
// input, a comparison operator, and a free-form value whose semantics depend
// on the operator (for in/not in, a comma-joined list).
type Rule struct {
	// ID uniquely identifies the rule within the whole tree. Assigned at
	// creation time and stable for the node's lifetime.
	ID string

	// Attribute is a dotted path into the evaluation input (e.g. "user.roles").
	// Empty means unset.
	Attribute string

	// Operator is the comparison operator applied to Attribute and Value.
	Operator Operator

	// Value is the comparison operand. For in/not in it is a comma-joined list.
	Value string

	// Negate logically inverts the rule's truth value at generation time.
	Negate bool

	// Disabled keeps the rule in the tree but excludes it from generation.
	// The builder uses it for temporarily switched-off condition rows.
	Disabled bool

	// RepeatForEach optionally names a collection attribute the rule is
	// conceptually evaluated against element-wise. The generator accepts but
	// does not yet consume this marker.
	RepeatForEach string

	// BuiltinFn optionally references a built-in helper call (e.g.
	// "time.weekday(now)"). When set it supplements or replaces the
	// attribute comparison.
	BuiltinFn string
}

// NodeID returns the rule's identifier.
func (r *Rule) NodeID() string { return r.ID }

// Clone returns a deep copy of the rule.
func (r *Rule) Clone() Node {
	c := *r
	return &c
}

// Complete reports whether the rule carries enough information to generate a
// meaningful clause. A rule with neither attribute nor builtin is incomplete;
// generation emits a best-effort placeholder for it instead of failing.
func (r *Rule) Complete() bool {
	return r.Attribute != "" || r.BuiltinFn != ""
}

func (r *Rule) isNode() {}

// Group is a tree node holding a boolean combinator and an ordered list of
// children, each either a *Rule or a nested *Group. Groups may nest to
// arbitrary depth and may be empty; an empty group contributes no constraint
// to the generated clause (vacuously true).
type Group struct {
	// ID uniquely identifies the group within the whole tree.
	ID string

	// Op is the combinator applied across all direct children.
	Op GroupOp

	// Conditions is the ordered list of child nodes.
	Conditions []Node
}

// NodeID returns the group's identifier.
func (g *Group) NodeID() string { return g.ID }

// Clone returns a deep copy of the group and its entire subtree.
func (g *Group) Clone() Node { return g.CloneGroup() }

// CloneGroup is Clone with a concrete return type, for callers that hold the
// tree root.
func (g *Group) CloneGroup() *Group {
	c := &Group{ID: g.ID, Op: g.Op}
	if g.Conditions != nil {
		c.Conditions = make([]Node, len(g.Conditions))
		for i, child := range g.Conditions {
			c.Conditions[i] = child.Clone()
		}
	}
	return c
}

func (g *Group) isNode() {}
