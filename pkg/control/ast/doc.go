// Package ast defines the condition-tree data model for the control builder.
//
// A policy draft holds a recursive boolean condition tree: groups combine an
// ordered list of children with AND or OR, and leaves are rules comparing an
// input attribute against a value with one of a fixed set of operators. The
// rule/group distinction is an explicit tagged union (the Node interface is
// sealed over *Rule and *Group), not an inferred shape.
//
// Trees are built from owned values and cloned on every edit, so they are
// structurally acyclic and safe to walk without cycle detection.
//
// Example:
//
//	root := &ast.Group{
//		ID: "root",
//		Op: ast.GroupOpAnd,
//		Conditions: []ast.Node{
//			&ast.Rule{ID: "r1", Attribute: "user.role", Operator: ast.OperatorEqual, Value: "admin"},
//			&ast.Group{ID: "g1", Op: ast.GroupOpOr, Conditions: []ast.Node{
//				&ast.Rule{ID: "r2", Attribute: "request.ip", Operator: ast.OperatorIn, Value: "10.0.0.1,10.0.0.2"},
//			}},
//		},
//	}
//	n := ast.CountLeaves(root) // 2
package ast
