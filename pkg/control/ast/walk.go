package ast

// CountLeaves returns the number of rule nodes in the tree rooted at g.
// Groups do not count; only leaves do. The leaf count is what the builder's
// tier limit is measured against.
func CountLeaves(g *Group) int {
	if g == nil {
		return 0
	}
	count := 0
	for _, child := range g.Conditions {
		switch c := child.(type) {
		case *Rule:
			count++
		case *Group:
			count += CountLeaves(c)
		}
	}
	return count
}

// Walk visits every node in the tree rooted at g in depth-first document
// order, starting with g itself. If fn returns false the walk stops.
func Walk(g *Group, fn func(Node) bool) {
	if g == nil {
		return
	}
	walk(g, fn)
}

func walk(n Node, fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	if g, ok := n.(*Group); ok {
		for _, child := range g.Conditions {
			if !walk(child, fn) {
				return false
			}
		}
	}
	return true
}

// Rules returns every rule in the tree in document order, flattening nested
// groups. This is the order generation emits condition lines in.
func Rules(g *Group) []*Rule {
	var rules []*Rule
	Walk(g, func(n Node) bool {
		if r, ok := n.(*Rule); ok {
			rules = append(rules, r)
		}
		return true
	})
	return rules
}

// FindGroup returns the group with the given id in the tree rooted at g, or
// nil if no such group exists.
func FindGroup(g *Group, id string) *Group {
	var found *Group
	Walk(g, func(n Node) bool {
		if grp, ok := n.(*Group); ok && grp.ID == id {
			found = grp
			return false
		}
		return true
	})
	return found
}

// FindNode returns the node with the given id, or nil if no such node exists.
func FindNode(g *Group, id string) Node {
	var found Node
	Walk(g, func(n Node) bool {
		if n.NodeID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Depth returns the maximum group-nesting depth of the tree. A root group
// with only rule children has depth 1.
func Depth(g *Group) int {
	if g == nil {
		return 0
	}
	max := 0
	for _, child := range g.Conditions {
		if sub, ok := child.(*Group); ok {
			if d := Depth(sub); d > max {
				max = d
			}
		}
	}
	return max + 1
}
