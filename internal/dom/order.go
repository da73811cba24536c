package dom

import "slices"

// ComparePosition orders two nodes in document (pre-order) position.
// It returns -1 when a precedes b, 1 when b precedes a and 0 when they are the
// same node or are not in the same tree. An ancestor precedes its descendants.
func ComparePosition(a, b *Node) int {
	if a == b || a == nil || b == nil {
		return 0
	}
	pa, pb := ancestry(a), ancestry(b)
	if pa[0] != pb[0] {
		return 0
	}
	i := 0
	for i < len(pa) && i < len(pb) && pa[i] == pb[i] {
		i++
	}
	switch {
	case i == len(pa):
		return -1 // a is an ancestor of b
	case i == len(pb):
		return 1 // b is an ancestor of a
	}
	parent := pa[i-1]
	if slices.Index(parent.children, pa[i]) < slices.Index(parent.children, pb[i]) {
		return -1
	}
	return 1
}

// ancestry returns the path from the tree root down to n.
func ancestry(n *Node) []*Node {
	var path []*Node
	for cur := n; cur != nil; cur = cur.parent {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// Walk calls fn for n and each descendant in document order. Returning false
// from fn skips that node's subtree.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range slices.Clone(n.children) {
		Walk(child, fn)
	}
}
