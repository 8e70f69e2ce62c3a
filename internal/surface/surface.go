package surface

import "slices"

// Surface is the rendering capability the toast manager drives.
// Implementations mirror node changes into a concrete display.
type Surface interface {
	// Mount attaches a root node (the stacking container) to the display.
	Mount(root *Node) error
	// Unmount detaches a mounted root node. Unmounting an unknown node is a no-op.
	Unmount(root *Node)
	// Append attaches child (and its subtree) as the last child of parent.
	Append(parent, child *Node)
	// Remove detaches child from parent. It reports false, and does nothing,
	// if child is not currently a child of parent.
	Remove(parent, child *Node) bool
	// SetStyle replaces the node's style.
	SetStyle(n *Node, s Style)
	// SetAnimation starts a named animation on the node.
	SetAnimation(n *Node, a Animation)
}

// Tree is an in-memory Surface. It keeps the node state that renderers
// draw from and is used directly in tests.
type Tree struct {
	roots []*Node
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Mount adds root to the tree.
func (t *Tree) Mount(root *Node) error {
	if !slices.Contains(t.roots, root) {
		t.roots = append(t.roots, root)
	}
	return nil
}

// Unmount removes root from the tree.
func (t *Tree) Unmount(root *Node) {
	if idx := slices.Index(t.roots, root); idx >= 0 {
		t.roots = slices.Delete(t.roots, idx, idx+1)
	}
}

// Append attaches child under parent.
func (t *Tree) Append(parent, child *Node) {
	parent.Add(child)
}

// Remove detaches child from parent if parent owns it.
func (t *Tree) Remove(parent, child *Node) bool {
	return parent.detach(child)
}

// SetStyle replaces the node's style.
func (t *Tree) SetStyle(n *Node, s Style) {
	n.Style = s
}

// SetAnimation records the node's current animation.
func (t *Tree) SetAnimation(n *Node, a Animation) {
	n.Animation = a
}

// Roots returns the mounted root nodes in mount order.
func (t *Tree) Roots() []*Node {
	return slices.Clone(t.roots)
}

// Mounted reports whether root is currently mounted.
func (t *Tree) Mounted(root *Node) bool {
	return slices.Contains(t.roots, root)
}
