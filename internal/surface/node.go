// Package surface abstracts the rendering surface and the surrounding
// document that toasts are displayed on.
package surface

import (
	"crypto/rand"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
)

// Role identifies what a node represents.
type Role string

// Node roles.
const (
	RoleContainer      Role = "container"
	RoleToast          Role = "toast"
	RoleContent        Role = "content"
	RoleIcon           Role = "icon"
	RoleIconBackground Role = "icon-background"
	RoleIconSymbol     Role = "icon-symbol"
	RoleText           Role = "text"
)

// Position describes how a node is placed.
type Position string

// Position values.
const (
	PositionStatic   Position = ""
	PositionRelative Position = "relative"
	PositionFixed    Position = "fixed"
)

// Style is the subset of visual state the toast lifecycle drives.
// Translations are percentages of the node's own size.
type Style struct {
	Position      Position
	Top           int     // Pixels from the top of the viewport
	CenterX       bool    // Horizontally centered
	Gap           int     // Spacing between stacked children
	Opacity       float64 // 0 = invisible, 1 = opaque
	TranslateX    float64
	TranslateY    float64
	Scale         float64 // 0 is treated as 1
	PointerEvents bool    // Node receives pointer input
}

// EffectiveScale returns the scale, treating zero as identity.
func (s Style) EffectiveScale() float64 {
	if s.Scale == 0 {
		return 1
	}
	return s.Scale
}

// Animation is a named animation applied to a node.
type Animation struct {
	Name     string
	Duration time.Duration
	Easing   string
}

// Node is an element in a retained rendering tree.
// Nodes are built detached and attached through a Surface.
type Node struct {
	ID        string
	Role      Role
	Classes   []string
	Text      string
	Style     Style
	Animation Animation

	parent   *Node
	children []*Node
}

// NewNode creates a detached node with a generated ID.
func NewNode(role Role, classes ...string) *Node {
	return &Node{
		ID:      ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		Role:    role,
		Classes: classes,
		Style:   Style{Opacity: 1},
	}
}

// Add appends child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// detach removes child from n. Reports whether child was a child of n.
func (n *Node) detach(child *Node) bool {
	if child.parent != n {
		return false
	}
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return false
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
	return true
}

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's children in order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// Find returns the first descendant (depth-first, including n) with role.
func (n *Node) Find(role Role) *Node {
	if n.Role == role {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(role); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
