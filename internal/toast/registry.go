package toast

import (
	"slices"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/surface"
)

// container is the stacking host for active toasts.
// It exists only while it has children or one is being added.
type container struct {
	node     *surface.Node
	children []*Toast
	offset   int
	release  func() // scroll listener registration
}

// containerStyle is the fixed layout of the stack: centered, stacked
// vertically, and transparent to pointer input.
func containerStyle(layout config.LayoutConfig, offset int) surface.Style {
	return surface.Style{
		Position:      surface.PositionFixed,
		Top:           offset,
		CenterX:       true,
		Gap:           layout.StackGap,
		Opacity:       1,
		PointerEvents: false,
	}
}

// ensureContainer returns the container, creating and mounting it if absent.
func (m *Manager) ensureContainer() *container {
	if m.container != nil {
		return m.container
	}

	c := &container{
		node:   surface.NewNode(surface.RoleContainer, "toast-container"),
		offset: m.tracker.Offset(),
	}
	// Registered before mounting so the creation counts as in flight
	m.container = c

	m.surface.SetStyle(c.node, containerStyle(m.cfg.Layout, c.offset))
	if err := m.surface.Mount(c.node); err != nil {
		m.logger.Warn("failed to mount toast container", "error", err)
	}

	c.release = m.viewport.OnScroll(m.recomputeOffset)

	m.logger.Debug("toast container created", "offset", c.offset)
	m.emit(Change{Kind: ChangeContainerCreated, Offset: c.offset})
	return c
}

// releaseIfEmpty destroys the container once it has no children.
// Calling it with no container, or a non-empty one, does nothing.
func (m *Manager) releaseIfEmpty() {
	c := m.container
	if c == nil || len(c.children) > 0 {
		return
	}

	m.container = nil
	if c.release != nil {
		c.release()
		c.release = nil
	}
	m.surface.Unmount(c.node)

	m.logger.Debug("toast container destroyed")
	m.emit(Change{Kind: ChangeContainerDestroyed})
}

// removeChild drops t from the container's children.
func (c *container) removeChild(t *Toast) bool {
	idx := slices.Index(c.children, t)
	if idx < 0 {
		return false
	}
	c.children = slices.Delete(c.children, idx, idx+1)
	return true
}

// recomputeOffset positions the container for the current viewport state.
// It is a no-op once the container is gone.
func (m *Manager) recomputeOffset() {
	c := m.container
	if c == nil {
		return
	}

	offset := m.tracker.Offset()
	m.surface.SetStyle(c.node, containerStyle(m.cfg.Layout, offset))
	if offset == c.offset {
		return
	}

	c.offset = offset
	m.emit(Change{Kind: ChangeOffset, Offset: offset})
}
