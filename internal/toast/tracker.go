package toast

import (
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/surface"
)

// PositionTracker computes the stack's vertical offset from the obstruction.
type PositionTracker struct {
	viewport surface.Viewport
	layout   config.LayoutConfig
}

// NewPositionTracker creates a tracker reading from viewport.
func NewPositionTracker(viewport surface.Viewport, layout config.LayoutConfig) *PositionTracker {
	return &PositionTracker{viewport: viewport, layout: layout}
}

// SetLayout replaces the layout settings.
func (p *PositionTracker) SetLayout(layout config.LayoutConfig) {
	p.layout = layout
}

// Offset returns the offset for the viewport's current state.
func (p *PositionTracker) Offset() int {
	o, found := p.viewport.Query(p.layout.ObstructionSelector)
	return ComputeOffset(o, found, p.viewport.ScrollY(), p.layout)
}

// ComputeOffset returns the stack offset. The obstruction counts as visible
// when it exists, lacks the hidden class, and has not been scrolled past.
func ComputeOffset(o surface.Obstruction, found bool, scrollY int, layout config.LayoutConfig) int {
	if found && !o.HasClass(layout.HiddenClass) && scrollY < o.Height {
		return o.Height + layout.ObstructionGap
	}
	return layout.BaseOffset
}
