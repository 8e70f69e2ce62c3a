package surface

import "slices"

// Obstruction is an element that may cover the top of the viewport,
// such as a navigation bar.
type Obstruction struct {
	Height  int
	Classes []string
}

// HasClass reports whether the obstruction carries class.
func (o Obstruction) HasClass(class string) bool {
	return slices.Contains(o.Classes, class)
}

// Viewport is the read-only document surrounding the surface.
type Viewport interface {
	// Query returns the element matching selector, if present.
	Query(selector string) (Obstruction, bool)
	// ScrollY returns the current vertical scroll position in pixels.
	ScrollY() int
	// OnScroll registers fn for scroll events. The returned release func
	// deregisters it; calling release more than once is a no-op.
	OnScroll(fn func()) (release func())
}

type scrollListener struct {
	id int
	fn func()
}

// Page is an in-memory Viewport.
type Page struct {
	elements  map[string]Obstruction
	scrollY   int
	listeners []scrollListener
	nextID    int
}

// NewPage creates an empty page with no obstruction and no scroll offset.
func NewPage() *Page {
	return &Page{elements: make(map[string]Obstruction)}
}

// SetElement adds or replaces the element matching selector.
func (p *Page) SetElement(selector string, o Obstruction) {
	p.elements[selector] = o
}

// RemoveElement removes the element matching selector.
func (p *Page) RemoveElement(selector string) {
	delete(p.elements, selector)
}

// ToggleClass adds or removes class on the element matching selector.
// Returns whether the class is present afterwards; false if there is no such element.
func (p *Page) ToggleClass(selector, class string) bool {
	o, ok := p.elements[selector]
	if !ok {
		return false
	}
	if idx := slices.Index(o.Classes, class); idx >= 0 {
		o.Classes = slices.Delete(slices.Clone(o.Classes), idx, idx+1)
		p.elements[selector] = o
		return false
	}
	o.Classes = append(slices.Clone(o.Classes), class)
	p.elements[selector] = o
	return true
}

// Query returns the element matching selector.
func (p *Page) Query(selector string) (Obstruction, bool) {
	o, ok := p.elements[selector]
	return o, ok
}

// ScrollY returns the scroll position.
func (p *Page) ScrollY() int {
	return p.scrollY
}

// ScrollTo sets the scroll position and dispatches a scroll event.
func (p *Page) ScrollTo(y int) {
	if y < 0 {
		y = 0
	}
	p.scrollY = y

	// Listeners may release themselves while being notified
	for _, l := range slices.Clone(p.listeners) {
		l.fn()
	}
}

// OnScroll registers a scroll listener.
func (p *Page) OnScroll(fn func()) func() {
	p.nextID++
	id := p.nextID
	p.listeners = append(p.listeners, scrollListener{id: id, fn: fn})

	return func() {
		p.listeners = slices.DeleteFunc(p.listeners, func(l scrollListener) bool {
			return l.id == id
		})
	}
}

// Listeners returns the number of registered scroll listeners.
func (p *Page) Listeners() int {
	return len(p.listeners)
}
