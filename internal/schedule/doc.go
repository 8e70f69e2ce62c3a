// Package schedule delivers timer and animation-frame callbacks onto a
// single event loop. Virtual runs callbacks deterministically on the caller
// for tests and simulations; Loop fires from a real (or mock) clock and
// queues callbacks until the owning loop drains them.
package schedule
