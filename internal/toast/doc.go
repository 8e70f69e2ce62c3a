// Package toast implements transient notifications (toasts): the
// per-toast lifecycle state machine, the stacking container that hosts
// active toasts, and its positioning below an optional obstruction.
//
// A Manager is confined to a single event loop. Every method, and every
// callback delivered by its Scheduler, must run on that loop.
package toast
