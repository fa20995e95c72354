// Package rx provides the small set of push-based signal types the UI layer
// is built from: observables, subjects, a disposable bag and the operators
// needed to compose list screens (map, filter, skip, take, merge, switch and
// debounce).
//
// All emissions are expected to happen on a single UI loop. Operators that
// involve time never start goroutines of their own; they go through a
// Scheduler, which posts work back onto that loop. Tests use
// VirtualScheduler to drive time by hand.
package rx
