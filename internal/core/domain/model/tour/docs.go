// Package tour provides the Tour value object: one courier's closed walk from the
// warehouse through its assigned stops and back, with arrival times and the
// road-level legs between consecutive stops.
//
// A Tour is immutable. The planner replaces a courier's tour as a whole, so callers
// never observe a partially updated one.
package tour
