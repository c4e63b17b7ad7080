// Package courier provides the Courier entity of the round planner.
//
// A courier has a stable identity, a display name and a fixed travel speed. The
// planner turns road distances into arrival times through that speed; couriers do
// not carry any position or load state of their own.
//
// Key business rules:
//   - Couriers must have a valid unique identifier, a non-empty name and a positive speed
//   - Speed is expressed in kilometres per hour, distances in meters
package courier
