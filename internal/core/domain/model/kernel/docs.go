// Package kernel provides the shared domain primitives of the route planner:
//   - UUID: identifier of couriers, delivery requests and persisted rounds
//   - Location: a validated latitude/longitude pair with great-circle distance
//
// Both are immutable value objects whose zero value fails validation.
package kernel
