// Package delivery provides the DeliveryRequest aggregate: a stop that must be
// served at a road intersection, and the courier serving it once a round is computed.
//
// Requests only reference intersections by id. Resolving the id against the road
// graph is the planner's job and happens before a request is ever created.
package delivery
