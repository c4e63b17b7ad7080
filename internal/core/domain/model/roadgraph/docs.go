// Package roadgraph holds the road network: intersections, directed road segments
// and the shortest-path queries the planner runs over them.
//
// Intersections are addressed by their stable IntersectionID everywhere outside this
// package. Internally the graph keeps a dense index [0, n) per intersection so the
// Dijkstra frontier and adjacency lists work on integers.
//
// A Graph is immutable once NewGraph returns and may be shared by concurrent solves.
package roadgraph
