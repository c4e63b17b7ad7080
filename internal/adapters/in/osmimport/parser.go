// Package osmimport turns OpenStreetMap extracts into road graph input.
//
// Every node of a drivable way becomes an intersection keyed by its OSM node id,
// and every pair of consecutive way nodes becomes one directed segment per
// allowed direction, measured with the haversine distance and named after the
// way's "name" tag.
package osmimport

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"routeplanner/internal/core/domain/model/roadgraph"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// Result is the parsed road network, ready for roadgraph.NewGraph.
type Result struct {
	Intersections []roadgraph.Intersection
	Segments      []roadgraph.Segment
}

// carHighways lists highway tag values accessible by car.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// ParseXML reads an .osm XML document.
func ParseXML(ctx context.Context, r io.Reader) (Result, error) {
	return collect(osmxml.New(ctx, r))
}

// ParsePBF reads an .osm.pbf extract.
func ParsePBF(ctx context.Context, r io.Reader) (Result, error) {
	return collect(osmpbf.New(ctx, r, 1))
}

type way struct {
	nodes    []osm.NodeID
	name     string
	forward  bool
	backward bool
}

// collect keeps every node in memory: city-sized extracts are expected, not countries.
func collect(scanner osm.Scanner) (Result, error) {
	defer scanner.Close()

	coords := make(map[osm.NodeID][2]float64)
	var ways []way

	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			coords[obj.ID] = [2]float64{obj.Lat, obj.Lon}
		case *osm.Way:
			if !isCarAccessible(obj.Tags) || len(obj.Nodes) < 2 {
				continue
			}
			fwd, bwd := directionFlags(obj.Tags)
			if !fwd && !bwd {
				continue
			}
			ways = append(ways, way{
				nodes:    obj.Nodes.NodeIDs(),
				name:     obj.Tags.Find("name"),
				forward:  fwd,
				backward: bwd,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("scan osm data: %w", err)
	}

	return build(coords, ways)
}

func build(coords map[osm.NodeID][2]float64, ways []way) (Result, error) {
	var res Result
	intersections := make(map[osm.NodeID]roadgraph.Intersection)

	intersection := func(id osm.NodeID) (roadgraph.Intersection, bool, error) {
		if in, ok := intersections[id]; ok {
			return in, true, nil
		}
		c, ok := coords[id]
		if !ok {
			// Ways clipped by the extract boundary reference nodes that are not in it.
			return roadgraph.Intersection{}, false, nil
		}
		in, err := roadgraph.NewIntersection(nodeKey(id), c[0], c[1])
		if err != nil {
			return roadgraph.Intersection{}, false, fmt.Errorf("node %d: %w", id, err)
		}
		intersections[id] = in
		res.Intersections = append(res.Intersections, in)
		return in, true, nil
	}

	for _, w := range ways {
		for i := 0; i+1 < len(w.nodes); i++ {
			from, okFrom, err := intersection(w.nodes[i])
			if err != nil {
				return Result{}, err
			}
			to, okTo, err := intersection(w.nodes[i+1])
			if err != nil {
				return Result{}, err
			}
			if !okFrom || !okTo || from.ID() == to.ID() {
				continue
			}

			length, err := from.Location().DistanceTo(to.Location())
			if err != nil {
				return Result{}, err
			}
			if w.forward {
				if err = res.add(from.ID(), to.ID(), length, w.name); err != nil {
					return Result{}, err
				}
			}
			if w.backward {
				if err = res.add(to.ID(), from.ID(), length, w.name); err != nil {
					return Result{}, err
				}
			}
		}
	}

	return res, nil
}

func (r *Result) add(from, to roadgraph.IntersectionID, length float64, name string) error {
	s, err := roadgraph.NewSegment(from, to, length, name)
	if err != nil {
		return err
	}
	r.Segments = append(r.Segments, s)
	return nil
}

func nodeKey(id osm.NodeID) roadgraph.IntersectionID {
	return roadgraph.IntersectionID(strconv.FormatInt(int64(id), 10))
}

// isCarAccessible returns true if the way is drivable by car.
func isCarAccessible(tags osm.Tags) bool {
	if !carHighways[tags.Find("highway")] {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	return tags.Find("motor_vehicle") != "no"
}

// directionFlags returns (forward, backward) based on highway type and oneway tags.
func directionFlags(tags osm.Tags) (forward, backward bool) {
	forward, backward = true, true

	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		forward, backward = false, false
	}

	return forward, backward
}
