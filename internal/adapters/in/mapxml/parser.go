// Package mapxml decodes the XML map and request documents.
//
// Map document:
//
//	<map>
//	  <intersection id="25175791" latitude="45.7531" longitude="4.8571"/>
//	  <segment origin="25175791" destination="2129259178" length="69.98" name="Rue Danton"/>
//	</map>
//
// Request document:
//
//	<requests>
//	  <warehouse address="25175791"/>
//	  <delivery address="2129259178"/>
//	</requests>
//
// Parsing only checks the documents themselves. Whether the referenced ids exist
// in the road graph is decided when the data is loaded into the planner.
package mapxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/errs"
)

// Map is a parsed map document.
type Map struct {
	Intersections []roadgraph.Intersection
	Segments      []roadgraph.Segment
}

// Requests is a parsed request document.
type Requests struct {
	Warehouse  roadgraph.IntersectionID
	Deliveries []roadgraph.IntersectionID
}

type mapDocument struct {
	XMLName       xml.Name               `xml:"map"`
	Intersections []intersectionElement `xml:"intersection"`
	Segments      []segmentElement      `xml:"segment"`
}

type intersectionElement struct {
	ID        string `xml:"id,attr"`
	Latitude  string `xml:"latitude,attr"`
	Longitude string `xml:"longitude,attr"`
}

type segmentElement struct {
	Origin      string `xml:"origin,attr"`
	Destination string `xml:"destination,attr"`
	Length      string `xml:"length,attr"`
	Name        string `xml:"name,attr"`
}

type requestsDocument struct {
	XMLName    xml.Name          `xml:"requests"`
	Warehouses []addressElement `xml:"warehouse"`
	Deliveries []addressElement `xml:"delivery"`
}

type addressElement struct {
	Address string `xml:"address,attr"`
}

// ParseMap decodes a map document. Unparseable numbers, missing attributes and a
// document without intersections are malformed-input errors.
func ParseMap(r io.Reader) (Map, error) {
	var doc mapDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Map{}, errs.NewValueIsInvalidErrorWithCause("map document", err)
	}
	if len(doc.Intersections) == 0 {
		return Map{}, errs.NewValueIsRequiredError("intersection")
	}

	m := Map{
		Intersections: make([]roadgraph.Intersection, 0, len(doc.Intersections)),
		Segments:      make([]roadgraph.Segment, 0, len(doc.Segments)),
	}

	for i, el := range doc.Intersections {
		in, err := el.toDomain()
		if err != nil {
			return Map{}, fmt.Errorf("intersection %d: %w", i, err)
		}
		m.Intersections = append(m.Intersections, in)
	}

	for i, el := range doc.Segments {
		s, err := el.toDomain()
		if err != nil {
			return Map{}, fmt.Errorf("segment %d: %w", i, err)
		}
		m.Segments = append(m.Segments, s)
	}

	return m, nil
}

// ParseRequests decodes a request document. Exactly one warehouse is required;
// the delivery list may be empty.
func ParseRequests(r io.Reader) (Requests, error) {
	var doc requestsDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Requests{}, errs.NewValueIsInvalidErrorWithCause("requests document", err)
	}

	switch len(doc.Warehouses) {
	case 0:
		return Requests{}, errs.NewValueIsRequiredError("warehouse")
	case 1:
	default:
		return Requests{}, errs.NewValueIsInvalidErrorWithCause("warehouse",
			fmt.Errorf("%d warehouse elements, expected one", len(doc.Warehouses)))
	}
	if doc.Warehouses[0].Address == "" {
		return Requests{}, errs.NewValueIsRequiredError("warehouse address")
	}

	req := Requests{
		Warehouse:  roadgraph.IntersectionID(doc.Warehouses[0].Address),
		Deliveries: make([]roadgraph.IntersectionID, 0, len(doc.Deliveries)),
	}
	for i, d := range doc.Deliveries {
		if d.Address == "" {
			return Requests{}, fmt.Errorf("delivery %d: %w", i, errs.NewValueIsRequiredError("address"))
		}
		req.Deliveries = append(req.Deliveries, roadgraph.IntersectionID(d.Address))
	}

	return req, nil
}

func (el intersectionElement) toDomain() (roadgraph.Intersection, error) {
	lat, err := parseNumber("latitude", el.Latitude)
	if err != nil {
		return roadgraph.Intersection{}, err
	}
	lon, err := parseNumber("longitude", el.Longitude)
	if err != nil {
		return roadgraph.Intersection{}, err
	}
	return roadgraph.NewIntersection(roadgraph.IntersectionID(el.ID), lat, lon)
}

func (el segmentElement) toDomain() (roadgraph.Segment, error) {
	length, err := parseNumber("length", el.Length)
	if err != nil {
		return roadgraph.Segment{}, err
	}
	return roadgraph.NewSegment(
		roadgraph.IntersectionID(el.Origin),
		roadgraph.IntersectionID(el.Destination),
		length,
		el.Name,
	)
}

func parseNumber(param, raw string) (float64, error) {
	if raw == "" {
		return 0, errs.NewValueIsRequiredError(param)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return v, nil
}
