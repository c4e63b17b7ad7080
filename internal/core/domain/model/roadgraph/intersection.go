package roadgraph

import (
	"errors"
	"math"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

var (
	ErrIntersectionIsNotConstructed = errors.New("Intersection must be created via NewIntersection constructor")
	ErrSegmentIsNotConstructed      = errors.New("Segment must be created via NewSegment constructor")
	ErrIntersectionIDIsRequired     = errs.NewValueIsRequiredError("intersection id")
)

// IntersectionID is the opaque, stable key of an intersection as found in map data.
type IntersectionID string

// Intersection is a point of the road network.
type Intersection struct {
	id       IntersectionID
	location kernel.Location
	guard    guard.ConstructorGuard
}

// NewIntersection validates the id and coordinates.
func NewIntersection(id IntersectionID, lat, lon float64) (Intersection, error) {
	if id == "" {
		return Intersection{}, ErrIntersectionIDIsRequired
	}

	location, err := kernel.NewLocation(lat, lon)
	if err != nil {
		return Intersection{}, errs.NewValueIsInvalidErrorWithCause(string(id), err)
	}

	return Intersection{
		id:       id,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (i Intersection) Validate() error {
	return i.guard.Validate(ErrIntersectionIsNotConstructed)
}

func (i Intersection) ID() IntersectionID {
	return i.id
}

func (i Intersection) Location() kernel.Location {
	return i.location
}

// Segment is a directed road edge. The reverse direction exists only if map data
// declares it as its own segment.
type Segment struct {
	origin      IntersectionID
	destination IntersectionID
	length      float64
	streetName  string
	guard       guard.ConstructorGuard
}

// NewSegment validates endpoints and length. Negative, NaN and infinite lengths are
// malformed input, not a supported edge weight.
func NewSegment(origin, destination IntersectionID, length float64, streetName string) (Segment, error) {
	if err := errors.Join(
		requireID("segment origin", origin),
		requireID("segment destination", destination),
		validateLength(length),
	); err != nil {
		return Segment{}, err
	}

	return Segment{
		origin:      origin,
		destination: destination,
		length:      length,
		streetName:  streetName,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (s Segment) Validate() error {
	return s.guard.Validate(ErrSegmentIsNotConstructed)
}

func (s Segment) Origin() IntersectionID {
	return s.origin
}

func (s Segment) Destination() IntersectionID {
	return s.destination
}

// Length is in meters.
func (s Segment) Length() float64 {
	return s.length
}

func (s Segment) StreetName() string {
	return s.streetName
}

func requireID(param string, id IntersectionID) error {
	if id == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func validateLength(length float64) error {
	if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
		return errs.NewValueIsOutOfRangeError("segment length", length, 0, math.MaxFloat64)
	}
	return nil
}
