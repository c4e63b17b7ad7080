package tour

import (
	"errors"
	"fmt"
	"time"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

var (
	ErrTourIsNotConstructed = errors.New("Tour must be created via NewTour constructor")
	ErrTourIsNotClosed      = errs.NewValueIsInvalidErrorWithCause("tour", errors.New("first and last stop must be the warehouse"))
)

// Stop is one visited intersection with its arrival and departure instants.
// For the warehouse at the start Arrival equals Departure; for the closing
// warehouse stop Departure equals Arrival.
type Stop struct {
	Intersection roadgraph.IntersectionID
	Arrival      time.Time
	Departure    time.Time
}

// Leg is the road-level route between two consecutive stops.
type Leg struct {
	From roadgraph.IntersectionID
	To   roadgraph.IntersectionID
	Path roadgraph.Path
}

// Tour is the computed round of a single courier.
//
// Invariants:
//   - len(stops) >= 2, stops[0] and stops[len-1] are the warehouse
//   - interior stops are pairwise distinct and never the warehouse
//   - len(legs) == len(stops)-1 and leg i joins stop i to stop i+1
//
// Example:
//
//	t, err := tour.NewTour(courierID, stops, legs, 3200, true)
//	for _, s := range t.Stops() {
//	    fmt.Println(s.Intersection, s.Arrival.Format("15:04"))
//	}
type Tour struct {
	courierID kernel.UUID
	stops     []Stop
	legs      []Leg
	cost      float64
	optimal   bool
	guard     guard.ConstructorGuard
}

// NewTour validates the closed-walk invariants and copies its inputs.
//
// Parameters:
//   - courierID: the courier driving the tour
//   - stops: warehouse, deliveries in visiting order, warehouse
//   - legs: one road route per consecutive stop pair
//   - cost: total length in meters
//   - optimal: false when the solver ran out of time budget
func NewTour(courierID kernel.UUID, stops []Stop, legs []Leg, cost float64, optimal bool) (*Tour, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if err := validateStops(stops); err != nil {
		return nil, err
	}
	if len(legs) != len(stops)-1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("tour legs",
			fmt.Errorf("%d legs for %d stops", len(legs), len(stops)))
	}
	for i, leg := range legs {
		if leg.From != stops[i].Intersection || leg.To != stops[i+1].Intersection {
			return nil, errs.NewValueIsInvalidErrorWithCause("tour legs",
				fmt.Errorf("leg %d joins %s to %s", i, leg.From, leg.To))
		}
	}
	if cost < 0 {
		return nil, errs.NewValueIsOutOfRangeError("tour cost", cost, 0, "+Inf")
	}

	t := &Tour{
		courierID: courierID,
		stops:     make([]Stop, len(stops)),
		legs:      make([]Leg, len(legs)),
		cost:      cost,
		optimal:   optimal,
		guard:     guard.NewConstructorGuard(),
	}
	copy(t.stops, stops)
	copy(t.legs, legs)

	return t, nil
}

// NewIdleTour is the tour of a courier with no deliveries: leave the warehouse and
// come back at once.
func NewIdleTour(courierID kernel.UUID, warehouse roadgraph.IntersectionID, start time.Time) (*Tour, error) {
	stop := Stop{Intersection: warehouse, Arrival: start, Departure: start}
	leg := Leg{From: warehouse, To: warehouse, Path: roadgraph.Path{
		Intersections: []roadgraph.IntersectionID{warehouse},
	}}
	return NewTour(courierID, []Stop{stop, stop}, []Leg{leg}, 0, true)
}

func validateStops(stops []Stop) error {
	if len(stops) < 2 {
		return errs.NewValueIsInvalidErrorWithCause("tour stops", fmt.Errorf("%d stops", len(stops)))
	}
	warehouse := stops[0].Intersection
	if warehouse == "" || stops[len(stops)-1].Intersection != warehouse {
		return ErrTourIsNotClosed
	}

	seen := make(map[roadgraph.IntersectionID]struct{}, len(stops))
	for _, s := range stops[1 : len(stops)-1] {
		if s.Intersection == warehouse {
			return errs.NewValueIsInvalidErrorWithCause("tour stops",
				fmt.Errorf("warehouse %s visited as a delivery", warehouse))
		}
		if _, dup := seen[s.Intersection]; dup {
			return errs.NewValueIsInvalidErrorWithCause("tour stops",
				fmt.Errorf("stop %s visited twice", s.Intersection))
		}
		seen[s.Intersection] = struct{}{}
	}
	return nil
}

func (t *Tour) Validate() error {
	if t == nil {
		return ErrTourIsNotConstructed
	}
	return t.guard.Validate(ErrTourIsNotConstructed)
}

func (t *Tour) CourierID() kernel.UUID {
	return t.courierID
}

// Warehouse returns the start and end intersection.
func (t *Tour) Warehouse() roadgraph.IntersectionID {
	return t.stops[0].Intersection
}

// Stops returns a copy of the stops, warehouse at both ends.
func (t *Tour) Stops() []Stop {
	out := make([]Stop, len(t.stops))
	copy(out, t.stops)
	return out
}

// Sequence returns the visiting order as ids, warehouse at both ends.
func (t *Tour) Sequence() []roadgraph.IntersectionID {
	out := make([]roadgraph.IntersectionID, len(t.stops))
	for i, s := range t.stops {
		out[i] = s.Intersection
	}
	return out
}

// Deliveries returns the delivery stops in visiting order, without the warehouse.
func (t *Tour) Deliveries() []roadgraph.IntersectionID {
	seq := t.Sequence()
	return seq[1 : len(seq)-1]
}

// Contains reports whether id is one of the delivery stops.
func (t *Tour) Contains(id roadgraph.IntersectionID) bool {
	for _, s := range t.stops[1 : len(t.stops)-1] {
		if s.Intersection == id {
			return true
		}
	}
	return false
}

// ArrivalAt returns the arrival time at a delivery stop.
func (t *Tour) ArrivalAt(id roadgraph.IntersectionID) (time.Time, bool) {
	for _, s := range t.stops[1 : len(t.stops)-1] {
		if s.Intersection == id {
			return s.Arrival, true
		}
	}
	return time.Time{}, false
}

// Legs returns a copy of the road-level legs.
func (t *Tour) Legs() []Leg {
	out := make([]Leg, len(t.legs))
	copy(out, t.legs)
	return out
}

// Cost is the total tour length in meters.
func (t *Tour) Cost() float64 {
	return t.cost
}

// Optimal is false when the search was cut off by its time budget.
func (t *Tour) Optimal() bool {
	return t.optimal
}

// Start is the departure instant from the warehouse.
func (t *Tour) Start() time.Time {
	return t.stops[0].Departure
}

// End is the arrival instant back at the warehouse.
func (t *Tour) End() time.Time {
	return t.stops[len(t.stops)-1].Arrival
}
