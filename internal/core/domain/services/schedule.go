package services

import (
	"time"

	"routeplanner/internal/core/domain/model/courier"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"
)

// DefaultDwell is the service time spent at each delivery stop.
const DefaultDwell = 5 * time.Minute

// Schedule anchors arrival times: every tour leaves the warehouse at Start and
// spends Dwell at each delivery before the next leg.
type Schedule struct {
	Start time.Time
	Dwell time.Duration
}

// DayStart returns the instant hour:minute on the calendar day of ref, in ref's location.
func DayStart(ref time.Time, hour, minute int) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, ref.Location())
}

// BuildTour turns a stop order into a tour with road-level legs and arrival times.
// order lists ids in visiting order and must start and end with the warehouse.
func (s Schedule) BuildTour(
	network RoadNetwork,
	c *courier.Courier,
	order []roadgraph.IntersectionID,
	optimal bool,
) (*tour.Tour, error) {
	stops := make([]tour.Stop, 0, len(order))
	legs := make([]tour.Leg, 0, len(order))

	clock := s.Start
	stops = append(stops, tour.Stop{Intersection: order[0], Arrival: clock, Departure: clock})
	total := 0.0
	for i := 1; i < len(order); i++ {
		from, to := order[i-1], order[i]
		path, ok, err := network.Route(from, to)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, unreachable(from, to)
		}
		legs = append(legs, tour.Leg{From: from, To: to, Path: path})
		total += path.Length

		arrival := clock.Add(c.TravelTime(path.Length))
		departure := arrival
		if i < len(order)-1 {
			departure = arrival.Add(s.Dwell)
		}
		stops = append(stops, tour.Stop{Intersection: to, Arrival: arrival, Departure: departure})
		clock = departure
	}

	return tour.NewTour(c.ID(), stops, legs, total, optimal)
}
