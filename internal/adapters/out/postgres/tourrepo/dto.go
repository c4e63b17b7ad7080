package tourrepo

import (
	"fmt"
	"time"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"

	"github.com/google/uuid"
)

// TourDTO is one courier tour of a saved round.
type TourDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoundID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tours_round_courier"`
	CourierID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tours_round_courier"`
	Position  int       `gorm:"type:int;not null"`
	Cost      float64   `gorm:"type:double precision;not null"`
	Optimal   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	Stops     []StopDTO `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
	Legs      []LegDTO  `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
}

func (TourDTO) TableName() string {
	return "tours"
}

type StopDTO struct {
	ID           uint      `gorm:"primaryKey"`
	TourID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Position     int       `gorm:"type:int;not null"`
	Intersection string    `gorm:"type:varchar(64);not null"`
	Arrival      time.Time `gorm:"not null"`
	Departure    time.Time `gorm:"not null"`
}

func (StopDTO) TableName() string {
	return "tour_stops"
}

type LegDTO struct {
	ID       uint         `gorm:"primaryKey"`
	TourID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	Position int          `gorm:"type:int;not null"`
	From     string       `gorm:"column:from_intersection;type:varchar(64);not null"`
	To       string       `gorm:"column:to_intersection;type:varchar(64);not null"`
	Length   float64      `gorm:"type:double precision;not null"`
	Segments []SegmentDTO `gorm:"foreignKey:LegID;constraint:OnDelete:CASCADE"`
}

func (LegDTO) TableName() string {
	return "tour_legs"
}

type SegmentDTO struct {
	ID          uint    `gorm:"primaryKey"`
	LegID       uint    `gorm:"not null;index"`
	Position    int     `gorm:"type:int;not null"`
	Origin      string  `gorm:"type:varchar(64);not null"`
	Destination string  `gorm:"type:varchar(64);not null"`
	Length      float64 `gorm:"type:double precision;not null"`
	StreetName  string  `gorm:"type:varchar(255)"`
}

func (SegmentDTO) TableName() string {
	return "tour_leg_segments"
}

func fromDomain(roundID kernel.UUID, position int, t *tour.Tour) TourDTO {
	tourID := uuid.New()

	stops := make([]StopDTO, 0, len(t.Stops()))
	for i, s := range t.Stops() {
		stops = append(stops, StopDTO{
			TourID:       tourID,
			Position:     i,
			Intersection: string(s.Intersection),
			Arrival:      s.Arrival.UTC(),
			Departure:    s.Departure.UTC(),
		})
	}

	legs := make([]LegDTO, 0, len(t.Legs()))
	for i, leg := range t.Legs() {
		segments := make([]SegmentDTO, 0, len(leg.Path.Segments))
		for j, seg := range leg.Path.Segments {
			segments = append(segments, SegmentDTO{
				Position:    j,
				Origin:      string(seg.Origin()),
				Destination: string(seg.Destination()),
				Length:      seg.Length(),
				StreetName:  seg.StreetName(),
			})
		}
		legs = append(legs, LegDTO{
			TourID:   tourID,
			Position: i,
			From:     string(leg.From),
			To:       string(leg.To),
			Length:   leg.Path.Length,
			Segments: segments,
		})
	}

	return TourDTO{
		ID:        tourID,
		RoundID:   roundID.Bytes(),
		CourierID: t.CourierID().Bytes(),
		Position:  position,
		Cost:      t.Cost(),
		Optimal:   t.Optimal(),
		Stops:     stops,
		Legs:      legs,
	}
}

// toDomain expects Stops, Legs and Legs.Segments preloaded in position order.
func toDomain(dto TourDTO) (*tour.Tour, error) {
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	stops := make([]tour.Stop, 0, len(dto.Stops))
	for _, s := range dto.Stops {
		stops = append(stops, tour.Stop{
			Intersection: roadgraph.IntersectionID(s.Intersection),
			Arrival:      s.Arrival.UTC(),
			Departure:    s.Departure.UTC(),
		})
	}

	legs := make([]tour.Leg, 0, len(dto.Legs))
	for _, l := range dto.Legs {
		path, pathErr := pathToDomain(l)
		if pathErr != nil {
			return nil, fmt.Errorf("leg %d of tour %s: %w", l.Position, dto.ID, pathErr)
		}
		legs = append(legs, tour.Leg{
			From: roadgraph.IntersectionID(l.From),
			To:   roadgraph.IntersectionID(l.To),
			Path: path,
		})
	}

	return tour.NewTour(courierID, stops, legs, dto.Cost, dto.Optimal)
}

func pathToDomain(dto LegDTO) (roadgraph.Path, error) {
	path := roadgraph.Path{
		Intersections: []roadgraph.IntersectionID{roadgraph.IntersectionID(dto.From)},
		Segments:      make([]roadgraph.Segment, 0, len(dto.Segments)),
		Length:        dto.Length,
	}

	for _, s := range dto.Segments {
		seg, err := roadgraph.NewSegment(
			roadgraph.IntersectionID(s.Origin),
			roadgraph.IntersectionID(s.Destination),
			s.Length,
			s.StreetName,
		)
		if err != nil {
			return roadgraph.Path{}, err
		}
		path.Segments = append(path.Segments, seg)
		path.Intersections = append(path.Intersections, seg.Destination())
	}

	return path, nil
}
