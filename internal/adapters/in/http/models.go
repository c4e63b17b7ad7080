package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies of the API, mirroring the schemas of api/openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewFleet struct {
	Couriers int `json:"couriers"`
}

type IntersectionRef struct {
	Intersection string `json:"intersection"`
}

type ComputedRound struct {
	RoundId openapi_types.UUID `json:"roundId"`
}

type SavedRound struct {
	RoundId   openapi_types.UUID `json:"roundId"`
	Tours     int                `json:"tours"`
	TotalCost float64            `json:"totalCost"`
	Optimal   bool               `json:"optimal"`
	SavedAt   time.Time          `json:"savedAt"`
}

type SavedRoundDetail struct {
	RoundId openapi_types.UUID `json:"roundId"`
	Tours   []SavedTour        `json:"tours"`
}

type SavedTour struct {
	CourierId openapi_types.UUID `json:"courierId"`
	Sequence  []string           `json:"sequence"`
	Stops     []Stop             `json:"stops"`
	Route     []string           `json:"route"`
	Cost      float64            `json:"cost"`
	Optimal   bool               `json:"optimal"`
}

type Round struct {
	Warehouse *string       `json:"warehouse,omitempty"`
	Requests  []Request     `json:"requests"`
	Couriers  []CourierTour `json:"couriers"`
	CanUndo   bool          `json:"canUndo"`
	CanRedo   bool          `json:"canRedo"`
}

type Request struct {
	Id        openapi_types.UUID  `json:"id"`
	Address   string              `json:"address"`
	Status    string              `json:"status"`
	CourierId *openapi_types.UUID `json:"courierId,omitempty"`
}

type CourierTour struct {
	Index     int                `json:"index"`
	CourierId openapi_types.UUID `json:"courierId"`
	Name      string             `json:"name"`
	Assigned  bool               `json:"assigned"`
	Sequence  []string           `json:"sequence"`
	Stops     []Stop             `json:"stops"`
	Route     []string           `json:"route"`
	Cost      float64            `json:"cost"`
	Optimal   bool               `json:"optimal"`
}

type Stop struct {
	Intersection string    `json:"intersection"`
	Arrival      time.Time `json:"arrival"`
	Departure    time.Time `json:"departure"`
}

type Intersection struct {
	Id       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance"`
}

// MapFormat selects the parser of POST /api/v1/map.
type MapFormat string

const (
	MapFormatXML MapFormat = "xml"
	MapFormatOSM MapFormat = "osm"
	MapFormatPBF MapFormat = "pbf"
)

type LoadMapParams struct {
	Format *MapFormat
}

type ComputeRoundParams struct {
	Optimized *bool
}

type GetSavedRoundsParams struct {
	Limit *int
}

type GetNearestIntersectionParams struct {
	Lat float64
	Lon float64
}
