package kernel

import (
	"errors"
	"fmt"
	"math"

	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

const (
	// LatitudeMin and LatitudeMax bound a valid latitude in degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0
	// LongitudeMin and LongitudeMax bound a valid longitude in degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusMeters = 6_371_000.0
)

// ErrLocationIsNotConstructed is returned when using a zero-value Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a WGS84 point. It is an immutable value object; use NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(45.7597, 4.8422)
//	if err != nil {
//	    // latitude or longitude out of range
//	}
//	fmt.Println(loc) // Location(45.759700,4.842200)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewLocation validates both coordinates and joins every violation into one error.
//
// Returns:
//   - Location: a valid location
//   - error: ErrValueIsOutOfRange (wrapped) for a coordinate outside its range or NaN
func NewLocation(lat, lon float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(lat), loc.setLongitude(lon)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was created via NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Latitude() float64 {
	return l.lat
}

func (l Location) Longitude() float64 {
	return l.lon
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lon)
}

// IsEqual compares coordinates of two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lon == other.lon, nil
}

// DistanceTo returns the great-circle (haversine) distance in meters.
// It is a geometric estimate only; travel costs come from the road graph.
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1r := l.lat * math.Pi / 180
	lat2r := other.lat * math.Pi / 180
	dLat := (other.lat - l.lat) * math.Pi / 180
	dLon := (other.lon - l.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

func (l *Location) setLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLongitude(lon float64) error {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}

	l.lon = lon
	return nil
}
