package courier

import (
	"errors"
	"fmt"
	"math"
	"time"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"
)

// DefaultSpeed is the travel speed given to couriers created without an explicit one, in km/h.
const DefaultSpeed = 15.0

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrSpeedIsRequired is returned when attempting to create a courier with a speed ≤ 0.
	ErrSpeedIsRequired = errs.NewValueIsRequiredError("speed")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier of the round.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name and positive speed
//   - Speed never changes after construction
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "Alice", 15)
//	if err != nil {
//	    // Handle construction error
//	}
//	eta := c.TravelTime(1200) // 1.2 km at 15 km/h
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// speed is the constant travel speed in km/h
	speed float64
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// This is the only way to create a valid Courier instance.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - speed: Travel speed in km/h (must be positive and finite)
//
// Returns:
//   - *Courier: A fully initialized courier
//   - error: Validation error if any parameter is invalid (aggregated errors for multiple issues)
func NewCourier(id kernel.UUID, name string, speed float64) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setSpeed(speed),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// NewFleet creates count couriers named "Courier 1".."Courier N", all at the given speed.
//
// Returns:
//   - []*Courier: the fleet in index order
//   - error: ErrSpeedIsRequired for a non-positive speed, out of range for a negative count
func NewFleet(count int, speed float64) ([]*Courier, error) {
	if count < 0 {
		return nil, errs.NewValueIsOutOfRangeError("courier count", count, 0, math.MaxInt)
	}

	fleet := make([]*Courier, 0, count)
	for i := 0; i < count; i++ {
		c, err := NewCourier(kernel.NewUUID(), fmt.Sprintf("Courier %d", i+1), speed)
		if err != nil {
			return nil, err
		}
		fleet = append(fleet, c)
	}

	return fleet, nil
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks that the Courier was created through NewCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

// Speed returns the travel speed in km/h.
func (c *Courier) Speed() float64 {
	return c.speed
}

// TravelTime converts a road distance in meters into the time this courier needs
// to cover it.
//
// Example:
//
//	c, _ := courier.NewCourier(id, "Alice", 15)
//	c.TravelTime(1500) // 6m0s
func (c *Courier) TravelTime(meters float64) time.Duration {
	metersPerSecond := c.speed / 3.6
	return time.Duration(meters / metersPerSecond * float64(time.Second))
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setSpeed(speed float64) error {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return ErrSpeedIsRequired
	}

	c.speed = speed
	return nil
}
