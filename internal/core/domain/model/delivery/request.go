package delivery

import (
	"errors"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request was not created through NewRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
	// ErrAddressIsRequired is returned for an empty delivery address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("delivery address")
)

// Request is a delivery stop at an intersection of the road graph.
//
// Request follows these invariants:
//   - Must have a valid unique identifier
//   - Must reference a non-empty intersection id
//   - Has a courier if and only if its status is Assigned
type Request struct {
	// id is the unique identifier of the request
	id kernel.UUID

	// address is the intersection where the delivery takes place
	address roadgraph.IntersectionID

	// courierID is the assigned courier's ID (nil while pending)
	courierID *kernel.UUID

	// status is the current lifecycle state
	status Status

	// isConstructed ensures the request was created via NewRequest
	isConstructed bool
}

// NewRequest creates a pending Request.
//
// Parameters:
//   - id: Unique identifier (must be valid UUID)
//   - address: Intersection id of the delivery address (must be non-empty)
//
// Returns:
//   - *Request: The created request in Pending status
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	r, err := delivery.NewRequest(kernel.NewUUID(), "25303831")
//	if err != nil {
//	    // Handle validation error
//	}
func NewRequest(id kernel.UUID, address roadgraph.IntersectionID) (*Request, error) {
	r := &Request{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setAddress(address),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Request was created through NewRequest.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// IsEqual compares two requests by identifier.
func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// Address returns the delivery intersection.
func (r *Request) Address() roadgraph.IntersectionID {
	return r.address
}

// Status returns the current status.
func (r *Request) Status() Status {
	return r.status
}

// Courier returns the assigned courier's ID, or nil while pending.
func (r *Request) Courier() *kernel.UUID {
	return r.courierID
}

// Assign hands the request to a courier.
//
// Returns:
//   - nil on success
//   - error if courierID is invalid or the status does not allow assignment
func (r *Request) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Assign()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.courierID = &courierID
	return nil
}

// Unassign returns the request to the pending list.
func (r *Request) Unassign() error {
	newStatus, err := r.status.Unassign()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.courierID = nil
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setAddress(address roadgraph.IntersectionID) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	r.address = address
	return nil
}
