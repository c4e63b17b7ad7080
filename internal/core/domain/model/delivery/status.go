package delivery

import (
	"fmt"

	"routeplanner/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery request.
//
// State transitions:
//
//	Pending ──> Assigned ──┐
//	   ^           │  ^    │
//	   └───────────┘  └────┘
//	  (unassign)   (reassignment)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: loaded but not part of any computed tour.
	Pending

	// Assigned indicates the request belongs to one courier's tour.
	Assigned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Assigned: "Assigned",
	}
}

// Validate checks that s is Pending or Assigned.
func (s Status) Validate() error {
	if s != Pending && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (round computed)
//   - Assigned -> Assigned (moved to another courier)
func (s Status) Assign() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return Assigned, nil
}

// Unassign transitions Assigned back to Pending.
func (s Status) Unassign() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to unassign", s.String()),
		)
	}
	return Pending, nil
}
