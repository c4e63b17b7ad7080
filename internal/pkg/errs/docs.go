// Package errs provides standardized error types for the route planner.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: an id does not resolve (lookup error)
//   - ValueIsRequiredError / ValueIsInvalidError: malformed input
//   - ValueIsOutOfRangeError: an index or quantity outside its bounds
//   - UnreachablePairError: no road path between two stops of one courier
//   - InvalidOperationError: a structural precondition of an edit is violated
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is support against the sentinel
package errs
