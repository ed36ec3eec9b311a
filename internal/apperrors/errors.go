package apperrors

import "errors"

// Error classes. Services wrap these with fmt.Errorf("%w: ...") so callers can
// branch on the class with errors.Is while still seeing the offending identifier.

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks before any
// persistence happened (unbalanced voucher, non-positive amount, ...).
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that
// already exists (account code, voucher number, ...).
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation was attempted against a resource in a
// state that forbids it (posting a cancelled voucher, cancelling a posted one).
// Not retryable.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrPeriod indicates the operation's date falls outside any open financial
// year. Fatal unless the caller first activates a suitable year.
var ErrPeriod = errors.New("financial period error")

// ErrLockTimeout indicates a posting attempt could not acquire its account
// locks in time. The only retryable class: a timeout guarantees no partial
// write occurred, so callers may retry after backoff.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("operation not allowed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
