package di

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Sentinels matched with errors.Is. Each typed error below reports itself as
// its sentinel, so callers can pick whichever style they prefer.
var (
	ErrValidation         = stderrors.New("di: invalid binding")
	ErrMissingDependency  = stderrors.New("di: missing dependency")
	ErrCircularDependency = stderrors.New("di: circular dependency")
	ErrInvalidArgument    = stderrors.New("di: invalid constructor argument")

	// ErrNotFound is what a Resolver returns (possibly wrapped) when it has
	// no binding for a key.
	ErrNotFound = stderrors.New("di: not found")
)

// ValidationError reports a malformed constructor or injects specification.
// It is always returned when the descriptor is created, never later.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string        { return "di: invalid binding: " + e.Reason }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// MissingDependencyError reports a named inject the resolver could not find.
type MissingDependencyError struct {
	Key string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("di: required inject %q is not available in the container", e.Key)
}

func (e *MissingDependencyError) Is(target error) bool { return target == ErrMissingDependency }

// CircularDependencyError reports a resolution that asked for itself while
// it was still being built. Chain lists the keys involved, outermost first,
// when they are known.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	if len(e.Chain) == 0 {
		return "di: circular dependency: binding requested itself during construction"
	}
	return "di: circular dependency: " + strings.Join(e.Chain, " -> ")
}

func (e *CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

// ArgumentError reports an assembled argument a reflective constructor
// cannot accept.
type ArgumentError struct {
	Index  int
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("di: constructor argument %d: %s", e.Index, e.Reason)
}

func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
