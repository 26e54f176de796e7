package searchresult

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

// ErrNotImplemented is matched by every *NotImplementedError through errors.Is.
var ErrNotImplemented = errors.New("not implemented")

// NotImplementedError is returned by contract operations that cannot have valid
// semantics for a self-loading, read-only collection.
type NotImplementedError struct {
	Operation string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Operation)
}

// Is makes errors.Is(err, ErrNotImplemented) hold for any operation.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

func notImplemented(op string) error {
	return &NotImplementedError{Operation: op}
}

// PageSizeError is returned when the requested page size exceeds the maximum allowed.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested page size %d exceeds maximum allowed page size of %d",
		e.Requested, e.Maximum)
}
