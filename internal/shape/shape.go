// Package shape turns the panics of the must2 and must3 constructors into
// errors.
package shape

import (
	"fmt"
	"runtime/debug"
)

// Error is a shape that could not be built from its arguments.
type Error struct {
	Shape  string
	Reason any
	// Stack is where the constructor panicked.
	Stack string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Shape, e.Reason)
}

// Guard runs build and returns its panic, if any, as an *Error.
func Guard[T any](name string, build func() T) (s T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Shape: name, Reason: r, Stack: string(debug.Stack())}
		}
	}()
	return build(), nil
}
