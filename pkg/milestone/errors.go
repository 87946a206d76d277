package milestone

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConstraints is returned when the capacity bounds or pins
	// cannot be used at all.
	ErrInvalidConstraints = errors.New("invalid milestone constraints")

	// ErrInvalidPin is the sentinel behind [InvalidPinError].
	ErrInvalidPin = errors.New("invalid pin")
)

// InvalidPinError reports a pin that no cut of the ordering can honor.
type InvalidPinError struct {
	// Node is the pinned node.
	Node string
	// Pin is the requested milestone index.
	Pin int
	// Natural is the index the node would have had without the pin.
	Natural int
	// Prerequisite names a prerequisite of Node pinned to a later milestone
	// than Pin. It is empty when the conflict is with ordering alone.
	Prerequisite string
	// PrerequisiteMilestone is the index of Prerequisite's milestone.
	PrerequisiteMilestone int
	// Reason describes the conflict for humans.
	Reason string
}

func (e *InvalidPinError) Error() string {
	return fmt.Sprintf("cannot pin %q to milestone %d: %s", e.Node, e.Pin, e.Reason)
}

func (e *InvalidPinError) Unwrap() error { return ErrInvalidPin }

func invalidConstraints(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConstraints, fmt.Sprintf(format, args...))
}
