package workcell

import (
	"errors"
	"fmt"
)

// ErrUnsupportedJointType is returned by the importer when a joint uses a
// type outside fixed/prismatic/revolute/continuous.
var ErrUnsupportedJointType = errors.New("unsupported joint type found")

// BrokenJointReferenceError is returned by the importer when a joint
// names a link absent from the input.
type BrokenJointReferenceError struct {
	Link string
}

func (e *BrokenJointReferenceError) Error() string {
	return fmt.Sprintf("a joint refers to a non existing link [%s]", e.Link)
}

// BrokenReferenceError is returned by the exporter when a joint's
// declared parent frame, or its computed child frame, cannot be located.
type BrokenReferenceError struct {
	ID ID
}

func (e *BrokenReferenceError) Error() string {
	return fmt.Sprintf("broken reference: %d", e.ID)
}

// InvalidAnchorTypeError is returned by the exporter when a joint's child
// frame is anchored by something other than a 3D pose.
type InvalidAnchorTypeError struct {
	Anchor Anchor
}

func (e *InvalidAnchorTypeError) Error() string {
	return fmt.Sprintf("invalid anchor type %v", e.Anchor)
}
