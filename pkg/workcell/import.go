package workcell

import (
	"github.com/kestrel-robotics/gantry/pkg/urdf"
)

// FromURDF builds a workcell document from a robot description.
//
// Every link becomes a frame (initially parented to the root with an
// identity pose) with its inertial record and geometry entries as
// children. Every joint then parents under its parent link's frame, and
// the child link's frame is re-parented under the joint with the joint's
// origin pose as its anchor: in URDF the origin is the transform from
// parent link to joint and the child link sits at the joint, so this
// re-parenting preserves the full pose chain with frame-to-frame
// composition alone.
//
// The import is all-or-nothing: a joint naming an unknown link fails with
// BrokenJointReferenceError, a joint outside the four supported types
// fails with ErrUnsupportedJointType, and no partial document escapes.
func FromURDF(robot *urdf.Robot) (*Workcell, error) {
	w := New(robot.Name)
	alloc := NewAllocator()
	frameNameToID := make(map[string]ID, len(robot.Links))

	for _, link := range robot.Links {
		frameID := alloc.Next()
		inertiaID := alloc.Next()
		frameNameToID[link.Name] = frameID
		// Pose and parent are overwritten below if a joint targets this
		// link as its child.
		w.Frames[frameID] = Parented[Frame]{
			Parent: w.ID,
			Bundle: Frame{Anchor: PoseAnchor(Pose{}), Name: link.Name},
		}
		w.Inertias[inertiaID] = Parented[Inertia]{
			Parent: frameID,
			Bundle: InertiaFromURDF(link.Inertial),
		}
		for _, visual := range link.Visuals {
			w.Visuals[alloc.Next()] = Parented[Model]{
				Parent: frameID,
				Bundle: ModelFromVisual(visual),
			}
		}
		for _, collision := range link.Collisions {
			w.Collisions[alloc.Next()] = Parented[Model]{
				Parent: frameID,
				Bundle: ModelFromCollision(collision),
			}
		}
	}

	for _, joint := range robot.Joints {
		parentID, ok := frameNameToID[joint.Parent.Link]
		if !ok {
			return nil, &BrokenJointReferenceError{Link: joint.Parent.Link}
		}
		childID, ok := frameNameToID[joint.Child.Link]
		if !ok {
			return nil, &BrokenJointReferenceError{Link: joint.Child.Link}
		}
		properties, err := jointPropertiesFromURDF(joint)
		if err != nil {
			return nil, err
		}
		jointID := alloc.Next()
		// Reassign the child frame's parenthood and pose to the joint.
		// The frame is known to exist: its name resolved above.
		childFrame := w.Frames[childID]
		childFrame.Parent = jointID
		childFrame.Bundle.Anchor = PoseAnchor(PoseFromURDF(joint.Origin))
		w.Frames[childID] = childFrame
		w.Joints[jointID] = Parented[Joint]{
			Parent: parentID,
			Bundle: Joint{Name: joint.Name, Properties: properties},
		}
	}

	return w, nil
}
