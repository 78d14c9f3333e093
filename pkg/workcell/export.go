package workcell

import (
	"fmt"
	"io"

	"github.com/kestrel-robotics/gantry/pkg/urdf"
)

// ToURDF rebuilds a robot description from the document.
//
// Each frame exports as one link. If the root has exactly one direct
// frame child, that frame becomes the base link and the root is dropped
// (flattening); otherwise a placeholder base link named
// "<name>_workcell_link" is synthesized at the root's identifier, with
// the NoParent sentinel and an identity pose. Each joint exports with its
// parent frame looked up by id and its child found as the unique frame
// parented under the joint; the child frame's pose anchor becomes the
// joint origin.
//
// Known limitation: frames connected to each other without an
// intervening joint are not merged into a single link. Only single-hop
// frame-joint-frame sequences export correctly; deeper frame-only chains
// produce links with no joint connecting them.
func (w *Workcell) ToURDF() (*urdf.Robot, error) {
	parentToVisuals := make(map[ID][]urdf.Visual)
	for _, id := range sortedIDs(w.Visuals) {
		visual := w.Visuals[id]
		parentToVisuals[visual.Parent] = append(parentToVisuals[visual.Parent], visual.Bundle.ToVisual())
	}

	parentToCollisions := make(map[ID][]urdf.Collision)
	for _, id := range sortedIDs(w.Collisions) {
		collision := w.Collisions[id]
		parentToCollisions[collision.Parent] = append(parentToCollisions[collision.Parent], collision.Bundle.ToCollision())
	}

	parentToInertials := make(map[ID]urdf.Inertial, len(w.Inertias))
	for _, inertia := range w.Inertias {
		parentToInertials[inertia.Parent] = inertia.Bundle.ToURDF()
	}

	// One-shot adjacency index from the frames' parent pointers, used
	// both for root handling and for joint child lookup.
	frameChildren := make(map[ID][]ID)
	for _, id := range sortedIDs(w.Frames) {
		parent := w.Frames[id].Parent
		frameChildren[parent] = append(frameChildren[parent], id)
	}

	frames := make(map[ID]Parented[Frame], len(w.Frames)+1)
	for id, frame := range w.Frames {
		frames[id] = frame
	}
	if len(frameChildren[w.ID]) != 1 {
		// Zero or several direct children: synthesize a placeholder base
		// link occupying the root's id. Per Industrial Workcell
		// Coordinate Conventions the datum link is named
		// "<workcell_name>_workcell_link".
		frames[w.ID] = Parented[Frame]{
			Parent: NoParent,
			Bundle: Frame{
				Anchor: PoseAnchor(Pose{}),
				Name:   w.Name + "_workcell_link",
			},
		}
	}

	links := make([]urdf.Link, 0, len(frames))
	for _, frameID := range sortedIDs(frames) {
		links = append(links, urdf.Link{
			Name:       frames[frameID].Bundle.Name,
			Inertial:   parentToInertials[frameID],
			Visuals:    parentToVisuals[frameID],
			Collisions: parentToCollisions[frameID],
		})
	}

	joints := make([]urdf.Joint, 0, len(w.Joints))
	for _, jointID := range sortedIDs(w.Joints) {
		parented := w.Joints[jointID]
		parentFrame, ok := w.Frames[parented.Parent]
		if !ok {
			return nil, &BrokenReferenceError{ID: parented.Parent}
		}
		children := frameChildren[jointID]
		if len(children) == 0 {
			return nil, &BrokenReferenceError{ID: jointID}
		}
		childFrame := w.Frames[children[0]]
		// The exported joint origin is the pose of the frame that has
		// this joint as its parent.
		if childFrame.Bundle.Anchor.Kind != AnchorPose3D {
			return nil, &InvalidAnchorTypeError{Anchor: childFrame.Bundle.Anchor}
		}
		jointType, axis, limit := parented.Bundle.Properties.toURDF()
		joints = append(joints, urdf.Joint{
			Name:   parented.Bundle.Name,
			Type:   jointType,
			Origin: childFrame.Bundle.Anchor.Pose.ToURDF(),
			Parent: urdf.LinkName{Link: parentFrame.Bundle.Name},
			Child:  urdf.LinkName{Link: childFrame.Bundle.Name},
			Axis:   &axis,
			Limit:  &limit,
		})
	}

	return &urdf.Robot{Name: w.Name, Links: links, Joints: joints}, nil
}

// ToURDFString exports the document and serializes it to URDF XML.
func (w *Workcell) ToURDFString() (string, error) {
	robot, err := w.ToURDF()
	if err != nil {
		return "", err
	}
	s, err := urdf.WriteString(robot)
	if err != nil {
		return "", fmt.Errorf("workcell: %w", err)
	}
	return s, nil
}

// ToURDFWriter exports the document and writes the URDF XML to out.
func (w *Workcell) ToURDFWriter(out io.Writer) error {
	s, err := w.ToURDFString()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, s); err != nil {
		return fmt.Errorf("workcell: write urdf: %w", err)
	}
	return nil
}
