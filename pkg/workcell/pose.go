package workcell

import (
	"encoding/json"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/kestrel-robotics/gantry/pkg/urdf"
)

// Vec3 is a 3-component vector. The document model stores single
// precision throughout; widening to float64 happens only at the URDF
// boundary.
type Vec3 [3]float32

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// IsClose reports whether every component is within tol of the other
// vector's.
func (v Vec3) IsClose(o Vec3, tol float32) bool {
	for i := range v {
		if math32.Abs(v[i]-o[i]) > tol {
			return false
		}
	}
	return true
}

// RotationKind tags the representation a Rotation carries.
type RotationKind int

const (
	// RotationEulerExtrinsicXYZ is roll/pitch/yaw in radians, applied
	// about the fixed X, then Y, then Z axes. This is the zero value, so
	// the zero Rotation is the identity.
	RotationEulerExtrinsicXYZ RotationKind = iota
	RotationAxisAngle
	RotationQuat
)

// Rotation is a tagged 3D rotation. Only the fields of the active kind
// are meaningful.
type Rotation struct {
	Kind  RotationKind
	Euler [3]float32 // radians, extrinsic XYZ
	Axis  Vec3
	Angle float32    // radians
	Quat  [4]float32 // x, y, z, w
}

// EulerRotation builds an extrinsic-XYZ rotation from angles in radians.
func EulerRotation(roll, pitch, yaw float32) Rotation {
	return Rotation{Kind: RotationEulerExtrinsicXYZ, Euler: [3]float32{roll, pitch, yaw}}
}

// AxisAngleRotation builds a rotation of angle radians about the given
// unit axis.
func AxisAngleRotation(axis Vec3, angle float32) Rotation {
	return Rotation{Kind: RotationAxisAngle, Axis: axis, Angle: angle}
}

// QuatRotation builds a rotation from a unit quaternion (x, y, z, w).
func QuatRotation(x, y, z, w float32) Rotation {
	return Rotation{Kind: RotationQuat, Quat: [4]float32{x, y, z, w}}
}

// AsEulerExtrinsicXYZ returns the canonical extrinsic-XYZ Euler
// decomposition of the rotation, in radians. Every kind reduces to this
// form, so it is the common ground for closeness comparison and for URDF
// rpy output.
func (r Rotation) AsEulerExtrinsicXYZ() [3]float32 {
	switch r.Kind {
	case RotationEulerExtrinsicXYZ:
		return r.Euler
	case RotationAxisAngle:
		s := math32.Sin(r.Angle / 2)
		q := [4]float32{r.Axis[0] * s, r.Axis[1] * s, r.Axis[2] * s, math32.Cos(r.Angle / 2)}
		return quatToEuler(q)
	case RotationQuat:
		return quatToEuler(r.Quat)
	}
	return [3]float32{}
}

// quatToEuler decomposes a unit quaternion into extrinsic-XYZ angles.
func quatToEuler(q [4]float32) [3]float32 {
	x, y, z, w := q[0], q[1], q[2], q[3]

	roll := math32.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))

	// Clamp to guard against numeric drift past the asin domain.
	sinp := 2 * (w*y - z*x)
	var pitch float32
	if math32.Abs(sinp) >= 1 {
		pitch = math32.Copysign(math32.Pi/2, sinp)
	} else {
		pitch = math32.Asin(sinp)
	}

	yaw := math32.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))

	return [3]float32{roll, pitch, yaw}
}

// IsClose compares two rotations through their canonical Euler
// decomposition, each angle within tol radians.
func (r Rotation) IsClose(o Rotation, tol float32) bool {
	a, b := r.AsEulerExtrinsicXYZ(), o.AsEulerExtrinsicXYZ()
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func (r Rotation) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RotationEulerExtrinsicXYZ:
		return json.Marshal(map[string][3]float32{"euler_extrinsic_xyz": r.Euler})
	case RotationAxisAngle:
		return json.Marshal(map[string]axisAngleJSON{"axis_angle": {Axis: r.Axis, Angle: r.Angle}})
	case RotationQuat:
		return json.Marshal(map[string][4]float32{"quat": r.Quat})
	}
	return nil, fmt.Errorf("workcell: unknown rotation kind %d", r.Kind)
}

type axisAngleJSON struct {
	Axis  Vec3    `json:"axis"`
	Angle float32 `json:"angle"`
}

func (r *Rotation) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw["euler_extrinsic_xyz"] != nil:
		r.Kind = RotationEulerExtrinsicXYZ
		return json.Unmarshal(raw["euler_extrinsic_xyz"], &r.Euler)
	case raw["axis_angle"] != nil:
		var aa axisAngleJSON
		if err := json.Unmarshal(raw["axis_angle"], &aa); err != nil {
			return err
		}
		r.Kind = RotationAxisAngle
		r.Axis, r.Angle = aa.Axis, aa.Angle
		return nil
	case raw["quat"] != nil:
		r.Kind = RotationQuat
		return json.Unmarshal(raw["quat"], &r.Quat)
	}
	return fmt.Errorf("workcell: unrecognized rotation %s", data)
}

// Pose is a rigid transform: a translation and a rotation. The zero value
// is the identity pose.
type Pose struct {
	Trans Vec3     `json:"trans,omitzero"`
	Rot   Rotation `json:"rot,omitzero"`
}

// IsClose reports whether both poses agree within tol on every
// translation component and on every canonical Euler angle.
func (p Pose) IsClose(o Pose, tol float32) bool {
	return p.Trans.IsClose(o.Trans, tol) && p.Rot.IsClose(o.Rot, tol)
}

// AnchorKind tags the coordinate anchor representation of a frame.
type AnchorKind int

const (
	// AnchorPose3D is a full 3D pose; the zero value, and the only kind
	// the URDF exporter accepts.
	AnchorPose3D AnchorKind = iota
	// AnchorTranslate2D is a planar anchor used by frames that live on a
	// 2D layout surface; it carries no orientation.
	AnchorTranslate2D
)

// Anchor is a frame's coordinate anchor.
type Anchor struct {
	Kind      AnchorKind
	Pose      Pose
	Translate [2]float32
}

// PoseAnchor wraps a pose as a 3D anchor.
func PoseAnchor(p Pose) Anchor {
	return Anchor{Kind: AnchorPose3D, Pose: p}
}

// IsClose reports whether two anchors have the same kind and agree within
// tol. Mixed-kind comparisons are never close.
func (a Anchor) IsClose(o Anchor, tol float32) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case AnchorPose3D:
		return a.Pose.IsClose(o.Pose, tol)
	case AnchorTranslate2D:
		return math32.Abs(a.Translate[0]-o.Translate[0]) <= tol &&
			math32.Abs(a.Translate[1]-o.Translate[1]) <= tol
	}
	return false
}

func (a Anchor) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnchorPose3D:
		return json.Marshal(map[string]Pose{"pose3d": a.Pose})
	case AnchorTranslate2D:
		return json.Marshal(map[string][2]float32{"translate2d": a.Translate})
	}
	return nil, fmt.Errorf("workcell: unknown anchor kind %d", a.Kind)
}

func (a *Anchor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw["pose3d"] != nil:
		a.Kind = AnchorPose3D
		return json.Unmarshal(raw["pose3d"], &a.Pose)
	case raw["translate2d"] != nil:
		a.Kind = AnchorTranslate2D
		return json.Unmarshal(raw["translate2d"], &a.Translate)
	}
	return fmt.Errorf("workcell: unrecognized anchor %s", data)
}

// Frame is a named coordinate anchor. Frames parent to the document root
// or to a joint; everything else in the document parents to a frame.
type Frame struct {
	Anchor Anchor `json:"anchor,omitzero"`
	Name   string `json:"name,omitempty"`
}

// PoseFromURDF narrows a URDF origin into a document pose.
func PoseFromURDF(p urdf.Pose) Pose {
	return Pose{
		Trans: Vec3{float32(p.XYZ[0]), float32(p.XYZ[1]), float32(p.XYZ[2])},
		Rot:   EulerRotation(float32(p.RPY[0]), float32(p.RPY[1]), float32(p.RPY[2])),
	}
}

// ToURDF widens the pose into a URDF origin, reducing the rotation to its
// canonical Euler form.
func (p Pose) ToURDF() urdf.Pose {
	e := p.Rot.AsEulerExtrinsicXYZ()
	return urdf.Pose{
		XYZ: urdf.Vec3{float64(p.Trans[0]), float64(p.Trans[1]), float64(p.Trans[2])},
		RPY: urdf.Vec3{float64(e[0]), float64(e[1]), float64(e[2])},
	}
}
