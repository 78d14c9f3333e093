// Package urdf defines a typed representation of URDF robot description
// documents and an XML codec for them. It covers the subset of URDF that
// the workcell document model converts to and from: links with inertial,
// visual and collision entries, and joints with type, origin, axis and
// limit records. Parsing of anything beyond that subset (transmissions,
// materials, gazebo extensions) is out of scope.
package urdf

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Vec3 is a 3-component vector serialized as a space-separated XML
// attribute, e.g. xyz="0 -0.22 0.25".
type Vec3 [3]float64

// MarshalXMLAttr implements xml.MarshalerAttr.
func (v Vec3) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	parts := make([]string, 3)
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return xml.Attr{Name: name, Value: strings.Join(parts, " ")}, nil
}

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (v *Vec3) UnmarshalXMLAttr(attr xml.Attr) error {
	fields := strings.Fields(attr.Value)
	if len(fields) != 3 {
		return fmt.Errorf("urdf: attribute %s: want 3 components, got %q", attr.Name.Local, attr.Value)
	}
	for i, f := range fields {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("urdf: attribute %s: %w", attr.Name.Local, err)
		}
		v[i] = val
	}
	return nil
}

// Pose is an origin element: a translation and extrinsic-XYZ Euler
// rotation (roll, pitch, yaw) in radians. The zero value is the identity
// pose, which is also the URDF default when the element is absent.
type Pose struct {
	XYZ Vec3 `xml:"xyz,attr"`
	RPY Vec3 `xml:"rpy,attr"`
}

// JointType enumerates the URDF joint type attribute values.
type JointType string

const (
	JointTypeRevolute   JointType = "revolute"
	JointTypeContinuous JointType = "continuous"
	JointTypePrismatic  JointType = "prismatic"
	JointTypeFixed      JointType = "fixed"
	JointTypeFloating   JointType = "floating"
	JointTypePlanar     JointType = "planar"
)

// Axis is a joint axis element. URDF defines (1,0,0) as the default when
// the element is absent; callers see absence as a nil *Axis.
type Axis struct {
	XYZ Vec3 `xml:"xyz,attr"`
}

// DefaultAxis is the axis URDF prescribes when a joint omits <axis>.
var DefaultAxis = Axis{XYZ: Vec3{1, 0, 0}}

// JointLimit is a joint limit element. All fields default to zero, which
// URDF treats as "no limit" for lower/upper.
type JointLimit struct {
	Lower    float64 `xml:"lower,attr"`
	Upper    float64 `xml:"upper,attr"`
	Effort   float64 `xml:"effort,attr"`
	Velocity float64 `xml:"velocity,attr"`
}

// Mass is the scalar mass element of an inertial record.
type Mass struct {
	Value float64 `xml:"value,attr"`
}

// Inertia holds the six independent components of the symmetric 3x3
// inertia tensor.
type Inertia struct {
	Ixx float64 `xml:"ixx,attr"`
	Ixy float64 `xml:"ixy,attr"`
	Ixz float64 `xml:"ixz,attr"`
	Iyy float64 `xml:"iyy,attr"`
	Iyz float64 `xml:"iyz,attr"`
	Izz float64 `xml:"izz,attr"`
}

// Inertial is a link's inertial record. The zero value is a valid default
// (massless link), matching URDF semantics for an absent element.
type Inertial struct {
	Origin  Pose    `xml:"origin"`
	Mass    Mass    `xml:"mass"`
	Inertia Inertia `xml:"inertia"`
}

// Box is a box geometry primitive with full side lengths.
type Box struct {
	Size Vec3 `xml:"size,attr"`
}

// Cylinder is a cylinder geometry primitive.
type Cylinder struct {
	Radius float64 `xml:"radius,attr"`
	Length float64 `xml:"length,attr"`
}

// Capsule is a capsule geometry primitive.
type Capsule struct {
	Radius float64 `xml:"radius,attr"`
	Length float64 `xml:"length,attr"`
}

// Sphere is a sphere geometry primitive.
type Sphere struct {
	Radius float64 `xml:"radius,attr"`
}

// Mesh is a mesh geometry reference. Filename is typically a
// package://-style locator; Scale is an optional non-uniform scale.
type Mesh struct {
	Filename string `xml:"filename,attr"`
	Scale    *Vec3  `xml:"scale,attr,omitempty"`
}

// Geometry is a one-of container: exactly one of the fields is non-nil.
type Geometry struct {
	Box      *Box      `xml:"box,omitempty"`
	Cylinder *Cylinder `xml:"cylinder,omitempty"`
	Capsule  *Capsule  `xml:"capsule,omitempty"`
	Sphere   *Sphere   `xml:"sphere,omitempty"`
	Mesh     *Mesh     `xml:"mesh,omitempty"`
}

// Visual is a link's visual geometry entry. Origin is relative to the
// link frame.
type Visual struct {
	Name     string   `xml:"name,attr,omitempty"`
	Origin   Pose     `xml:"origin"`
	Geometry Geometry `xml:"geometry"`
}

// Collision is a link's collision geometry entry.
type Collision struct {
	Name     string   `xml:"name,attr,omitempty"`
	Origin   Pose     `xml:"origin"`
	Geometry Geometry `xml:"geometry"`
}

// Link is a rigid body: a name plus inertial, visual and collision data.
type Link struct {
	Name       string      `xml:"name,attr"`
	Inertial   Inertial    `xml:"inertial"`
	Visuals    []Visual    `xml:"visual"`
	Collisions []Collision `xml:"collision"`
}

// LinkName is a parent or child reference inside a joint element.
type LinkName struct {
	Link string `xml:"link,attr"`
}

// Joint connects a parent link to a child link. Origin is the transform
// from the parent link frame to the joint frame; the child link is rigidly
// attached at the joint. Axis and Limit are nil when the corresponding
// elements are absent from the document.
type Joint struct {
	Name   string      `xml:"name,attr"`
	Type   JointType   `xml:"type,attr"`
	Origin Pose        `xml:"origin"`
	Parent LinkName    `xml:"parent"`
	Child  LinkName    `xml:"child"`
	Axis   *Axis       `xml:"axis,omitempty"`
	Limit  *JointLimit `xml:"limit,omitempty"`
}

// Robot is a complete URDF robot description document.
type Robot struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []Link   `xml:"link"`
	Joints  []Joint  `xml:"joint"`
}
