package workcell

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kestrel-robotics/gantry/pkg/urdf"
)

// JointAxis is a unit axis of motion for a single-DOF joint.
type JointAxis Vec3

// JointAxisFromURDF narrows a URDF axis.
func JointAxisFromURDF(a urdf.Axis) JointAxis {
	return JointAxis{float32(a.XYZ[0]), float32(a.XYZ[1]), float32(a.XYZ[2])}
}

// ToURDF widens the axis into URDF form.
func (a JointAxis) ToURDF() urdf.Axis {
	return urdf.Axis{XYZ: urdf.Vec3{float64(a[0]), float64(a[1]), float64(a[2])}}
}

// IsClose reports whether every axis component is within tol.
func (a JointAxis) IsClose(o JointAxis, tol float32) bool {
	return Vec3(a).IsClose(Vec3(o), tol)
}

// RangeLimitKind tags a range limit variant.
type RangeLimitKind int

const (
	// RangeNone means the limit is unspecified.
	RangeNone RangeLimitKind = iota
	// RangeSymmetric carries one magnitude applied to both directions.
	RangeSymmetric
	// RangeAsymmetric carries independent optional lower/upper bounds.
	RangeAsymmetric
)

// RangeLimit is a single motion limit: none, symmetric, or asymmetric.
type RangeLimit struct {
	Kind         RangeLimitKind
	Value        float32
	Lower, Upper *float32
}

// NoLimit returns an unspecified limit.
func NoLimit() RangeLimit {
	return RangeLimit{Kind: RangeNone}
}

// Symmetric returns a limit with one magnitude for both directions.
func Symmetric(v float32) RangeLimit {
	return RangeLimit{Kind: RangeSymmetric, Value: v}
}

// Asymmetric returns a limit with independent optional bounds.
func Asymmetric(lower, upper *float32) RangeLimit {
	return RangeLimit{Kind: RangeAsymmetric, Lower: lower, Upper: upper}
}

type asymmetricJSON struct {
	Lower *float32 `json:"lower,omitempty"`
	Upper *float32 `json:"upper,omitempty"`
}

func (l RangeLimit) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case RangeNone:
		return json.Marshal("none")
	case RangeSymmetric:
		return json.Marshal(map[string]float32{"symmetric": l.Value})
	case RangeAsymmetric:
		return json.Marshal(map[string]asymmetricJSON{"asymmetric": {l.Lower, l.Upper}})
	}
	return nil, fmt.Errorf("workcell: unknown range limit kind %d", l.Kind)
}

func (l *RangeLimit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "none" {
			return fmt.Errorf("workcell: unrecognized range limit %q", s)
		}
		*l = NoLimit()
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw["symmetric"] != nil:
		l.Kind = RangeSymmetric
		l.Lower, l.Upper = nil, nil
		return json.Unmarshal(raw["symmetric"], &l.Value)
	case raw["asymmetric"] != nil:
		var a asymmetricJSON
		if err := json.Unmarshal(raw["asymmetric"], &a); err != nil {
			return err
		}
		*l = Asymmetric(a.Lower, a.Upper)
		return nil
	}
	return fmt.Errorf("workcell: unrecognized range limit %s", data)
}

// JointLimits bundles the three motion limits of a single-DOF joint.
type JointLimits struct {
	Position RangeLimit `json:"position,omitzero"`
	Effort   RangeLimit `json:"effort,omitzero"`
	Velocity RangeLimit `json:"velocity,omitzero"`
}

// JointLimitsFromURDF narrows a URDF limit record. URDF stores position
// bounds independently and single scalars for effort and velocity.
func JointLimitsFromURDF(l urdf.JointLimit) JointLimits {
	lower := float32(l.Lower)
	upper := float32(l.Upper)
	return JointLimits{
		Position: Asymmetric(&lower, &upper),
		Effort:   Symmetric(float32(l.Effort)),
		Velocity: Symmetric(float32(l.Velocity)),
	}
}

// Engineering defaults injected when an effort or velocity limit is
// unspecified at export time.
const (
	DefaultEffortLimit   = 1e3
	DefaultVelocityLimit = 10.0
)

// minOrDefault collapses whichever bounds are present to their minimum,
// falling back to def when neither is set. URDF stores one scalar for
// effort/velocity, not a range.
func minOrDefault(lower, upper *float32, def float64) float64 {
	var vals []float64
	if lower != nil {
		vals = append(vals, float64(*lower))
	}
	if upper != nil {
		vals = append(vals, float64(*upper))
	}
	switch len(vals) {
	case 0:
		return def
	case 1:
		return vals[0]
	}
	return min(vals[0], vals[1])
}

// scalarLimit reduces a range limit to the single scalar URDF expects for
// effort and velocity fields, emitting a diagnostic whenever a default is
// substituted or an asymmetric range is collapsed.
func scalarLimit(l RangeLimit, field string, def float64) float64 {
	switch l.Kind {
	case RangeNone:
		slog.Warn("no limit found when exporting to urdf, using default",
			"field", field, "default", def)
		return def
	case RangeSymmetric:
		return float64(l.Value)
	case RangeAsymmetric:
		v := minOrDefault(l.Lower, l.Upper, def)
		slog.Warn("asymmetric limit found when exporting to urdf, collapsing to minimum",
			"field", field, "value", v)
		return v
	}
	return def
}

// ToURDF widens the limits into a URDF limit record, injecting defaults
// for unspecified effort/velocity and collapsing asymmetric records to a
// single scalar. Position limits with no record export as 0/0, URDF's own
// "no limit" convention.
func (l JointLimits) ToURDF() urdf.JointLimit {
	var lower, upper float64
	switch l.Position.Kind {
	case RangeSymmetric:
		lower = float64(l.Position.Value)
		upper = float64(l.Position.Value)
	case RangeAsymmetric:
		if l.Position.Lower != nil {
			lower = float64(*l.Position.Lower)
		}
		if l.Position.Upper != nil {
			upper = float64(*l.Position.Upper)
		}
	}
	return urdf.JointLimit{
		Lower:    lower,
		Upper:    upper,
		Effort:   scalarLimit(l.Effort, "effort", DefaultEffortLimit),
		Velocity: scalarLimit(l.Velocity, "velocity", DefaultVelocityLimit),
	}
}

// SingleDofJoint carries the axis and limits of a one-degree-of-freedom
// joint.
type SingleDofJoint struct {
	Limits JointLimits `json:"limits,omitzero"`
	Axis   JointAxis   `json:"axis,omitzero"`
}

// JointType enumerates the supported joint kinds.
type JointType int

const (
	JointFixed JointType = iota
	JointPrismatic
	JointRevolute
	JointContinuous
)

// JointProperties is a joint's type tag plus, for all kinds but Fixed,
// its single-DOF payload.
type JointProperties struct {
	Type JointType
	Dof  *SingleDofJoint
}

// FixedJoint returns properties for a rigid connection.
func FixedJoint() JointProperties {
	return JointProperties{Type: JointFixed}
}

// PrismaticJoint returns properties for a sliding joint.
func PrismaticJoint(d SingleDofJoint) JointProperties {
	return JointProperties{Type: JointPrismatic, Dof: &d}
}

// RevoluteJoint returns properties for a limited rotating joint.
func RevoluteJoint(d SingleDofJoint) JointProperties {
	return JointProperties{Type: JointRevolute, Dof: &d}
}

// ContinuousJoint returns properties for an unlimited rotating joint.
func ContinuousJoint(d SingleDofJoint) JointProperties {
	return JointProperties{Type: JointContinuous, Dof: &d}
}

// Label returns the human-readable joint type name, as shown by the
// editor's inspector.
func (p JointProperties) Label() string {
	switch p.Type {
	case JointFixed:
		return "Fixed"
	case JointPrismatic:
		return "Prismatic"
	case JointRevolute:
		return "Revolute"
	case JointContinuous:
		return "Continuous"
	}
	return "Unknown"
}

var jointTypeNames = map[JointType]string{
	JointFixed:      "fixed",
	JointPrismatic:  "prismatic",
	JointRevolute:   "revolute",
	JointContinuous: "continuous",
}

func (p JointProperties) MarshalJSON() ([]byte, error) {
	name, ok := jointTypeNames[p.Type]
	if !ok {
		return nil, fmt.Errorf("workcell: unknown joint type %d", p.Type)
	}
	if p.Type == JointFixed {
		return json.Marshal(name)
	}
	dof := SingleDofJoint{}
	if p.Dof != nil {
		dof = *p.Dof
	}
	return json.Marshal(map[string]SingleDofJoint{name: dof})
}

func (p *JointProperties) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "fixed" {
			return fmt.Errorf("workcell: unrecognized joint type %q", s)
		}
		*p = FixedJoint()
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for t, name := range jointTypeNames {
		if msg := raw[name]; msg != nil {
			var dof SingleDofJoint
			if err := json.Unmarshal(msg, &dof); err != nil {
				return err
			}
			*p = JointProperties{Type: t, Dof: &dof}
			return nil
		}
	}
	return fmt.Errorf("workcell: unrecognized joint properties %s", data)
}

// Joint is a named mechanism connecting its parent frame to the unique
// frame parented under it.
type Joint struct {
	Name       string          `json:"name,omitempty"`
	Properties JointProperties `json:"properties,omitzero"`
}

// jointPropertiesFromURDF maps a URDF joint onto the internal variant.
// Types outside the four supported kinds return ErrUnsupportedJointType.
// nil axis/limit records take the URDF defaults.
func jointPropertiesFromURDF(j urdf.Joint) (JointProperties, error) {
	axis := urdf.DefaultAxis
	if j.Axis != nil {
		axis = *j.Axis
	}
	var limit urdf.JointLimit
	if j.Limit != nil {
		limit = *j.Limit
	}
	dof := SingleDofJoint{
		Axis:   JointAxisFromURDF(axis),
		Limits: JointLimitsFromURDF(limit),
	}
	switch j.Type {
	case urdf.JointTypeFixed:
		return FixedJoint(), nil
	case urdf.JointTypePrismatic:
		return PrismaticJoint(dof), nil
	case urdf.JointTypeRevolute:
		return RevoluteJoint(dof), nil
	case urdf.JointTypeContinuous:
		return ContinuousJoint(dof), nil
	}
	return JointProperties{}, ErrUnsupportedJointType
}

// toURDF produces the type tag, axis and limit block for a URDF joint.
// Fixed joints emit a zero axis and zero limits; consumers ignore both.
func (p JointProperties) toURDF() (urdf.JointType, urdf.Axis, urdf.JointLimit) {
	switch p.Type {
	case JointPrismatic:
		return urdf.JointTypePrismatic, p.Dof.Axis.ToURDF(), p.Dof.Limits.ToURDF()
	case JointRevolute:
		return urdf.JointTypeRevolute, p.Dof.Axis.ToURDF(), p.Dof.Limits.ToURDF()
	case JointContinuous:
		return urdf.JointTypeContinuous, p.Dof.Axis.ToURDF(), p.Dof.Limits.ToURDF()
	}
	return urdf.JointTypeFixed, urdf.Axis{}, urdf.JointLimit{}
}
