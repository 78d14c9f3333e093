package workcell

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/kestrel-robotics/gantry/pkg/urdf"
)

func f32(v float32) *float32 { return &v }

func TestJointLimitsFromURDF(t *testing.T) {
	in := urdf.JointLimit{Lower: -1.5, Upper: 2.5, Effort: 100, Velocity: 3}
	limits := JointLimitsFromURDF(in)
	if limits.Position.Kind != RangeAsymmetric {
		t.Fatalf("position kind = %d, want asymmetric", limits.Position.Kind)
	}
	if *limits.Position.Lower != -1.5 || *limits.Position.Upper != 2.5 {
		t.Errorf("position = %v/%v, want -1.5/2.5", *limits.Position.Lower, *limits.Position.Upper)
	}
	if limits.Effort.Kind != RangeSymmetric || limits.Effort.Value != 100 {
		t.Errorf("effort = %+v, want symmetric 100", limits.Effort)
	}
	if limits.Velocity.Kind != RangeSymmetric || limits.Velocity.Value != 3 {
		t.Errorf("velocity = %+v, want symmetric 3", limits.Velocity)
	}
}

func TestJointLimitsToURDFDefaults(t *testing.T) {
	limits := JointLimits{
		Position: NoLimit(),
		Effort:   NoLimit(),
		Velocity: NoLimit(),
	}
	out := limits.ToURDF()
	// 0/0 is urdf's own "no position limit" convention.
	if out.Lower != 0 || out.Upper != 0 {
		t.Errorf("position = %v/%v, want 0/0", out.Lower, out.Upper)
	}
	if out.Effort != DefaultEffortLimit {
		t.Errorf("effort = %v, want default %v", out.Effort, float64(DefaultEffortLimit))
	}
	if out.Velocity != DefaultVelocityLimit {
		t.Errorf("velocity = %v, want default %v", out.Velocity, float64(DefaultVelocityLimit))
	}
}

func TestJointLimitsToURDFSymmetricPosition(t *testing.T) {
	limits := JointLimits{
		Position: Symmetric(1.2),
		Effort:   Symmetric(10),
		Velocity: Symmetric(2),
	}
	out := limits.ToURDF()
	if math.Abs(out.Lower-1.2) > 1e-6 || math.Abs(out.Upper-1.2) > 1e-6 {
		t.Errorf("position = %v/%v, want 1.2/1.2", out.Lower, out.Upper)
	}
}

func TestJointLimitsToURDFAsymmetricCollapse(t *testing.T) {
	limits := JointLimits{
		Position: Asymmetric(f32(-0.5), nil),
		Effort:   Asymmetric(f32(40), f32(20)),
		Velocity: Asymmetric(nil, f32(7)),
	}
	out := limits.ToURDF()
	if math.Abs(out.Lower+0.5) > 1e-6 || out.Upper != 0 {
		t.Errorf("position = %v/%v, want -0.5/0", out.Lower, out.Upper)
	}
	// urdf stores one scalar, so asymmetric records collapse to their
	// minimum present bound.
	if math.Abs(out.Effort-20) > 1e-6 {
		t.Errorf("effort = %v, want 20", out.Effort)
	}
	if math.Abs(out.Velocity-7) > 1e-6 {
		t.Errorf("velocity = %v, want 7", out.Velocity)
	}
}

func TestJointLimitsToURDFAsymmetricEmptyFallsBack(t *testing.T) {
	limits := JointLimits{
		Position: NoLimit(),
		Effort:   Asymmetric(nil, nil),
		Velocity: Symmetric(1),
	}
	out := limits.ToURDF()
	if out.Effort != DefaultEffortLimit {
		t.Errorf("effort = %v, want default %v", out.Effort, float64(DefaultEffortLimit))
	}
}

func TestRangeLimitJSONRoundTrip(t *testing.T) {
	cases := []RangeLimit{
		NoLimit(),
		Symmetric(3.5),
		Asymmetric(f32(-1), f32(2)),
		Asymmetric(nil, f32(2)),
	}
	for _, l := range cases {
		data, err := json.Marshal(l)
		if err != nil {
			t.Fatalf("marshal %+v: %v", l, err)
		}
		var back RangeLimit
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if !reflect.DeepEqual(back, l) {
			t.Errorf("round trip %s: got %+v, want %+v", data, back, l)
		}
	}
}

func TestJointPropertiesJSONRoundTrip(t *testing.T) {
	dof := SingleDofJoint{
		Axis: JointAxis{0, 0, 1},
		Limits: JointLimits{
			Position: Asymmetric(f32(0), f32(0.548)),
			Effort:   Symmetric(1000),
			Velocity: Symmetric(0.5),
		},
	}
	cases := []JointProperties{
		FixedJoint(),
		PrismaticJoint(dof),
		RevoluteJoint(dof),
		ContinuousJoint(dof),
	}
	for _, p := range cases {
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %s: %v", p.Label(), err)
		}
		var back JointProperties
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if !reflect.DeepEqual(back, p) {
			t.Errorf("round trip %s: got %+v, want %+v", data, back, p)
		}
	}
}

func TestJointLabel(t *testing.T) {
	if got := FixedJoint().Label(); got != "Fixed" {
		t.Errorf("label = %q, want Fixed", got)
	}
	if got := RevoluteJoint(SingleDofJoint{}).Label(); got != "Revolute" {
		t.Errorf("label = %q, want Revolute", got)
	}
}

func TestJointAxisRoundTrip(t *testing.T) {
	axis := JointAxis{0, 1, 0}
	back := JointAxisFromURDF(axis.ToURDF())
	if !back.IsClose(axis, 1e-6) {
		t.Errorf("axis round trip: got %v, want %v", back, axis)
	}
}
