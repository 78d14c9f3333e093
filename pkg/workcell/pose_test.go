package workcell

import (
	"encoding/json"
	"testing"

	"github.com/chewxy/math32"
)

func TestRotationZeroValueIsIdentity(t *testing.T) {
	var r Rotation
	if r.Kind != RotationEulerExtrinsicXYZ {
		t.Fatalf("zero rotation kind = %d, want euler", r.Kind)
	}
	if e := r.AsEulerExtrinsicXYZ(); e != [3]float32{} {
		t.Errorf("zero rotation decomposes to %v, want zeros", e)
	}
}

func TestQuatToEuler(t *testing.T) {
	halfSqrt2 := math32.Sqrt(2) / 2
	cases := []struct {
		name string
		rot  Rotation
		want [3]float32
	}{
		{"identity quat", QuatRotation(0, 0, 0, 1), [3]float32{0, 0, 0}},
		{"90deg about z", QuatRotation(0, 0, halfSqrt2, halfSqrt2), [3]float32{0, 0, math32.Pi / 2}},
		{"90deg about x", QuatRotation(halfSqrt2, 0, 0, halfSqrt2), [3]float32{math32.Pi / 2, 0, 0}},
		{"axis angle about y", AxisAngleRotation(Vec3{0, 1, 0}, 1.2), [3]float32{0, 1.2, 0}},
	}
	for _, tc := range cases {
		got := tc.rot.AsEulerExtrinsicXYZ()
		for i := range got {
			if math32.Abs(got[i]-tc.want[i]) > 1e-5 {
				t.Errorf("%s: euler = %v, want %v", tc.name, got, tc.want)
				break
			}
		}
	}
}

func TestRotationIsCloseAcrossRepresentations(t *testing.T) {
	euler := EulerRotation(0, 0, math32.Pi/2)
	halfSqrt2 := math32.Sqrt(2) / 2
	quat := QuatRotation(0, 0, halfSqrt2, halfSqrt2)
	if !euler.IsClose(quat, 1e-5) {
		t.Error("equivalent euler and quat rotations compare as different")
	}
	if euler.IsClose(EulerRotation(0, 0, math32.Pi/2+1e-3), 1e-6) {
		t.Error("rotations outside tolerance compare as close")
	}
}

func TestPoseIsClose(t *testing.T) {
	a := Pose{Trans: Vec3{1, 2, 3}, Rot: EulerRotation(0.1, 0.2, 0.3)}
	b := Pose{Trans: Vec3{1, 2, 3 + 5e-7}, Rot: EulerRotation(0.1, 0.2, 0.3)}
	if !a.IsClose(b, 1e-6) {
		t.Error("poses within tolerance compare as different")
	}
	c := Pose{Trans: Vec3{1, 2, 3.1}, Rot: a.Rot}
	if a.IsClose(c, 1e-6) {
		t.Error("poses outside tolerance compare as close")
	}
}

func TestAnchorKindMismatchNeverClose(t *testing.T) {
	pose := PoseAnchor(Pose{})
	planar := Anchor{Kind: AnchorTranslate2D}
	if pose.IsClose(planar, 1e9) {
		t.Error("anchors of different kinds compared as close")
	}
}

func TestRotationJSONRoundTrip(t *testing.T) {
	cases := []Rotation{
		EulerRotation(0.1, -0.2, 0.3),
		AxisAngleRotation(Vec3{0, 0, 1}, 1.5),
		QuatRotation(0, 0, 0.7071, 0.7071),
	}
	for _, r := range cases {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal %+v: %v", r, err)
		}
		var back Rotation
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != r {
			t.Errorf("round trip %s: got %+v, want %+v", data, back, r)
		}
	}
}

func TestAnchorJSONRoundTrip(t *testing.T) {
	cases := []Anchor{
		PoseAnchor(Pose{Trans: Vec3{1, 2, 3}, Rot: EulerRotation(0, 1, 0)}),
		{Kind: AnchorTranslate2D, Translate: [2]float32{4, 5}},
	}
	for _, a := range cases {
		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("marshal %+v: %v", a, err)
		}
		var back Anchor
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != a {
			t.Errorf("round trip %s: got %+v, want %+v", data, back, a)
		}
	}
}
