package workcell

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/kestrel-robotics/gantry/pkg/urdf"
)

func TestAssetSourceFromURDF(t *testing.T) {
	cases := []struct {
		filename string
		want     AssetSource
	}{
		{"package://my_pkg/meshes/arm.dae", AssetSource{Kind: AssetPackage, Path: "my_pkg/meshes/arm.dae"}},
		{"/tmp/arm.stl", AssetSource{Kind: AssetLocal, Path: "/tmp/arm.stl"}},
		{"relative/arm.obj", AssetSource{Kind: AssetLocal, Path: "relative/arm.obj"}},
	}
	for _, tc := range cases {
		got := AssetSourceFromURDF(tc.filename)
		if got != tc.want {
			t.Errorf("AssetSourceFromURDF(%q) = %+v, want %+v", tc.filename, got, tc.want)
		}
		if got.UnvalidatedAssetPath() != tc.filename {
			t.Errorf("path %q did not survive the round trip: %q", tc.filename, got.UnvalidatedAssetPath())
		}
	}
}

func TestPrimitiveGeometryURDFRoundTrip(t *testing.T) {
	cases := []Geometry{
		PrimitiveGeometry(Box(Vec3{0.6, 0.1, 0.2})),
		PrimitiveGeometry(Cylinder(0.035, 0.1)),
		PrimitiveGeometry(Capsule(0.05, 0.3)),
		PrimitiveGeometry(Sphere(0.2)),
	}
	for _, g := range cases {
		back := GeometryFromURDF(g.ToURDF())
		if !reflect.DeepEqual(back, g) {
			t.Errorf("geometry round trip: got %+v, want %+v", back, g)
		}
	}
}

func TestMeshGeometryURDFRoundTrip(t *testing.T) {
	scale := Vec3{1, 2, 0.5}
	g := MeshGeometry(AssetSource{Kind: AssetPackage, Path: "pkg/meshes/part.dae"}, &scale)
	out := g.ToURDF()
	if out.Mesh == nil {
		t.Fatalf("mesh geometry exported as %+v", out)
	}
	if out.Mesh.Filename != "package://pkg/meshes/part.dae" {
		t.Errorf("filename = %q, want package:// locator", out.Mesh.Filename)
	}
	if out.Mesh.Scale == nil {
		t.Fatal("scale dropped on export")
	}
	back := GeometryFromURDF(out)
	if !reflect.DeepEqual(back, g) {
		t.Errorf("mesh round trip: got %+v, want %+v", back, g)
	}

	// Unscaled meshes keep a nil scale both ways.
	plain := MeshGeometry(AssetSource{Kind: AssetLocal, Path: "part.stl"}, nil)
	if plainOut := plain.ToURDF(); plainOut.Mesh.Scale != nil {
		t.Errorf("nil scale exported as %+v", plainOut.Mesh.Scale)
	}
}

func TestGeometryJSONRoundTrip(t *testing.T) {
	scale := Vec3{2, 2, 2}
	cases := []Geometry{
		PrimitiveGeometry(Box(Vec3{1, 2, 3})),
		PrimitiveGeometry(Cylinder(0.5, 1)),
		PrimitiveGeometry(Capsule(0.5, 1)),
		PrimitiveGeometry(Sphere(0.5)),
		MeshGeometry(AssetSource{Kind: AssetPackage, Path: "p/m.dae"}, &scale),
		MeshGeometry(AssetSource{Kind: AssetLocal, Path: "m.stl"}, nil),
	}
	for _, g := range cases {
		data, err := json.Marshal(g)
		if err != nil {
			t.Fatalf("marshal %+v: %v", g, err)
		}
		var back Geometry
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if !reflect.DeepEqual(back, g) {
			t.Errorf("round trip %s: got %+v, want %+v", data, back, g)
		}
	}
}

func TestModelFromURDFEntries(t *testing.T) {
	origin := urdf.Pose{XYZ: urdf.Vec3{0, 0, -0.3}, RPY: urdf.Vec3{0, 1.57075, 0}}
	geom := urdf.Geometry{Box: &urdf.Box{Size: urdf.Vec3{0.6, 0.1, 0.2}}}

	visual := ModelFromVisual(urdf.Visual{Name: "leg_visual", Origin: origin, Geometry: geom})
	if visual.Name != "leg_visual" {
		t.Errorf("visual name = %q", visual.Name)
	}
	if visual.Geometry.Primitive.Kind != ShapeBox {
		t.Errorf("visual geometry = %+v, want box", visual.Geometry)
	}
	if !visual.Pose.IsClose(Pose{Trans: Vec3{0, 0, -0.3}, Rot: EulerRotation(0, 1.57075, 0)}, 1e-6) {
		t.Errorf("visual pose = %+v", visual.Pose)
	}

	collision := ModelFromCollision(urdf.Collision{Origin: origin, Geometry: geom})
	if !reflect.DeepEqual(collision.Geometry, visual.Geometry) {
		t.Error("collision and visual conversions disagree on geometry")
	}
}
