// Package solid synthesizes SDF solids from workcell geometry using the
// github.com/deadsy/sdfx CAD library. The editor uses these solids for
// preview meshing and bounding queries; mesh assets are resolved by the
// asset loader, not here.
package solid

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kestrel-robotics/gantry/pkg/workcell"
)

// FromPrimitive builds an SDF solid for a primitive shape, centered at
// the origin like the corresponding URDF primitives.
func FromPrimitive(p workcell.PrimitiveShape) (sdf.SDF3, error) {
	switch p.Kind {
	case workcell.ShapeBox:
		s, err := sdf.Box3D(v3.Vec{
			X: float64(p.Size[0]),
			Y: float64(p.Size[1]),
			Z: float64(p.Size[2]),
		}, 0)
		if err != nil {
			return nil, fmt.Errorf("solid: box: %w", err)
		}
		return s, nil
	case workcell.ShapeCylinder:
		s, err := sdf.Cylinder3D(float64(p.Length), float64(p.Radius), 0)
		if err != nil {
			return nil, fmt.Errorf("solid: cylinder: %w", err)
		}
		return s, nil
	case workcell.ShapeCapsule:
		s, err := sdf.Capsule3D(float64(p.Length), float64(p.Radius))
		if err != nil {
			return nil, fmt.Errorf("solid: capsule: %w", err)
		}
		return s, nil
	case workcell.ShapeSphere:
		s, err := sdf.Sphere3D(float64(p.Radius))
		if err != nil {
			return nil, fmt.Errorf("solid: sphere: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("solid: unknown shape kind %d", p.Kind)
}

// FromModel builds a solid for a geometry instance, posed by the model's
// pose. Mesh-sourced geometry returns an error: loading mesh assets is
// the asset loader's job.
func FromModel(m workcell.Model) (sdf.SDF3, error) {
	if m.Geometry.Kind == workcell.GeometryMesh {
		return nil, fmt.Errorf("solid: mesh source %q must be resolved by the asset loader",
			m.Geometry.Source.UnvalidatedAssetPath())
	}
	s, err := FromPrimitive(m.Geometry.Primitive)
	if err != nil {
		return nil, err
	}
	return transform(s, m.Pose), nil
}

// transform applies a document pose to a solid: rotation through the
// canonical Euler decomposition, then translation.
func transform(s sdf.SDF3, p workcell.Pose) sdf.SDF3 {
	e := p.Rot.AsEulerExtrinsicXYZ()
	m := sdf.Translate3d(v3.Vec{
		X: float64(p.Trans[0]),
		Y: float64(p.Trans[1]),
		Z: float64(p.Trans[2]),
	})
	rot := sdf.RotateZ(float64(e[2])).Mul(sdf.RotateY(float64(e[1]))).Mul(sdf.RotateX(float64(e[0])))
	return sdf.Transform3D(s, m.Mul(rot))
}

// Bounds returns the axis-aligned bounding box of a solid.
func Bounds(s sdf.SDF3) (min, max [3]float64) {
	bb := s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}
