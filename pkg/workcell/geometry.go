package workcell

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kestrel-robotics/gantry/pkg/urdf"
)

// ShapeKind tags a primitive shape variant.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCylinder
	ShapeCapsule
	ShapeSphere
)

// PrimitiveShape is one of the four supported primitives. Only the fields
// of the active kind are meaningful: Size for boxes, Radius/Length for
// cylinders and capsules, Radius alone for spheres.
type PrimitiveShape struct {
	Kind   ShapeKind
	Size   Vec3
	Radius float32
	Length float32
}

// Box builds a box primitive with full side lengths.
func Box(size Vec3) PrimitiveShape {
	return PrimitiveShape{Kind: ShapeBox, Size: size}
}

// Cylinder builds a cylinder primitive.
func Cylinder(radius, length float32) PrimitiveShape {
	return PrimitiveShape{Kind: ShapeCylinder, Radius: radius, Length: length}
}

// Capsule builds a capsule primitive.
func Capsule(radius, length float32) PrimitiveShape {
	return PrimitiveShape{Kind: ShapeCapsule, Radius: radius, Length: length}
}

// Sphere builds a sphere primitive.
func Sphere(radius float32) PrimitiveShape {
	return PrimitiveShape{Kind: ShapeSphere, Radius: radius}
}

type radiusLengthJSON struct {
	Radius float32 `json:"radius"`
	Length float32 `json:"length"`
}

func (p PrimitiveShape) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case ShapeBox:
		return json.Marshal(map[string]map[string]Vec3{"box": {"size": p.Size}})
	case ShapeCylinder:
		return json.Marshal(map[string]radiusLengthJSON{"cylinder": {p.Radius, p.Length}})
	case ShapeCapsule:
		return json.Marshal(map[string]radiusLengthJSON{"capsule": {p.Radius, p.Length}})
	case ShapeSphere:
		return json.Marshal(map[string]map[string]float32{"sphere": {"radius": p.Radius}})
	}
	return nil, fmt.Errorf("workcell: unknown shape kind %d", p.Kind)
}

func (p *PrimitiveShape) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw["box"] != nil:
		var b struct {
			Size Vec3 `json:"size"`
		}
		if err := json.Unmarshal(raw["box"], &b); err != nil {
			return err
		}
		*p = Box(b.Size)
		return nil
	case raw["cylinder"] != nil:
		var rl radiusLengthJSON
		if err := json.Unmarshal(raw["cylinder"], &rl); err != nil {
			return err
		}
		*p = Cylinder(rl.Radius, rl.Length)
		return nil
	case raw["capsule"] != nil:
		var rl radiusLengthJSON
		if err := json.Unmarshal(raw["capsule"], &rl); err != nil {
			return err
		}
		*p = Capsule(rl.Radius, rl.Length)
		return nil
	case raw["sphere"] != nil:
		var s struct {
			Radius float32 `json:"radius"`
		}
		if err := json.Unmarshal(raw["sphere"], &s); err != nil {
			return err
		}
		*p = Sphere(s.Radius)
		return nil
	}
	return fmt.Errorf("workcell: unrecognized primitive shape %s", data)
}

// AssetSourceKind tags where a mesh asset comes from.
type AssetSourceKind int

const (
	// AssetLocal is a plain filesystem path.
	AssetLocal AssetSourceKind = iota
	// AssetPackage is a path relative to a package root, serialized as a
	// package:// locator in URDF.
	AssetPackage
)

// AssetSource locates a mesh asset.
type AssetSource struct {
	Kind AssetSourceKind `json:"kind"`
	Path string          `json:"path"`
}

const packagePrefix = "package://"

// AssetSourceFromURDF classifies a URDF mesh filename. package://
// locators become package-relative sources; anything else is a local
// path.
func AssetSourceFromURDF(filename string) AssetSource {
	if path, ok := strings.CutPrefix(filename, packagePrefix); ok {
		return AssetSource{Kind: AssetPackage, Path: path}
	}
	return AssetSource{Kind: AssetLocal, Path: filename}
}

// UnvalidatedAssetPath renders the source as a URDF filename. The path
// syntax is not validated here; whatever loads the asset later is
// responsible for rejecting malformed paths.
func (s AssetSource) UnvalidatedAssetPath() string {
	if s.Kind == AssetPackage {
		return packagePrefix + s.Path
	}
	return s.Path
}

// GeometryKind tags a geometry variant.
type GeometryKind int

const (
	GeometryPrimitive GeometryKind = iota
	GeometryMesh
)

// Geometry is either a primitive shape or a mesh reference with an
// optional non-uniform scale. The zero value is a zero-size box, the
// document default.
type Geometry struct {
	Kind      GeometryKind
	Primitive PrimitiveShape
	Source    AssetSource
	Scale     *Vec3
}

// PrimitiveGeometry wraps a primitive shape as a geometry.
func PrimitiveGeometry(p PrimitiveShape) Geometry {
	return Geometry{Kind: GeometryPrimitive, Primitive: p}
}

// MeshGeometry builds a mesh geometry. scale may be nil for unscaled
// meshes.
func MeshGeometry(source AssetSource, scale *Vec3) Geometry {
	return Geometry{Kind: GeometryMesh, Source: source, Scale: scale}
}

type meshJSON struct {
	Source AssetSource `json:"source"`
	Scale  *Vec3       `json:"scale,omitempty"`
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	switch g.Kind {
	case GeometryPrimitive:
		return json.Marshal(map[string]PrimitiveShape{"primitive": g.Primitive})
	case GeometryMesh:
		return json.Marshal(map[string]meshJSON{"mesh": {Source: g.Source, Scale: g.Scale}})
	}
	return nil, fmt.Errorf("workcell: unknown geometry kind %d", g.Kind)
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw["primitive"] != nil:
		g.Kind = GeometryPrimitive
		return json.Unmarshal(raw["primitive"], &g.Primitive)
	case raw["mesh"] != nil:
		var m meshJSON
		if err := json.Unmarshal(raw["mesh"], &m); err != nil {
			return err
		}
		g.Kind = GeometryMesh
		g.Source, g.Scale = m.Source, m.Scale
		return nil
	}
	return fmt.Errorf("workcell: unrecognized geometry %s", data)
}

// GeometryFromURDF narrows a URDF geometry entry into the document form.
// Exactly one variant of the input is expected to be set; an empty entry
// narrows to the default zero-size box.
func GeometryFromURDF(g urdf.Geometry) Geometry {
	switch {
	case g.Box != nil:
		return PrimitiveGeometry(Box(Vec3{
			float32(g.Box.Size[0]), float32(g.Box.Size[1]), float32(g.Box.Size[2]),
		}))
	case g.Cylinder != nil:
		return PrimitiveGeometry(Cylinder(float32(g.Cylinder.Radius), float32(g.Cylinder.Length)))
	case g.Capsule != nil:
		return PrimitiveGeometry(Capsule(float32(g.Capsule.Radius), float32(g.Capsule.Length)))
	case g.Sphere != nil:
		return PrimitiveGeometry(Sphere(float32(g.Sphere.Radius)))
	case g.Mesh != nil:
		var scale *Vec3
		if g.Mesh.Scale != nil {
			scale = &Vec3{
				float32(g.Mesh.Scale[0]), float32(g.Mesh.Scale[1]), float32(g.Mesh.Scale[2]),
			}
		}
		return MeshGeometry(AssetSourceFromURDF(g.Mesh.Filename), scale)
	}
	return Geometry{}
}

// ToURDF widens the geometry into a URDF geometry entry.
func (g Geometry) ToURDF() urdf.Geometry {
	if g.Kind == GeometryMesh {
		var scale *urdf.Vec3
		if g.Scale != nil {
			scale = &urdf.Vec3{
				float64(g.Scale[0]), float64(g.Scale[1]), float64(g.Scale[2]),
			}
		}
		return urdf.Geometry{Mesh: &urdf.Mesh{Filename: g.Source.UnvalidatedAssetPath(), Scale: scale}}
	}
	p := g.Primitive
	switch p.Kind {
	case ShapeBox:
		return urdf.Geometry{Box: &urdf.Box{Size: urdf.Vec3{
			float64(p.Size[0]), float64(p.Size[1]), float64(p.Size[2]),
		}}}
	case ShapeCylinder:
		return urdf.Geometry{Cylinder: &urdf.Cylinder{Radius: float64(p.Radius), Length: float64(p.Length)}}
	case ShapeCapsule:
		return urdf.Geometry{Capsule: &urdf.Capsule{Radius: float64(p.Radius), Length: float64(p.Length)}}
	case ShapeSphere:
		return urdf.Geometry{Sphere: &urdf.Sphere{Radius: float64(p.Radius)}}
	}
	return urdf.Geometry{}
}

// Model is a named, posed geometry instance: a visual or collision entry
// attached to a frame.
type Model struct {
	Name     string   `json:"name,omitempty"`
	Geometry Geometry `json:"geometry,omitzero"`
	Pose     Pose     `json:"pose,omitzero"`
}

// ModelFromVisual converts a URDF visual entry.
func ModelFromVisual(v urdf.Visual) Model {
	return Model{Name: v.Name, Geometry: GeometryFromURDF(v.Geometry), Pose: PoseFromURDF(v.Origin)}
}

// ModelFromCollision converts a URDF collision entry.
func ModelFromCollision(c urdf.Collision) Model {
	return Model{Name: c.Name, Geometry: GeometryFromURDF(c.Geometry), Pose: PoseFromURDF(c.Origin)}
}

// ToVisual widens the model into a URDF visual entry.
func (m Model) ToVisual() urdf.Visual {
	return urdf.Visual{Name: m.Name, Origin: m.Pose.ToURDF(), Geometry: m.Geometry.ToURDF()}
}

// ToCollision widens the model into a URDF collision entry.
func (m Model) ToCollision() urdf.Collision {
	return urdf.Collision{Name: m.Name, Origin: m.Pose.ToURDF(), Geometry: m.Geometry.ToURDF()}
}
