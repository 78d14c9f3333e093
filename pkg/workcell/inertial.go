package workcell

import "github.com/kestrel-robotics/gantry/pkg/urdf"

// Mass is a scalar mass in kilograms.
type Mass float32

// Moment holds the six independent components of a symmetric 3x3 inertia
// tensor.
type Moment struct {
	Ixx float32 `json:"ixx,omitzero"`
	Ixy float32 `json:"ixy,omitzero"`
	Ixz float32 `json:"ixz,omitzero"`
	Iyy float32 `json:"iyy,omitzero"`
	Iyz float32 `json:"iyz,omitzero"`
	Izz float32 `json:"izz,omitzero"`
}

// Inertia is a frame's inertial record: center-of-mass pose, mass, and
// inertia tensor.
type Inertia struct {
	Center Pose   `json:"center,omitzero"`
	Mass   Mass   `json:"mass,omitzero"`
	Moment Moment `json:"moment,omitzero"`
}

// InertiaFromURDF narrows a URDF inertial record into the document form.
func InertiaFromURDF(in urdf.Inertial) Inertia {
	return Inertia{
		Center: PoseFromURDF(in.Origin),
		Mass:   Mass(in.Mass.Value),
		Moment: Moment{
			Ixx: float32(in.Inertia.Ixx),
			Ixy: float32(in.Inertia.Ixy),
			Ixz: float32(in.Inertia.Ixz),
			Iyy: float32(in.Inertia.Iyy),
			Iyz: float32(in.Inertia.Iyz),
			Izz: float32(in.Inertia.Izz),
		},
	}
}

// ToURDF widens the inertial record into URDF form.
func (i Inertia) ToURDF() urdf.Inertial {
	return urdf.Inertial{
		Origin: i.Center.ToURDF(),
		Mass:   urdf.Mass{Value: float64(i.Mass)},
		Inertia: urdf.Inertia{
			Ixx: float64(i.Moment.Ixx),
			Ixy: float64(i.Moment.Ixy),
			Ixz: float64(i.Moment.Ixz),
			Iyy: float64(i.Moment.Iyy),
			Iyz: float64(i.Moment.Iyz),
			Izz: float64(i.Moment.Izz),
		},
	}
}

// IsClose reports whether mass, tensor components and center pose all
// agree within tol.
func (i Inertia) IsClose(o Inertia, tol float32) bool {
	if !i.Center.IsClose(o.Center, tol) {
		return false
	}
	diffs := [7]float32{
		float32(i.Mass) - float32(o.Mass),
		i.Moment.Ixx - o.Moment.Ixx,
		i.Moment.Ixy - o.Moment.Ixy,
		i.Moment.Ixz - o.Moment.Ixz,
		i.Moment.Iyy - o.Moment.Iyy,
		i.Moment.Iyz - o.Moment.Iyz,
		i.Moment.Izz - o.Moment.Izz,
	}
	for _, d := range diffs {
		if d > tol || d < -tol {
			return false
		}
	}
	return true
}
