package core

import (
	"math"
)

// Frame is an orthonormal basis used to transform directions between world
// space and a local shading space where W is the z axis.
type Frame struct {
	U, V, W Vec3
}

// NewFrame builds an orthonormal basis around the given unit w axis.
// The tangent is derived from whichever world axis is least parallel to w.
func NewFrame(w Vec3) Frame {
	var nt Vec3
	if math.Abs(w.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	u := nt.Cross(w).Normalize()
	v := w.Cross(u)
	return Frame{U: u, V: v, W: w}
}

// NewFrameUVW builds a frame from an explicit tangent/bitangent/normal triple.
// The caller is responsible for orthonormality.
func NewFrameUVW(u, v, w Vec3) Frame {
	return Frame{U: u, V: v, W: w}
}

// ToLocal transforms a world-space direction into the frame's local space
func (f Frame) ToLocal(d Vec3) Vec3 {
	return Vec3{X: d.Dot(f.U), Y: d.Dot(f.V), Z: d.Dot(f.W)}
}

// ToWorld transforms a local-space direction back into world space
func (f Frame) ToWorld(d Vec3) Vec3 {
	return f.U.Multiply(d.X).Add(f.V.Multiply(d.Y)).Add(f.W.Multiply(d.Z))
}
