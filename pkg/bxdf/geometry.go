// Package bxdf implements the elementary scattering lobes of the shading
// subsystem. All directions in this package live in local shading space:
// the +z axis is the macrosurface shading normal, and both the outgoing (wo)
// and incoming (wi) directions point away from the surface.
package bxdf

import (
	"math"

	"github.com/df07/go-shading/pkg/core"
)

// CosTheta returns the cosine of the angle between w and the shading normal
func CosTheta(w core.Vec3) float64 { return w.Z }

// Cos2Theta returns the squared cosine of the polar angle
func Cos2Theta(w core.Vec3) float64 { return w.Z * w.Z }

// AbsCosTheta returns the absolute cosine of the polar angle
func AbsCosTheta(w core.Vec3) float64 { return math.Abs(w.Z) }

// Sin2Theta returns the squared sine of the polar angle
func Sin2Theta(w core.Vec3) float64 {
	return math.Max(0, 1-Cos2Theta(w))
}

// SinTheta returns the sine of the polar angle
func SinTheta(w core.Vec3) float64 { return math.Sqrt(Sin2Theta(w)) }

// TanTheta returns the tangent of the polar angle
func TanTheta(w core.Vec3) float64 { return SinTheta(w) / CosTheta(w) }

// Tan2Theta returns the squared tangent of the polar angle
func Tan2Theta(w core.Vec3) float64 { return Sin2Theta(w) / Cos2Theta(w) }

// CosPhi returns the cosine of the azimuthal angle
func CosPhi(w core.Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 1
	}
	return max(-1, min(1, w.X/sinTheta))
}

// SinPhi returns the sine of the azimuthal angle
func SinPhi(w core.Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 0
	}
	return max(-1, min(1, w.Y/sinTheta))
}

// Cos2Phi returns the squared cosine of the azimuthal angle
func Cos2Phi(w core.Vec3) float64 {
	c := CosPhi(w)
	return c * c
}

// Sin2Phi returns the squared sine of the azimuthal angle
func Sin2Phi(w core.Vec3) float64 {
	s := SinPhi(w)
	return s * s
}

// SameHemisphere reports whether two local directions lie on the same side
// of the shading plane
func SameHemisphere(w, wp core.Vec3) bool {
	return w.Z*wp.Z > 0
}

// Reflect mirrors wo about the (local) normal n
func Reflect(wo, n core.Vec3) core.Vec3 {
	return wo.Negate().Add(n.Multiply(2 * wo.Dot(n)))
}

// Refract computes the transmitted direction through an interface with
// normal n for the relative index of refraction eta = etaI/etaT. Returns
// false under total internal reflection. wi points away from the surface.
func Refract(wi, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false // Total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wi.Negate().Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT))
	return wt, true
}

// Faceforward flips n so it lies in the same hemisphere as v
func Faceforward(n, v core.Vec3) core.Vec3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}

// SphericalDirection converts spherical coordinates to a local direction
func SphericalDirection(sinTheta, cosTheta, phi float64) core.Vec3 {
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}
