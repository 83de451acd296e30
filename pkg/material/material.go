// Package material maps pre-evaluated texture values for each material kind
// into a populated scattering aggregate. Texture evaluation itself happens
// upstream; every parameter here is a plain color or scalar already sampled
// for the shading point.
package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// ShadingGeometry is what the geometry collaborator supplies per shading
// point: the geometric surface normal and the shading-space orthonormal
// basis (W is the shading normal).
type ShadingGeometry struct {
	GeometricNormal core.Vec3
	Shading         core.Frame
}

// Material compiles its pre-evaluated texture values into a scattering
// aggregate for one shading point. Compile fails when the material's
// defining reflectances are all zero, which the integrator treats as path
// termination.
type Material interface {
	Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool)
	Emitted() core.Vec3
}

// Compute builds the aggregate for a material at a shading point. It is a
// thin functional entry point over Material.Compile.
func Compute(m Material, geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	return m.Compile(geom, mode)
}

// Emittance returns the material's emitted radiance, zero for non-emitters
func Emittance(m Material) core.Vec3 {
	return m.Emitted()
}

// alphaFromRoughness applies the optional perceptual roughness remap before
// clamping into the distribution's valid range
func alphaFromRoughness(roughness float64, remap bool) float64 {
	if remap {
		return bxdf.RoughnessToAlpha(roughness)
	}
	return roughness
}
