package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Metal is a conductor with a chromatic complex index of refraction
// Eta + i*K, shaded with the Torrance-Sparrow microfacet model
type Metal struct {
	Eta, K                 core.Vec3 // Complex index of refraction per channel
	Roughness              float64
	URoughness, VRoughness float64 // Override Roughness when nonzero
	RemapRoughness         bool
}

// NewMetal creates an isotropic metal material
func NewMetal(eta, k core.Vec3, roughness float64, remap bool) *Metal {
	return &Metal{Eta: eta, K: k, Roughness: roughness, RemapRoughness: remap}
}

// NewAnisotropicMetal creates a metal with separate tangent/bitangent roughness
func NewAnisotropicMetal(eta, k core.Vec3, uRoughness, vRoughness float64, remap bool) *Metal {
	return &Metal{Eta: eta, K: k, URoughness: uRoughness, VRoughness: vRoughness, RemapRoughness: remap}
}

// Compile implements the Material interface
func (m *Metal) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	uRough, vRough := m.URoughness, m.VRoughness
	if uRough == 0 {
		uRough = m.Roughness
	}
	if vRough == 0 {
		vRough = m.Roughness
	}

	b := bsdf.New(geom.GeometricNormal, geom.Shading, 1)
	distribution := bxdf.NewTrowbridgeReitz(
		alphaFromRoughness(uRough, m.RemapRoughness),
		alphaFromRoughness(vRough, m.RemapRoughness),
	)
	fresnel := bxdf.NewConductorFresnel(core.NewVec3(1, 1, 1), m.Eta, m.K)
	b.Add(bxdf.NewMicrofacetReflection(core.NewVec3(1, 1, 1), distribution, fresnel))
	return b, true
}

// Emitted implements the Material interface
func (m *Metal) Emitted() core.Vec3 { return core.Vec3{} }
