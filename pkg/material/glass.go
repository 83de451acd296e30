package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Glass is a dielectric interface that both reflects and refracts. Zero
// roughness uses delta lobes; nonzero roughness uses the microfacet
// reflection/transmission pair.
type Glass struct {
	KR, KT                 core.Vec3 // Reflectance and transmittance
	Eta                    float64   // Interior over exterior index of refraction
	URoughness, VRoughness float64
	RemapRoughness         bool
}

// NewGlass creates a smooth glass material
func NewGlass(kr, kt core.Vec3, eta float64) *Glass {
	return &Glass{KR: kr.Clamp(0, 1), KT: kt.Clamp(0, 1), Eta: eta}
}

// NewRoughGlass creates a ground-glass material with anisotropic roughness
func NewRoughGlass(kr, kt core.Vec3, eta, uRoughness, vRoughness float64, remap bool) *Glass {
	return &Glass{
		KR: kr.Clamp(0, 1), KT: kt.Clamp(0, 1), Eta: eta,
		URoughness: uRoughness, VRoughness: vRoughness, RemapRoughness: remap,
	}
}

// Compile implements the Material interface
func (g *Glass) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	if g.KR.IsBlack() && g.KT.IsBlack() {
		return nil, false
	}
	b := bsdf.New(geom.GeometricNormal, geom.Shading, g.Eta)

	if g.URoughness == 0 && g.VRoughness == 0 {
		// A single combined lobe keeps reflection and refraction in one
		// Fresnel-weighted sample decision
		b.Add(bxdf.NewFresnelSpecular(g.KR, g.KT, 1, g.Eta, mode))
		return b, true
	}

	distribution := bxdf.NewTrowbridgeReitz(
		alphaFromRoughness(g.URoughness, g.RemapRoughness),
		alphaFromRoughness(g.VRoughness, g.RemapRoughness),
	)
	if !g.KR.IsBlack() {
		fresnel := bxdf.NewDielectricFresnel(1, g.Eta)
		b.Add(bxdf.NewMicrofacetReflection(g.KR, distribution, fresnel))
	}
	if !g.KT.IsBlack() {
		b.Add(bxdf.NewMicrofacetTransmission(g.KT, distribution, 1, g.Eta, mode))
	}
	return b, true
}

// Emitted implements the Material interface
func (g *Glass) Emitted() core.Vec3 { return core.Vec3{} }
