package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Substrate is a layered look: a glossy dielectric coat whose Fresnel
// falloff reveals a diffuse base at normal incidence, modeled with the
// Ashikhmin-Shirley Fresnel blend
type Substrate struct {
	KD, KS                 core.Vec3 // Base and coat reflectance
	URoughness, VRoughness float64
	RemapRoughness         bool
}

// NewSubstrate creates a substrate material
func NewSubstrate(kd, ks core.Vec3, uRoughness, vRoughness float64, remap bool) *Substrate {
	return &Substrate{
		KD: kd.Clamp(0, 1), KS: ks.Clamp(0, 1),
		URoughness: uRoughness, VRoughness: vRoughness, RemapRoughness: remap,
	}
}

// Compile implements the Material interface
func (s *Substrate) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	if s.KD.IsBlack() && s.KS.IsBlack() {
		return nil, false
	}
	b := bsdf.New(geom.GeometricNormal, geom.Shading, 1)
	ex := exponentFromAlpha(alphaFromRoughness(s.URoughness, s.RemapRoughness))
	ey := exponentFromAlpha(alphaFromRoughness(s.VRoughness, s.RemapRoughness))
	b.Add(bxdf.NewAshikhminShirley(s.KD, s.KS, ex, ey))
	return b, true
}

// Emitted implements the Material interface
func (s *Substrate) Emitted() core.Vec3 { return core.Vec3{} }
