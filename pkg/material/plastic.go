package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Plastic layers a dielectric glossy highlight over a diffuse base
type Plastic struct {
	KD, KS         core.Vec3 // Diffuse and specular reflectance
	Roughness      float64
	RemapRoughness bool
}

// NewPlastic creates a plastic material
func NewPlastic(kd, ks core.Vec3, roughness float64, remap bool) *Plastic {
	return &Plastic{KD: kd.Clamp(0, 1), KS: ks.Clamp(0, 1), Roughness: roughness, RemapRoughness: remap}
}

// Compile implements the Material interface
func (p *Plastic) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	if p.KD.IsBlack() && p.KS.IsBlack() {
		return nil, false
	}
	b := bsdf.New(geom.GeometricNormal, geom.Shading, 1)
	if !p.KD.IsBlack() {
		b.Add(bxdf.NewLambertianReflection(p.KD))
	}
	if !p.KS.IsBlack() {
		alpha := alphaFromRoughness(p.Roughness, p.RemapRoughness)
		distribution := bxdf.NewTrowbridgeReitz(alpha, alpha)
		fresnel := bxdf.NewDielectricFresnel(1.5, 1)
		b.Add(bxdf.NewMicrofacetReflection(p.KS, distribution, fresnel))
	}
	return b, true
}

// Emitted implements the Material interface
func (p *Plastic) Emitted() core.Vec3 { return core.Vec3{} }
