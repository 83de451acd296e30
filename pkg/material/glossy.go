package material

import (
	"math"

	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Glossy is a purely glossy highlight using the Ashikhmin-Shirley
// power-cosine model, the cheaper alternative to the full microfacet lobe
type Glossy struct {
	KS             core.Vec3 // Specular reflectance
	Roughness      float64
	RemapRoughness bool
}

// NewGlossy creates a glossy material
func NewGlossy(ks core.Vec3, roughness float64, remap bool) *Glossy {
	return &Glossy{KS: ks.Clamp(0, 1), Roughness: roughness, RemapRoughness: remap}
}

// exponentFromAlpha converts a GGX-style alpha to an equivalent power-cosine
// exponent; narrower alphas give higher exponents
func exponentFromAlpha(alpha float64) float64 {
	alpha = math.Max(bxdf.MinAlpha, alpha)
	return math.Max(0, 2/(alpha*alpha)-2)
}

// Compile implements the Material interface
func (g *Glossy) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	if g.KS.IsBlack() {
		return nil, false
	}
	b := bsdf.New(geom.GeometricNormal, geom.Shading, 1)
	exponent := exponentFromAlpha(alphaFromRoughness(g.Roughness, g.RemapRoughness))
	b.Add(bxdf.NewAshikhminShirley(core.Vec3{}, g.KS, exponent, exponent))
	return b, true
}

// Emitted implements the Material interface
func (g *Glossy) Emitted() core.Vec3 { return core.Vec3{} }
