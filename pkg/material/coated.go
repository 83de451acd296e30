package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Coated is a diffuse base under a thin lacquer layer. The coat uses the
// GTR1 clearcoat lobe, whose long tails read as a polished finish without
// the cost of a second microfacet lobe.
type Coated struct {
	KD             core.Vec3 // Base diffuse reflectance
	Clearcoat      float64   // Coat weight
	ClearcoatGloss float64   // 0 = matte coat, 1 = polished coat
}

// NewCoated creates a clear-coated diffuse material
func NewCoated(kd core.Vec3, clearcoat, gloss float64) *Coated {
	return &Coated{
		KD:             kd.Clamp(0, 1),
		Clearcoat:      max(0, clearcoat),
		ClearcoatGloss: max(0, min(1, gloss)),
	}
}

// Compile implements the Material interface
func (c *Coated) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	if c.KD.IsBlack() && c.Clearcoat == 0 {
		return nil, false
	}
	b := bsdf.New(geom.GeometricNormal, geom.Shading, 1)
	if !c.KD.IsBlack() {
		b.Add(bxdf.NewLambertianReflection(c.KD))
	}
	if c.Clearcoat > 0 {
		// Gloss interpolates the GTR1 alpha between a wide 0.1 and a
		// near-specular 0.001
		gloss := 0.1 + c.ClearcoatGloss*(0.001-0.1)
		b.Add(bxdf.NewDisneyClearcoat(c.Clearcoat, gloss))
	}
	return b, true
}

// Emitted implements the Material interface
func (c *Coated) Emitted() core.Vec3 { return core.Vec3{} }
