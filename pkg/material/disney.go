package material

import (
	"math"

	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Disney is the Disney principled material: one base color plus a set of
// artist-facing scalar controls compiled into up to eight lobes. Thin
// switches the solid-dielectric model to the thin-surface model with
// flatness-weighted fake subsurface and diffuse transmission.
type Disney struct {
	Color          core.Vec3
	Metallic       float64
	Eta            float64
	Roughness      float64
	SpecularTint   float64
	Anisotropic    float64
	Sheen          float64
	SheenTint      float64
	Clearcoat      float64
	ClearcoatGloss float64
	SpecTrans      float64
	Flatness       float64
	DiffTrans      float64
	Thin           bool
}

// NewDisney creates a Disney material with the usual neutral defaults
func NewDisney(color core.Vec3) *Disney {
	return &Disney{Color: color.Clamp(0, 1), Eta: 1.5, Roughness: 0.5}
}

// Compile implements the Material interface
func (d *Disney) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	c := d.Color.Clamp(0, 1)
	strans := max(0, min(1, d.SpecTrans))
	metallic := max(0, min(1, d.Metallic))
	diffuseWeight := (1 - metallic) * (1 - strans)
	rough := d.Roughness

	if c.IsBlack() && d.Clearcoat == 0 {
		return nil, false
	}

	eta := d.Eta
	b := bsdf.New(geom.GeometricNormal, geom.Shading, eta)

	// Hue-preserving tint for sheen and specular color
	lum := c.Luminance()
	tint := core.NewVec3(1, 1, 1)
	if lum > 0 {
		tint = c.Multiply(1 / lum)
	}

	if diffuseWeight > 0 {
		if d.Thin {
			// Blend between diffuse and fake subsurface by flatness; the
			// diffuse-transmission fraction is carved out of both
			flat := max(0, min(1, d.Flatness))
			dt := d.DiffTrans / 2
			b.Add(bxdf.NewDisneyDiffuse(c.Multiply(diffuseWeight * (1 - flat) * (1 - dt))))
			if flat > 0 {
				b.Add(bxdf.NewDisneyFakeSubsurface(c.Multiply(diffuseWeight*flat*(1-dt)), rough))
			}
		} else {
			b.Add(bxdf.NewDisneyDiffuse(c.Multiply(diffuseWeight)))
		}
		b.Add(bxdf.NewDisneyRetro(c.Multiply(diffuseWeight), rough))

		if d.Sheen > 0 {
			sheenColor := core.NewVec3(1, 1, 1).Lerp(tint, d.SheenTint)
			b.Add(bxdf.NewDisneySheen(sheenColor.Multiply(diffuseWeight * d.Sheen)))
		}
	}

	// Main specular lobe with the Disney dielectric/metallic Fresnel blend
	aspect := math.Sqrt(1 - 0.9*max(0, min(1, d.Anisotropic)))
	alphaX := math.Max(bxdf.MinAlpha, rough*rough/aspect)
	alphaY := math.Max(bxdf.MinAlpha, rough*rough*aspect)
	distribution := &bxdf.TrowbridgeReitz{
		AlphaX: alphaX, AlphaY: alphaY,
		SampleVisibleArea: true,
		Separable:         true,
	}
	specTintColor := core.NewVec3(1, 1, 1).Lerp(tint, d.SpecularTint)
	r0 := specTintColor.Multiply(bxdf.SchlickR0FromEta(eta)).Lerp(c, metallic)
	fresnel := bxdf.NewDisneyFresnel(r0, metallic, eta)
	b.Add(bxdf.NewMicrofacetReflection(core.NewVec3(1, 1, 1), distribution, fresnel))

	if d.Clearcoat > 0 {
		gloss := 0.1 + max(0, min(1, d.ClearcoatGloss))*(0.001-0.1)
		b.Add(bxdf.NewDisneyClearcoat(d.Clearcoat, gloss))
	}

	if strans > 0 {
		// Square-root tint keeps the apparent color after entry and exit
		t := c.Sqrt().Multiply(strans)
		if d.Thin {
			// Thin surfaces scatter tighter than their measured roughness
			roughScaled := (0.65*eta - 0.35) * rough
			alpha := math.Max(bxdf.MinAlpha, roughScaled*roughScaled/aspect)
			thinDistribution := bxdf.NewTrowbridgeReitz(alpha, alpha)
			b.Add(bxdf.NewMicrofacetTransmission(t, thinDistribution, 1, eta, mode))
		} else {
			b.Add(bxdf.NewMicrofacetTransmission(t, distribution, 1, eta, mode))
		}
	}

	if d.Thin && d.DiffTrans > 0 {
		dt := d.DiffTrans / 2
		b.Add(bxdf.NewLambertianTransmission(c.Multiply(dt)))
	}

	return b, true
}

// Emitted implements the Material interface
func (d *Disney) Emitted() core.Vec3 { return core.Vec3{} }
