package bxdf

import (
	"math"

	"github.com/df07/go-shading/pkg/core"
)

// The Disney lobes below are the physically-motivated terms used by the
// Disney principled material: a retro-reflective diffuse model, a thin
// subsurface approximation, a sheen term for cloth-like grazing response,
// and a fixed-shape clearcoat built on the GTR1 distribution.

// disneyDiffuseFresnels returns the Schlick weights at the two directions
func disneyDiffuseFresnels(wo, wi core.Vec3) (fo, fi float64) {
	return SchlickWeight(AbsCosTheta(wo)), SchlickWeight(AbsCosTheta(wi))
}

// cosineSample is the shared cosine-hemisphere sampling used by all the
// diffuse-shaped Disney lobes
func cosineSample(b BxDF, wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.SampleCosineHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := b.PDF(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: b.Evaluate(wo, wi), PDF: pdf, Sampled: b.Type()}, true
}

// cosinePDF is the matching |cosθ|/π reflection-side density
func cosinePDF(wo, wi core.Vec3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / math.Pi
}

// DisneyDiffuse is the Disney base diffuse term, which darkens toward
// grazing angles instead of staying flat like Lambert
type DisneyDiffuse struct {
	Scale core.Vec3
}

// NewDisneyDiffuse creates a Disney diffuse lobe
func NewDisneyDiffuse(scale core.Vec3) *DisneyDiffuse {
	return &DisneyDiffuse{Scale: scale}
}

// Type implements the BxDF interface
func (d *DisneyDiffuse) Type() Type { return Reflection | Diffuse }

// Evaluate returns the grazing-attenuated diffuse value
func (d *DisneyDiffuse) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	fo, fi := disneyDiffuseFresnels(wo, wi)
	return d.Scale.Multiply((1 / math.Pi) * (1 - fo/2) * (1 - fi/2))
}

// PDF implements the BxDF interface
func (d *DisneyDiffuse) PDF(wo, wi core.Vec3) float64 { return cosinePDF(wo, wi) }

// Sample implements the BxDF interface
func (d *DisneyDiffuse) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	return cosineSample(d, wo, u)
}

// DisneyRetro restores the retro-reflective peak the Disney diffuse term
// removes, growing with surface roughness
type DisneyRetro struct {
	Scale     core.Vec3
	Roughness float64
}

// NewDisneyRetro creates a Disney retro-reflection lobe
func NewDisneyRetro(scale core.Vec3, roughness float64) *DisneyRetro {
	return &DisneyRetro{Scale: scale, Roughness: roughness}
}

// Type implements the BxDF interface
func (d *DisneyRetro) Type() Type { return Reflection | Diffuse }

// Evaluate returns the roughness-driven retro-reflection value
func (d *DisneyRetro) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return core.Vec3{}
	}
	wh = wh.Normalize()
	cosThetaD := wi.Dot(wh)

	fo, fi := disneyDiffuseFresnels(wo, wi)
	rr := 2 * d.Roughness * cosThetaD * cosThetaD
	return d.Scale.Multiply((1 / math.Pi) * rr * (fo + fi + fo*fi*(rr-1)))
}

// PDF implements the BxDF interface
func (d *DisneyRetro) PDF(wo, wi core.Vec3) float64 { return cosinePDF(wo, wi) }

// Sample implements the BxDF interface
func (d *DisneyRetro) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	return cosineSample(d, wo, u)
}

// DisneyFakeSubsurface is the Hanrahan-Krueger-inspired thin-surface
// subsurface approximation used when the material is flagged thin
type DisneyFakeSubsurface struct {
	Scale     core.Vec3
	Roughness float64
}

// NewDisneyFakeSubsurface creates a fake-subsurface lobe
func NewDisneyFakeSubsurface(scale core.Vec3, roughness float64) *DisneyFakeSubsurface {
	return &DisneyFakeSubsurface{Scale: scale, Roughness: roughness}
}

// Type implements the BxDF interface
func (d *DisneyFakeSubsurface) Type() Type { return Reflection | Diffuse }

// Evaluate returns the 1.25-scaled subsurface approximation
func (d *DisneyFakeSubsurface) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	absCosThetaO := AbsCosTheta(wo)
	absCosThetaI := AbsCosTheta(wi)
	if absCosThetaO == 0 || absCosThetaI == 0 {
		return core.Vec3{}
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return core.Vec3{}
	}
	wh = wh.Normalize()
	cosThetaD := wi.Dot(wh)

	fss90 := cosThetaD * cosThetaD * d.Roughness
	fo, fi := disneyDiffuseFresnels(wo, wi)
	fss := (1 + (fss90-1)*fo) * (1 + (fss90-1)*fi)
	ss := 1.25 * (fss*(1/(absCosThetaO+absCosThetaI)-0.5) + 0.5)
	return d.Scale.Multiply(ss / math.Pi)
}

// PDF implements the BxDF interface
func (d *DisneyFakeSubsurface) PDF(wo, wi core.Vec3) float64 { return cosinePDF(wo, wi) }

// Sample implements the BxDF interface
func (d *DisneyFakeSubsurface) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	return cosineSample(d, wo, u)
}

// DisneySheen adds a grazing-angle response for cloth-like materials
type DisneySheen struct {
	Scale core.Vec3
}

// NewDisneySheen creates a sheen lobe
func NewDisneySheen(scale core.Vec3) *DisneySheen {
	return &DisneySheen{Scale: scale}
}

// Type implements the BxDF interface
func (d *DisneySheen) Type() Type { return Reflection | Diffuse }

// Evaluate returns the Schlick-weight sheen value
func (d *DisneySheen) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return core.Vec3{}
	}
	wh = wh.Normalize()
	return d.Scale.Multiply(SchlickWeight(wi.Dot(wh)))
}

// PDF implements the BxDF interface
func (d *DisneySheen) PDF(wo, wi core.Vec3) float64 { return cosinePDF(wo, wi) }

// Sample implements the BxDF interface
func (d *DisneySheen) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	return cosineSample(d, wo, u)
}

// gtr1 is the Berry distribution used by the Disney clearcoat; its long
// tails are the point, so it is not interchangeable with Trowbridge-Reitz
func gtr1(cosTheta, alpha float64) float64 {
	alpha2 := alpha * alpha
	return (alpha2 - 1) / (math.Pi * math.Log(alpha2) * (1 + (alpha2-1)*cosTheta*cosTheta))
}

// smithGGXSeparable is the single-direction Smith term with scalar alpha
func smithGGXSeparable(cosTheta, alpha float64) float64 {
	alpha2 := alpha * alpha
	cos2 := cosTheta * cosTheta
	return 1 / (cosTheta + math.Sqrt(alpha2+cos2-alpha2*cos2))
}

// DisneyClearcoat is the fixed-IOR lacquer layer: GTR1 distribution, Schlick
// Fresnel pinned to 0.04, and a Smith term with fixed 0.25 roughness
type DisneyClearcoat struct {
	Weight float64
	Gloss  float64 // GTR1 alpha; smaller is glossier
}

// NewDisneyClearcoat creates a clearcoat lobe
func NewDisneyClearcoat(weight, gloss float64) *DisneyClearcoat {
	return &DisneyClearcoat{Weight: weight, Gloss: gloss}
}

// Type implements the BxDF interface
func (d *DisneyClearcoat) Type() Type { return Reflection | Glossy }

// Evaluate returns the clearcoat value
func (d *DisneyClearcoat) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	absCosThetaO := AbsCosTheta(wo)
	absCosThetaI := AbsCosTheta(wi)
	if absCosThetaO == 0 || absCosThetaI == 0 {
		return core.Vec3{}
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return core.Vec3{}
	}
	wh = wh.Normalize()

	dr := gtr1(AbsCosTheta(wh), d.Gloss)
	fr := SchlickFresnel(0.04, wi.Dot(wh))
	gr := smithGGXSeparable(absCosThetaO, 0.25) * smithGGXSeparable(absCosThetaI, 0.25)
	v := d.Weight * dr * fr * gr / 4
	return core.NewVec3(v, v, v)
}

// PDF returns the GTR1 half-vector density converted to solid angle
func (d *DisneyClearcoat) PDF(wo, wi core.Vec3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return 0
	}
	wh = wh.Normalize()
	dotWoWh := wo.Dot(wh)
	if dotWoWh <= 0 {
		return 0
	}
	return gtr1(AbsCosTheta(wh), d.Gloss) * AbsCosTheta(wh) / (4 * dotWoWh)
}

// Sample inverts the GTR1 distribution exactly for the half-vector polar
// angle, then mirrors wo about the sampled facet
func (d *DisneyClearcoat) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	if wo.Z == 0 {
		return Sample{}, false
	}

	alpha2 := d.Gloss * d.Gloss
	cosTheta := math.Sqrt(math.Max(0, (1-math.Pow(alpha2, 1-u.X))/(1-alpha2)))
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y
	wh := SphericalDirection(sinTheta, cosTheta, phi)
	if !SameHemisphere(wo, wh) {
		wh = wh.Negate()
	}

	wi := Reflect(wo, wh)
	if !SameHemisphere(wo, wi) {
		return Sample{}, false
	}
	pdf := d.PDF(wo, wi)
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: d.Evaluate(wo, wi), PDF: pdf, Sampled: d.Type()}, true
}
