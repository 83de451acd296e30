package bxdf

import (
	"math"

	"github.com/df07/go-shading/pkg/core"
)

// OrenNayar models diffuse reflection from a rough surface of microscopic
// Lambertian facets. Sigma is the facet-angle standard deviation in degrees;
// sigma = 0 degenerates to plain Lambertian.
type OrenNayar struct {
	Scale core.Vec3 // Reflectance tint
	A, B  float64   // Precomputed roughness coefficients
}

// NewOrenNayar creates an Oren-Nayar lobe for the given roughness angle
func NewOrenNayar(scale core.Vec3, sigmaDegrees float64) *OrenNayar {
	sigma := sigmaDegrees * math.Pi / 180
	sigma2 := sigma * sigma
	return &OrenNayar{
		Scale: scale,
		A:     1 - sigma2/(2*(sigma2+0.33)),
		B:     0.45 * sigma2 / (sigma2 + 0.09),
	}
}

// Type implements the BxDF interface
func (o *OrenNayar) Type() Type { return Reflection | Diffuse }

// Evaluate returns the Oren-Nayar reflectance for a same-hemisphere pair
func (o *OrenNayar) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}

	sinThetaI := SinTheta(wi)
	sinThetaO := SinTheta(wo)

	// cos(φi - φo), clamped to its positive part; undefined at normal
	// incidence where it contributes nothing
	maxCos := 0.0
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		dCos := CosPhi(wi)*CosPhi(wo) + SinPhi(wi)*SinPhi(wo)
		maxCos = math.Max(0, dCos)
	}

	// α = max(θi, θo), β = min(θi, θo)
	var sinAlpha, tanBeta float64
	if AbsCosTheta(wi) > AbsCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / AbsCosTheta(wi)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / AbsCosTheta(wo)
	}

	return o.Scale.Multiply((o.A + o.B*maxCos*sinAlpha*tanBeta) / math.Pi)
}

// PDF returns the cosine-weighted density |cosθ|/π on the reflection side
func (o *OrenNayar) PDF(wo, wi core.Vec3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / math.Pi
}

// Sample draws a cosine-weighted direction on wo's side of the surface
func (o *OrenNayar) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.SampleCosineHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := o.PDF(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: o.Evaluate(wo, wi), PDF: pdf, Sampled: o.Type()}, true
}
