package bxdf

import (
	"math"

	"github.com/df07/go-shading/pkg/core"
)

// LambertianReflection is a perfectly diffuse reflective lobe with constant
// value Scale/π over the hemisphere
type LambertianReflection struct {
	Scale core.Vec3 // Reflectance tint
}

// NewLambertianReflection creates a diffuse reflection lobe
func NewLambertianReflection(scale core.Vec3) *LambertianReflection {
	return &LambertianReflection{Scale: scale}
}

// Type implements the BxDF interface
func (l *LambertianReflection) Type() Type { return Reflection | Diffuse }

// Evaluate returns Scale/π when the directions share a hemisphere, else zero
func (l *LambertianReflection) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	return l.Scale.Multiply(1 / math.Pi)
}

// PDF returns the cosine-weighted density |cosθ|/π on the reflection side
func (l *LambertianReflection) PDF(wo, wi core.Vec3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / math.Pi
}

// Sample draws a cosine-weighted direction on wo's side of the surface
func (l *LambertianReflection) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.SampleCosineHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := l.PDF(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: l.Evaluate(wo, wi), PDF: pdf, Sampled: l.Type()}, true
}

// LambertianTransmission is a perfectly diffuse transmissive lobe scattering
// into the opposite hemisphere
type LambertianTransmission struct {
	Scale core.Vec3 // Transmittance tint
}

// NewLambertianTransmission creates a diffuse transmission lobe
func NewLambertianTransmission(scale core.Vec3) *LambertianTransmission {
	return &LambertianTransmission{Scale: scale}
}

// Type implements the BxDF interface
func (l *LambertianTransmission) Type() Type { return Transmission | Diffuse }

// Evaluate returns Scale/π when the directions are on opposite sides, else zero
func (l *LambertianTransmission) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	return l.Scale.Multiply(1 / math.Pi)
}

// PDF returns the cosine-weighted density |cosθ|/π on the transmission side
func (l *LambertianTransmission) PDF(wo, wi core.Vec3) float64 {
	if SameHemisphere(wo, wi) {
		return 0
	}
	return AbsCosTheta(wi) / math.Pi
}

// Sample draws a cosine-weighted direction on the far side of the surface
func (l *LambertianTransmission) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.SampleCosineHemisphere(u)
	if wo.Z > 0 {
		wi.Z = -wi.Z
	}
	pdf := l.PDF(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: l.Evaluate(wo, wi), PDF: pdf, Sampled: l.Type()}, true
}
