package bxdf

import (
	"math"

	"github.com/df07/go-shading/pkg/core"
)

// MicrofacetReflection is the Torrance-Sparrow reflective lobe built on a
// Trowbridge-Reitz distribution: f = D·G·F / (4·|cosθo|·|cosθi|)
type MicrofacetReflection struct {
	Scale        core.Vec3 // Reflectance tint
	Distribution *TrowbridgeReitz
	Fresnel      Fresnel
}

// NewMicrofacetReflection creates a Torrance-Sparrow reflection lobe
func NewMicrofacetReflection(scale core.Vec3, distribution *TrowbridgeReitz, fresnel Fresnel) *MicrofacetReflection {
	return &MicrofacetReflection{Scale: scale, Distribution: distribution, Fresnel: fresnel}
}

// Type implements the BxDF interface
func (m *MicrofacetReflection) Type() Type { return Reflection | Glossy }

// Evaluate returns the Torrance-Sparrow reflectance for a direction pair
func (m *MicrofacetReflection) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	cosThetaO := AbsCosTheta(wo)
	cosThetaI := AbsCosTheta(wi)
	wh := wo.Add(wi)
	// Degenerate at grazing angles and for opposing directions
	if cosThetaO == 0 || cosThetaI == 0 {
		return core.Vec3{}
	}
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return core.Vec3{}
	}
	wh = wh.Normalize()

	// Fresnel is measured against the half vector on the outward side
	f := m.Fresnel.Evaluate(wi.Dot(Faceforward(wh, core.NewVec3(0, 0, 1))))
	d := m.Distribution.D(wh)
	g := m.Distribution.G(wo, wi)
	return m.Scale.MultiplyVec(f).Multiply(d * g / (4 * cosThetaO * cosThetaI))
}

// PDF returns the half-vector sampling density converted to solid angle
func (m *MicrofacetReflection) PDF(wo, wi core.Vec3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return 0
	}
	wh = wh.Normalize()
	return m.Distribution.PDF(wo, wh) / (4 * wo.Dot(wh))
}

// Sample draws a microfacet normal and mirrors wo about it, rejecting
// directions that land below the surface
func (m *MicrofacetReflection) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	if wo.Z == 0 {
		return Sample{}, false
	}
	wh := m.Distribution.Sample(wo, u)
	if wo.Dot(wh) < 0 {
		return Sample{}, false
	}
	wi := Reflect(wo, wh)
	if !SameHemisphere(wo, wi) {
		return Sample{}, false
	}
	pdf := m.Distribution.PDF(wo, wh) / (4 * wo.Dot(wh))
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: m.Evaluate(wo, wi), PDF: pdf, Sampled: m.Type()}, true
}

// MicrofacetTransmission is the Torrance-Sparrow refractive lobe: the
// microfacet transmission analogue with the eta-scaled half vector and the
// change-of-variables Jacobian for refraction.
type MicrofacetTransmission struct {
	Scale        core.Vec3 // Transmittance tint
	Distribution *TrowbridgeReitz
	EtaA, EtaB   float64 // Indices above (z > 0) and below the surface
	Mode         TransportMode
	fresnel      *DielectricFresnel
}

// NewMicrofacetTransmission creates a Torrance-Sparrow transmission lobe
func NewMicrofacetTransmission(scale core.Vec3, distribution *TrowbridgeReitz, etaA, etaB float64, mode TransportMode) *MicrofacetTransmission {
	return &MicrofacetTransmission{
		Scale:        scale,
		Distribution: distribution,
		EtaA:         etaA,
		EtaB:         etaB,
		Mode:         mode,
		fresnel:      NewDielectricFresnel(etaA, etaB),
	}
}

// Type implements the BxDF interface
func (m *MicrofacetTransmission) Type() Type { return Transmission | Glossy }

// Evaluate returns the rough-transmission value for an opposite-hemisphere
// direction pair
func (m *MicrofacetTransmission) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if SameHemisphere(wo, wi) {
		return core.Vec3{} // Transmission only
	}

	cosThetaO := CosTheta(wo)
	cosThetaI := CosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return core.Vec3{}
	}

	// Half vector for refraction uses the eta-scaled sum
	eta := m.EtaB / m.EtaA
	if cosThetaO <= 0 {
		eta = m.EtaA / m.EtaB
	}
	wh := wo.Add(wi.Multiply(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}

	// Both directions must be on the same side of the microfacet
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return core.Vec3{}
	}

	fr := m.fresnel.Evaluate(wo.Dot(wh))
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	if sqrtDenom == 0 {
		return core.Vec3{}
	}

	// Radiance transport carries the 1/η scaling; importance does not
	factor := 1.0
	if m.Mode == Radiance {
		factor = 1 / eta
	}

	d := m.Distribution.D(wh)
	g := m.Distribution.G(wo, wi)
	value := d * g * eta * eta * wi.AbsDot(wh) * wo.AbsDot(wh) * factor * factor /
		(cosThetaI * cosThetaO * sqrtDenom * sqrtDenom)
	oneMinusFr := core.NewVec3(1, 1, 1).Subtract(fr)
	return m.Scale.MultiplyVec(oneMinusFr).Multiply(math.Abs(value))
}

// PDF returns the half-vector density with the refraction Jacobian applied
func (m *MicrofacetTransmission) PDF(wo, wi core.Vec3) float64 {
	if SameHemisphere(wo, wi) {
		return 0
	}

	eta := m.EtaB / m.EtaA
	if CosTheta(wo) <= 0 {
		eta = m.EtaA / m.EtaB
	}
	wh := wo.Add(wi.Multiply(eta)).Normalize()
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return 0
	}

	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	if sqrtDenom == 0 {
		return 0
	}
	dwhDwi := math.Abs(eta*eta*wi.Dot(wh)) / (sqrtDenom * sqrtDenom)
	return m.Distribution.PDF(wo, wh) * dwhDwi
}

// Sample draws a microfacet normal and refracts wo through it, failing when
// Snell's law has no solution
func (m *MicrofacetTransmission) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	if wo.Z == 0 {
		return Sample{}, false
	}
	wh := m.Distribution.Sample(wo, u)
	if wo.Dot(wh) < 0 {
		return Sample{}, false
	}

	eta := m.EtaA / m.EtaB
	if CosTheta(wo) <= 0 {
		eta = m.EtaB / m.EtaA
	}
	wi, ok := Refract(wo, wh, eta)
	if !ok {
		return Sample{}, false
	}
	pdf := m.PDF(wo, wi)
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: m.Evaluate(wo, wi), PDF: pdf, Sampled: m.Type()}, true
}
