package bxdf

import (
	"math"

	"github.com/df07/go-shading/pkg/core"
)

// FresnelDielectricReflectance computes the exact unpolarized Fresnel
// reflectance at a dielectric interface. cosThetaI is measured against the
// interface normal on the etaI side; a negative value means the ray is
// arriving from inside the medium and the indices are swapped accordingly.
// Returns 1 under total internal reflection.
func FresnelDielectricReflectance(cosThetaI, etaI, etaT float64) float64 {
	cosThetaI = max(-1, min(1, cosThetaI))
	if cosThetaI <= 0 {
		// Ray is leaving the medium
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	// Snell's law for the transmitted angle
	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // Total internal reflection
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParallel := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerpendicular := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParallel*rParallel + rPerpendicular*rPerpendicular) / 2
}

// FresnelConductorReflectance computes per-channel reflectance at a conductor
// interface with complex refractive index etaT + i*k. Conductors always
// partially reflect, so there is no total-internal-reflection case.
func FresnelConductorReflectance(cosThetaI float64, etaI, etaT, k core.Vec3) core.Vec3 {
	cosThetaI = max(-1, min(1, cosThetaI))
	return core.NewVec3(
		fresnelConductor1(cosThetaI, etaT.X/etaI.X, k.X/etaI.X),
		fresnelConductor1(cosThetaI, etaT.Y/etaI.Y, k.Y/etaI.Y),
		fresnelConductor1(cosThetaI, etaT.Z/etaI.Z, k.Z/etaI.Z),
	)
}

// fresnelConductor1 is the single-channel closed form for a relative complex
// index eta + i*k
func fresnelConductor1(cosThetaI, eta, k float64) float64 {
	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2
	eta2 := eta * eta
	k2 := k * k

	t0 := eta2 - k2 - sin2
	a2b2 := math.Sqrt(math.Max(0, t0*t0+4*eta2*k2))
	t1 := a2b2 + cos2
	a := math.Sqrt(math.Max(0, (a2b2+t0)/2))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2b2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return (rs + rp) / 2
}

// SchlickWeight returns the Schlick Fresnel interpolation weight
// (1 - cosTheta)^5, with cosTheta clamped to [0, 1]
func SchlickWeight(cosTheta float64) float64 {
	m := max(0, min(1, 1-cosTheta))
	m2 := m * m
	return m2 * m2 * m
}

// SchlickFresnel approximates Fresnel reflectance from the reflectance at
// normal incidence r0
func SchlickFresnel(r0, cosTheta float64) float64 {
	return r0 + (1-r0)*SchlickWeight(cosTheta)
}

// SchlickFresnelColor is the per-channel Schlick approximation
func SchlickFresnelColor(r0 core.Vec3, cosTheta float64) core.Vec3 {
	w := SchlickWeight(cosTheta)
	return r0.Add(core.NewVec3(1, 1, 1).Subtract(r0).Multiply(w))
}

// SchlickR0FromEta returns the normal-incidence reflectance ((eta-1)/(eta+1))²
// for a relative index of refraction
func SchlickR0FromEta(eta float64) float64 {
	r := (eta - 1) / (eta + 1)
	return r * r
}

// Fresnel computes the fraction of incident light reflected at an interface
type Fresnel interface {
	Evaluate(cosThetaI float64) core.Vec3
}

// DielectricFresnel is the exact dielectric Fresnel term between two media
type DielectricFresnel struct {
	EtaI, EtaT float64
}

// NewDielectricFresnel creates a dielectric Fresnel term
func NewDielectricFresnel(etaI, etaT float64) *DielectricFresnel {
	return &DielectricFresnel{EtaI: etaI, EtaT: etaT}
}

// Evaluate implements the Fresnel interface
func (f *DielectricFresnel) Evaluate(cosThetaI float64) core.Vec3 {
	r := FresnelDielectricReflectance(cosThetaI, f.EtaI, f.EtaT)
	return core.NewVec3(r, r, r)
}

// ConductorFresnel is the chromatic conductor Fresnel term
type ConductorFresnel struct {
	EtaI, EtaT, K core.Vec3
}

// NewConductorFresnel creates a conductor Fresnel term
func NewConductorFresnel(etaI, etaT, k core.Vec3) *ConductorFresnel {
	return &ConductorFresnel{EtaI: etaI, EtaT: etaT, K: k}
}

// Evaluate implements the Fresnel interface
func (f *ConductorFresnel) Evaluate(cosThetaI float64) core.Vec3 {
	return FresnelConductorReflectance(math.Abs(cosThetaI), f.EtaI, f.EtaT, f.K)
}

// NoOpFresnel reflects all incident light, used by ideal mirrors
type NoOpFresnel struct{}

// Evaluate implements the Fresnel interface
func (NoOpFresnel) Evaluate(cosThetaI float64) core.Vec3 {
	return core.NewVec3(1, 1, 1)
}

// DisneyFresnel blends the exact dielectric curve with a Schlick metallic
// curve by the metallic parameter, reproducing the Disney single-Fresnel
// treatment of dielectrics and conductors.
type DisneyFresnel struct {
	R0       core.Vec3 // Reflectance at normal incidence
	Metallic float64
	Eta      float64
}

// NewDisneyFresnel creates a Disney blended Fresnel term
func NewDisneyFresnel(r0 core.Vec3, metallic, eta float64) *DisneyFresnel {
	return &DisneyFresnel{R0: r0, Metallic: metallic, Eta: eta}
}

// Evaluate implements the Fresnel interface
func (f *DisneyFresnel) Evaluate(cosThetaI float64) core.Vec3 {
	dielectric := FresnelDielectricReflectance(cosThetaI, 1, f.Eta)
	metallic := SchlickFresnelColor(f.R0, cosThetaI)
	return core.NewVec3(dielectric, dielectric, dielectric).Lerp(metallic, f.Metallic)
}
