package bxdf

import (
	"github.com/df07/go-shading/pkg/core"
)

// SpecularReflection is an ideal mirror: a delta distribution that can only
// be reached through its own Sample call. Evaluate and PDF return zero for
// all direction pairs; this asymmetry is what lets the aggregate skip delta
// lobes during multi-lobe accumulation.
type SpecularReflection struct {
	Scale   core.Vec3 // Reflectance tint
	Fresnel Fresnel
}

// NewSpecularReflection creates a mirror lobe with the given Fresnel term
func NewSpecularReflection(scale core.Vec3, fresnel Fresnel) *SpecularReflection {
	return &SpecularReflection{Scale: scale, Fresnel: fresnel}
}

// Type implements the BxDF interface
func (s *SpecularReflection) Type() Type { return Reflection | Specular }

// Evaluate always returns zero: a delta lobe has no finite value
func (s *SpecularReflection) Evaluate(wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF always returns zero for arbitrary direction pairs
func (s *SpecularReflection) PDF(wo, wi core.Vec3) float64 {
	return 0
}

// Sample returns the single mirror direction with probability one
func (s *SpecularReflection) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
	absCosThetaI := AbsCosTheta(wi)
	if absCosThetaI == 0 {
		return Sample{}, false
	}
	f := s.Fresnel.Evaluate(CosTheta(wi)).MultiplyVec(s.Scale).Multiply(1 / absCosThetaI)
	return Sample{Wi: wi, F: f, PDF: 1, Sampled: s.Type()}, true
}

// SpecularTransmission is an ideal refractive delta lobe computing the
// transmitted direction from Snell's law. Sampling fails under total
// internal reflection.
type SpecularTransmission struct {
	Scale      core.Vec3 // Transmittance tint
	EtaA, EtaB float64   // Indices above (z > 0) and below the surface
	Mode       TransportMode
	fresnel    *DielectricFresnel
}

// NewSpecularTransmission creates a refractive delta lobe
func NewSpecularTransmission(scale core.Vec3, etaA, etaB float64, mode TransportMode) *SpecularTransmission {
	return &SpecularTransmission{
		Scale:   scale,
		EtaA:    etaA,
		EtaB:    etaB,
		Mode:    mode,
		fresnel: NewDielectricFresnel(etaA, etaB),
	}
}

// Type implements the BxDF interface
func (s *SpecularTransmission) Type() Type { return Transmission | Specular }

// Evaluate always returns zero: a delta lobe has no finite value
func (s *SpecularTransmission) Evaluate(wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF always returns zero for arbitrary direction pairs
func (s *SpecularTransmission) PDF(wo, wi core.Vec3) float64 {
	return 0
}

// Sample refracts wo through the surface, failing on total internal
// reflection. In Radiance mode the value includes the 1/η² radiance
// compression factor required for non-symmetric transport.
func (s *SpecularTransmission) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	// Which side of the surface is wo on?
	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = s.EtaB, s.EtaA
	}

	n := Faceforward(core.NewVec3(0, 0, 1), wo)
	wi, ok := Refract(wo, n, etaI/etaT)
	if !ok {
		return Sample{}, false
	}
	absCosThetaI := AbsCosTheta(wi)
	if absCosThetaI == 0 {
		return Sample{}, false
	}

	fr := s.fresnel.Evaluate(CosTheta(wo))
	ft := s.Scale.MultiplyVec(core.NewVec3(1, 1, 1).Subtract(fr))
	if s.Mode == Radiance {
		ft = ft.Multiply((etaI * etaI) / (etaT * etaT))
	}
	return Sample{
		Wi:      wi,
		F:       ft.Multiply(1 / absCosThetaI),
		PDF:     1,
		Sampled: s.Type(),
	}, true
}

// FresnelSpecular combines ideal reflection and refraction at a smooth
// dielectric interface, choosing between them with probability equal to
// the Fresnel reflectance. Used by smooth glass.
type FresnelSpecular struct {
	R, T       core.Vec3 // Reflectance and transmittance tints
	EtaA, EtaB float64
	Mode       TransportMode
}

// NewFresnelSpecular creates a smooth glass lobe
func NewFresnelSpecular(r, t core.Vec3, etaA, etaB float64, mode TransportMode) *FresnelSpecular {
	return &FresnelSpecular{R: r, T: t, EtaA: etaA, EtaB: etaB, Mode: mode}
}

// Type implements the BxDF interface
func (s *FresnelSpecular) Type() Type { return Reflection | Transmission | Specular }

// Evaluate always returns zero: a delta lobe has no finite value
func (s *FresnelSpecular) Evaluate(wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF always returns zero for arbitrary direction pairs
func (s *FresnelSpecular) PDF(wo, wi core.Vec3) float64 {
	return 0
}

// Sample chooses reflection with probability F and refraction with
// probability 1-F, where F is the exact dielectric Fresnel reflectance
func (s *FresnelSpecular) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	f := FresnelDielectricReflectance(CosTheta(wo), s.EtaA, s.EtaB)

	if u.X < f {
		// Mirror reflection, weighted by its selection probability
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		absCosThetaI := AbsCosTheta(wi)
		if absCosThetaI == 0 {
			return Sample{}, false
		}
		return Sample{
			Wi:      wi,
			F:       s.R.Multiply(f / absCosThetaI),
			PDF:     f,
			Sampled: Reflection | Specular,
		}, true
	}

	entering := CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = s.EtaB, s.EtaA
	}

	n := Faceforward(core.NewVec3(0, 0, 1), wo)
	wi, ok := Refract(wo, n, etaI/etaT)
	if !ok {
		// f = 1 at total internal reflection, so this branch is unreachable
		// for valid inputs; guard anyway
		return Sample{}, false
	}
	absCosThetaI := AbsCosTheta(wi)
	if absCosThetaI == 0 {
		return Sample{}, false
	}

	ft := s.T.Multiply(1 - f)
	if s.Mode == Radiance {
		ft = ft.Multiply((etaI * etaI) / (etaT * etaT))
	}
	return Sample{
		Wi:      wi,
		F:       ft.Multiply(1 / absCosThetaI),
		PDF:     1 - f,
		Sampled: Transmission | Specular,
	}, true
}
