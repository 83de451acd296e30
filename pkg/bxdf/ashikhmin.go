package bxdf

import (
	"math"

	"github.com/df07/go-shading/pkg/core"
)

// AshikhminShirley is the Ashikhmin-Shirley glossy-diffuse lobe: a Schlick
// Fresnel-weighted power-cosine half-vector highlight layered over a
// view-dependent diffuse base. It is the cheaper glossy alternative to the
// full microfacet model; ExponentX/ExponentY give the anisotropic highlight
// widths.
type AshikhminShirley struct {
	Rd, Rs               core.Vec3 // Diffuse and specular reflectance
	ExponentX, ExponentY float64
}

// NewAshikhminShirley creates an Ashikhmin-Shirley lobe
func NewAshikhminShirley(rd, rs core.Vec3, exponentX, exponentY float64) *AshikhminShirley {
	return &AshikhminShirley{Rd: rd, Rs: rs, ExponentX: exponentX, ExponentY: exponentY}
}

// Type implements the BxDF interface
func (a *AshikhminShirley) Type() Type { return Reflection | Glossy }

// distributionD is the anisotropic power-cosine half-vector distribution
func (a *AshikhminShirley) distributionD(wh core.Vec3) float64 {
	cosThetaH := AbsCosTheta(wh)
	norm := math.Sqrt((a.ExponentX + 2) * (a.ExponentY + 2)) / (2 * math.Pi)
	denom := 1 - cosThetaH*cosThetaH
	if denom <= 0 {
		return norm // cos^e → 1 at normal incidence
	}
	e := (a.ExponentX*wh.X*wh.X + a.ExponentY*wh.Y*wh.Y) / denom
	return norm * math.Pow(cosThetaH, e)
}

// Evaluate returns the sum of the diffuse and glossy terms
func (a *AshikhminShirley) Evaluate(wo, wi core.Vec3) core.Vec3 {
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}
	}

	absCosThetaI := AbsCosTheta(wi)
	absCosThetaO := AbsCosTheta(wo)
	if absCosThetaI == 0 || absCosThetaO == 0 {
		return core.Vec3{}
	}

	// View-dependent diffuse term that vanishes as the specular term
	// saturates at grazing angles
	one := core.NewVec3(1, 1, 1)
	pow5 := func(v float64) float64 { v2 := v * v; return v2 * v2 * v }
	diffuse := a.Rd.Multiply(28.0 / (23.0 * math.Pi)).
		MultiplyVec(one.Subtract(a.Rs)).
		Multiply(1 - pow5(1-absCosThetaI/2)).
		Multiply(1 - pow5(1-absCosThetaO/2))

	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return diffuse
	}
	wh = wh.Normalize()

	specular := SchlickFresnelColor(a.Rs, wi.Dot(wh)).
		Multiply(a.distributionD(wh) / (4 * wi.AbsDot(wh) * math.Max(absCosThetaI, absCosThetaO)))

	return diffuse.Add(specular)
}

// sampleHalfVector samples the power-cosine distribution quadrant by quadrant
func (a *AshikhminShirley) sampleHalfVector(u core.Vec2) core.Vec3 {
	var phi, cosTheta float64
	if a.ExponentX == a.ExponentY {
		phi = 2 * math.Pi * u.Y
		cosTheta = math.Pow(u.X, 1/(a.ExponentX+1))
	} else {
		// Sample the first quadrant, then mirror into the quadrant picked
		// by u.Y to keep the anisotropic distribution exact
		quadrant := func(u1, u2 float64) (float64, float64) {
			p := math.Atan(math.Sqrt((a.ExponentX+1)/(a.ExponentY+1)) * math.Tan(math.Pi*u2/2))
			sinPhi, cosPhi := math.Sincos(p)
			c := math.Pow(u1, 1/(a.ExponentX*cosPhi*cosPhi+a.ExponentY*sinPhi*sinPhi+1))
			return p, c
		}
		switch {
		case u.Y < 0.25:
			phi, cosTheta = quadrant(u.X, 4*u.Y)
		case u.Y < 0.5:
			phi, cosTheta = quadrant(u.X, 4*(0.5-u.Y))
			phi = math.Pi - phi
		case u.Y < 0.75:
			phi, cosTheta = quadrant(u.X, 4*(u.Y-0.5))
			phi += math.Pi
		default:
			phi, cosTheta = quadrant(u.X, 4*(1-u.Y))
			phi = 2*math.Pi - phi
		}
	}

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	return SphericalDirection(sinTheta, cosTheta, phi)
}

// PDF mixes the two sampling strategies equally
func (a *AshikhminShirley) PDF(wo, wi core.Vec3) float64 {
	if !SameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi)
	if wh.X == 0 && wh.Y == 0 && wh.Z == 0 {
		return 0
	}
	wh = wh.Normalize()
	whPDF := a.distributionD(wh) * AbsCosTheta(wh) / (4 * wo.AbsDot(wh))
	return 0.5 * (AbsCosTheta(wi)/math.Pi + whPDF)
}

// Sample chooses the diffuse or glossy strategy with equal probability
func (a *AshikhminShirley) Sample(wo core.Vec3, u core.Vec2) (Sample, bool) {
	var wi core.Vec3
	if u.X < 0.5 {
		// Cosine-sample the diffuse base; remap u.X back to [0,1)
		wi = core.SampleCosineHemisphere(core.NewVec2(math.Min(2*u.X, 1-1e-9), u.Y))
		if wo.Z < 0 {
			wi.Z = -wi.Z
		}
	} else {
		wh := a.sampleHalfVector(core.NewVec2(math.Min(2*(u.X-0.5), 1-1e-9), u.Y))
		if !SameHemisphere(wo, wh) {
			wh = wh.Negate()
		}
		wi = Reflect(wo, wh)
		if !SameHemisphere(wo, wi) {
			return Sample{}, false
		}
	}

	pdf := a.PDF(wo, wi)
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: a.Evaluate(wo, wi), PDF: pdf, Sampled: a.Type()}, true
}
