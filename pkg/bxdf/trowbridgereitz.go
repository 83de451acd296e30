package bxdf

import (
	"math"

	"github.com/df07/go-shading/pkg/core"
)

// MinAlpha is the smallest usable microfacet roughness; smaller values make
// the distribution numerically indistinguishable from a delta spike
const MinAlpha = 0.001

// TrowbridgeReitz is the GGX microfacet normal distribution with Smith
// shadowing-masking. AlphaX/AlphaY are the tangent/bitangent roughness
// values; unequal values give an anisotropic highlight.
type TrowbridgeReitz struct {
	AlphaX, AlphaY float64

	// SampleVisibleArea selects Heitz visible-normal sampling instead of
	// sampling the full distribution
	SampleVisibleArea bool

	// Separable selects the product form G1(wo)·G1(wi) instead of the
	// height-correlated Smith term
	Separable bool
}

// NewTrowbridgeReitz creates a GGX distribution with visible-normal sampling
// and the height-correlated Smith term
func NewTrowbridgeReitz(alphaX, alphaY float64) *TrowbridgeReitz {
	return &TrowbridgeReitz{
		AlphaX:            math.Max(MinAlpha, alphaX),
		AlphaY:            math.Max(MinAlpha, alphaY),
		SampleVisibleArea: true,
	}
}

// RoughnessToAlpha remaps a perceptually linear [0,1] roughness value to a
// GGX alpha using the usual quartic-in-log-roughness fit
func RoughnessToAlpha(roughness float64) float64 {
	roughness = math.Max(roughness, 1e-3)
	x := math.Log(roughness)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}

// D returns the differential area of microfacets with normal wm
func (d *TrowbridgeReitz) D(wm core.Vec3) float64 {
	tan2Theta := Tan2Theta(wm)
	if math.IsInf(tan2Theta, 0) {
		return 0 // Grazing microfacet normal
	}
	cos4Theta := Cos2Theta(wm) * Cos2Theta(wm)
	e := (Cos2Phi(wm)/(d.AlphaX*d.AlphaX) + Sin2Phi(wm)/(d.AlphaY*d.AlphaY)) * tan2Theta
	return 1 / (math.Pi * d.AlphaX * d.AlphaY * cos4Theta * (1 + e) * (1 + e))
}

// Lambda is the Smith auxiliary function measuring invisible masked
// microfacet area along w
func (d *TrowbridgeReitz) Lambda(w core.Vec3) float64 {
	absTanTheta := math.Abs(TanTheta(w))
	if math.IsInf(absTanTheta, 0) {
		return 0
	}
	// Project the anisotropic roughness onto w's azimuth
	alpha := math.Sqrt(Cos2Phi(w)*d.AlphaX*d.AlphaX + Sin2Phi(w)*d.AlphaY*d.AlphaY)
	alpha2Tan2Theta := (alpha * absTanTheta) * (alpha * absTanTheta)
	return (-1 + math.Sqrt(1+alpha2Tan2Theta)) / 2
}

// G1 is the Smith masking term for a single direction
func (d *TrowbridgeReitz) G1(w core.Vec3) float64 {
	return 1 / (1 + d.Lambda(w))
}

// G is the Smith shadowing-masking term for a direction pair, either the
// separable product or the height-correlated form
func (d *TrowbridgeReitz) G(wo, wi core.Vec3) float64 {
	if d.Separable {
		return d.G1(wo) * d.G1(wi)
	}
	return 1 / (1 + d.Lambda(wo) + d.Lambda(wi))
}

// Sample draws a microfacet normal for the outgoing direction wo. The
// returned normal always lies in the same hemisphere as wo.
func (d *TrowbridgeReitz) Sample(wo core.Vec3, u core.Vec2) core.Vec3 {
	if !d.SampleVisibleArea {
		return d.sampleFullDistribution(wo, u)
	}

	flip := wo.Z < 0
	if flip {
		wo = wo.Negate()
	}
	wm := sampleVisibleNormal(wo, d.AlphaX, d.AlphaY, u)
	if flip {
		wm = wm.Negate()
	}
	return wm
}

// sampleFullDistribution samples wm proportionally to D(wm)·|cosθ|
func (d *TrowbridgeReitz) sampleFullDistribution(wo core.Vec3, u core.Vec2) core.Vec3 {
	var cosTheta, phi float64
	if d.AlphaX == d.AlphaY {
		// Isotropic closed form
		phi = 2 * math.Pi * u.Y
		tanTheta2 := d.AlphaX * d.AlphaX * u.X / (1 - u.X)
		cosTheta = 1 / math.Sqrt(1+tanTheta2)
	} else {
		// Anisotropic arctangent form; the branch keeps phi in the right
		// quadrant across the period of tan
		phi = math.Atan(d.AlphaY / d.AlphaX * math.Tan(2*math.Pi*u.Y+0.5*math.Pi))
		if u.Y > 0.5 {
			phi += math.Pi
		}
		sinPhi, cosPhi := math.Sincos(phi)
		alphaX2 := d.AlphaX * d.AlphaX
		alphaY2 := d.AlphaY * d.AlphaY
		alpha2 := 1 / (cosPhi*cosPhi/alphaX2 + sinPhi*sinPhi/alphaY2)
		tanTheta2 := alpha2 * u.X / (1 - u.X)
		cosTheta = 1 / math.Sqrt(1+tanTheta2)
	}

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	wm := SphericalDirection(sinTheta, cosTheta, phi)
	if !SameHemisphere(wo, wm) {
		wm = wm.Negate()
	}
	return wm
}

// PDF returns the probability density of sampling the microfacet normal wm
// for the outgoing direction wo
func (d *TrowbridgeReitz) PDF(wo, wm core.Vec3) float64 {
	if d.SampleVisibleArea {
		absCosThetaO := AbsCosTheta(wo)
		if absCosThetaO == 0 {
			return 0
		}
		return d.D(wm) * d.G1(wo) * wo.AbsDot(wm) / absCosThetaO
	}
	return d.D(wm) * AbsCosTheta(wm)
}

// sampleVisibleNormal implements Heitz's stretch-and-slope visible-area
// sampling for wo.Z > 0: stretch wo into the unit-roughness configuration,
// sample a slope from the visible-area conditional distribution, then
// unstretch.
func sampleVisibleNormal(wo core.Vec3, alphaX, alphaY float64, u core.Vec2) core.Vec3 {
	woStretched := core.NewVec3(alphaX*wo.X, alphaY*wo.Y, wo.Z).Normalize()

	slopeX, slopeY := sampleVisibleSlope(CosTheta(woStretched), u)

	// Rotate the slope into the stretched direction's azimuthal frame
	cosPhi := CosPhi(woStretched)
	sinPhi := SinPhi(woStretched)
	tmp := cosPhi*slopeX - sinPhi*slopeY
	slopeY = sinPhi*slopeX + cosPhi*slopeY
	slopeX = tmp

	// Unstretch
	slopeX = alphaX * slopeX
	slopeY = alphaY * slopeY

	return core.NewVec3(-slopeX, -slopeY, 1).Normalize()
}

// sampleVisibleSlope samples a microsurface slope for a unit-roughness GGX
// surface viewed from polar cosine cosTheta
func sampleVisibleSlope(cosTheta float64, u core.Vec2) (slopeX, slopeY float64) {
	// Normal incidence: the visible distribution is radially symmetric
	if cosTheta > 0.9999 {
		r := math.Sqrt(u.X / (1 - u.X))
		phi := 2 * math.Pi * u.Y
		return r * math.Cos(phi), r * math.Sin(phi)
	}

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	tanTheta := sinTheta / cosTheta
	a := 1 / tanTheta
	g1 := 2 / (1 + math.Sqrt(1+1/(a*a)))

	// Sample slopeX from the marginal distribution
	A := 2*u.X/g1 - 1
	tmp := 1 / (A*A - 1)
	if tmp > 1e10 {
		tmp = 1e10
	}
	b := tanTheta
	d := math.Sqrt(math.Max(0, b*b*tmp*tmp-(A*A-b*b)*tmp))
	slopeX1 := b*tmp - d
	slopeX2 := b*tmp + d
	if A < 0 || slopeX2 > 1/tanTheta {
		slopeX = slopeX1
	} else {
		slopeX = slopeX2
	}

	// Sample slopeY from the conditional distribution via a rational
	// polynomial fit
	var s, uY float64
	if u.Y > 0.5 {
		s = 1
		uY = 2 * (u.Y - 0.5)
	} else {
		s = -1
		uY = 2 * (0.5 - u.Y)
	}
	z := (uY * (uY*(uY*0.27385-0.73369) + 0.46341)) /
		(uY*(uY*(uY*0.093073+0.309420)-1.000000) + 0.597999)
	slopeY = s * z * math.Sqrt(1+slopeX*slopeX)

	return slopeX, slopeY
}
