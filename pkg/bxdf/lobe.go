package bxdf

import (
	"github.com/df07/go-shading/pkg/core"
)

// Type describes the capabilities of a scattering lobe as a set of flags:
// which side(s) of the surface it scatters to, and how sharply.
type Type uint8

const (
	// Reflection marks lobes that scatter into the incident hemisphere
	Reflection Type = 1 << iota
	// Transmission marks lobes that scatter through the surface
	Transmission
	// Diffuse marks lobes with near-uniform angular spread
	Diffuse
	// Glossy marks lobes concentrated around a preferred direction
	Glossy
	// Specular marks delta-distribution lobes (mirrors, smooth glass)
	Specular

	// All matches every lobe
	All = Reflection | Transmission | Diffuse | Glossy | Specular
	// AllNonSpecular matches every lobe except delta distributions
	AllNonSpecular = All &^ Specular
)

// HasReflection reports whether the lobe scatters into the incident hemisphere
func (t Type) HasReflection() bool { return t&Reflection != 0 }

// HasTransmission reports whether the lobe scatters through the surface
func (t Type) HasTransmission() bool { return t&Transmission != 0 }

// IsDiffuse reports whether the lobe is diffuse
func (t Type) IsDiffuse() bool { return t&Diffuse != 0 }

// IsGlossy reports whether the lobe is glossy
func (t Type) IsGlossy() bool { return t&Glossy != 0 }

// IsSpecular reports whether the lobe is a delta distribution
func (t Type) IsSpecular() bool { return t&Specular != 0 }

// Matches reports whether all of the lobe's capability bits are present in
// the filter
func (t Type) Matches(filter Type) bool { return t&filter == t }

// TransportMode distinguishes the quantity being transported along a path.
// Radiance is eye tracing, Importance is light tracing; the distinction
// matters for the non-symmetric eta² factor in specular transmission.
type TransportMode int

const (
	// Radiance transport (camera paths)
	Radiance TransportMode = iota
	// Importance transport (light paths)
	Importance
)

// Sample is the result of importance-sampling a lobe: the incoming direction
// it chose, the lobe value there, the sample's probability density, and the
// capability bits of the component actually sampled.
type Sample struct {
	Wi      core.Vec3 // Sampled incoming direction
	F       core.Vec3 // Lobe value at (wo, wi)
	PDF     float64   // Probability density of wi
	Sampled Type      // Component that produced the sample
}

// BxDF is one elementary scattering law. Each call is a pure function of the
// lobe's fixed parameters and the direction arguments; lobes carry no
// mutable state.
type BxDF interface {
	// Type returns the lobe's fixed capability flags
	Type() Type

	// Sample draws an incoming direction for the given outgoing direction
	// using exactly the two uniform variates in u. Returns false when no
	// valid direction exists (e.g. total internal reflection).
	Sample(wo core.Vec3, u core.Vec2) (Sample, bool)

	// Evaluate returns the lobe value for an arbitrary direction pair.
	// Delta lobes always return zero here.
	Evaluate(wo, wi core.Vec3) core.Vec3

	// PDF returns the probability density of wi given wo under this lobe's
	// sampling strategy. Delta lobes always return zero here.
	PDF(wo, wi core.Vec3) float64
}
