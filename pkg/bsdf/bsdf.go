// Package bsdf aggregates elementary scattering lobes into the full
// scattering behavior of a material at one shading point, and combines
// their sampling strategies consistently so the aggregate's PDF matches
// single-sample lobe selection.
package bsdf

import (
	"math"

	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// MaxLobes is the fixed lobe capacity of one aggregate
const MaxLobes = 8

// oneMinusEpsilon is the largest float64 below 1, used to keep remapped
// samples inside [0, 1)
var oneMinusEpsilon = math.Nextafter(1, 0)

// BSDF is the scattering behavior of a material at one shading point: an
// ordered set of lobes, a shared relative index of refraction, and the
// frames needed to move directions between world and shading space. It is
// built fresh per shading point and read-only afterwards.
type BSDF struct {
	// Eta is the relative index of refraction over the interface, 1 for
	// opaque materials
	Eta float64

	geometricNormal core.Vec3
	shading         core.Frame
	lobes           [MaxLobes]bxdf.BxDF
	count           int
}

// New creates an empty aggregate for a shading point. The shading frame's W
// axis is the shading normal; the geometric normal is used to classify
// sampled directions as reflecting or transmitting.
func New(geometricNormal core.Vec3, shading core.Frame, eta float64) *BSDF {
	return &BSDF{Eta: eta, geometricNormal: geometricNormal, shading: shading}
}

// Add appends a lobe. Adding beyond capacity is a programming error in a
// material compiler and panics.
func (b *BSDF) Add(lobe bxdf.BxDF) {
	if b.count >= MaxLobes {
		panic("bsdf: lobe capacity exceeded")
	}
	b.lobes[b.count] = lobe
	b.count++
}

// NumLobes returns how many lobes match the capability filter
func (b *BSDF) NumLobes(filter bxdf.Type) int {
	n := 0
	for i := 0; i < b.count; i++ {
		if b.lobes[i].Type().Matches(filter) {
			n++
		}
	}
	return n
}

// Sample is the result of sampling the aggregate. Wi is in world space.
type Sample struct {
	Wi      core.Vec3 // Sampled incoming direction (world space)
	F       core.Vec3 // Combined value over the matching lobes
	PDF     float64   // Combined probability density
	Sampled bxdf.Type // Capability bits of the lobe that was sampled
}

// IsSpecular reports whether the sampled lobe was a delta distribution, in
// which case the caller must not apply next-event estimation for this bounce
func (s Sample) IsSpecular() bool {
	return s.Sampled.IsSpecular()
}

// Sample chooses one lobe matching the filter with uniform probability,
// delegates direction sampling to it, then folds the remaining matching
// lobes into the returned value and PDF. The two components of u are the
// only randomness consumed; u.X is remapped after lobe selection to
// preserve stratification.
func (b *BSDF) Sample(woWorld core.Vec3, u core.Vec2, filter bxdf.Type) (Sample, bool) {
	wo := b.shading.ToLocal(woWorld)
	if wo.Z == 0 {
		return Sample{}, false
	}

	matching := b.NumLobes(filter)
	if matching == 0 {
		return Sample{}, false
	}

	// Uniform lobe selection with sample reuse
	index := min(int(u.X*float64(matching)), matching-1)
	uRemapped := core.NewVec2(math.Min(u.X*float64(matching)-float64(index), oneMinusEpsilon), u.Y)

	var chosen bxdf.BxDF
	for i, j := 0, 0; i < b.count; i++ {
		if b.lobes[i].Type().Matches(filter) {
			if j == index {
				chosen = b.lobes[i]
				break
			}
			j++
		}
	}

	s, ok := chosen.Sample(wo, uRemapped)
	if !ok || s.PDF == 0 {
		return Sample{}, false
	}
	wi := s.Wi

	f := s.F
	pdf := s.PDF
	sampled := s.Sampled

	// Delta lobes cannot be reached by the other lobes' finite strategies,
	// so their single-sample value and PDF stand alone. Everything else is
	// combined across the matching lobes.
	if !chosen.Type().IsSpecular() {
		for i := 0; i < b.count; i++ {
			lobe := b.lobes[i]
			if lobe == chosen || !lobe.Type().Matches(filter) {
				continue
			}
			pdf += lobe.PDF(wo, wi)
		}
		pdf /= float64(matching)

		f = b.evaluateLocal(wo, wi, woWorld, b.shading.ToWorld(wi), filter)
	}

	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Wi: b.shading.ToWorld(wi), F: f, PDF: pdf, Sampled: sampled}, true
}

// Evaluate sums the matching lobes' values for a specific world-space
// direction pair, gated by whether the pair reflects or transmits relative
// to the geometric normal
func (b *BSDF) Evaluate(woWorld, wiWorld core.Vec3, filter bxdf.Type) core.Vec3 {
	wo := b.shading.ToLocal(woWorld)
	wi := b.shading.ToLocal(wiWorld)
	if wo.Z == 0 {
		return core.Vec3{}
	}
	return b.evaluateLocal(wo, wi, woWorld, wiWorld, filter)
}

// evaluateLocal accumulates lobe values; the world directions are needed to
// classify the pair against the geometric normal, which can disagree with
// the shading normal near silhouettes
func (b *BSDF) evaluateLocal(wo, wi, woWorld, wiWorld core.Vec3, filter bxdf.Type) core.Vec3 {
	reflecting := wiWorld.Dot(b.geometricNormal)*woWorld.Dot(b.geometricNormal) > 0

	var f core.Vec3
	for i := 0; i < b.count; i++ {
		lobe := b.lobes[i]
		t := lobe.Type()
		if !t.Matches(filter) {
			continue
		}
		if (reflecting && t.HasReflection()) || (!reflecting && t.HasTransmission()) {
			f = f.Add(lobe.Evaluate(wo, wi))
		}
	}
	return f
}

// PDF averages the matching lobes' densities for a specific world-space
// direction pair. Delta lobes contribute zero.
func (b *BSDF) PDF(woWorld, wiWorld core.Vec3, filter bxdf.Type) float64 {
	wo := b.shading.ToLocal(woWorld)
	wi := b.shading.ToLocal(wiWorld)
	if wo.Z == 0 {
		return 0
	}

	matching := 0
	pdf := 0.0
	for i := 0; i < b.count; i++ {
		lobe := b.lobes[i]
		if !lobe.Type().Matches(filter) {
			continue
		}
		matching++
		pdf += lobe.PDF(wo, wi)
	}
	if matching == 0 {
		return 0
	}
	return pdf / float64(matching)
}
