package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emission core.Vec3 // Emitted light color/intensity
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Compile implements the Material interface. Emissive materials don't
// scatter, so compilation always fails and the integrator falls back to the
// emitted radiance.
func (e *Emissive) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	return nil, false
}

// Emitted implements the Material interface
func (e *Emissive) Emitted() core.Vec3 {
	return e.Emission
}
