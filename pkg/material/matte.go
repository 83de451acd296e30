package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Matte is a purely diffuse surface. Sigma is the Oren-Nayar roughness angle
// in degrees; zero gives plain Lambertian reflection.
type Matte struct {
	KD    core.Vec3 // Diffuse reflectance
	Sigma float64
}

// NewMatte creates a matte material, clamping sigma into [0, 90]
func NewMatte(kd core.Vec3, sigma float64) *Matte {
	return &Matte{KD: kd.Clamp(0, 1), Sigma: max(0, min(90, sigma))}
}

// Compile implements the Material interface
func (m *Matte) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	if m.KD.IsBlack() {
		return nil, false
	}
	b := bsdf.New(geom.GeometricNormal, geom.Shading, 1)
	if m.Sigma == 0 {
		b.Add(bxdf.NewLambertianReflection(m.KD))
	} else {
		b.Add(bxdf.NewOrenNayar(m.KD, m.Sigma))
	}
	return b, true
}

// Emitted implements the Material interface
func (m *Matte) Emitted() core.Vec3 { return core.Vec3{} }
