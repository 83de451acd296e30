package material

import (
	"github.com/df07/go-shading/pkg/bsdf"
	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// Mirror is an ideal reflector with no angular falloff
type Mirror struct {
	KR core.Vec3 // Reflectance
}

// NewMirror creates a mirror material
func NewMirror(kr core.Vec3) *Mirror {
	return &Mirror{KR: kr.Clamp(0, 1)}
}

// Compile implements the Material interface
func (m *Mirror) Compile(geom ShadingGeometry, mode bxdf.TransportMode) (*bsdf.BSDF, bool) {
	if m.KR.IsBlack() {
		return nil, false
	}
	b := bsdf.New(geom.GeometricNormal, geom.Shading, 1)
	b.Add(bxdf.NewSpecularReflection(m.KR, bxdf.NoOpFresnel{}))
	return b, true
}

// Emitted implements the Material interface
func (m *Mirror) Emitted() core.Vec3 { return core.Vec3{} }
