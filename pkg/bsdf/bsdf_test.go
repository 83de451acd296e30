package bsdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-shading/pkg/bxdf"
	"github.com/df07/go-shading/pkg/core"
)

// flatSurface builds an aggregate for a z-up surface patch
func flatSurface(lobes ...bxdf.BxDF) *BSDF {
	normal := core.NewVec3(0, 0, 1)
	b := New(normal, core.NewFrame(normal), 1)
	for _, lobe := range lobes {
		b.Add(lobe)
	}
	return b
}

func TestBSDF_NumLobes(t *testing.T) {
	b := flatSurface(
		bxdf.NewLambertianReflection(core.NewVec3(0.5, 0.5, 0.5)),
		bxdf.NewSpecularReflection(core.NewVec3(0.9, 0.9, 0.9), bxdf.NoOpFresnel{}),
		bxdf.NewLambertianTransmission(core.NewVec3(0.2, 0.2, 0.2)),
	)

	tests := []struct {
		name     string
		filter   bxdf.Type
		expected int
	}{
		{"All", bxdf.All, 3},
		{"Non-specular", bxdf.AllNonSpecular, 2},
		{"Reflection only", bxdf.Reflection | bxdf.Diffuse | bxdf.Glossy | bxdf.Specular, 2},
		{"Diffuse reflection", bxdf.Reflection | bxdf.Diffuse, 1},
		{"Transmission only", bxdf.Transmission | bxdf.Diffuse | bxdf.Glossy | bxdf.Specular, 1},
		{"Nothing", bxdf.Type(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.NumLobes(tt.filter); got != tt.expected {
				t.Errorf("Expected %d matching lobes, got %d", tt.expected, got)
			}
		})
	}
}

func TestBSDF_SampleFailures(t *testing.T) {
	lambertian := bxdf.NewLambertianReflection(core.NewVec3(0.5, 0.5, 0.5))

	t.Run("Empty aggregate", func(t *testing.T) {
		b := flatSurface()
		if _, ok := b.Sample(core.NewVec3(0, 0, 1), core.NewVec2(0.5, 0.5), bxdf.All); ok {
			t.Error("Sampling an empty aggregate should fail")
		}
	})

	t.Run("No matching lobes", func(t *testing.T) {
		b := flatSurface(lambertian)
		filter := bxdf.Transmission | bxdf.Diffuse | bxdf.Glossy | bxdf.Specular
		if _, ok := b.Sample(core.NewVec3(0, 0, 1), core.NewVec2(0.5, 0.5), filter); ok {
			t.Error("Sampling with a non-matching filter should fail")
		}
	})

	t.Run("Grazing outgoing direction", func(t *testing.T) {
		b := flatSurface(lambertian)
		// wo exactly in the surface plane has zero local z
		if _, ok := b.Sample(core.NewVec3(1, 0, 0), core.NewVec2(0.5, 0.5), bxdf.All); ok {
			t.Error("Sampling with zero outgoing z should fail")
		}
	})
}

func TestBSDF_TwoLobeCombination(t *testing.T) {
	// Two identical-strategy diffuse lobes: values add, PDFs average back
	// to the single-lobe density
	b := flatSurface(
		bxdf.NewLambertianReflection(core.NewVec3(0.3, 0.3, 0.3)),
		bxdf.NewLambertianReflection(core.NewVec3(0.2, 0.2, 0.2)),
	)
	wo := core.NewVec3(0.2, 0.3, 0.9).Normalize()
	wi := core.NewVec3(-0.4, 0.1, 0.9).Normalize()

	f := b.Evaluate(wo, wi, bxdf.All)
	expectedF := 0.5 / math.Pi
	if math.Abs(f.X-expectedF) > 1e-12 {
		t.Errorf("Combined value should be 0.5/π=%f, got %f", expectedF, f.X)
	}

	pdf := b.PDF(wo, wi, bxdf.All)
	expectedPDF := wi.Z / math.Pi // Both lobes share the cosine density
	if math.Abs(pdf-expectedPDF) > 1e-12 {
		t.Errorf("Averaged PDF should be cosθ/π=%f, got %f", expectedPDF, pdf)
	}

	// Sampling must agree with the direct entry points
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 500; i++ {
		s, ok := b.Sample(wo, sampler.Get2D(), bxdf.All)
		if !ok {
			t.Fatal("Diffuse aggregate sampling should not fail")
		}
		if directPDF := b.PDF(wo, s.Wi, bxdf.All); math.Abs(directPDF-s.PDF) > 1e-9 {
			t.Fatalf("Sample PDF %g disagrees with direct PDF %g", s.PDF, directPDF)
		}
		if directF := b.Evaluate(wo, s.Wi, bxdf.All); directF.Subtract(s.F).Length() > 1e-9 {
			t.Fatalf("Sample value %v disagrees with direct value %v", s.F, directF)
		}
		if s.IsSpecular() {
			t.Fatal("Diffuse sample should not be flagged specular")
		}
	}
}

func TestBSDF_DeltaLobePassThrough(t *testing.T) {
	// A sampled delta lobe keeps its own single-sample value and PDF and is
	// skipped by the finite lobes' accumulation
	mirror := bxdf.NewSpecularReflection(core.NewVec3(0.9, 0.9, 0.9), bxdf.NoOpFresnel{})
	diffuse := bxdf.NewLambertianReflection(core.NewVec3(0.5, 0.5, 0.5))
	b := flatSurface(mirror, diffuse)

	wo := core.NewVec3(0, 0.6, 0.8)
	mirrorDir := core.NewVec3(0, -0.6, 0.8)

	// The mirror is lobe 0, selected by u.X < 0.5
	s, ok := b.Sample(wo, core.NewVec2(0.25, 0.5), bxdf.All)
	if !ok {
		t.Fatal("Mirror sampling should succeed")
	}
	if !s.IsSpecular() {
		t.Fatal("Sampled lobe should be specular")
	}
	if s.Wi.Subtract(mirrorDir).Length() > 1e-12 {
		t.Errorf("Expected mirror direction %v, got %v", mirrorDir, s.Wi)
	}
	if s.PDF != 1 {
		t.Errorf("Delta pass-through PDF should stay 1, got %f", s.PDF)
	}
	expected := 0.9 / 0.8
	if math.Abs(s.F.X-expected) > 1e-12 {
		t.Errorf("Delta pass-through value should be 0.9/|cosθ|=%f, got %f", expected, s.F.X)
	}

	// Direct evaluation at the mirror direction sees only the diffuse lobe
	f := b.Evaluate(wo, mirrorDir, bxdf.All)
	if math.Abs(f.X-0.5/math.Pi) > 1e-12 {
		t.Errorf("Evaluate should skip the delta lobe: expected %f, got %f", 0.5/math.Pi, f.X)
	}

	// Direct PDF averages the diffuse density over both matching lobes
	pdf := b.PDF(wo, mirrorDir, bxdf.All)
	expectedPDF := (mirrorDir.Z / math.Pi) / 2
	if math.Abs(pdf-expectedPDF) > 1e-12 {
		t.Errorf("PDF should average over matches: expected %f, got %f", expectedPDF, pdf)
	}
}

func TestBSDF_NonSpecularSelectionCombines(t *testing.T) {
	// Selecting the diffuse lobe next to a specular one must still produce
	// a finite PDF: the delta lobe contributes zero to the average
	mirror := bxdf.NewSpecularReflection(core.NewVec3(0.9, 0.9, 0.9), bxdf.NoOpFresnel{})
	diffuse := bxdf.NewLambertianReflection(core.NewVec3(0.5, 0.5, 0.5))
	b := flatSurface(mirror, diffuse)

	wo := core.NewVec3(0, 0.6, 0.8)
	s, ok := b.Sample(wo, core.NewVec2(0.75, 0.5), bxdf.All) // u.X >= 0.5 picks the diffuse lobe
	if !ok {
		t.Fatal("Diffuse sampling should succeed")
	}
	if s.IsSpecular() {
		t.Fatal("Sampled lobe should be the diffuse one")
	}

	localCos := s.Wi.Z
	expectedPDF := (localCos / math.Pi) / 2
	if math.Abs(s.PDF-expectedPDF) > 1e-12 {
		t.Errorf("Expected averaged PDF %f, got %f", expectedPDF, s.PDF)
	}
}

func TestBSDF_GeometricNormalGating(t *testing.T) {
	// A reflection lobe contributes nothing to a pair that transmits
	// through the geometric surface
	b := flatSurface(bxdf.NewLambertianReflection(core.NewVec3(0.5, 0.5, 0.5)))

	wo := core.NewVec3(0.1, 0.2, 0.95).Normalize()
	wiBelow := core.NewVec3(0.1, 0.2, -0.95).Normalize()

	if f := b.Evaluate(wo, wiBelow, bxdf.All); !f.IsBlack() {
		t.Errorf("Transmitting pair should not see the reflection lobe, got %v", f)
	}
}

func TestBSDF_TiltedShadingFrame(t *testing.T) {
	// The aggregate must transform through an arbitrary shading frame, not
	// just the z-up case
	normal := core.NewVec3(1, 1, 1).Normalize()
	b := New(normal, core.NewFrame(normal), 1)
	b.Add(bxdf.NewSpecularReflection(core.NewVec3(1, 1, 1), bxdf.NoOpFresnel{}))

	wo := core.NewVec3(0, 0, 1)
	s, ok := b.Sample(wo, core.NewVec2(0.5, 0.5), bxdf.All)
	if !ok {
		t.Fatal("Mirror sampling should succeed")
	}

	// Mirror reflection about the tilted normal
	expected := wo.Negate().Add(normal.Multiply(2 * wo.Dot(normal)))
	if s.Wi.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected world reflection %v, got %v", expected, s.Wi)
	}
	if math.Abs(s.Wi.Length()-1) > 1e-12 {
		t.Errorf("World-space sample should be unit length, got %f", s.Wi.Length())
	}
}

func TestBSDF_CapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Adding beyond capacity should panic")
		}
	}()
	b := flatSurface()
	for i := 0; i <= MaxLobes; i++ {
		b.Add(bxdf.NewLambertianReflection(core.NewVec3(0.1, 0.1, 0.1)))
	}
}
