package bxdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-shading/pkg/core"
)

func TestSpecularReflection_MirrorDirection(t *testing.T) {
	mirror := NewSpecularReflection(core.NewVec3(0.9, 0.9, 0.9), NoOpFresnel{})

	tests := []struct {
		name string
		wo   core.Vec3
	}{
		{"45 degrees", core.NewVec3(0, 0.7071067811865476, 0.7071067811865476)},
		{"Normal incidence", core.NewVec3(0, 0, 1)},
		{"Steep", core.NewVec3(0.1, 0.2, 0.97).Normalize()},
		{"Below surface", core.NewVec3(0.3, 0, -0.95).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := mirror.Sample(tt.wo, core.NewVec2(0.3, 0.7))
			if !ok {
				t.Fatal("Mirror sampling should always succeed off grazing")
			}
			expected := core.NewVec3(-tt.wo.X, -tt.wo.Y, tt.wo.Z)
			if s.Wi.Subtract(expected).Length() > 1e-12 {
				t.Errorf("Expected mirror direction %v, got %v", expected, s.Wi)
			}
			if s.PDF != 1 {
				t.Errorf("Delta sample PDF should be 1, got %f", s.PDF)
			}
			expectedValue := 0.9 / AbsCosTheta(s.Wi)
			if math.Abs(s.F.X-expectedValue) > 1e-12 {
				t.Errorf("Expected value %f, got %f", expectedValue, s.F.X)
			}
			if !s.Sampled.IsSpecular() {
				t.Error("Sample should be flagged specular")
			}
		})
	}
}

func TestSpecularReflection_EvaluateAndPDFAreZero(t *testing.T) {
	// A delta lobe can only be reached through its own Sample call; any
	// direct query returns zero, including at the exact mirror direction
	mirror := NewSpecularReflection(core.NewVec3(0.9, 0.9, 0.9), NoOpFresnel{})
	wo := core.NewVec3(0, 0.6, 0.8)
	wi := core.NewVec3(0, -0.6, 0.8)

	if f := mirror.Evaluate(wo, wi); !f.IsBlack() {
		t.Errorf("Evaluate on a delta lobe should be zero, got %v", f)
	}
	if pdf := mirror.PDF(wo, wi); pdf != 0 {
		t.Errorf("PDF on a delta lobe should be zero, got %f", pdf)
	}
}

func TestSpecularTransmission_NormalIncidence(t *testing.T) {
	glass := NewSpecularTransmission(core.NewVec3(1, 1, 1), 1, 1.5, Radiance)

	s, ok := glass.Sample(core.NewVec3(0, 0, 1), core.NewVec2(0.5, 0.5))
	if !ok {
		t.Fatal("Transmission at normal incidence should never hit TIR")
	}
	if s.Wi.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Normal-incidence transmission should continue straight, got %v", s.Wi)
	}

	// Value = (1-F)·(1/η²)/|cosθ| with F ≈ 0.04 at normal incidence
	expected := (1 - 0.04) * (1.0 / (1.5 * 1.5))
	if math.Abs(s.F.X-expected) > 1e-6 {
		t.Errorf("Expected transmitted value %f, got %f", expected, s.F.X)
	}
}

func TestSpecularTransmission_TIRFails(t *testing.T) {
	glass := NewSpecularTransmission(core.NewVec3(1, 1, 1), 1, 1.5, Radiance)

	// Grazing exit from inside the dense medium
	wo := core.NewVec3(0.9, 0, -0.436).Normalize()
	if _, ok := glass.Sample(wo, core.NewVec2(0.5, 0.5)); ok {
		t.Error("Expected sampling failure under total internal reflection")
	}
}

func TestSpecularTransmission_ImportanceModeOmitsEtaScale(t *testing.T) {
	radiance := NewSpecularTransmission(core.NewVec3(1, 1, 1), 1, 1.5, Radiance)
	importance := NewSpecularTransmission(core.NewVec3(1, 1, 1), 1, 1.5, Importance)

	wo := core.NewVec3(0, 0, 1)
	sr, _ := radiance.Sample(wo, core.NewVec2(0.5, 0.5))
	si, _ := importance.Sample(wo, core.NewVec2(0.5, 0.5))

	// The radiance-compression factor is 1/η² entering the dense medium
	ratio := sr.F.X / si.F.X
	if math.Abs(ratio-1/(1.5*1.5)) > 1e-9 {
		t.Errorf("Radiance/importance ratio should be 1/η², got %f", ratio)
	}
}

func TestFresnelSpecular_ReflectTransmitSplit(t *testing.T) {
	glass := NewFresnelSpecular(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1, 1.5, Radiance)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	wo := core.NewVec3(0, 0, 1)

	const n = 50000
	reflected, transmitted := 0, 0
	for i := 0; i < n; i++ {
		s, ok := glass.Sample(wo, sampler.Get2D())
		if !ok {
			t.Fatal("Smooth glass at normal incidence should always sample")
		}
		if s.Sampled.HasTransmission() {
			transmitted++
		} else {
			reflected++
		}
	}

	// Fresnel reflectance at normal incidence for η=1.5 is 0.04
	reflectFraction := float64(reflected) / n
	if math.Abs(reflectFraction-0.04) > 0.005 {
		t.Errorf("Expected ~4%% reflection at normal incidence, got %.2f%%", reflectFraction*100)
	}
}

func TestFresnelSpecular_WeightsCancelSelectionProbability(t *testing.T) {
	// F/pdf and (1-F)/pdf both collapse to 1, so the estimator weight is
	// the same on either branch (up to the η² transport factor)
	glass := NewFresnelSpecular(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1, 1.5, Importance)
	wo := core.NewVec3(0, 0.5, 0.866).Normalize()

	reflectSample, ok := glass.Sample(wo, core.NewVec2(0.0, 0.5))
	if !ok || !reflectSample.Sampled.HasReflection() {
		t.Fatal("u.X=0 should pick the reflection branch")
	}
	transmitSample, ok := glass.Sample(wo, core.NewVec2(0.99, 0.5))
	if !ok || !transmitSample.Sampled.HasTransmission() {
		t.Fatal("u.X=0.99 should pick the transmission branch")
	}

	wr := reflectSample.F.X * AbsCosTheta(reflectSample.Wi) / reflectSample.PDF
	wt := transmitSample.F.X * AbsCosTheta(transmitSample.Wi) / transmitSample.PDF
	if math.Abs(wr-1) > 1e-9 || math.Abs(wt-1) > 1e-9 {
		t.Errorf("Estimator weights should be 1 on both branches, got %f and %f", wr, wt)
	}
}

func TestFresnelSpecular_TIRAlwaysReflects(t *testing.T) {
	glass := NewFresnelSpecular(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1, 1.5, Radiance)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Beyond the critical angle from inside, F=1 forces the mirror branch
	wo := core.NewVec3(0.9, 0, -0.436).Normalize()
	for i := 0; i < 1000; i++ {
		s, ok := glass.Sample(wo, sampler.Get2D())
		if !ok {
			t.Fatal("TIR should reflect, not fail, for the combined lobe")
		}
		if !s.Sampled.HasReflection() || s.Sampled.HasTransmission() {
			t.Fatalf("TIR sample should be pure reflection, got type %v", s.Sampled)
		}
	}
}
