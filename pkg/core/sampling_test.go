package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleCosineHemisphere_Distribution(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	const n = 100000
	sumZ := 0.0
	for i := 0; i < n; i++ {
		d := SampleCosineHemisphere(sampler.Get2D())
		if d.Z < 0 {
			t.Fatalf("Cosine hemisphere sample below horizon: %v", d)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Sample should be unit length, got %f", d.Length())
		}
		sumZ += d.Z
	}

	// E[cos θ] = 2/3 for cosine-weighted hemisphere sampling
	meanZ := sumZ / n
	if math.Abs(meanZ-2.0/3.0) > 0.01 {
		t.Errorf("Mean cosine should be ~0.667, got %f", meanZ)
	}
}

func TestSampleUniformHemisphere_Distribution(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))

	const n = 100000
	sumZ := 0.0
	for i := 0; i < n; i++ {
		d := SampleUniformHemisphere(sampler.Get2D())
		if d.Z < 0 {
			t.Fatalf("Uniform hemisphere sample below horizon: %v", d)
		}
		sumZ += d.Z
	}

	// E[cos θ] = 1/2 for uniform hemisphere sampling
	meanZ := sumZ / n
	if math.Abs(meanZ-0.5) > 0.01 {
		t.Errorf("Mean cosine should be ~0.5, got %f", meanZ)
	}
}

func TestSampleUniformSphere_Coverage(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(123)))

	const n = 10000
	above, below := 0, 0
	for i := 0; i < n; i++ {
		d := SampleUniformSphere(sampler.Get2D())
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Sample should be unit length, got %f", d.Length())
		}
		if d.Z > 0 {
			above++
		} else {
			below++
		}
	}

	// Both hemispheres should be roughly equally covered
	ratio := float64(above) / float64(n)
	if ratio < 0.45 || ratio > 0.55 {
		t.Errorf("Expected ~50%% of sphere samples above horizon, got %.1f%%", ratio*100)
	}
}

func TestSampleConcentricDisk_InDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(99)))

	for i := 0; i < 10000; i++ {
		p := SampleConcentricDisk(sampler.Get2D())
		if p.X*p.X+p.Y*p.Y > 1+1e-12 {
			t.Fatalf("Sample outside unit disk: %v", p)
		}
	}

	// Degenerate center sample maps to the origin
	center := SampleConcentricDisk(NewVec2(0.5, 0.5))
	if center.X != 0 || center.Y != 0 {
		t.Errorf("Center sample should map to origin, got %v", center)
	}
}
