package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestFrame_Orthonormal(t *testing.T) {
	tests := []struct {
		name   string
		normal Vec3
	}{
		{"Z up", NewVec3(0, 0, 1)},
		{"X axis", NewVec3(1, 0, 0)},
		{"Tilted", NewVec3(1, 2, 3).Normalize()},
		{"Near X", NewVec3(0.99, 0.1, 0.1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(tt.normal)
			tolerance := 1e-12
			if math.Abs(f.U.Length()-1) > tolerance || math.Abs(f.V.Length()-1) > tolerance {
				t.Errorf("Basis vectors should be unit length: |U|=%f |V|=%f", f.U.Length(), f.V.Length())
			}
			if math.Abs(f.U.Dot(f.V)) > tolerance || math.Abs(f.U.Dot(f.W)) > tolerance || math.Abs(f.V.Dot(f.W)) > tolerance {
				t.Errorf("Basis vectors should be mutually orthogonal")
			}
			if !f.W.Equals(tt.normal) {
				t.Errorf("W should be the normal: expected %v, got %v", tt.normal, f.W)
			}
		})
	}
}

func TestFrame_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	f := NewFrame(NewVec3(1, 2, 3).Normalize())

	for i := 0; i < 100; i++ {
		d := NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Normalize()
		back := f.ToWorld(f.ToLocal(d))
		if back.Subtract(d).Length() > 1e-12 {
			t.Fatalf("Round trip failed for %v: got %v", d, back)
		}
	}
}

func TestFrame_NormalMapsToZ(t *testing.T) {
	n := NewVec3(0.3, -0.5, 0.8).Normalize()
	f := NewFrame(n)
	local := f.ToLocal(n)
	if local.Subtract(NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Normal should map to local +z, got %v", local)
	}
}
