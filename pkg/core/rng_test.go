package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(1234)
	b := NewRNG(1234)
	for i := 0; i < 100; i++ {
		if a.Float32() != b.Float32() {
			t.Fatalf("Float32 diverged at draw %d", i)
		}
		if a.IntN(97) != b.IntN(97) {
			t.Fatalf("IntN diverged at draw %d", i)
		}
	}
}

func TestUint16NZero(t *testing.T) {
	r := NewRNG(1)
	if v := r.Uint16N(0); v != 0 {
		t.Fatalf("Uint16N(0) = %d, want 0", v)
	}
	for i := 0; i < 50; i++ {
		if v := r.Uint16N(5); v >= 5 {
			t.Fatalf("Uint16N(5) = %d, out of range", v)
		}
	}
}

func TestRatioEdges(t *testing.T) {
	r := NewRNG(42)
	if r.Ratio(1, 0) {
		t.Fatal("a zero denominator must never fire")
	}
	if !r.Ratio(5, 5) {
		t.Fatal("num >= den must always fire")
	}
	if !r.Ratio(7, 3) {
		t.Fatal("num > den must always fire")
	}
	for i := 0; i < 50; i++ {
		if r.Ratio(0, 10) {
			t.Fatal("a zero numerator must never fire")
		}
	}
}
