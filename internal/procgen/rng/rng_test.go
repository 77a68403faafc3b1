package rng

import (
	"math"
	"testing"
)

func TestStreamDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		av, bv := a.Float64(), b.Float64()
		if av != bv {
			t.Fatalf("draw %d diverged: %v vs %v", i, av, bv)
		}
		if av < 0 || av >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, av)
		}
	}
}

func TestStreamsAreIndependent(t *testing.T) {
	a := New(1)
	b := New(1)

	// Advancing one stream must not affect the other.
	for i := 0; i < 10; i++ {
		a.Float64()
	}
	fresh := New(1)
	if got, want := b.Float64(), fresh.Float64(); got != want {
		t.Errorf("stream b was perturbed: got %v, want %v", got, want)
	}
}

func TestIntBetween(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.IntBetween(3, 9)
		if v < 3 || v > 9 {
			t.Fatalf("IntBetween(3, 9) = %d", v)
		}
	}
	if v := s.IntBetween(5, 5); v != 5 {
		t.Errorf("degenerate range: got %d, want 5", v)
	}
	if v := s.IntBetween(5, 2); v != 5 {
		t.Errorf("inverted range: got %d, want 5", v)
	}
}

func TestGeometricRejectsInvalidP(t *testing.T) {
	s := New(1)
	for _, p := range []float64{0, -0.5, 1.1, math.NaN()} {
		if _, err := s.Geometric(p); err == nil {
			t.Errorf("Geometric(%v): expected error", p)
		}
	}
}

func TestGeometricCertainSuccess(t *testing.T) {
	s := New(1)
	for i := 0; i < 100; i++ {
		n, err := s.Geometric(1)
		if err != nil {
			t.Fatalf("Geometric(1): %v", err)
		}
		if n != 0 {
			t.Fatalf("Geometric(1) = %d, want 0", n)
		}
	}
}

func TestGeometricMean(t *testing.T) {
	s := New(99)
	const p = 0.5
	const samples = 20000

	sum := 0
	for i := 0; i < samples; i++ {
		n, err := s.Geometric(p)
		if err != nil {
			t.Fatalf("Geometric(%v): %v", p, err)
		}
		sum += n
	}

	mean := float64(sum) / samples
	want := (1 - p) / p
	if math.Abs(mean-want) > 0.05 {
		t.Errorf("geometric mean = %v, want ~%v", mean, want)
	}
}

func TestWeightedChoiceDistribution(t *testing.T) {
	s := New(123)
	weights := []float64{0.7, 0.2, 0.1}
	counts := make([]int, len(weights))

	const samples = 10000
	for i := 0; i < samples; i++ {
		idx, err := s.WeightedChoice(weights)
		if err != nil {
			t.Fatalf("WeightedChoice: %v", err)
		}
		counts[idx]++
	}

	for i, w := range weights {
		got := float64(counts[i]) / samples
		if math.Abs(got-w) > 0.02 {
			t.Errorf("weight %d: empirical fraction %v, want %v +-0.02", i, got, w)
		}
	}
}

func TestWeightedChoiceRejectsBadWeights(t *testing.T) {
	s := New(1)
	if _, err := s.WeightedChoice([]float64{0, 0, 0}); err == nil {
		t.Error("zero-sum weights: expected error")
	}
	if _, err := s.WeightedChoice([]float64{0.5, -0.1}); err == nil {
		t.Error("negative weight: expected error")
	}
}

func TestDeriveSeedIsFixed(t *testing.T) {
	if DeriveSeed(42, 0) != DeriveSeed(42, 0) {
		t.Error("DeriveSeed is not stable")
	}
	if DeriveSeed(42, 0) == DeriveSeed(42, 1) {
		t.Error("DeriveSeed collides for adjacent indices")
	}
	if DeriveSeed(42, 0) == DeriveSeed(43, 0) {
		t.Error("DeriveSeed collides for adjacent masters")
	}
}
