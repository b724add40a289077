package stats

import (
	"errors"
	"math"
	"testing"

	apperrors "kalshi-trader/internal/errors"
)

const tolerance = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestImpliedProbabilityToAmerican(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		want        float64
	}{
		{"underdog", 0.4, 150.0},
		{"favorite", 0.6, -150.0},
		{"long shot", 0.2, 400.0},
		{"heavy favorite", 0.8, -400.0},
		{"boundary takes favorite branch", 0.5, -100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(tt.probability)
			got, err := calc.ImpliedProbabilityToAmerican(tt.probability)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got, tt.want, tolerance) {
				t.Errorf("got %v, want %v", got, tt.want)
			}

			cached, err := calc.AmericanOdds()
			if err != nil {
				t.Fatalf("cached odds not available after conversion: %v", err)
			}
			if cached != got {
				t.Errorf("cached odds %v differ from returned %v", cached, got)
			}
		})
	}
}

func TestImpliedProbabilityToAmericanDegenerate(t *testing.T) {
	for _, probability := range []float64{0, 1} {
		calc := NewCalculator(probability)
		if _, err := calc.ImpliedProbabilityToAmerican(probability); !errors.Is(err, apperrors.ErrDomain) {
			t.Errorf("probability %v: want domain error, got %v", probability, err)
		}
	}
}

func TestAmericanToDecimal(t *testing.T) {
	calc := NewCalculator(0.5)

	got, err := calc.AmericanToDecimal(150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 2.5, tolerance) {
		t.Errorf("positive odds: got %v, want 2.5", got)
	}

	got, err = calc.AmericanToDecimal(-150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 1+100.0/150.0, tolerance) {
		t.Errorf("negative odds: got %v, want %v", got, 1+100.0/150.0)
	}

	if _, err := calc.AmericanToDecimal(0); !errors.Is(err, apperrors.ErrDomain) {
		t.Errorf("zero odds: want domain error, got %v", err)
	}
}

func TestExpectedValueEvenMoney(t *testing.T) {
	// A fair price has zero expected value: p=0.6 at -150 nets ~0.6667,
	// so EV = 0.6*0.6667 - 0.4 ~ 0.
	calc := NewCalculator(0.6)
	ev, err := calc.ExpectedValue(0.6, -150, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ev, 0, 1e-9) {
		t.Errorf("got EV %v, want ~0", ev)
	}

	cached, err := calc.LastExpectedValue()
	if err != nil {
		t.Fatalf("cached EV not available: %v", err)
	}
	if cached != ev {
		t.Errorf("cached EV %v differs from returned %v", cached, ev)
	}
}

func TestExpectedValueScalesWithStake(t *testing.T) {
	calc := NewCalculator(0.55)
	unit, err := calc.ExpectedValue(0.55, 120, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ten, err := calc.ExpectedValue(0.55, 120, 10.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ten, unit*10, tolerance) {
		t.Errorf("EV at stake 10 is %v, want %v", ten, unit*10)
	}
}

func TestKellyCriterion(t *testing.T) {
	// Fair price: Kelly fraction clamps to zero.
	calc := NewCalculator(0.6)
	if _, err := calc.ImpliedProbabilityToAmerican(0.6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	size, err := calc.KellyCriterion()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(size, 0, 1e-9) {
		t.Errorf("fair price: got %v, want 0", size)
	}

	cached, err := calc.OptimalBetSize()
	if err != nil {
		t.Fatalf("cached bet size not available: %v", err)
	}
	if cached != size {
		t.Errorf("cached size %v differs from returned %v", cached, size)
	}
}

func TestKellyCriterionBeforeConversion(t *testing.T) {
	calc := NewCalculator(0.6)
	if _, err := calc.KellyCriterion(); !errors.Is(err, apperrors.ErrUninitialized) {
		t.Errorf("want uninitialized error, got %v", err)
	}
}

func TestUncomputedAccessors(t *testing.T) {
	calc := NewCalculator(0.3)

	if _, err := calc.AmericanOdds(); !errors.Is(err, apperrors.ErrUninitialized) {
		t.Errorf("american odds: want uninitialized error, got %v", err)
	}
	if _, err := calc.LastExpectedValue(); !errors.Is(err, apperrors.ErrUninitialized) {
		t.Errorf("expected value: want uninitialized error, got %v", err)
	}
	if _, err := calc.OptimalBetSize(); !errors.Is(err, apperrors.ErrUninitialized) {
		t.Errorf("bet size: want uninitialized error, got %v", err)
	}
}
