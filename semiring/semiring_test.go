package semiring

import (
	"math"
	"testing"
)

func TestProbabilityRoundTrip(t *testing.T) {
	sr := Probability{}
	for _, p := range []float64{0, 0.25, 0.5, 1} {
		v := sr.FromProbability(p)
		if got := sr.ToProbability(v); math.Abs(got-p) > Tolerance {
			t.Errorf("round trip %v -> %v -> %v", p, v, got)
		}
	}
}

func TestLogProbabilityMatchesProbability(t *testing.T) {
	prob := Probability{}
	lg := LogProbability{}
	ps := []float64{0.1, 0.2, 0.7}
	var sumProb Value = prob.Zero()
	var sumLog Value = lg.Zero()
	for _, p := range ps {
		sumProb = prob.Plus(sumProb, prob.FromProbability(p))
		sumLog = lg.Plus(sumLog, lg.FromProbability(p))
	}
	got := lg.ToProbability(sumLog)
	if math.Abs(got-sumProb) > 1e-9 {
		t.Errorf("log semiring sum = %v, want %v", got, sumProb)
	}
}

func TestLogProbabilityTimesMatchesProduct(t *testing.T) {
	lg := LogProbability{}
	a := lg.FromProbability(0.5)
	b := lg.FromProbability(0.25)
	got := lg.ToProbability(lg.Times(a, b))
	if math.Abs(got-0.125) > 1e-9 {
		t.Errorf("0.5*0.25 via log semiring = %v, want 0.125", got)
	}
}

func TestMaxProbabilityPicksLarger(t *testing.T) {
	mp := MaxProbability{}
	got := mp.Plus(mp.FromProbability(0.3), mp.FromProbability(0.7))
	if got != 0.7 {
		t.Errorf("max(0.3,0.7) = %v, want 0.7", got)
	}
}

func TestBetterIgnoresNaN(t *testing.T) {
	for _, sr := range []Semiring{Probability{}, LogProbability{}, MaxProbability{}} {
		nan := math.NaN()
		if sr.Better(nan, sr.One()) {
			t.Errorf("%s: NaN reported as better than One()", sr.Name())
		}
		if sr.Better(sr.One(), nan) {
			// NaN as the "b" operand: comparisons involving NaN are always
			// false, so a value can also never be reported as "better than
			// NaN" under our contract (NaN never loses, it's simply inert).
			t.Errorf("%s: One() reported as better than NaN", sr.Name())
		}
	}
}

func TestZeroIsIdentityForPlus(t *testing.T) {
	for _, sr := range []Semiring{Probability{}, LogProbability{}, MaxProbability{}} {
		v := sr.FromProbability(0.42)
		if !sr.Approx(sr.Plus(v, sr.Zero()), v) {
			t.Errorf("%s: Zero() is not a Plus identity for %v", sr.Name(), v)
		}
	}
}

func TestOneIsIdentityForTimes(t *testing.T) {
	for _, sr := range []Semiring{Probability{}, LogProbability{}, MaxProbability{}} {
		v := sr.FromProbability(0.42)
		if !sr.Approx(sr.Times(v, sr.One()), v) {
			t.Errorf("%s: One() is not a Times identity for %v", sr.Name(), v)
		}
	}
}
