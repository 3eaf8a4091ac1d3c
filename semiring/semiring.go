/*
Package semiring provides the algebraic carrier (⊕, ⊗, 0̄, 1̄) that the
earley package's forward/inner/Viterbi score calculus is parameterized
over.

Three variants are provided, matching the ones discussed in the parsing
literature: a plain Probability semiring, a numerically stable
LogProbability semiring (carrier is -log p), and a MaxProbability semiring
used for Viterbi-style best-derivation scoring (⊕ = max rather than +).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The earleypcfg Authors
*/
package semiring

import "math"

// Value is the carrier type of a semiring. It is a plain float64: which
// real number space it lives in (a probability, a -log-probability, …)
// is determined entirely by which Semiring produced and interprets it.
// Values from different semirings must never be mixed.
type Value = float64

// Tolerance is the default epsilon used by Approx when comparing two
// Values for the purpose of detecting closure fixpoint convergence.
const Tolerance = 1e-12

// Semiring bundles the operations needed by grammar closures and by the
// earley package's score calculus.
type Semiring interface {
	// Name identifies the semiring, used in trace output and error messages.
	Name() string

	// Plus is ⊕, the "sum over alternatives" operator.
	Plus(a, b Value) Value

	// Times is ⊗, the "combine a sequence" operator.
	Times(a, b Value) Value

	// Zero is 0̄, the identity for Plus and the annihilator for Times.
	Zero() Value

	// One is 1̄, the identity for Times.
	One() Value

	// FromProbability converts an ordinary probability p ∈ [0,1] into this
	// semiring's carrier.
	FromProbability(p float64) Value

	// ToProbability converts a carrier value back into an ordinary
	// probability p ∈ [0,1].
	ToProbability(v Value) float64

	// Better reports whether a is a strictly preferable derivation score
	// than b (e.g. "a has higher probability than b"). Used by Viterbi
	// score comparison and by conditional score updates.
	//
	// Better must return false whenever a or b is NaN, so that a NaN
	// candidate (e.g. arising from a NaN scan-probability hook, see
	// earley.WithScanProbability) is never considered an improvement.
	Better(a, b Value) bool

	// Approx reports whether a and b are close enough to be considered
	// equal for the purpose of detecting a closure fixpoint.
	Approx(a, b Value) bool
}

// --- Probability semiring ---------------------------------------------

// Probability is the ordinary probability semiring: ⊕ = +, ⊗ = ×,
// 0̄ = 0, 1̄ = 1.
type Probability struct{}

var _ Semiring = Probability{}

func (Probability) Name() string { return "probability" }

func (Probability) Plus(a, b Value) Value  { return a + b }
func (Probability) Times(a, b Value) Value { return a * b }
func (Probability) Zero() Value            { return 0 }
func (Probability) One() Value             { return 1 }

func (Probability) FromProbability(p float64) Value { return p }
func (Probability) ToProbability(v Value) float64    { return v }

func (Probability) Better(a, b Value) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a > b
}

func (Probability) Approx(a, b Value) bool {
	return math.Abs(a-b) < Tolerance
}

// --- Log-probability semiring -------------------------------------------

// LogProbability represents probabilities in carrier = -log(p) space.
// ⊕ is log-sum-exp, ⊗ is +, 0̄ = +Inf (i.e. p = 0), 1̄ = 0 (i.e. p = 1).
// Smaller carrier values denote higher probability.
type LogProbability struct{}

var _ Semiring = LogProbability{}

func (LogProbability) Name() string { return "log-probability" }

// Plus computes -log(exp(-a) + exp(-b)) without overflow, preferring the
// lower-magnitude operand as the pivot of the log1p trick.
func (LogProbability) Plus(a, b Value) Value {
	if math.IsInf(a, 1) {
		return b
	}
	if math.IsInf(b, 1) {
		return a
	}
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo - math.Log1p(math.Exp(lo-hi))
}

func (LogProbability) Times(a, b Value) Value { return a + b }
func (LogProbability) Zero() Value            { return math.Inf(1) }
func (LogProbability) One() Value             { return 0 }

func (LogProbability) FromProbability(p float64) Value {
	if p <= 0 {
		return math.Inf(1)
	}
	return -math.Log(p)
}

func (LogProbability) ToProbability(v Value) float64 {
	return math.Exp(-v)
}

func (LogProbability) Better(a, b Value) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a < b
}

func (LogProbability) Approx(a, b Value) bool {
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	return math.Abs(a-b) < Tolerance
}

// --- Viterbi (max-probability) semiring ----------------------------------

// MaxProbability is the "Viterbi" semiring: ⊕ = max, ⊗ = ×, 0̄ = 0, 1̄ = 1.
// It is useful when a caller only ever wants the single best-derivation
// score rather than the total probability mass.
type MaxProbability struct{}

var _ Semiring = MaxProbability{}

func (MaxProbability) Name() string { return "max-probability" }

func (MaxProbability) Plus(a, b Value) Value  { return math.Max(a, b) }
func (MaxProbability) Times(a, b Value) Value { return a * b }
func (MaxProbability) Zero() Value            { return 0 }
func (MaxProbability) One() Value             { return 1 }

func (MaxProbability) FromProbability(p float64) Value { return p }
func (MaxProbability) ToProbability(v Value) float64    { return v }

func (MaxProbability) Better(a, b Value) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return a > b
}

func (MaxProbability) Approx(a, b Value) bool {
	return math.Abs(a-b) < Tolerance
}
