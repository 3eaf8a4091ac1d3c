package grammar

import (
	"fmt"

	"github.com/halprin/earleypcfg/semiring"
)

// stepBuilder computes the one-step relation matrix for a closure: given
// the grammar, it returns L where L[i][j] is the semiring sum of every
// rule's probability that contributes a direct X->Y step, X = non-terminal
// at index i, Y = non-terminal at index j.
type stepBuilder func(g *Grammar) [][]semiring.Value

// leftCornerStep builds the one-step left-corner relation: L[X][Y] is the
// semiring sum of Prob(r) over every rule r: X -> Y ... (Y is the
// left-most RHS symbol of a rule headed by X, and Y is a non-terminal).
func leftCornerStep(g *Grammar) [][]semiring.Value {
	sr := g.semiring
	n := len(g.nonterminals)
	l := newZeroMatrix(sr, n)
	for _, r := range g.allRules {
		first := r.RHS[0]
		if first.IsTerminal() {
			continue
		}
		i, iok := g.ntIndex[r.LHS.name]
		j, jok := g.ntIndex[first.name]
		if !iok || !jok {
			continue
		}
		l[i][j] = sr.Plus(l[i][j], r.SemProb)
	}
	return l
}

// unitProductionStep builds the one-step unit-production relation:
// L[X][Y] is the semiring sum of Prob(r) over every unit rule r: X -> Y.
func unitProductionStep(g *Grammar) [][]semiring.Value {
	sr := g.semiring
	n := len(g.nonterminals)
	l := newZeroMatrix(sr, n)
	for _, r := range g.allRules {
		if !r.IsUnitProduction() {
			continue
		}
		i, iok := g.ntIndex[r.LHS.name]
		j, jok := g.ntIndex[r.RHS[0].name]
		if !iok || !jok {
			continue
		}
		l[i][j] = sr.Plus(l[i][j], r.SemProb)
	}
	return l
}

func newZeroMatrix(sr semiring.Semiring, n int) [][]semiring.Value {
	m := make([][]semiring.Value, n)
	for i := range m {
		row := make([]semiring.Value, n)
		for j := range row {
			row[j] = sr.Zero()
		}
		m[i] = row
	}
	return m
}

func identityMatrix(sr semiring.Semiring, n int) [][]semiring.Value {
	m := newZeroMatrix(sr, n)
	for i := 0; i < n; i++ {
		m[i][i] = sr.One()
	}
	return m
}

// closure computes the reflexive-transitive closure R* = I ⊕ L ⊕ L² ⊕ ...
// of the one-step relation L built by step, via bounded fixpoint
// iteration: R_0 = I, R_{k+1} = I ⊕ (L ⊗ R_k), until two successive
// iterates agree within the semiring's tolerance (Approx) or an iteration
// budget is exhausted.
//
// This is the practical substitute for literal Gauss-Jordan elimination:
// only the Probability semiring's ⊕ has a well-behaved subtractive
// inverse, so a single matrix-inversion step cannot be expressed uniformly
// across Probability, LogProbability and MaxProbability. Fixpoint
// iteration computes the identical quantity (the semiring sum over all
// finite step-chains) and is what detects non-convergent grammars: a
// sub-stochastic cycle converges within the iteration budget, a
// non-sub-stochastic one does not.
//
// The iteration count needed to converge is geometric in the cycle's ⊗
// gain, not linear in n: a cycle with gain 0.5 (e.g. spec's own A -> A
// [0.5] example) needs on the order of 40 iterations to bring the
// consecutive-iterate difference under semiring.Tolerance (1e-12), since
// the error shrinks by a factor of 0.5 per sweep. A budget tied to n alone
// undershoots this badly for small grammars, so the budget here is a
// generous constant (comfortably covering cycle gains well above 0.5)
// plus a small per-non-terminal term for larger grammars' matrix growth.
func closure(g *Grammar, step stepBuilder) ([][]semiring.Value, error) {
	sr := g.semiring
	n := len(g.nonterminals)
	if n == 0 {
		return nil, nil
	}

	l := step(g)
	r := identityMatrix(sr, n)

	const minIterations = 8192
	maxIter := minIterations + 64*n
	for iter := 0; iter < maxIter; iter++ {
		next := identityMatrix(sr, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				acc := next[i][j]
				for k := 0; k < n; k++ {
					if l[i][k] == sr.Zero() {
						continue
					}
					acc = sr.Plus(acc, sr.Times(l[i][k], r[k][j]))
				}
				next[i][j] = acc
			}
		}

		if matricesApprox(sr, r, next) {
			return next, nil
		}
		r = next
	}

	return nil, &NotConvergentError{
		Semiring: sr.Name(),
		Detail:   fmt.Sprintf("closure did not converge within %d iterations over %d non-terminals", maxIter, n),
	}
}

func matricesApprox(sr semiring.Semiring, a, b [][]semiring.Value) bool {
	for i := range a {
		for j := range a[i] {
			if !sr.Approx(a[i][j], b[i][j]) {
				return false
			}
		}
	}
	return true
}
