package grammar

import (
	"math"
	"testing"

	"github.com/halprin/earleypcfg/semiring"
)

// TestClosureSatisfiesFixpointIdentity checks R_L* = I ⊕ (L ⊗ R_L*) for a
// small grammar with genuine left-corner chains of depth > 1.
func TestClosureSatisfiesFixpointIdentity(t *testing.T) {
	sr := semiring.Probability{}
	b := NewBuilder(sr)
	s := b.NonTerminal("S")
	np := b.NonTerminal("NP")
	det := b.NonTerminal("Det")
	theTok := b.Terminal("the", Literal("the"))
	b.AddRule(s, 1.0, np)
	b.AddRule(np, 1.0, det)
	b.AddRule(det, 1.0, theTok)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	l := leftCornerStep(g)
	r := g.leftStar
	n := len(g.nonterminals)

	next := identityMatrix(sr, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc := next[i][j]
			for k := 0; k < n; k++ {
				acc = sr.Plus(acc, sr.Times(l[i][k], r[k][j]))
			}
			next[i][j] = acc
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(next[i][j]-r[i][j]) > 1e-9 {
				t.Fatalf("fixpoint identity violated at [%d][%d]: I+L*R=%v, R*=%v", i, j, next[i][j], r[i][j])
			}
		}
	}
}

func TestClosureEmptyGrammarIsNilMatrix(t *testing.T) {
	g := &Grammar{semiring: semiring.Probability{}}
	got, err := closure(g, leftCornerStep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected a nil matrix for zero non-terminals")
	}
}
