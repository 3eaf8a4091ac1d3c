package grammar_test

import (
	"math"
	"testing"

	"github.com/halprin/earleypcfg/grammar"
	"github.com/halprin/earleypcfg/semiring"
)

func buildSimpleNP(t *testing.T) (*grammar.Grammar, *grammar.Category, *grammar.Category, *grammar.Category) {
	t.Helper()
	b := grammar.NewBuilder(semiring.Probability{})
	np := b.NonTerminal("NP")
	det := b.NonTerminal("Det")
	n := b.NonTerminal("N")
	theTok := b.Terminal("the", grammar.Literal("the"))
	dogTok := b.Terminal("dog", grammar.Literal("dog"))
	b.AddRule(np, 1.0, det, n)
	b.AddRule(det, 1.0, theTok)
	b.AddRule(n, 1.0, dogTok)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g, np, det, n
}

func TestNonTerminalInterning(t *testing.T) {
	b := grammar.NewBuilder(semiring.Probability{})
	a1 := b.NonTerminal("A")
	a2 := b.NonTerminal("A")
	if a1 != a2 {
		t.Fatalf("expected interned non-terminals to share a pointer")
	}
}

func TestRulesFor(t *testing.T) {
	g, np, det, _ := buildSimpleNP(t)
	rules := g.RulesFor(np)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule for NP, got %d", len(rules))
	}
	if rules[0].RHS[0] != det {
		t.Fatalf("expected rule RHS[0] to be Det")
	}
}

func TestLeftStarReflexive(t *testing.T) {
	g, np, _, _ := buildSimpleNP(t)
	if g.LeftStarScore(np, np) < 1.0-1e-9 {
		t.Fatalf("expected R_L*(NP,NP) >= 1, got %v", g.LeftStarScore(np, np))
	}
}

func TestLeftStarReachesLeftCorner(t *testing.T) {
	g, np, det, _ := buildSimpleNP(t)
	score := g.LeftStarScore(np, det)
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("expected R_L*(NP,Det) = 1, got %v", score)
	}
}

func TestUnitStarNoUnitProductions(t *testing.T) {
	g, np, det, n := buildSimpleNP(t)
	// NP -> Det N is not a unit production (RHS length 2), so the only
	// nonzero unit-star entries are the reflexive ones.
	if math.Abs(g.UnitStarScore(np, np)-1.0) > 1e-9 {
		t.Fatalf("expected reflexive unit-star score of 1")
	}
	if g.UnitStarScore(np, det) != 0 {
		t.Fatalf("expected zero unit-star score between non-unit-linked categories")
	}
	_ = n
}

func TestIllegalGrammarNilRHSElement(t *testing.T) {
	b := grammar.NewBuilder(semiring.Probability{})
	s := b.NonTerminal("S")
	_, err := b.AddRule(s, 1.0, nil).Build()
	if err == nil {
		t.Fatalf("expected an error for a nil RHS element")
	}
	if _, ok := err.(*grammar.IllegalGrammarError); !ok {
		t.Fatalf("expected *IllegalGrammarError, got %T", err)
	}
}

func TestIllegalGrammarEmptyRHS(t *testing.T) {
	b := grammar.NewBuilder(semiring.Probability{})
	s := b.NonTerminal("S")
	_, err := b.AddRule(s, 1.0).Build()
	if err == nil {
		t.Fatalf("expected an error for an empty RHS")
	}
}

func TestUnitProductionConvergentCycle(t *testing.T) {
	// A -> B [0.5], B -> A [0.5]: a sub-stochastic cycle, must converge.
	b := grammar.NewBuilder(semiring.Probability{})
	a := b.NonTerminal("A")
	c := b.NonTerminal("B")
	leaf := b.Terminal("x", grammar.Literal("x"))
	b.AddRule(a, 0.5, c)
	b.AddRule(c, 0.5, a)
	b.AddRule(a, 0.5, leaf)
	b.AddRule(c, 0.5, leaf)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("expected convergence, got error: %v", err)
	}
	// R_U*(A,A) = 1 + 0.5*0.5 + 0.5^2*0.5^2 + ... = 1 / (1 - 0.25) = 4/3
	got := g.UnitStarScore(a, a)
	want := 1.0 / (1.0 - 0.25)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("R_U*(A,A) = %v, want %v", got, want)
	}
}

func TestUnitProductionDivergentCycle(t *testing.T) {
	// A -> B [1.0], B -> A [1.0]: a non-sub-stochastic cycle, must not converge.
	b := grammar.NewBuilder(semiring.Probability{})
	a := b.NonTerminal("A")
	c := b.NonTerminal("B")
	leaf := b.Terminal("x", grammar.Literal("x"))
	b.AddRule(a, 1.0, c)
	b.AddRule(c, 1.0, a)
	b.AddRule(a, 0.0, leaf) // keeps the terminal "leaf" in use; its 0.0 probability adds nothing to the cycle
	_, err := b.Build()
	if err == nil {
		t.Fatalf("expected a NotConvergentError")
	}
	if _, ok := err.(*grammar.NotConvergentError); !ok {
		t.Fatalf("expected *NotConvergentError, got %T", err)
	}
}

func TestUnitStarSourcesIncludesSelf(t *testing.T) {
	g, np, _, _ := buildSimpleNP(t)
	sources := g.UnitStarSources(np)
	found := false
	for _, s := range sources {
		if s == np {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnitStarSources(NP) to include NP itself")
	}
}
