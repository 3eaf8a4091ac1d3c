package earley_test

import (
	"math"
	"testing"

	"github.com/halprin/earleypcfg/earley"
	"github.com/halprin/earleypcfg/grammar"
	"github.com/halprin/earleypcfg/input"
	"github.com/halprin/earleypcfg/semiring"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// buildHeSawHerDuck builds the ambiguous grammar from E1/E6.
func buildHeSawHerDuck(t *testing.T) (*grammar.Grammar, *grammar.Category, *grammar.Category, *grammar.Category) {
	t.Helper()
	b := grammar.NewBuilder(semiring.Probability{})

	s := b.NonTerminal("S")
	np := b.NonTerminal("NP")
	vp := b.NonTerminal("VP")
	vt := b.NonTerminal("VT")
	vs := b.NonTerminal("VS")
	vi := b.NonTerminal("VI")
	n := b.NonTerminal("N")
	det := b.NonTerminal("Det")

	he := b.Terminal("he", grammar.Literal("he"))
	her1 := b.Terminal("her", grammar.Literal("her"))
	her2 := b.Terminal("her", grammar.Literal("her"))
	saw1 := b.Terminal("saw", grammar.Literal("saw"))
	saw2 := b.Terminal("saw", grammar.Literal("saw"))
	duck1 := b.Terminal("duck", grammar.Literal("duck"))
	duck2 := b.Terminal("duck", grammar.Literal("duck"))

	b.AddRule(s, 1.0, np, vp)
	b.AddRule(np, 0.5, he)
	b.AddRule(np, 0.25, her1)
	b.AddRule(np, 0.25, det, n)
	b.AddRule(vp, 0.5, vt, np)
	b.AddRule(vp, 0.25, vs, s)
	b.AddRule(vp, 0.25, vi)
	b.AddRule(vt, 1.0, saw1)
	b.AddRule(vs, 1.0, saw2)
	b.AddRule(vi, 1.0, duck1)
	b.AddRule(n, 1.0, duck2)
	b.AddRule(det, 1.0, her2)

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g, s, vp, vi
}

func TestE1AmbiguousHeSawHerDuck(t *testing.T) {
	g, s, _, _ := buildHeSawHerDuck(t)
	p := earley.NewParser(g)
	tokens := input.NewWordTokens("he saw her duck")

	ok, err := p.Recognize(s, tokens)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if !ok {
		t.Fatalf("expected recognize = true")
	}

	trees, err := p.GetParses(s, tokens)
	if err != nil {
		t.Fatalf("GetParses: %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("expected exactly 2 parse trees, got %d", len(trees))
	}

	tree, score, err := p.GetViterbiParse(s, tokens)
	if err != nil {
		t.Fatalf("GetViterbiParse: %v", err)
	}
	if !approx(score, 0.0625) {
		t.Fatalf("expected Viterbi score 0.0625, got %v", score)
	}
	// Viterbi reading is VP -> VT NP: S -> NP VP, VP -> VT NP (Det N).
	if len(tree.Children) != 2 {
		t.Fatalf("expected S to have 2 children, got %d", len(tree.Children))
	}
	vpNode := tree.Children[1]
	if vpNode.Category.Name() != "VP" {
		t.Fatalf("expected second child to be VP, got %s", vpNode.Category.Name())
	}
	if len(vpNode.Children) != 2 || vpNode.Children[0].Category.Name() != "VT" {
		t.Fatalf("expected Viterbi VP reading to be VT NP, got %+v", vpNode.Children)
	}
}

func TestE6SubTreeAmbiguity(t *testing.T) {
	g, s, vp, vi := buildHeSawHerDuck(t)
	p := earley.NewParser(g)
	tokens := input.NewWordTokens("he saw her duck")

	// Drive the chart once via Recognize; GetSubTrees re-parses internally,
	// which is fine since the grammar and tokens are deterministic.
	if _, err := p.Recognize(s, tokens); err != nil {
		t.Fatalf("Recognize: %v", err)
	}

	vpTrees, err := p.GetSubTrees(s, tokens, vp, 1, 4)
	if err != nil {
		t.Fatalf("GetSubTrees(VP): %v", err)
	}
	if len(vpTrees) != 2 {
		t.Fatalf("expected 2 VP subtrees over [1,4], got %d", len(vpTrees))
	}

	viTrees, err := p.GetSubTrees(s, tokens, vi, 3, 4)
	if err != nil {
		t.Fatalf("GetSubTrees(VI): %v", err)
	}
	if len(viTrees) != 1 {
		t.Fatalf("expected 1 VI subtree over [3,4], got %d", len(viTrees))
	}
}

// buildUnitCycle builds the A -> A | a, a -> "x" grammar from E2/E3, with
// the A -> A probability as given so both the convergent and divergent
// cases can share this helper.
func buildUnitCycle(t *testing.T, aToA float64) (*grammar.Grammar, *grammar.Category, error) {
	t.Helper()
	b := grammar.NewBuilder(semiring.Probability{})
	a := b.NonTerminal("A")
	lower := b.NonTerminal("a")
	x := b.Terminal("x", grammar.Literal("x"))

	b.AddRule(a, aToA, a)
	b.AddRule(a, 1.0-aToA, lower)
	b.AddRule(lower, 1.0, x)

	g, err := b.Build()
	return g, a, err
}

func TestE2ConvergentUnitCycle(t *testing.T) {
	g, a, err := buildUnitCycle(t, 0.5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := earley.NewParser(g)
	tokens := input.NewWordTokens("x")

	prob, err := p.GetProbability(a, tokens)
	if err != nil {
		t.Fatalf("GetProbability: %v", err)
	}
	if !approx(prob, 1.0) {
		t.Fatalf("expected getProbability(A, [x]) = 1.0, got %v", prob)
	}

	_, score, err := p.GetViterbiParse(a, tokens)
	if err != nil {
		t.Fatalf("GetViterbiParse: %v", err)
	}
	if !approx(score, 0.5) {
		t.Fatalf("expected Viterbi score 0.5, got %v", score)
	}
}

func TestE3DivergentUnitCycle(t *testing.T) {
	_, _, err := buildUnitCycle(t, 1.0)
	if err == nil {
		t.Fatalf("expected Build to fail for a divergent unit cycle")
	}
	if _, ok := err.(*grammar.NotConvergentError); !ok {
		t.Fatalf("expected *grammar.NotConvergentError, got %T: %v", err, err)
	}
}

func TestE4EmptyDerivation(t *testing.T) {
	b := grammar.NewBuilder(semiring.Probability{})
	s := b.NonTerminal("S")
	b.AddRule(s, 1.0, grammar.Epsilon)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p := earley.NewParser(g)
	ok, err := p.Recognize(s, input.Tokens{})
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if !ok {
		t.Fatalf("expected recognize = true for the empty derivation")
	}

	score, err := p.GetParseScore(s, input.Tokens{})
	if err != nil {
		t.Fatalf("GetParseScore: %v", err)
	}
	if !approx(score, 1.0) {
		t.Fatalf("expected score 1, got %v", score)
	}
}

func TestE5UnexpectedToken(t *testing.T) {
	b := grammar.NewBuilder(semiring.Probability{})
	s := b.NonTerminal("S")
	aTok := b.Terminal("a", grammar.Literal("a"))
	b.AddRule(s, 1.0, aTok)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p := earley.NewParser(g)
	tokens := input.Tokens{input.StringToken("b")}
	ok, err := p.Recognize(s, tokens)
	if ok {
		t.Fatalf("expected recognize = false")
	}
	unexpected, isUnexpected := err.(*earley.UnexpectedTokenError)
	if !isUnexpected {
		t.Fatalf("expected *earley.UnexpectedTokenError, got %T: %v", err, err)
	}
	if unexpected.Position != 0 {
		t.Fatalf("expected position 0, got %d", unexpected.Position)
	}
	if unexpected.Token.Lexeme() != "b" {
		t.Fatalf("expected offending token %q, got %q", "b", unexpected.Token.Lexeme())
	}
	found := false
	for _, c := range unexpected.Expected {
		if c.Name() == "a" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q among the expected categories, got %v", "a", unexpected.Expected)
	}
}

func TestRoundTripIsDeterministic(t *testing.T) {
	g, s, _, _ := buildHeSawHerDuck(t)
	p := earley.NewParser(g)
	tokens := input.NewWordTokens("he saw her duck")

	_, score1, err := p.GetViterbiParse(s, tokens)
	if err != nil {
		t.Fatalf("GetViterbiParse (1st): %v", err)
	}
	tree2, score2, err := p.GetViterbiParse(s, tokens)
	if err != nil {
		t.Fatalf("GetViterbiParse (2nd): %v", err)
	}
	if !approx(score1, score2) {
		t.Fatalf("expected identical scores across re-parses, got %v and %v", score1, score2)
	}
	tree1, _, _ := p.GetViterbiParse(s, tokens)
	if !tree1.Equal(tree2) {
		t.Fatalf("expected identical Viterbi trees across re-parses")
	}
}
