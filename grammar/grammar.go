package grammar

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/halprin/earleypcfg/semiring"
)

// Grammar is an indexed, immutable collection of rules for a PCFG, plus
// the precomputed left-corner closure R_L* and unit-production closure
// R_U* used by the earley package's predict and complete phases.
//
// Construct one with a Builder; Grammar itself has no mutators.
type Grammar struct {
	semiring semiring.Semiring

	rulesByLHS map[string][]*Rule
	allRules   []*Rule

	nonterminals []*Category    // stable index order, see Builder.Build
	ntIndex      map[string]int // non-terminal name -> index into nonterminals

	leftStar [][]semiring.Value // R_L*[i][j], i = X, j = Y
	unitStar [][]semiring.Value // R_U*[i][j], i = X, j = Y

	// unitStarSources[Y] lists every non-terminal Z (including Y itself)
	// with R_U*(Z,Y) > 0̄, i.e. the reverse of the unit-star closure. This
	// is the index the spec calls "completed-with-nonzero-unit-star-to-Y"
	// and "activeOnNonTerminalWithUnitStarScoreToY" draw on.
	unitStarSources map[string][]*Category

	// leftStarTargets[B] lists every non-terminal C (including B itself)
	// with R_L*(B,C) > 0̄, the set predict() expands a predictor into.
	leftStarTargets map[string][]*Category
}

// Semiring returns the semiring this grammar's rule probabilities and
// closures are expressed in.
func (g *Grammar) Semiring() semiring.Semiring {
	return g.semiring
}

// RulesFor returns the rules with lhs on the left-hand side, in the order
// they were added to the Builder. The returned slice must not be mutated.
func (g *Grammar) RulesFor(lhs *Category) []*Rule {
	if lhs == nil {
		return nil
	}
	return g.rulesByLHS[lhs.name]
}

// Rules returns all rules of the grammar, in Builder-add order.
func (g *Grammar) Rules() []*Rule {
	return g.allRules
}

// LeftStarScore returns R_L*(from, to): the semiring sum over every chain
// of left-corner steps starting at "from" and reaching a rule whose LHS is
// "to". Reflexive: LeftStarScore(X, X) is always ≥ 1̄.
func (g *Grammar) LeftStarScore(from, to *Category) semiring.Value {
	i, ok1 := g.ntIndex[from.name]
	j, ok2 := g.ntIndex[to.name]
	if !ok1 || !ok2 {
		return g.semiring.Zero()
	}
	return g.leftStar[i][j]
}

// UnitStarScore returns R_U*(from, to): the semiring sum over every chain
// of unit productions starting at "from" and reaching "to". Reflexive:
// UnitStarScore(X, X) is 1̄ for the empty chain ⊕ the weight of every unit
// cycle through X, so it exceeds 1̄ when X lies on such a cycle.
func (g *Grammar) UnitStarScore(from, to *Category) semiring.Value {
	i, ok1 := g.ntIndex[from.name]
	j, ok2 := g.ntIndex[to.name]
	if !ok1 || !ok2 {
		return g.semiring.Zero()
	}
	return g.unitStar[i][j]
}

// LeftStarTargets enumerates every non-terminal C (including B itself)
// with LeftStarScore(B, C) > 0̄, in stable index order.
func (g *Grammar) LeftStarTargets(b *Category) []*Category {
	return g.leftStarTargets[b.name]
}

// UnitStarSources enumerates every non-terminal Z (including Y itself)
// with UnitStarScore(Z, Y) > 0̄, in stable index order.
func (g *Grammar) UnitStarSources(y *Category) []*Category {
	return g.unitStarSources[y.name]
}

// Builder constructs a Grammar incrementally. Zero value is not usable;
// create one with NewBuilder.
type Builder struct {
	sr      semiring.Semiring
	intern  map[string]*Category
	rules   []*Rule
	badRule []string // collected structural-error messages, reported by Build
}

// NewBuilder creates a Builder whose rules will be scored in sr.
func NewBuilder(sr semiring.Semiring) *Builder {
	return &Builder{
		sr:     sr,
		intern: make(map[string]*Category),
	}
}

// NonTerminal returns the (interned) non-terminal category named name.
// Repeated calls with the same name return the identical *Category.
func (b *Builder) NonTerminal(name string) *Category {
	if c, ok := b.intern[name]; ok {
		return c
	}
	c := &Category{name: name}
	b.intern[name] = c
	return c
}

// Terminal creates a fresh terminal category labeled name, matching tokens
// via m. Terminal categories are identified by object identity: construct
// one per distinct token class and reuse the returned *Category across
// rules that should match the same terminal.
func (b *Builder) Terminal(name string, m Matcher) *Category {
	return &Category{name: name, terminal: m}
}

// AddRule registers a production lhs -> rhs with the given probability.
// Structural errors (nil lhs, empty rhs, nil rhs element) are recorded and
// reported by Build, so that a single Build() call surfaces every problem
// at once rather than failing on the first AddRule.
func (b *Builder) AddRule(lhs *Category, prob float64, rhs ...*Category) *Builder {
	if lhs == nil {
		b.badRule = append(b.badRule, "rule has a nil LHS")
		return b
	}
	if lhs.IsTerminal() {
		b.badRule = append(b.badRule, "rule LHS "+lhs.Name()+" is a terminal, must be a non-terminal")
		return b
	}
	if len(rhs) == 0 {
		b.badRule = append(b.badRule, "rule for "+lhs.Name()+" has an empty RHS")
		return b
	}
	for _, c := range rhs {
		if c == nil {
			b.badRule = append(b.badRule, "rule for "+lhs.Name()+" has a nil RHS element")
			return b
		}
	}
	b.rules = append(b.rules, &Rule{
		LHS:     lhs,
		RHS:     append([]*Category(nil), rhs...),
		Prob:    prob,
		SemProb: b.sr.FromProbability(prob),
		Serial:  len(b.rules),
	})
	return b
}

// Build finalizes the grammar: validates structural invariants, indexes
// rules by LHS, and computes the left-corner and unit-production closures.
// It fails with *IllegalGrammarError if AddRule recorded any structural
// violations, or with *NotConvergentError if the closures do not converge.
func (b *Builder) Build() (*Grammar, error) {
	if len(b.badRule) > 0 {
		return nil, &IllegalGrammarError{Reason: strings.Join(b.badRule, "; ")}
	}

	g := &Grammar{
		semiring:   b.sr,
		rulesByLHS: make(map[string][]*Rule),
		allRules:   b.rules,
	}
	for _, r := range b.rules {
		g.rulesByLHS[r.LHS.name] = append(g.rulesByLHS[r.LHS.name], r)
	}

	// Index every non-terminal that appears as an LHS or within an RHS, in
	// a stable (name-sorted) order, mirroring the teacher's use of
	// treeset.NewWith(comparator) to keep CFSM state ordering deterministic
	// (lr/tables.go).
	byName := treeset.NewWith(func(a, b interface{}) int {
		return utils.StringComparator(a.(*Category).name, b.(*Category).name)
	})
	for _, r := range b.rules {
		byName.Add(r.LHS)
		for _, c := range r.RHS {
			if c.IsNonTerminal() {
				byName.Add(c)
			}
		}
	}
	values := byName.Values()
	g.nonterminals = make([]*Category, len(values))
	g.ntIndex = make(map[string]int, len(values))
	for i, v := range values {
		c := v.(*Category)
		g.nonterminals[i] = c
		g.ntIndex[c.name] = i
	}

	tracer().Debugf("grammar has %d rules over %d non-terminals", len(b.rules), len(g.nonterminals))

	var err error
	g.leftStar, err = closure(g, leftCornerStep)
	if err != nil {
		return nil, err
	}
	g.unitStar, err = closure(g, unitProductionStep)
	if err != nil {
		return nil, err
	}
	g.leftStarTargets = reverseIndex(g, g.leftStar, false)
	g.unitStarSources = reverseIndex(g, g.unitStar, true)

	return g, nil
}

// reverseIndex builds, for every non-terminal Y, the list of non-terminals
// X with star[index(X)][index(Y)] > 0̄, in stable index order. When
// sourcesOfTarget is true the map is keyed by Y's name (X reaches Y, "Y's
// sources"); otherwise it is keyed by X's name (X reaches these Y's,
// "X's targets").
func reverseIndex(g *Grammar, star [][]semiring.Value, sourcesOfTarget bool) map[string][]*Category {
	idx := make(map[string][]*Category)
	n := len(g.nonterminals)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if star[i][j] == g.semiring.Zero() {
				continue
			}
			if sourcesOfTarget {
				key := g.nonterminals[j].name
				idx[key] = append(idx[key], g.nonterminals[i])
			} else {
				key := g.nonterminals[i].name
				idx[key] = append(idx[key], g.nonterminals[j])
			}
		}
	}
	return idx
}
