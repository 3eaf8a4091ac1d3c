/*
Package earley implements a probabilistic Earley recognizer/parser over a
github.com/halprin/earleypcfg/grammar.Grammar: the chart, the predict/scan/
complete deduction phases, the forward/inner score calculus, and Viterbi
best-parse and full parse-forest extraction.

Usage

	p := earley.NewParser(g)
	ok, err := p.Recognize(start, tokens)
	tree, score, err := p.GetViterbiParse(start, tokens)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The earleypcfg Authors
*/
package earley

import (
	"github.com/halprin/earleypcfg/grammar"
	"github.com/halprin/earleypcfg/input"
	"github.com/halprin/earleypcfg/semiring"
)

// ScanProbabilityFunc is an optional hook reporting a confidence score for
// the token about to be scanned at the given input index (0-based). It
// defaults to returning the semiring's 1̄ for every position. A hook that
// returns NaN is passed through unchanged (spec §9 open question (c)):
// the semiring's Better/Approx operations are already NaN-safe, so a NaN
// scan probability simply never wins a Viterbi comparison.
type ScanProbabilityFunc func(pos int) semiring.Value

// Parser drives the Earley recognizer/parser against a fixed Grammar.
// A Parser is reusable across many independent parses; it holds no
// per-parse state (see NewChart, built fresh by every call).
type Parser struct {
	g        *grammar.Grammar
	scanProb ScanProbabilityFunc
}

// Option configures a Parser at construction time.
type Option func(p *Parser)

// WithScanProbability installs a custom scan-probability hook.
func WithScanProbability(f ScanProbabilityFunc) Option {
	return func(p *Parser) { p.scanProb = f }
}

// NewParser creates a Parser for g.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{g: g}
	for _, opt := range opts {
		opt(p)
	}
	if p.scanProb == nil {
		one := g.Semiring().One()
		p.scanProb = func(int) semiring.Value { return one }
	}
	return p
}

// Recognize reports whether tokens is accepted by the grammar starting
// from start.
func (p *Parser) Recognize(start *grammar.Category, tokens input.TokenSequence) (bool, error) {
	_, accept, err := p.parse(start, tokens)
	return accept, err
}

// GetParseScore returns the semiring-encoded total score the grammar
// assigns to tokens under start: the ⊕-sum of the inner scores of every
// completed item (start -> ω ·, 0, n).
func (p *Parser) GetParseScore(start *grammar.Category, tokens input.TokenSequence) (semiring.Value, error) {
	chart, _, err := p.parse(start, tokens)
	if err != nil {
		return p.g.Semiring().Zero(), err
	}
	return p.totalInner(chart, start, tokens.Len()), nil
}

// GetProbability returns GetParseScore converted back into an ordinary
// probability via the grammar's semiring.
func (p *Parser) GetProbability(start *grammar.Category, tokens input.TokenSequence) (float64, error) {
	score, err := p.GetParseScore(start, tokens)
	if err != nil {
		return 0, err
	}
	return p.g.Semiring().ToProbability(score), nil
}

// GetViterbiParse returns the single highest-scoring parse tree for
// tokens under start, together with its score. Returns (nil, 0̄, nil) if
// every token is scanned but start is not recognized over the whole input;
// a token that no item can scan yields an *UnexpectedTokenError instead.
func (p *Parser) GetViterbiParse(start *grammar.Category, tokens input.TokenSequence) (*ParseTree, semiring.Value, error) {
	chart, accept, err := p.parse(start, tokens)
	if err != nil {
		return nil, p.g.Semiring().Zero(), err
	}
	if !accept {
		return nil, p.g.Semiring().Zero(), nil
	}
	best, bestScore, found := p.bestFinalItem(chart, start, tokens.Len())
	if !found {
		return nil, p.g.Semiring().Zero(), invariantViolated("accepted parse has no completed start item with a Viterbi score")
	}
	tree := buildTree(chart, tokens, best)
	return tree, bestScore, nil
}

// GetParses enumerates every parse tree tokens admits under start. May be
// exponential in the length of tokens for a sufficiently ambiguous
// grammar; returns nil (not an error) if every token is scanned but start
// is not recognized over the whole input, and an *UnexpectedTokenError if
// a token cannot be scanned.
func (p *Parser) GetParses(start *grammar.Category, tokens input.TokenSequence) ([]*ParseTree, error) {
	chart, accept, err := p.parse(start, tokens)
	if err != nil {
		return nil, err
	}
	if !accept {
		return nil, nil
	}
	return allTreesFor(chart, tokens, start, 0, tokens.Len()), nil
}

// GetSubTrees enumerates every parse tree for category cat spanning
// [from, to) in the chart produced by parsing tokens under start. Useful
// for querying structural ambiguity below the top level (spec §8 E6). Each
// call parses tokens again to build that chart.
func (p *Parser) GetSubTrees(start *grammar.Category, tokens input.TokenSequence, cat *grammar.Category, from, to int) ([]*ParseTree, error) {
	chart, _, err := p.parse(start, tokens)
	if err != nil {
		return nil, err
	}
	return allTreesFor(chart, tokens, cat, from, to), nil
}

// parse runs the full recognizer over tokens, returning the resulting
// chart and whether start was recognized across the whole input.
func (p *Parser) parse(start *grammar.Category, tokens input.TokenSequence) (*Chart, bool, error) {
	n := tokens.Len()
	chart := NewChart(p.g, n)

	for _, rule := range p.g.RulesFor(start) {
		seed := Item{Rule: rule, Origin: 0, Dot: 0, Pos: 0}
		chart.GetOrCreate(seed)
		chart.SetForward(seed, rule.SemProb)
		chart.SetInner(seed, rule.SemProb)
		chart.SetViterbiBase(seed, rule.SemProb)
	}

	for i := 0; i <= n; i++ {
		var tok input.Token
		if i < n {
			tok = tokens.At(i)
		}

		S := chart.Sets[i]
		S.IterateOnce()
		for S.Next() {
			item := S.Item().(Item)
			if item.IsPassive() {
				if !item.Rule.IsUnitProduction() {
					completeItem(chart, item, i)
				}
				continue
			}
			cat := item.ActiveCategory()
			switch {
			case cat.IsEpsilon():
				scanEpsilon(chart, item)
			case cat.IsNonTerminal():
				predictItem(chart, item, i)
			case i < n:
				scanItem(chart, item, tok, p.scanProb(i))
			}
		}

		if err := chart.ResolveDeferred(p.g.Semiring()); err != nil {
			return chart, false, err
		}
		dumpState(chart, i)

		if i < n && chart.Sets[i+1].Empty() {
			return chart, false, &UnexpectedTokenError{
				Position: i,
				Token:    tok,
				Expected: expectedCategories(chart, i),
			}
		}
	}

	_, _, accept := p.bestFinalItem(chart, start, n)
	return chart, accept, nil
}

// totalInner sums the inner score of every completed (start -> ω ·, 0, n)
// item in chart.
func (p *Parser) totalInner(chart *Chart, start *grammar.Category, n int) semiring.Value {
	sr := p.g.Semiring()
	total := sr.Zero()
	for _, v := range chart.Sets[n].Values() {
		item := v.(Item)
		if item.IsPassive() && item.Rule.LHS == start && item.Origin == 0 {
			total = sr.Plus(total, chart.Inner(item))
		}
	}
	return total
}

// bestFinalItem returns the completed (start -> ω ·, 0, n) item with the
// best Viterbi score, if any exists.
func (p *Parser) bestFinalItem(chart *Chart, start *grammar.Category, n int) (Item, semiring.Value, bool) {
	sr := p.g.Semiring()
	var best Item
	var bestScore semiring.Value
	found := false
	for _, v := range chart.Sets[n].Values() {
		item := v.(Item)
		if !item.IsPassive() || item.Rule.LHS != start || item.Origin != 0 {
			continue
		}
		vit, ok := chart.Viterbi(item)
		if !ok {
			continue
		}
		if !found || sr.Better(vit.Score, bestScore) {
			best, bestScore, found = item, vit.Score, true
		}
	}
	return best, bestScore, found
}
