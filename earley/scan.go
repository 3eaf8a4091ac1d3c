package earley

import (
	"github.com/halprin/earleypcfg/input"
	"github.com/halprin/earleypcfg/semiring"
)

// scanItem implements the scanner deduction (spec §4.5). item is active on
// a terminal category at position pos; if that terminal matches tok, the
// advanced item (Pos = pos+1) is registered in the next position's set
// with its forward/inner scores copied through, optionally scaled by
// scanProb (the caller's scan-probability hook, defaulting to 1̄). The
// resulting item's Viterbi score is the pre-scan item's inner score times
// scanProb, with no back-pointer: a scanned terminal is a leaf, not a
// completion.
func scanItem(chart *Chart, item Item, tok input.Token, scanProb semiring.Value) {
	cat := item.ActiveCategory()
	if cat == nil || !cat.IsTerminal() {
		return
	}
	if !cat.Matches(tok) {
		return
	}
	advanced := item.Advance()
	chart.GetOrCreate(advanced)
	preInner := chart.Inner(item)
	chart.CopyScore(advanced, item, scanProb)
	chart.SetViterbiBase(advanced, chart.sr.Times(preInner, scanProb))
}

// scanEpsilon implements the empty-derivation special case (spec §9 E4):
// an item active on the distinguished grammar.Epsilon terminal advances
// without consuming a token and without moving to the next position,
// since Epsilon represents the empty string rather than a real symbol.
// The advanced item's scores are copied through unscaled (scanProb is
// always 1̄ here: there is no token to attach an external confidence to).
func scanEpsilon(chart *Chart, item Item) {
	cat := item.ActiveCategory()
	if cat == nil || !cat.IsEpsilon() {
		return
	}
	advanced := item.AdvanceInPlace(item.Pos)
	chart.GetOrCreate(advanced)
	preInner := chart.Inner(item)
	chart.CopyScore(advanced, item, chart.sr.One())
	chart.SetViterbiBase(advanced, chart.sr.Times(preInner, chart.sr.One()))
}
