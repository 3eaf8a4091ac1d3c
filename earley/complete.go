package earley

// completeItem implements the completer deduction (spec §4.6, §4.7). c is
// a completed (passive), non-unit-production item at position pos. Its
// predecessors are found via the unit-star closure: every item s active
// on some category Z with R_U*(Z, c.Rule.LHS) > 0̄, at c's rule-start
// position. Confining the search to the unit-star closure (rather than
// expanding literal unit-production chains in the chart) is what keeps
// the chart finite under infinite/cyclic unit productions.
//
// Forward and inner contributions are recorded as deferred expressions,
// resolved once the position's worklist drains (see ResolveDeferred):
// within one position, a newly produced item's score can depend on
// another item discovered later in the same round.
//
// Viterbi does not use the unit-star conflation: only literal,
// degree-zero predecessors (Z == c.Rule.LHS exactly) are candidates,
// so that the winning derivation's structure is preserved rather than
// summed away. Viterbi updates are applied immediately (not deferred)
// because they only ever improve monotonically (spec §4.7).
func completeItem(chart *Chart, c Item, pos int) {
	y := c.Rule.LHS
	j := c.Origin
	cInner := InnerRef(c)
	cViterbi, cHasViterbi := chart.Viterbi(c)

	for _, s := range chart.ActiveOnNonTerminalWithUnitStarScoreToY(j, y) {
		z := s.ActiveCategory()
		if z == nil {
			continue
		}
		uStar := chart.g.UnitStarScore(z, y)
		if uStar == chart.sr.Zero() {
			continue
		}

		sPrime := s.AdvanceInPlace(pos)
		chart.GetOrCreate(sPrime)

		chart.DeferForward(sPrime, Times(Atom(uStar), Times(ForwardRef(s), cInner)))
		chart.DeferInner(sPrime, Times(Atom(uStar), Times(InnerRef(s), cInner)))

		if z == y && cHasViterbi {
			if sViterbi, ok := chart.Viterbi(s); ok {
				candidate := chart.sr.Times(sViterbi.Score, cViterbi.Score)
				chart.UpdateViterbi(sPrime, candidate, c)
			}
		}
	}
}
