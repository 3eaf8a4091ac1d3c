package earley

// predictItem implements the predictor deduction (spec §4.4). item is
// active on a non-terminal B at position pos; for every category C
// reachable from B via the left-corner closure (R_L*(B,C) > 0̄, which
// includes B itself, reflexively) and every rule C -> δ, a fresh
// predictor item (C -> ·δ, pos, 0, pos) is registered, with its forward
// score accumulated from item's forward score scaled by the left-corner
// closure weight and the rule's own probability. Because R_L* is already
// the reflexive-transitive closure of the one-step left-corner relation,
// a single pass over LeftStarTargets(B) is enough: there is no need to
// recurse into the newly predicted items' own left corners.
func predictItem(chart *Chart, item Item, pos int) {
	b := item.ActiveCategory()
	if b == nil || !b.IsNonTerminal() {
		return
	}
	predictorForward := chart.Forward(item)
	for _, c := range chart.g.LeftStarTargets(b) {
		leftStar := chart.g.LeftStarScore(b, c)
		for _, rule := range chart.g.RulesFor(c) {
			predicted := Item{Rule: rule, Origin: pos, Dot: 0, Pos: pos}
			chart.GetOrCreate(predicted)
			contribution := chart.sr.Times(chart.sr.Times(predictorForward, leftStar), rule.SemProb)
			chart.SetForward(predicted, contribution)
			chart.SetInner(predicted, rule.SemProb)
			// A freshly predicted item has matched nothing of its RHS yet,
			// so its best-derivation-so-far is the rule's own probability;
			// completeItem multiplies in each completed child's Viterbi score.
			chart.SetViterbiBase(predicted, rule.SemProb)
		}
	}
}
