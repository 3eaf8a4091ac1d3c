package earley

import (
	"github.com/halprin/earleypcfg/grammar"
	"github.com/halprin/earleypcfg/input"
)

// ParseTree is a single parse: either a leaf (a scanned terminal, or the
// zero-width leaf standing for an Epsilon match) or a non-terminal node
// with the children its rule's RHS matched, in RHS order.
type ParseTree struct {
	Category *grammar.Category
	Token    input.Token // set only for a scanned leaf; nil for non-terminal nodes and Epsilon leaves
	Children []*ParseTree
}

// Leaf builds a leaf node for a terminal category. tok is nil for an
// Epsilon match.
func Leaf(cat *grammar.Category, tok input.Token) *ParseTree {
	return &ParseTree{Category: cat, Token: tok}
}

// NonLeaf builds a non-terminal node from its rule's matched children.
func NonLeaf(cat *grammar.Category, children []*ParseTree) *ParseTree {
	return &ParseTree{Category: cat, Children: children}
}

// IsLeaf reports whether t has no children.
func (t *ParseTree) IsLeaf() bool {
	return len(t.Children) == 0
}

// Equal reports whether t and other are structurally identical: same
// category at every node, same children in the same order, same scanned
// lexeme at every leaf.
func (t *ParseTree) Equal(other *ParseTree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Category != other.Category {
		return false
	}
	if len(t.Children) != len(other.Children) {
		return false
	}
	if len(t.Children) == 0 {
		if (t.Token == nil) != (other.Token == nil) {
			return false
		}
		return t.Token == nil || t.Token.Lexeme() == other.Token.Lexeme()
	}
	for i, c := range t.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// --- Viterbi-best extraction ------------------------------------------

// buildTree reconstructs the single best-scoring parse rooted at the
// completed item's LHS, walking the Viterbi back-pointers completeItem
// and scanItem left behind. item must be passive.
func buildTree(chart *Chart, tokens input.TokenSequence, item Item) *ParseTree {
	return NonLeaf(item.Rule.LHS, buildChildren(chart, tokens, item))
}

// buildChildren reconstructs the children an item has matched so far
// (RHS[0:item.Dot]), by peeling the dot back one symbol at a time. Every
// advance in the chart was either a completion (has a back-pointer to the
// completer item, whose own tree is built recursively) or a scan/Epsilon
// step (no back-pointer: a leaf). The predecessor item one dot back is
// reconstructed arithmetically rather than stored, following the same
// approach as a classic Earley derivation walk: its Pos is wherever the
// consumed span began.
func buildChildren(chart *Chart, tokens input.TokenSequence, item Item) []*ParseTree {
	if item.Dot == 0 {
		return nil
	}
	matched := item.Rule.RHS[item.Dot-1]

	vit, ok := chart.Viterbi(item)
	if !ok {
		invariantViolated("no Viterbi score recorded for an item on the best-parse path: " + item.String())
		return nil
	}

	if vit.HasBackpointer {
		completer := vit.FromCompletedState
		predecessor := Item{Rule: item.Rule, Origin: item.Origin, Dot: item.Dot - 1, Pos: completer.Origin}
		siblings := buildChildren(chart, tokens, predecessor)
		child := buildTree(chart, tokens, completer)
		return append(siblings, child)
	}

	if matched.IsEpsilon() {
		predecessor := Item{Rule: item.Rule, Origin: item.Origin, Dot: item.Dot - 1, Pos: item.Pos}
		siblings := buildChildren(chart, tokens, predecessor)
		return append(siblings, Leaf(matched, nil))
	}

	predecessor := Item{Rule: item.Rule, Origin: item.Origin, Dot: item.Dot - 1, Pos: item.Pos - 1}
	siblings := buildChildren(chart, tokens, predecessor)
	return append(siblings, Leaf(matched, tokens.At(item.Pos-1)))
}

// --- Full parse-forest enumeration -------------------------------------

// allTreesFor enumerates every parse tree for category cat spanning
// [from, to) in chart: every rule with LHS cat that has a completed item
// (rule, from, len(RHS), to) actually recorded in the chart, crossed with
// every way its RHS factors the span, pruned at each step by what the
// chart actually recognized rather than by guessing candidate spans.
func allTreesFor(chart *Chart, tokens input.TokenSequence, cat *grammar.Category, from, to int) []*ParseTree {
	var trees []*ParseTree
	for _, v := range chart.Sets[to].Values() {
		item := v.(Item)
		if !item.IsPassive() || item.Rule.LHS != cat || item.Origin != from {
			continue
		}
		for _, children := range factorize(chart, tokens, item.Rule, from, len(item.Rule.RHS)-1, to) {
			trees = append(trees, NonLeaf(cat, children))
		}
	}
	return trees
}

// factorize enumerates every way rule's RHS[0:ruleIndex+1], anchored at
// ruleOrigin, can factor into spans ending at endPos. It recurses from the
// rightmost RHS symbol backwards, exactly mirroring how the chart itself
// discovers a completion: a terminal must match the single token just
// left of endPos (or, for Epsilon, consume nothing); a non-terminal must
// be witnessed by an actually-completed item ending at endPos, which is
// in turn recursively factored. Ambiguity shows up as multiple witnessing
// items or multiple sub-factorizations, each contributing its own
// combination to the result.
func factorize(chart *Chart, tokens input.TokenSequence, rule *grammar.Rule, ruleOrigin, ruleIndex, endPos int) [][]*ParseTree {
	if ruleIndex < 0 {
		if endPos == ruleOrigin {
			return [][]*ParseTree{{}}
		}
		return nil
	}

	sym := rule.RHS[ruleIndex]

	if sym.IsTerminal() {
		if sym.IsEpsilon() {
			var outputs [][]*ParseTree
			for _, prefix := range factorize(chart, tokens, rule, ruleOrigin, ruleIndex-1, endPos) {
				outputs = append(outputs, appendTree(prefix, Leaf(sym, nil)))
			}
			return outputs
		}
		if endPos <= ruleOrigin {
			return nil
		}
		start := endPos - 1
		tok := tokens.At(start)
		if !sym.Matches(tok) {
			return nil
		}
		leaf := Leaf(sym, tok)
		var outputs [][]*ParseTree
		for _, prefix := range factorize(chart, tokens, rule, ruleOrigin, ruleIndex-1, start) {
			outputs = append(outputs, appendTree(prefix, leaf))
		}
		return outputs
	}

	var outputs [][]*ParseTree
	for _, v := range chart.Sets[endPos].Values() {
		sub := v.(Item)
		if !sub.IsPassive() || sub.Rule.LHS != sym || sub.Origin < ruleOrigin {
			continue
		}
		start := sub.Origin
		for _, subChildren := range factorize(chart, tokens, sub.Rule, start, len(sub.Rule.RHS)-1, endPos) {
			subTree := NonLeaf(sym, subChildren)
			for _, prefix := range factorize(chart, tokens, rule, ruleOrigin, ruleIndex-1, start) {
				outputs = append(outputs, appendTree(prefix, subTree))
			}
		}
	}
	return outputs
}

func appendTree(prefix []*ParseTree, t *ParseTree) []*ParseTree {
	out := make([]*ParseTree, len(prefix), len(prefix)+1)
	copy(out, prefix)
	return append(out, t)
}
