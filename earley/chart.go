package earley

import (
	"github.com/halprin/earleypcfg/earley/iteratable"
	"github.com/halprin/earleypcfg/grammar"
	"github.com/halprin/earleypcfg/semiring"
)

// ViterbiScore pairs a best-derivation score with the back-pointer needed
// to reconstruct it: the completer item whose inner score contributed the
// winning derivation, paired with the resulting (advanced) item itself.
type ViterbiScore struct {
	Score              semiring.Value
	FromCompletedState Item
	ToResultingState   Item
	HasBackpointer     bool
}

// Chart is the Earley chart: one item set per input position, plus the
// forward/inner/Viterbi score maps and the secondary indices predict,
// scan and complete rely on. A Chart is built for a single parse and is
// not safe for concurrent mutation.
type Chart struct {
	sr  semiring.Semiring
	g   *grammar.Grammar
	Sets []*iteratable.Set // length n+1, one set per position 0..n

	forward map[Item]semiring.Value
	inner   map[Item]semiring.Value
	viterbi map[Item]ViterbiScore

	pendingForward map[Item][]Expr
	pendingInner   map[Item][]Expr

	// activeNT[pos][categoryName][origin] lists items active on that
	// non-terminal category, at that position, with that rule-start.
	activeNT map[int]map[string]map[int][]Item
	// activeT[pos][terminal] lists items active on that terminal category
	// (keyed by pointer identity, since terminals are not interned).
	activeT map[int]map[*grammar.Category][]Item
	// completedNotUnit[pos] lists passive items at pos whose rule is not a
	// unit production.
	completedNotUnit map[int][]Item
}

// NewChart allocates a chart with n+1 empty item sets for an input of
// length n.
func NewChart(g *grammar.Grammar, n int) *Chart {
	c := &Chart{
		sr:               g.Semiring(),
		g:                g,
		Sets:             make([]*iteratable.Set, n+1),
		forward:          make(map[Item]semiring.Value),
		inner:            make(map[Item]semiring.Value),
		viterbi:          make(map[Item]ViterbiScore),
		pendingForward:   make(map[Item][]Expr),
		pendingInner:     make(map[Item][]Expr),
		activeNT:         make(map[int]map[string]map[int][]Item),
		activeT:          make(map[int]map[*grammar.Category][]Item),
		completedNotUnit: make(map[int][]Item),
	}
	for i := range c.Sets {
		c.Sets[i] = iteratable.NewSet(8)
	}
	return c
}

// GetOrCreate canonicalizes item and registers it (and its secondary
// index entries) in the set at position item.Pos. It is idempotent:
// calling it twice with an equal item is a no-op the second time. Reports
// whether the item was newly added.
func (c *Chart) GetOrCreate(item Item) bool {
	added := c.Sets[item.Pos].Add(item)
	if added {
		c.index(item)
	}
	return added
}

// AddIfNew is an alias for GetOrCreate kept for readability at call sites
// that only care about the new-item signal, not the canonical form.
func (c *Chart) AddIfNew(item Item) bool {
	return c.GetOrCreate(item)
}

func (c *Chart) index(item Item) {
	pos := item.Pos
	if cat := item.ActiveCategory(); cat != nil {
		if cat.IsNonTerminal() {
			byName, ok := c.activeNT[pos]
			if !ok {
				byName = make(map[string]map[int][]Item)
				c.activeNT[pos] = byName
			}
			byOrigin, ok := byName[cat.Name()]
			if !ok {
				byOrigin = make(map[int][]Item)
				byName[cat.Name()] = byOrigin
			}
			byOrigin[item.Origin] = append(byOrigin[item.Origin], item)
		} else {
			byTerm, ok := c.activeT[pos]
			if !ok {
				byTerm = make(map[*grammar.Category][]Item)
				c.activeT[pos] = byTerm
			}
			byTerm[cat] = append(byTerm[cat], item)
		}
	} else if !item.Rule.IsUnitProduction() {
		c.completedNotUnit[pos] = append(c.completedNotUnit[pos], item)
	}
}

// ActiveOnNonTerminal returns every item active on cat, at position pos,
// with rule-start origin.
func (c *Chart) ActiveOnNonTerminal(cat *grammar.Category, origin, pos int) []Item {
	if byName, ok := c.activeNT[pos]; ok {
		if byOrigin, ok := byName[cat.Name()]; ok {
			return byOrigin[origin]
		}
	}
	return nil
}

// ActiveOnNonTerminalAnyOrigin returns every item active on cat at
// position pos, regardless of rule-start origin.
func (c *Chart) ActiveOnNonTerminalAnyOrigin(cat *grammar.Category, pos int) []Item {
	byName, ok := c.activeNT[pos]
	if !ok {
		return nil
	}
	byOrigin, ok := byName[cat.Name()]
	if !ok {
		return nil
	}
	var out []Item
	for _, items := range byOrigin {
		out = append(out, items...)
	}
	return out
}

// ActiveOnNonTerminalWithUnitStarScoreToY returns every item at position
// pos that is active on some non-terminal Z with R_U*(Z, Y) > 0̄, unioned
// over every such Z. This is the index the complete phase uses (spec
// §4.6) to avoid enumerating literal unit-production chains: the
// unit-star closure already accounts for every chain from Z to Y.
func (c *Chart) ActiveOnNonTerminalWithUnitStarScoreToY(pos int, y *grammar.Category) []Item {
	var out []Item
	for _, z := range c.g.UnitStarSources(y) {
		out = append(out, c.ActiveOnNonTerminalAnyOrigin(z, pos)...)
	}
	return out
}

// ActiveOnTerminal returns every item active on terminal t at position
// pos.
func (c *Chart) ActiveOnTerminal(pos int, t *grammar.Category) []Item {
	byTerm, ok := c.activeT[pos]
	if !ok {
		return nil
	}
	return byTerm[t]
}

// CompletedNotUnitProductions returns every passive item at pos whose
// rule is not a unit production.
func (c *Chart) CompletedNotUnitProductions(pos int) []Item {
	return c.completedNotUnit[pos]
}

// Forward returns item's forward score, or the semiring zero if it has
// none yet.
func (c *Chart) Forward(item Item) semiring.Value {
	if v, ok := c.forward[item]; ok {
		return v
	}
	return c.sr.Zero()
}

// Inner returns item's inner score, or the semiring zero if it has none
// yet.
func (c *Chart) Inner(item Item) semiring.Value {
	if v, ok := c.inner[item]; ok {
		return v
	}
	return c.sr.Zero()
}

// SetForward ⊕-accumulates v into item's forward score (used by predict
// and seeding, which add a predicted item's contribution directly rather
// than through deferred resolution).
func (c *Chart) SetForward(item Item, v semiring.Value) {
	c.forward[item] = c.sr.Plus(c.Forward(item), v)
}

// SetInner overwrites item's inner score unconditionally.
func (c *Chart) SetInner(item Item, v semiring.Value) {
	c.inner[item] = v
}

// CopyScore copies from's forward and inner scores onto to (used by scan,
// which passes scores through unchanged modulo an optional scan
// probability).
func (c *Chart) CopyScore(to, from Item, scanProb semiring.Value) {
	c.forward[to] = c.sr.Times(c.Forward(from), scanProb)
	c.inner[to] = c.sr.Times(c.Inner(from), scanProb)
}

// Viterbi returns item's current Viterbi score and whether one has been
// set.
func (c *Chart) Viterbi(item Item) (ViterbiScore, bool) {
	v, ok := c.viterbi[item]
	return v, ok
}

// UpdateViterbi conditionally installs candidate as item's Viterbi score:
// only if item has none yet, or candidate is strictly better under the
// semiring's ordering. Reports whether the update was applied.
func (c *Chart) UpdateViterbi(item Item, candidate semiring.Value, from Item) bool {
	current, ok := c.viterbi[item]
	if ok && !c.sr.Better(candidate, current.Score) {
		return false
	}
	c.viterbi[item] = ViterbiScore{
		Score:              candidate,
		FromCompletedState: from,
		ToResultingState:   item,
		HasBackpointer:     true,
	}
	return true
}

// SetViterbiBase installs item's Viterbi score unconditionally with no
// back-pointer (used for items created directly by scan, whose Viterbi
// score is the pre-scan item's inner score times the scan probability,
// not a completion-derived candidate).
func (c *Chart) SetViterbiBase(item Item, score semiring.Value) {
	c.viterbi[item] = ViterbiScore{Score: score, HasBackpointer: false}
}
