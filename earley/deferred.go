package earley

import (
	"fmt"

	"github.com/halprin/earleypcfg/semiring"
)

// Expr is a small algebra of deferred semiring expressions: atoms, and
// references to another item's forward/inner score, combined with plus
// (⊕) and times (⊗). Complete builds these instead of mutating the
// forward/inner maps directly, because within one chart position the
// contributions to a new item's score can themselves depend on items
// still being discovered in the same round (design note: "deferred score
// arithmetic"). ResolveDeferred evaluates every pending expression by
// bounded fixpoint iteration once the round's worklist has drained.
type Expr interface {
	eval(sr semiring.Semiring, estimate *estimateTable) semiring.Value
}

type exprAtom struct{ v semiring.Value }

func (e exprAtom) eval(sr semiring.Semiring, est *estimateTable) semiring.Value { return e.v }

type exprForwardRef struct{ item Item }

func (e exprForwardRef) eval(sr semiring.Semiring, est *estimateTable) semiring.Value {
	return est.forward(e.item)
}

type exprInnerRef struct{ item Item }

func (e exprInnerRef) eval(sr semiring.Semiring, est *estimateTable) semiring.Value {
	return est.inner(e.item)
}

type exprPlus struct{ a, b Expr }

func (e exprPlus) eval(sr semiring.Semiring, est *estimateTable) semiring.Value {
	return sr.Plus(e.a.eval(sr, est), e.b.eval(sr, est))
}

type exprTimes struct{ a, b Expr }

func (e exprTimes) eval(sr semiring.Semiring, est *estimateTable) semiring.Value {
	return sr.Times(e.a.eval(sr, est), e.b.eval(sr, est))
}

// Atom wraps a concrete semiring value as an Expr leaf.
func Atom(v semiring.Value) Expr { return exprAtom{v} }

// ForwardRef is an Expr leaf naming another item's (possibly still
// unresolved) forward score.
func ForwardRef(item Item) Expr { return exprForwardRef{item} }

// InnerRef is an Expr leaf naming another item's (possibly still
// unresolved) inner score.
func InnerRef(item Item) Expr { return exprInnerRef{item} }

// Plus combines two expressions with the semiring's ⊕.
func Plus(a, b Expr) Expr { return exprPlus{a, b} }

// Times combines two expressions with the semiring's ⊗.
func Times(a, b Expr) Expr { return exprTimes{a, b} }

// estimateTable is the working set of current best-guess values used while
// iterating pending expressions to a fixpoint. References to items outside
// the pending round resolve directly against the chart's already-settled
// forward/inner maps.
type estimateTable struct {
	chart       *Chart
	forwardEst  map[Item]semiring.Value
	innerEst    map[Item]semiring.Value
}

func (e *estimateTable) forward(item Item) semiring.Value {
	if v, ok := e.forwardEst[item]; ok {
		return v
	}
	return e.chart.Forward(item)
}

func (e *estimateTable) inner(item Item) semiring.Value {
	if v, ok := e.innerEst[item]; ok {
		return v
	}
	return e.chart.Inner(item)
}

// DeferForward queues contribution to be ⊕-accumulated into item's forward
// score once ResolveDeferred runs.
func (c *Chart) DeferForward(item Item, contribution Expr) {
	c.pendingForward[item] = append(c.pendingForward[item], contribution)
}

// DeferInner queues contribution to be ⊕-accumulated into item's inner
// score once ResolveDeferred runs.
func (c *Chart) DeferInner(item Item, contribution Expr) {
	c.pendingInner[item] = append(c.pendingInner[item], contribution)
}

// HasPending reports whether any forward/inner expression is still
// waiting to be resolved.
func (c *Chart) HasPending() bool {
	return len(c.pendingForward) > 0 || len(c.pendingInner) > 0
}

// ResolveDeferred evaluates every pending forward/inner expression by
// bounded fixpoint iteration (mirroring the grammar package's closure
// computation): estimates start at each item's currently settled score
// (typically 0̄ for items discovered this round), and every sweep
// re-evaluates every pending expression against the previous sweep's
// estimates until two sweeps agree within the semiring's tolerance, or an
// iteration budget is exhausted. Each sweep propagates values one link
// along a dependency chain, so an acyclic chain settles in as many sweeps
// as it has links; the budget (twice the number of pending items, plus
// 32) is generous enough for any such chain and for unit-cycle-induced
// cyclic dependencies (already dampened by R_U* < 1̄ for convergent
// grammars) to settle within a handful of sweeps.
func (c *Chart) ResolveDeferred(sr semiring.Semiring) error {
	if !c.HasPending() {
		return nil
	}

	est := &estimateTable{
		chart:      c,
		forwardEst: make(map[Item]semiring.Value, len(c.pendingForward)),
		innerEst:   make(map[Item]semiring.Value, len(c.pendingInner)),
	}
	for item := range c.pendingForward {
		est.forwardEst[item] = c.Forward(item)
	}
	for item := range c.pendingInner {
		est.innerEst[item] = c.Inner(item)
	}

	maxIter := 2*(len(c.pendingForward)+len(c.pendingInner)) + 32
	for iter := 0; iter < maxIter; iter++ {
		nextForward := make(map[Item]semiring.Value, len(est.forwardEst))
		nextInner := make(map[Item]semiring.Value, len(est.innerEst))

		for item, terms := range c.pendingForward {
			acc := c.Forward(item)
			for _, term := range terms {
				acc = sr.Plus(acc, term.eval(sr, est))
			}
			nextForward[item] = acc
		}
		for item, terms := range c.pendingInner {
			acc := c.Inner(item)
			for _, term := range terms {
				acc = sr.Plus(acc, term.eval(sr, est))
			}
			nextInner[item] = acc
		}

		converged := true
		for item, v := range nextForward {
			if !sr.Approx(v, est.forwardEst[item]) {
				converged = false
				break
			}
		}
		if converged {
			for item, v := range nextInner {
				if !sr.Approx(v, est.innerEst[item]) {
					converged = false
					break
				}
			}
		}

		est.forwardEst = nextForward
		est.innerEst = nextInner

		if converged {
			break
		}
		if iter == maxIter-1 {
			return fmt.Errorf("earley: deferred score resolution did not converge within %d iterations", maxIter)
		}
	}

	for item, v := range est.forwardEst {
		c.forward[item] = v
	}
	for item, v := range est.innerEst {
		c.inner[item] = v
	}
	c.pendingForward = make(map[Item][]Expr)
	c.pendingInner = make(map[Item][]Expr)
	return nil
}
