package earley

import (
	"bytes"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key "earleypcfg.earley".
func tracer() tracing.Trace {
	return tracing.Select("earleypcfg.earley")
}

func dumpState(chart *Chart, pos int) {
	tracer().Debugf("--- position %04d ------------------------------------", pos)
	S := chart.Sets[pos]
	n := 1
	for _, v := range S.Values() {
		item := v.(Item)
		tracer().Debugf("[%2d] %s  fwd=%v inner=%v", n, item, chart.Forward(item), chart.Inner(item))
		n++
	}
}

func itemSetString(S *Chart, pos int) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, v := range S.Sets[pos].Values() {
		item := v.(Item)
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}
