/*
Package iteratable implements iteratable container data structures.

Set is a special-purpose set type, suitable mainly for implementing
algorithms around parsers: the worklist-style iteration they need is often
more straightforward to describe as set construction and iteration than as
hand-rolled queue bookkeeping.

Unusually, Add, Remove and Union modify the set in place, and iteration
is a worklist: items Add-ed to a Set while it is being iterated over are
visited later in that same iteration round, rather than being deferred to
a subsequent call to IterateOnce. This is exactly the behavior the earley
package's predict/scan/complete phases rely on: a single pass over a
position's item set keeps discovering and processing new items until the
set stops growing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The earleypcfg Authors
*/
package iteratable
