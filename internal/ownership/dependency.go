package ownership

import "github.com/siko-lang/ownerinfer/internal/ir"

// dependencyGroup is one strongly connected component of the instruction
// dependency graph. Items are listed in the order Tarjan's algorithm popped
// them off its stack; that internal order is not observable outside the
// package (§4.2) — only the order groups themselves are emitted in matters.
type dependencyGroup struct {
	Items []ir.InstructionID
}

// processDependencies groups node ids into strongly connected components
// (§4.2), emitting groups such that if group A depends on group B (A != B),
// B is emitted before A. deps maps a node to its dependencies; a node
// absent from deps has no outgoing edges. A dependency id absent from order
// is still visited through its edge and emitted in a group. order fixes the traversal order over nodes, and the
// order of each deps[n] slice fixes traversal over edges, so the result is
// deterministic whenever the caller's inputs are (§9).
func processDependencies(order []ir.InstructionID, deps map[ir.InstructionID][]ir.InstructionID) []dependencyGroup {
	t := &tarjan{
		deps:    deps,
		index:   make(map[ir.InstructionID]int, len(order)),
		lowlink: make(map[ir.InstructionID]int, len(order)),
		onStack: make(map[ir.InstructionID]bool, len(order)),
	}
	for _, n := range order {
		if _, seen := t.index[n]; !seen {
			t.strongconnect(n)
		}
	}
	return t.groups
}

// tarjan holds the mutable state of one run of Tarjan's SCC algorithm.
type tarjan struct {
	deps    map[ir.InstructionID][]ir.InstructionID
	index   map[ir.InstructionID]int
	lowlink map[ir.InstructionID]int
	onStack map[ir.InstructionID]bool
	stack   []ir.InstructionID
	counter int
	groups  []dependencyGroup
}

func (t *tarjan) strongconnect(v ir.InstructionID) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.deps[v] {
		if _, seen := t.index[w]; !seen {
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}

	var items []ir.InstructionID
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		items = append(items, w)
		if w == v {
			break
		}
	}
	t.groups = append(t.groups, dependencyGroup{Items: items})
}
