package ownership

import (
	"fmt"

	"github.com/siko-lang/ownerinfer/internal/ir"
)

// Diagnostics collects the non-fatal notes the symbolic value builder
// records for instruction kinds it encounters but doesn't specifically
// rewrite (§4.5, §9 "Non-fatal structural logging"). These are notes, not
// errors — the core never aborts because of one.
type Diagnostics struct {
	Notes []string
}

func (d *Diagnostics) notef(format string, args ...any) {
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
}

// DataFlowPath ties one argument to one result through member chains
// (§3.5). Arg and Result are fresh (ownership, group) pairs minted for
// this path; Src is the projection chain rooted at Arg.GroupVar that
// reaches the value being placed, and Dest is the construction chain
// rooted at Result.GroupVar that reaches the same conceptual slot. Src
// may be empty (the argument is used whole); Dest may be empty (the
// result is that argument part, unwrapped).
type DataFlowPath struct {
	Arg    TypeVariableInfo
	Result TypeVariableInfo
	Src    []MemberInfo
	Dest   []MemberInfo
}

func (p DataFlowPath) String() string {
	return fmt.Sprintf("path(%s/%s/%v/%v)", p.Arg, p.Result, p.Src, p.Dest)
}

// enumeratePaths implements §4.4: every dependency chain, argument-first
// and end-last, from an argument instruction to fn's end instruction (the
// last real instruction of the entry block).
func enumeratePaths(fn *ir.Function, order []ir.InstructionID, deps map[ir.InstructionID][]ir.InstructionID) ([][]ir.InstructionID, ir.InstructionID, error) {
	entry := fn.EntryBlock()
	if entry == nil {
		return nil, 0, fmt.Errorf("ownership: function %q has no blocks", fn.Name)
	}
	end := entry.LastReal()
	if end == nil {
		return nil, 0, fmt.Errorf("ownership: function %q has an empty entry block", fn.Name)
	}
	endID := end.ID()

	argSet := make(map[ir.InstructionID]bool)
	for _, id := range order {
		if vr, ok := fn.Instruction(id).(*ir.ValueRef); ok && vr.Name.Arg {
			argSet[id] = true
		}
	}

	groups := processDependencies(order, deps)
	groupOf := make(map[ir.InstructionID]int, len(order))
	for gi, g := range groups {
		for _, item := range g.Items {
			groupOf[item] = gi
		}
	}

	paths := make(map[ir.InstructionID][][]ir.InstructionID, len(order))
	for gi, g := range groups {
		for _, item := range g.Items {
			itemDeps := deps[item]
			if len(itemDeps) == 0 {
				paths[item] = [][]ir.InstructionID{{item}}
				continue
			}
			var itemPaths [][]ir.InstructionID
			for _, dep := range itemDeps {
				// Dependencies inside the current group are ignored: the
				// SCC is flattened, and only entry edges from outside the
				// group seed its paths (§4.4 cycle-breaking policy).
				if groupOf[dep] == gi {
					continue
				}
				for _, depPath := range paths[dep] {
					extended := make([]ir.InstructionID, len(depPath)+1)
					copy(extended, depPath)
					extended[len(depPath)] = item
					itemPaths = append(itemPaths, extended)
				}
			}
			paths[item] = itemPaths
		}
	}

	// Every surviving path under paths[item] has item as its last element
	// by construction, so filtering to argument-first paths that reach
	// the end instruction reduces to the end instruction's own entry.
	var final [][]ir.InstructionID
	for _, p := range paths[endID] {
		if len(p) > 0 && argSet[p[0]] {
			final = append(final, p)
		}
	}
	return final, endID, nil
}

// buildSymbolicValue folds one path into a symbolic value (§4.5).
// Projections shrink the value; constructor arguments wrap it. prev
// correlates which constructor argument a path flowed through.
func buildSymbolicValue(fn *ir.Function, path []ir.InstructionID, diag *Diagnostics) SymbolicValue {
	var v SymbolicValue = &Value{}
	if root, ok := fn.Instruction(path[0]).(*ir.ValueRef); ok {
		v.(*Value).Source = root.Name.Value
	}

	var prev ir.InstructionID
	havePrev := false
	for _, id := range path {
		switch inst := fn.Instruction(id).(type) {
		case *ir.Bind, *ir.If, *ir.BlockRef, *ir.BlockBegin, *ir.BlockEnd, *ir.Converter:
			// No-op on the symbolic value. Converter is a passthrough
			// per the Open Question resolved in SPEC_FULL.md.
		case *ir.MemberAccess:
			v = &FieldAccess{Receiver: v, Index: inst.Index}
		case *ir.ValueRef:
			for _, idx := range inst.Indices {
				v = &FieldAccess{Receiver: v, Index: idx}
			}
		case *ir.NamedFunctionCall:
			if inst.Ctor {
				for argIndex, argID := range inst.Args {
					if havePrev && argID == prev {
						v = &Record{Value: v, Index: argIndex}
					}
				}
			}
		default:
			if diag != nil {
				diag.notef("symbolic value builder: unhandled instruction %T at $%d, treated as no-op", inst, id)
			}
		}
		prev = id
		havePrev = true
	}
	return v
}

// buildSourceMembers walks a normalized, valid "core" value (a Value, or a
// chain of FieldAccess around one) into the src member chain of a
// DataFlowPath, per the dual process in §4.7 step 3. arg roots the
// innermost Value; alloc mints the TypeVariableInfo for each projection.
func buildSourceMembers(v SymbolicValue, arg TypeVariableInfo, alloc *Allocator) []MemberInfo {
	switch t := v.(type) {
	case *Value:
		return nil
	case *FieldAccess:
		members := buildSourceMembers(t.Receiver, arg, alloc)
		member := MemberInfo{
			Kind: MemberKind{Index: t.Index},
			Info: alloc.NextTypeVariableInfo(),
		}
		if _, isValue := t.Receiver.(*Value); isValue {
			member.Root = arg.GroupVar
		} else {
			member.Root = members[len(members)-1].Info.GroupVar
		}
		return append(members, member)
	default:
		// Record cannot appear here: splitPath peels every outer Record
		// before calling buildSourceMembers.
		panic(fmt.Sprintf("ownership: buildSourceMembers: unexpected shape %T", v))
	}
}

// splitPath implements §4.7: it mints fresh roots for the argument and
// result sides of path, peels outer Record wrappers into Dest, and walks
// the remaining core into Src.
func splitPath(path SymbolicValue, alloc *Allocator) DataFlowPath {
	arg := alloc.NextTypeVariableInfo()
	result := alloc.NextTypeVariableInfo()

	var dest []MemberInfo
	for {
		rec, ok := path.(*Record)
		if !ok {
			break
		}
		member := MemberInfo{
			Kind: MemberKind{Index: rec.Index},
			Info: alloc.NextTypeVariableInfo(),
		}
		if len(dest) == 0 {
			member.Root = result.GroupVar
		} else {
			member.Root = dest[len(dest)-1].Info.GroupVar
		}
		dest = append(dest, member)
		path = rec.Value
	}

	src := buildSourceMembers(path, arg, alloc)
	return DataFlowPath{Arg: arg, Result: result, Src: src, Dest: dest}
}
