package ownership

import (
	"fmt"
	"sort"

	ownerrors "github.com/siko-lang/ownerinfer/internal/errors"
)

const stageSignatureNormalizer = "signature normalizer"

// OwnershipKind is the resolved kind of an OwnershipVar, as delivered by the
// prior ownership-inference phase (§3.2). The core never computes this
// itself — it only consumes it.
type OwnershipKind int

const (
	Owner OwnershipKind = iota
	Borrow
)

func (k OwnershipKind) String() string {
	if k == Borrow {
		return "borrow"
	}
	return "owner"
}

// OwnershipInfo is one entry of the Ownerships map delivered by the prior
// phase: the resolved kind, and — when the kind is Borrow — the group the
// value borrows from.
type OwnershipInfo struct {
	Kind        OwnershipKind
	SourceGroup GroupVar
}

// OwnershipDependencies is the ownership_dep_map of §4.8: which ownership
// variables a group's value transitively depends on. Represented as a
// slice per group rather than a nested set so that iteration, and thus the
// signatures built from it, stay deterministic (§9) regardless of
// insertion order.
type OwnershipDependencies map[GroupVar][]OwnershipVar

// Ownerships is the ownerships map of §4.8, resolved kinds keyed by
// ownership variable.
type Ownerships map[OwnershipVar]OwnershipInfo

// OwnershipSignature is a function's canonicalized, externally visible
// ownership summary (§3.6).
type OwnershipSignature struct {
	Args      []TypeVariableInfo
	Result    TypeVariableInfo
	Members   []MemberInfo
	Borrows   []OwnershipVar
	Allocator *Allocator
}

func (s *OwnershipSignature) String() string {
	return fmt.Sprintf("signature(args=%v, result=%s, members=%v, borrows=%v)", s.Args, s.Result, s.Members, s.Borrows)
}

// filterOutBorrowingMembers implements §4.8 step 1. It returns the
// only-borrowing member set O together with the borrow ownership set B, in
// an order derived entirely from members's own order (deterministic).
func filterOutBorrowingMembers(args []TypeVariableInfo, members []MemberInfo, deps OwnershipDependencies, kinds Ownerships) ([]MemberInfo, []OwnershipVar, *ownerrors.InferenceError) {
	relevantOwnershipVars := make(map[OwnershipVar]bool)
	for _, a := range args {
		for _, ov := range deps[a.GroupVar] {
			relevantOwnershipVars[ov] = true
		}
	}

	var relevant []MemberInfo
	for _, m := range members {
		if relevantOwnershipVars[m.Info.OwnershipVar] {
			relevant = append(relevant, m)
		}
	}

	borrowSet := make(map[OwnershipVar]bool)
	var borrows []OwnershipVar
	for _, m := range relevant {
		info, ok := kinds[m.Info.OwnershipVar]
		if !ok {
			return nil, nil, ownerrors.NewInferenceError(ownerrors.Precondition, "", stageSignatureNormalizer,
				fmt.Sprintf("ownership variable %s has no recorded kind", m.Info.OwnershipVar))
		}
		if info.Kind == Borrow && !borrowSet[m.Info.OwnershipVar] {
			borrowSet[m.Info.OwnershipVar] = true
			borrows = append(borrows, m.Info.OwnershipVar)
		}
	}

	var onlyBorrowing []MemberInfo
	for _, m := range relevant {
		groupDeps, ok := deps[m.Info.GroupVar]
		if !ok {
			return nil, nil, ownerrors.NewInferenceError(ownerrors.Precondition, "", stageSignatureNormalizer,
				fmt.Sprintf("member produced group %s is absent from the ownership dependency map", m.Info.GroupVar))
		}
		containsBorrow := borrowSet[m.Info.OwnershipVar]
		for _, ov := range groupDeps {
			if borrowSet[ov] {
				containsBorrow = true
				break
			}
		}
		if containsBorrow {
			onlyBorrowing = append(onlyBorrowing, m)
		}
	}
	return onlyBorrowing, borrows, nil
}

// Normalizer canonicalizes ownership and group variables for one
// signature (§4.8 step 2). Each Normalizer owns a fresh Allocator and
// memoizes the renaming it performs, so repeated lookups of the same
// source identity always yield the same canonical identity.
type Normalizer struct {
	alloc         *Allocator
	ownershipVars map[OwnershipVar]OwnershipVar
	groupVars     map[GroupVar]GroupVar
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		alloc:         NewAllocator(),
		ownershipVars: make(map[OwnershipVar]OwnershipVar),
		groupVars:     make(map[GroupVar]GroupVar),
	}
}

func (n *Normalizer) renameOwnership(v OwnershipVar) OwnershipVar {
	if r, ok := n.ownershipVars[v]; ok {
		return r
	}
	r := n.alloc.NextOwnershipVar()
	n.ownershipVars[v] = r
	return r
}

func (n *Normalizer) renameGroup(g GroupVar) GroupVar {
	if r, ok := n.groupVars[g]; ok {
		return r
	}
	r := n.alloc.NextGroupVar()
	n.groupVars[g] = r
	return r
}

func (n *Normalizer) renameTypeVariableInfo(t TypeVariableInfo) TypeVariableInfo {
	return TypeVariableInfo{
		OwnershipVar: n.renameOwnership(t.OwnershipVar),
		GroupVar:     n.renameGroup(t.GroupVar),
	}
}

// collectChildMembers implements the pseudocode in §4.8 step 3: emit every
// immediate child of parentGroup (sorted by field index) renamed through
// n, then recurse into each child's descendants in that same child order.
// This two-pass shape — all siblings before any grandchildren — is the
// load-bearing ordering downstream phases depend on.
func collectChildMembers(n *Normalizer, members []MemberInfo, parentGroup GroupVar) []MemberInfo {
	var children []MemberInfo
	for _, m := range members {
		if m.Root == parentGroup {
			children = append(children, m)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Kind.Index < children[j].Kind.Index
	})

	out := make([]MemberInfo, 0, len(children))
	for _, c := range children {
		out = append(out, MemberInfo{
			Root: n.renameGroup(c.Root),
			Kind: c.Kind,
			Info: n.renameTypeVariableInfo(c.Info),
		})
	}
	for _, c := range children {
		out = append(out, collectChildMembers(n, members, c.Info.GroupVar)...)
	}
	return out
}

// normalizeFunctionOwnershipSignature implements §4.8 in full: filter to
// only-borrowing members, canonicalize args/result, collect canonical
// members per argument, and assemble the final signature.
func normalizeFunctionOwnershipSignature(draftArgs []TypeVariableInfo, draftResult TypeVariableInfo, allMembers []MemberInfo, deps OwnershipDependencies, kinds Ownerships) (*OwnershipSignature, *ownerrors.InferenceError) {
	onlyBorrowing, borrows, err := filterOutBorrowingMembers(draftArgs, allMembers, deps, kinds)
	if err != nil {
		return nil, err
	}

	n := NewNormalizer()

	args := make([]TypeVariableInfo, len(draftArgs))
	for i, a := range draftArgs {
		args[i] = n.renameTypeVariableInfo(a)
	}
	result := n.renameTypeVariableInfo(draftResult)

	var members []MemberInfo
	for _, a := range draftArgs {
		members = append(members, collectChildMembers(n, onlyBorrowing, a.GroupVar)...)
	}

	// borrows is carried through un-renamed: it names ownership variables
	// from the pre-canonicalization input space, matching the source's own
	// behavior of returning the filter step's borrow set as-is.
	return &OwnershipSignature{
		Args:      args,
		Result:    result,
		Members:   members,
		Borrows:   borrows,
		Allocator: n.alloc,
	}, nil
}
