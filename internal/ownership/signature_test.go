package ownership

import "testing"

// buildMember constructs a MemberInfo directly from raw allocator output,
// for tests that need full control over root/ownership/group identities
// without running the earlier pipeline stages.
func buildMember(root GroupVar, index int, info TypeVariableInfo) MemberInfo {
	return MemberInfo{Root: root, Kind: MemberKind{Index: index}, Info: info}
}

func TestFilterOutBorrowingMembers_RetainsOnlyBorrowPaths(t *testing.T) {
	alloc := NewAllocator()
	argTV := alloc.NextTypeVariableInfo()
	tv0 := alloc.NextTypeVariableInfo() // m0: Borrow
	tv1 := alloc.NextTypeVariableInfo() // m1: Borrow
	tv2 := alloc.NextTypeVariableInfo() // m2: Owner, child of m0

	m0 := buildMember(argTV.GroupVar, 0, tv0)
	m1 := buildMember(argTV.GroupVar, 1, tv1)
	m2 := buildMember(tv0.GroupVar, 0, tv2)
	members := []MemberInfo{m0, m1, m2}

	deps := OwnershipDependencies{
		argTV.GroupVar: {tv0.OwnershipVar, tv1.OwnershipVar, tv2.OwnershipVar},
		tv0.GroupVar:   nil,
		tv1.GroupVar:   nil,
		tv2.GroupVar:   nil,
	}
	kinds := Ownerships{
		tv0.OwnershipVar: {Kind: Borrow},
		tv1.OwnershipVar: {Kind: Borrow},
		tv2.OwnershipVar: {Kind: Owner},
	}

	only, borrows, err := filterOutBorrowingMembers([]TypeVariableInfo{argTV}, members, deps, kinds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(only) != 2 {
		t.Fatalf("expected m0 and m1 to survive, m2 to be dropped, got %v", only)
	}
	if len(borrows) != 2 {
		t.Fatalf("expected two borrow ownership vars, got %v", borrows)
	}
}

func TestFilterOutBorrowingMembers_MissingKindIsPrecondition(t *testing.T) {
	alloc := NewAllocator()
	argTV := alloc.NextTypeVariableInfo()
	tv0 := alloc.NextTypeVariableInfo()
	m0 := buildMember(argTV.GroupVar, 0, tv0)

	deps := OwnershipDependencies{argTV.GroupVar: {tv0.OwnershipVar}}
	_, _, err := filterOutBorrowingMembers([]TypeVariableInfo{argTV}, []MemberInfo{m0}, deps, Ownerships{})
	if err == nil {
		t.Fatalf("expected a precondition error for a member with no recorded ownership kind")
	}
}

func TestNormalizeFunctionOwnershipSignature_CanonicalNumberingAndOrder(t *testing.T) {
	alloc := NewAllocator()
	argTV := alloc.NextTypeVariableInfo()
	resultTV := alloc.NextTypeVariableInfo()

	tv0 := alloc.NextTypeVariableInfo()
	tv1 := alloc.NextTypeVariableInfo()
	tv2 := alloc.NextTypeVariableInfo() // child of tv0, field 0
	tv3 := alloc.NextTypeVariableInfo() // child of tv1, field 2

	m0 := buildMember(argTV.GroupVar, 1, tv0) // note: declared out of index order
	m1 := buildMember(argTV.GroupVar, 0, tv1)
	m2 := buildMember(tv0.GroupVar, 0, tv2)
	m3 := buildMember(tv1.GroupVar, 2, tv3)
	members := []MemberInfo{m0, m1, m2, m3}

	deps := OwnershipDependencies{
		argTV.GroupVar: {tv0.OwnershipVar, tv1.OwnershipVar, tv2.OwnershipVar, tv3.OwnershipVar},
		tv0.GroupVar:   nil,
		tv1.GroupVar:   nil,
		tv2.GroupVar:   nil,
		tv3.GroupVar:   nil,
	}
	kinds := Ownerships{
		tv0.OwnershipVar: {Kind: Borrow},
		tv1.OwnershipVar: {Kind: Borrow},
		tv2.OwnershipVar: {Kind: Borrow},
		tv3.OwnershipVar: {Kind: Borrow},
	}

	sig, err := normalizeFunctionOwnershipSignature([]TypeVariableInfo{argTV}, resultTV, members, deps, kinds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantArg := TypeVariableInfo{OwnershipVar: OwnershipVar{id: 0}, GroupVar: GroupVar{id: 0}}
	wantResult := TypeVariableInfo{OwnershipVar: OwnershipVar{id: 1}, GroupVar: GroupVar{id: 1}}
	if sig.Args[0] != wantArg {
		t.Fatalf("expected canonical arg %s, got %s", wantArg, sig.Args[0])
	}
	if sig.Result != wantResult {
		t.Fatalf("expected canonical result %s, got %s", wantResult, sig.Result)
	}

	// Sibling order: m1 (field 0) before m0 (field 1), regardless of
	// declaration order, then a full descendant pass per sibling in that
	// same order (§8 invariant 9).
	if len(sig.Members) != 4 {
		t.Fatalf("expected 4 canonical members, got %d: %v", len(sig.Members), sig.Members)
	}
	if sig.Members[0].Kind.Index != 0 || sig.Members[1].Kind.Index != 1 {
		t.Fatalf("expected siblings ordered by field index (0 then 1), got %v", sig.Members[:2])
	}
	if sig.Members[2].Root != sig.Members[0].Info.GroupVar {
		t.Fatalf("expected m1's descendant to be emitted first after the sibling pass, got %v", sig.Members)
	}
	if sig.Members[3].Root != sig.Members[1].Info.GroupVar {
		t.Fatalf("expected m0's descendant to be emitted after m0 and its sibling's subtree, got %v", sig.Members)
	}

	// Re-running on the same pre-renaming input must be bitwise identical
	// (§8 invariant 4).
	sig2, err := normalizeFunctionOwnershipSignature([]TypeVariableInfo{argTV}, resultTV, members, deps, kinds)
	if err != nil {
		t.Fatalf("unexpected error on rerun: %v", err)
	}
	if sig.Args[0] != sig2.Args[0] || sig.Result != sig2.Result {
		t.Fatalf("expected stable canonical numbering across reruns")
	}
	for i := range sig.Members {
		if sig.Members[i] != sig2.Members[i] {
			t.Fatalf("expected identical member at index %d across reruns, got %v vs %v", i, sig.Members[i], sig2.Members[i])
		}
	}
}

// For a single linear projection chain (no sibling branching), the
// signature's member order is itself a well-formed chain per §3.3 — each
// member's root is its predecessor's produced group, bottoming out at the
// canonical argument group (§8 invariant 2).
func TestNormalizeFunctionOwnershipSignature_MembersRootWellFormed(t *testing.T) {
	alloc := NewAllocator()
	argTV := alloc.NextTypeVariableInfo()
	resultTV := alloc.NextTypeVariableInfo()
	tv0 := alloc.NextTypeVariableInfo()
	tv1 := alloc.NextTypeVariableInfo()

	m0 := buildMember(argTV.GroupVar, 0, tv0)
	m1 := buildMember(tv0.GroupVar, 0, tv1)
	members := []MemberInfo{m0, m1}
	deps := OwnershipDependencies{
		argTV.GroupVar: {tv0.OwnershipVar, tv1.OwnershipVar},
		tv0.GroupVar:   nil,
		tv1.GroupVar:   nil,
	}
	kinds := Ownerships{tv0.OwnershipVar: {Kind: Borrow}, tv1.OwnershipVar: {Kind: Borrow}}

	sig, err := normalizeFunctionOwnershipSignature([]TypeVariableInfo{argTV}, resultTV, members, deps, kinds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wellFormedChain(sig.Members) {
		t.Fatalf("expected well-formed member chain, got %v", sig.Members)
	}
	if sig.Members[0].Root != sig.Args[0].GroupVar {
		t.Fatalf("expected first member to root at the canonical arg group, got %v", sig.Members)
	}
}
