package ownership

import "fmt"

// MemberKind discriminates the projection a MemberInfo step performs.
// Presently only field projection exists; the model stays open to adding
// a variant/enum projection kind alongside it (§3.3).
type MemberKind struct {
	Index int
}

func (k MemberKind) String() string { return fmt.Sprintf("Field(%d)", k.Index) }

// MemberInfo records one projection step: Root is the group of the value
// being projected, Kind names the projection, and Info is the (ownership,
// group) pair the projection produces.
//
// A chain of MemberInfo is well-formed iff, for every element after the
// first, its Root equals the predecessor's Info.GroupVar (§3.3, invariant
// 1 in §8).
type MemberInfo struct {
	Root GroupVar
	Kind MemberKind
	Info TypeVariableInfo
}

func (m MemberInfo) String() string {
	return fmt.Sprintf("%s.%s -> %s", m.Root, m.Kind, m.Info)
}

// wellFormedChain reports whether chain satisfies the MemberInfo
// well-formedness invariant: each element after the first roots at its
// predecessor's produced group.
func wellFormedChain(chain []MemberInfo) bool {
	for i := 1; i < len(chain); i++ {
		if chain[i].Root != chain[i-1].Info.GroupVar {
			return false
		}
	}
	return true
}
