package ownership

import "fmt"

// OwnershipVar is an opaque identity whose resolved kind (once the earlier
// ownership phases run) is either Owner or a Borrow from some GroupVar.
// Only Allocator mints them. The zero value equals the first OwnershipVar
// an Allocator mints (o0), so it does not mark an unset variable.
type OwnershipVar struct{ id int }

func (v OwnershipVar) String() string { return fmt.Sprintf("o%d", v.id) }

// GroupVar is an opaque identity denoting a lifetime region: the set of
// values that share a lifetime. Like OwnershipVar, only Allocator mints
// them, and the zero value equals the first one minted (g0).
type GroupVar struct{ id int }

func (v GroupVar) String() string { return fmt.Sprintf("g%d", v.id) }

// TypeVariableInfo pairs an ownership variable with a group variable.
// Allocator mints the pair atomically so that fresh information is always
// uncorrelated with anything minted before it.
type TypeVariableInfo struct {
	OwnershipVar OwnershipVar
	GroupVar     GroupVar
}

func (t TypeVariableInfo) String() string {
	return fmt.Sprintf("(%s, %s)", t.OwnershipVar, t.GroupVar)
}

// Allocator mints fresh OwnershipVar, GroupVar, and TypeVariableInfo
// values. Identities minted by one Allocator are monotone and unique
// within that instance; two distinct Allocators produce identities that
// must never be compared or mixed (every ownership/group variable in a
// signature is minted by the one Allocator used for that signature's
// normalization). Allocator has no internal synchronization — the
// pipeline is single-threaded per function, and each function gets its
// own Allocator (§5).
type Allocator struct {
	nextOwnership int
	nextGroup     int
}

// NewAllocator returns an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NextOwnershipVar mints a fresh OwnershipVar.
func (a *Allocator) NextOwnershipVar() OwnershipVar {
	v := OwnershipVar{id: a.nextOwnership}
	a.nextOwnership++
	return v
}

// NextGroupVar mints a fresh GroupVar.
func (a *Allocator) NextGroupVar() GroupVar {
	v := GroupVar{id: a.nextGroup}
	a.nextGroup++
	return v
}

// NextTypeVariableInfo mints a fresh (ownership, group) pair.
func (a *Allocator) NextTypeVariableInfo() TypeVariableInfo {
	return TypeVariableInfo{
		OwnershipVar: a.NextOwnershipVar(),
		GroupVar:     a.NextGroupVar(),
	}
}
