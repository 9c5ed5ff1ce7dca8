// Package ownership implements the static ownership and borrow inference
// pipeline described in SPEC_FULL.md: given a typechecked mid-level IR
// function (internal/ir) and the per-group/per-ownership-variable maps
// delivered by earlier ownership phases, it derives which parts of a
// function's result borrow from which parts of which argument.
//
// The pipeline is a strictly linear pass over one function at a time:
//
//	dataFlowDependencies -> enumeratePaths -> (per path) buildSymbolicValue
//	-> normalizeToFixedPoint -> validity check -> splitPath
//	-> normalizeFunctionOwnershipSignature
//
// No component runs concurrently with another, and no mutable state is
// shared across functions; RunProgram processes the functions of a Program in
// order, but nothing prevents a caller from sharding that loop across
// goroutines itself (§5).
package ownership
