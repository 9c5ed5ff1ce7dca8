package ownership

import (
	"fmt"

	ownerrors "github.com/siko-lang/ownerinfer/internal/errors"
	"github.com/siko-lang/ownerinfer/internal/ir"
)

const stageOrchestrator = "orchestrator"

// FunctionInputs is what a caller must supply per function beyond its IR
// (§6): the ownership dependency map and resolved ownership kinds that
// earlier, out-of-scope phases are responsible for producing.
type FunctionInputs struct {
	Dependencies OwnershipDependencies
	Kinds        Ownerships
}

// FunctionResult is one function's pipeline output: its normalized
// signature, the individual data-flow paths that fed it (kept for
// inspection and tests), and any non-fatal notes the symbolic value
// builder recorded along the way.
type FunctionResult struct {
	Function    string
	Signature   *OwnershipSignature
	Paths       []DataFlowPath
	Diagnostics Diagnostics
}

// Orchestrator runs the ownership inference pipeline over one or more
// functions (§4.9). It holds no state between calls — nothing about one
// function's run influences another's.
type Orchestrator struct{}

func NewOrchestrator() *Orchestrator { return &Orchestrator{} }

// RunFunction drives the full pipeline for one function: dependency
// extraction, path enumeration, symbolic value construction, normalize
// and validity filtering, path splitting, and signature normalization.
//
// Each DataFlowPath minted by the path splitter roots its src/dest
// chains at a fresh per-path argument and result TypeVariableInfo (§4.7).
// Those are re-rooted here under the function's own per-parameter and
// per-result TypeVariableInfo, one minted once per function from a
// single shared Allocator, so that members contributed by different
// paths through the same argument compose into one function-level
// member set before §4.8 runs. This composition step is this
// implementation's own resolution of how per-path splitting feeds a
// function-level signature; the source this pipeline follows does not
// carry that wiring past the level of individual paths.
func (o *Orchestrator) RunFunction(fn *ir.Function, inputs FunctionInputs) (*FunctionResult, *ownerrors.InferenceError) {
	alloc := NewAllocator()
	diag := &Diagnostics{}

	deps, order, err := dataFlowDependencies(fn)
	if err != nil {
		return nil, err
	}

	rawPaths, _, enumErr := enumeratePaths(fn, order, deps)
	if enumErr != nil {
		return nil, ownerrors.NewInferenceError(ownerrors.Precondition, fn.Name, stageOrchestrator, enumErr.Error())
	}

	draftArgs := make(map[string]TypeVariableInfo, len(fn.Params))
	draftArgsOrdered := make([]TypeVariableInfo, len(fn.Params))
	for i, p := range fn.Params {
		tv := alloc.NextTypeVariableInfo()
		draftArgs[p.Name] = tv
		draftArgsOrdered[i] = tv
	}
	draftResult := alloc.NextTypeVariableInfo()

	var dataFlowPaths []DataFlowPath
	var allMembers []MemberInfo
	for _, p := range rawPaths {
		sv := buildSymbolicValue(fn, p, diag)
		sv = normalizeToFixedPoint(sv)
		if !sv.valid() {
			continue
		}

		dfp := splitPath(sv, alloc)

		argName, nameErr := pathArgumentName(fn, p[0])
		if nameErr != nil {
			return nil, ownerrors.NewInferenceError(ownerrors.Structural, fn.Name, stageOrchestrator, nameErr.Error())
		}
		paramTV, ok := draftArgs[argName]
		if !ok {
			return nil, ownerrors.NewInferenceError(ownerrors.Precondition, fn.Name, stageOrchestrator,
				fmt.Sprintf("path rooted at $%d names %q, which is not a declared parameter", p[0], argName))
		}

		src := rerootChain(dfp.Src, dfp.Arg.GroupVar, paramTV.GroupVar)
		dest := rerootChain(dfp.Dest, dfp.Result.GroupVar, draftResult.GroupVar)
		dfp.Arg, dfp.Result, dfp.Src, dfp.Dest = paramTV, draftResult, src, dest

		dataFlowPaths = append(dataFlowPaths, dfp)
		allMembers = append(allMembers, src...)
		allMembers = append(allMembers, dest...)
	}

	sig, sigErr := normalizeFunctionOwnershipSignature(draftArgsOrdered, draftResult, allMembers, inputs.Dependencies, inputs.Kinds)
	if sigErr != nil {
		return nil, sigErr.Wrap(stageOrchestrator, fn.Name)
	}

	return &FunctionResult{Function: fn.Name, Signature: sig, Paths: dataFlowPaths, Diagnostics: *diag}, nil
}

// pathArgumentName recovers the formal-parameter name a path starts from.
func pathArgumentName(fn *ir.Function, rootID ir.InstructionID) (string, error) {
	vr, ok := fn.Instruction(rootID).(*ir.ValueRef)
	if !ok || !vr.Name.Arg {
		return "", fmt.Errorf("instruction $%d is not an argument reference", rootID)
	}
	return vr.Name.Value, nil
}

// rerootChain replaces a chain's first element's root (the only element
// whose root names the path-local arg/result group) with to, leaving the
// rest of the chain — which is self-consistent relative to its own
// members — untouched.
func rerootChain(chain []MemberInfo, from, to GroupVar) []MemberInfo {
	if len(chain) == 0 {
		return chain
	}
	out := make([]MemberInfo, len(chain))
	copy(out, chain)
	if out[0].Root == from {
		out[0].Root = to
	}
	return out
}

// ProgramInputs supplies FunctionInputs for every function in a program,
// keyed by function name.
type ProgramInputs map[string]FunctionInputs

// ProgramResult is the aggregate outcome of running every function in a
// program. A function whose pipeline fails contributes its error to
// Errors and is absent from Functions; it does not abort the remaining
// functions (§4.9: "for each function ... in any order").
type ProgramResult struct {
	Functions map[string]*FunctionResult
	Errors    []*ownerrors.InferenceError
}

// RunProgram runs RunFunction over every function in prog.
func (o *Orchestrator) RunProgram(prog *ir.Program, inputs ProgramInputs) *ProgramResult {
	result := &ProgramResult{Functions: make(map[string]*FunctionResult, len(prog.Functions))}
	for _, fn := range prog.Functions {
		fr, err := o.RunFunction(fn, inputs[fn.Name])
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Functions[fn.Name] = fr
	}
	return result
}
