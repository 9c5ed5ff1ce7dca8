package ownership

import (
	"fmt"

	ownerrors "github.com/siko-lang/ownerinfer/internal/errors"
	"github.com/siko-lang/ownerinfer/internal/ir"
)

const stageDependencyExtractor = "data-flow dependency extractor"

// dataFlowDependencies builds, per §4.3, the data predecessors of every
// instruction in fn, plus the declaration-order instruction list the rest
// of the pipeline iterates over. An unrecognized instruction kind is a
// fatal structural-IR error.
func dataFlowDependencies(fn *ir.Function) (map[ir.InstructionID][]ir.InstructionID, []ir.InstructionID, *ownerrors.InferenceError) {
	deps := make(map[ir.InstructionID][]ir.InstructionID)
	var order []ir.InstructionID
	for _, block := range fn.Blocks {
		for _, inst := range block.Instructions {
			order = append(order, inst.ID())
			d, err := dependenciesOf(fn, inst)
			if err != nil {
				return nil, nil, err
			}
			deps[inst.ID()] = d
		}
	}
	return deps, order, nil
}

// dependenciesOf implements the table in §4.3.
func dependenciesOf(fn *ir.Function, inst ir.Instruction) ([]ir.InstructionID, *ownerrors.InferenceError) {
	switch i := inst.(type) {
	case *ir.ValueRef:
		if i.Name.Arg {
			return nil, nil
		}
		return []ir.InstructionID{i.BindID}, nil
	case *ir.Bind:
		return []ir.InstructionID{i.RHS}, nil
	case *ir.BlockRef:
		block := fn.Block(i.Block)
		last := block.LastReal()
		if last == nil {
			return nil, ownerrors.NewInferenceError(ownerrors.Precondition, fn.Name, stageDependencyExtractor,
				fmt.Sprintf("block b%d referenced by $%d has no real instructions", i.Block, i.ID()))
		}
		return []ir.InstructionID{last.ID()}, nil
	case *ir.NamedFunctionCall:
		return append([]ir.InstructionID(nil), i.Args...), nil
	case *ir.MemberAccess:
		return []ir.InstructionID{i.Receiver}, nil
	case *ir.If:
		trueBlock := fn.Block(i.TrueBlock)
		falseBlock := fn.Block(i.FalseBlock)
		trueLast, falseLast := trueBlock.LastReal(), falseBlock.LastReal()
		if trueLast == nil || falseLast == nil {
			return nil, ownerrors.NewInferenceError(ownerrors.Precondition, fn.Name, stageDependencyExtractor,
				fmt.Sprintf("a branch of $%d has no real instructions", i.ID()))
		}
		return []ir.InstructionID{trueLast.ID(), falseLast.ID()}, nil
	case *ir.Converter:
		return []ir.InstructionID{i.Arg}, nil
	case *ir.Literal, *ir.Nop, *ir.DropVar, *ir.BlockBegin, *ir.BlockEnd:
		return nil, nil
	default:
		return nil, ownerrors.NewInferenceError(ownerrors.Structural, fn.Name, stageDependencyExtractor,
			fmt.Sprintf("unhandled instruction kind %T at $%d", inst, inst.ID()))
	}
}
