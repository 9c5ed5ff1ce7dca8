package ownership

import "github.com/siko-lang/ownerinfer/internal/ir"

// argRef builds an argument ValueRef instruction with the given id and
// parameter name.
func argRef(id int, name string) ir.Instruction {
	return ir.NewInstruction(&ir.ValueRef{Name: ir.Name{Value: name, Arg: true}}, ir.NewID(id))
}

// localRef builds a non-argument ValueRef instruction naming a Bind.
func localRef(id int, name string, bindID int, indices ...int) ir.Instruction {
	return ir.NewInstruction(&ir.ValueRef{
		Name:    ir.Name{Value: name, Arg: false},
		BindID:  ir.NewID(bindID),
		Indices: indices,
	}, ir.NewID(id))
}

func bind(id int, name string, rhs int) ir.Instruction {
	return ir.NewInstruction(&ir.Bind{Name: name, RHS: ir.NewID(rhs)}, ir.NewID(id))
}

func memberAccess(id, receiver, index int) ir.Instruction {
	return ir.NewInstruction(&ir.MemberAccess{Receiver: ir.NewID(receiver), Index: index}, ir.NewID(id))
}

func ctorCall(id int, name string, args ...int) ir.Instruction {
	argIDs := make([]ir.InstructionID, len(args))
	for i, a := range args {
		argIDs[i] = ir.NewID(a)
	}
	return ir.NewInstruction(&ir.NamedFunctionCall{Name: name, Args: argIDs, Ctor: true}, ir.NewID(id))
}

func blockBegin(id int) ir.Instruction { return ir.NewInstruction(&ir.BlockBegin{}, ir.NewID(id)) }
func blockEnd(id int) ir.Instruction   { return ir.NewInstruction(&ir.BlockEnd{}, ir.NewID(id)) }

func ifInst(id, cond, trueBlock, falseBlock int) ir.Instruction {
	return ir.NewInstruction(&ir.If{Cond: ir.NewID(cond), TrueBlock: ir.BlockID(trueBlock), FalseBlock: ir.BlockID(falseBlock)}, ir.NewID(id))
}

func block(id int, insts ...ir.Instruction) *ir.Block {
	return &ir.Block{ID: ir.BlockID(id), Instructions: insts}
}

func fn(name string, params []string, blocks ...*ir.Block) *ir.Function {
	f := &ir.Function{Name: name}
	for _, p := range params {
		f.Params = append(f.Params, ir.Param{Name: p})
	}
	f.Blocks = blocks
	f.Build()
	return f
}

// identityFn builds `fn id(x) = x` (scenario A).
func identityFn() *ir.Function {
	return fn("id", []string{"x"},
		block(0, blockBegin(0), argRef(1, "x"), blockEnd(2)))
}

// projectionFn builds `fn first(p) = p.0` (scenario B).
func projectionFn() *ir.Function {
	return fn("first", []string{"p"},
		block(0, blockBegin(0), argRef(1, "p"), memberAccess(2, 1, 0), blockEnd(3)))
}

// constructorFn builds `fn wrap(x) = Box(x)` (scenario C).
func constructorFn() *ir.Function {
	return fn("wrap", []string{"x"},
		block(0, blockBegin(0), argRef(1, "x"), ctorCall(2, "Box", 1), blockEnd(3)))
}

// roundtripFn builds `fn roundtrip(x) = Box(x).0` (scenario D).
func roundtripFn() *ir.Function {
	return fn("roundtrip", []string{"x"},
		block(0, blockBegin(0), argRef(1, "x"), ctorCall(2, "Box", 1), memberAccess(3, 2, 0), blockEnd(4)))
}

// mismatchFn builds `fn mismatch(x) = Box(x).1` (scenario E).
func mismatchFn() *ir.Function {
	return fn("mismatch", []string{"x"},
		block(0, blockBegin(0), argRef(1, "x"), ctorCall(2, "Box", 1), memberAccess(3, 2, 1), blockEnd(4)))
}

// chooseFn builds `fn choose(b, x, y) = if b then x else y` (scenario F).
// The true branch yields x directly, the false branch yields y directly;
// both are argument ValueRefs local to their own block.
func chooseFn() *ir.Function {
	entry := block(0,
		blockBegin(0),
		argRef(1, "b"),
		ifInst(2, 1, 1, 2),
		blockEnd(3),
	)
	trueBlock := block(1,
		blockBegin(10),
		argRef(11, "x"),
		blockEnd(12),
	)
	falseBlock := block(2,
		blockBegin(20),
		argRef(21, "y"),
		blockEnd(22),
	)
	return fn("choose", []string{"b", "x", "y"}, entry, trueBlock, falseBlock)
}
