// Package ir defines the mid-level intermediate representation consumed by
// the ownership inference pipeline (internal/ownership). It is a narrow,
// immutable model: a function is an ordered list of blocks, each an ordered
// list of instructions with dense, small integer ids. Name resolution,
// typechecking, and earlier ownership phases all happen before a Function
// value reaches this package; ir itself performs no analysis.
package ir

import "fmt"

// InstructionID names one instruction within a function. Ids are dense and
// ordered by declaration, a property the dependency processor and path
// enumerator rely on for deterministic iteration.
type InstructionID int

// BlockID names one block within a function.
type BlockID int

// Name is a binding reference: either a formal parameter of the enclosing
// function (Arg true) or a local name introduced by a Bind instruction.
type Name struct {
	Value string
	Arg   bool
}

// Instruction is the closed set of IR operations the ownership core reads.
// Every concrete instruction embeds base, which supplies ID().
type Instruction interface {
	ID() InstructionID
	instructionNode()
}

type base struct {
	id InstructionID
}

// ID returns the instruction's id.
func (b base) ID() InstructionID { return b.id }

// NewID is a convenience for constructing instructions with a given id.
func NewID(id int) InstructionID { return InstructionID(id) }

// ValueRef reads a named binding or argument, optionally followed by a
// chain of field indices (e.g. the lowered form of `x.0.1`).
type ValueRef struct {
	base
	Name Name
	// BindID is the instruction id that defines Name when Name.Arg is
	// false. It is ignored for argument references.
	BindID  InstructionID
	Indices []int
}

func (*ValueRef) instructionNode() {}

func (v *ValueRef) String() string {
	if len(v.Indices) == 0 {
		return v.Name.Value
	}
	return fmt.Sprintf("%s%v", v.Name.Value, v.Indices)
}

// Bind names the value produced by rhs.
type Bind struct {
	base
	Name string
	RHS  InstructionID
}

func (*Bind) instructionNode() {}

func (b *Bind) String() string { return fmt.Sprintf("%s = $%d", b.Name, b.RHS) }

// MemberAccess projects field Index off Receiver.
type MemberAccess struct {
	base
	Receiver InstructionID
	Index    int
}

func (*MemberAccess) instructionNode() {}

func (m *MemberAccess) String() string { return fmt.Sprintf("$%d.%d", m.Receiver, m.Index) }

// NamedFunctionCall calls a statically-named function or, when Ctor is
// true, constructs a record/enum variant whose fields are Args in order.
type NamedFunctionCall struct {
	base
	Name string
	Args []InstructionID
	Ctor bool
}

func (*NamedFunctionCall) instructionNode() {}

func (c *NamedFunctionCall) String() string { return fmt.Sprintf("%s(%v)", c.Name, c.Args) }

// If branches on Cond, taking TrueBlock or FalseBlock.
type If struct {
	base
	Cond       InstructionID
	TrueBlock  BlockID
	FalseBlock BlockID
}

func (*If) instructionNode() {}

func (i *If) String() string {
	return fmt.Sprintf("if $%d then b%d else b%d", i.Cond, i.TrueBlock, i.FalseBlock)
}

// BlockRef evaluates Block and yields its last real instruction's value.
type BlockRef struct {
	base
	Block BlockID
}

func (*BlockRef) instructionNode() {}

func (r *BlockRef) String() string { return fmt.Sprintf("block b%d", r.Block) }

// Converter performs an implicit conversion of Arg's value. It is a
// passthrough for ownership purposes (see SPEC_FULL.md, Supplemented
// Features).
type Converter struct {
	base
	Arg InstructionID
}

func (*Converter) instructionNode() {}

func (c *Converter) String() string { return fmt.Sprintf("convert $%d", c.Arg) }

// Nop, DropVar, Literal, BlockBegin, and BlockEnd are passthrough
// instructions: they contribute no data-flow dependency and the symbolic
// value builder never rewrites them.
type Nop struct{ base }

func (*Nop) instructionNode() {}
func (*Nop) String() string   { return "nop" }

// DropVar marks the end of Name's lifetime; it carries no value.
type DropVar struct {
	base
	Name string
}

func (*DropVar) instructionNode() {}
func (d *DropVar) String() string { return fmt.Sprintf("drop %s", d.Name) }

// Literal is a constant value with no data-flow dependencies.
type Literal struct {
	base
	Value any
}

func (*Literal) instructionNode() {}
func (l *Literal) String() string { return fmt.Sprintf("%v", l.Value) }

// BlockBegin and BlockEnd bracket a block's real instructions.
type BlockBegin struct{ base }

func (*BlockBegin) instructionNode() {}
func (*BlockBegin) String() string   { return "<block begin>" }

type BlockEnd struct{ base }

func (*BlockEnd) instructionNode() {}
func (*BlockEnd) String() string   { return "<block end>" }

// NewInstruction attaches id to inst and returns it, for use by fixture
// builders and tests that construct a Function by hand.
func NewInstruction(inst Instruction, id InstructionID) Instruction {
	switch v := inst.(type) {
	case *ValueRef:
		v.id = id
	case *Bind:
		v.id = id
	case *MemberAccess:
		v.id = id
	case *NamedFunctionCall:
		v.id = id
	case *If:
		v.id = id
	case *BlockRef:
		v.id = id
	case *Converter:
		v.id = id
	case *Nop:
		v.id = id
	case *DropVar:
		v.id = id
	case *Literal:
		v.id = id
	case *BlockBegin:
		v.id = id
	case *BlockEnd:
		v.id = id
	default:
		panic(fmt.Sprintf("ir: NewInstruction: unhandled instruction type %T", inst))
	}
	return inst
}
