// Package irfixture reads and writes the on-disk JSON form of IR functions
// used by the ownerinfer command and by tests that want fixtures on disk
// rather than built in Go. This format has no bearing on the ownership
// core itself (internal/ownership consumes *ir.Function values however
// they were constructed); it exists purely as this tool's ambient I/O
// layer.
package irfixture

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/siko-lang/ownerinfer/internal/ir"
)

// Example document shape:
//
//	{
//	  "name": "first",
//	  "params": ["p"],
//	  "blocks": [
//	    {"id": 0, "instructions": [
//	      {"id": 0, "kind": "block_begin"},
//	      {"id": 1, "kind": "value_ref", "name": "p", "arg": true},
//	      {"id": 2, "kind": "member_access", "receiver": 1, "index": 0},
//	      {"id": 3, "kind": "block_end"}
//	    ]}
//	  ]
//	}
const (
	kindValueRef     = "value_ref"
	kindBind         = "bind"
	kindMemberAccess = "member_access"
	kindCall         = "call"
	kindIf           = "if"
	kindBlockRef     = "block_ref"
	kindConverter    = "converter"
	kindNop          = "nop"
	kindDropVar      = "drop_var"
	kindLiteral      = "literal"
	kindBlockBegin   = "block_begin"
	kindBlockEnd     = "block_end"
)

// ParseFunction decodes one JSON IR document into an *ir.Function, ready
// for the ownership core (Build is called before it's returned).
func ParseFunction(doc []byte) (*ir.Function, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("irfixture: invalid JSON document")
	}
	root := gjson.ParseBytes(doc)

	fn := &ir.Function{Name: root.Get("name").String()}
	for _, p := range root.Get("params").Array() {
		fn.Params = append(fn.Params, ir.Param{Name: p.String()})
	}

	for _, b := range root.Get("blocks").Array() {
		block := &ir.Block{ID: ir.BlockID(b.Get("id").Int())}
		for _, i := range b.Get("instructions").Array() {
			inst, err := parseInstruction(i)
			if err != nil {
				return nil, fmt.Errorf("irfixture: function %q, block %d: %w", fn.Name, block.ID, err)
			}
			block.Instructions = append(block.Instructions, inst)
		}
		fn.Blocks = append(fn.Blocks, block)
	}

	fn.Build()
	return fn, nil
}

func parseInstruction(v gjson.Result) (ir.Instruction, error) {
	id := ir.NewID(int(v.Get("id").Int()))
	switch kind := v.Get("kind").String(); kind {
	case kindValueRef:
		var indices []int
		for _, idx := range v.Get("indices").Array() {
			indices = append(indices, int(idx.Int()))
		}
		return ir.NewInstruction(&ir.ValueRef{
			Name:    ir.Name{Value: v.Get("name").String(), Arg: v.Get("arg").Bool()},
			BindID:  ir.NewID(int(v.Get("bind_id").Int())),
			Indices: indices,
		}, id), nil
	case kindBind:
		return ir.NewInstruction(&ir.Bind{
			Name: v.Get("name").String(),
			RHS:  ir.NewID(int(v.Get("rhs").Int())),
		}, id), nil
	case kindMemberAccess:
		return ir.NewInstruction(&ir.MemberAccess{
			Receiver: ir.NewID(int(v.Get("receiver").Int())),
			Index:    int(v.Get("index").Int()),
		}, id), nil
	case kindCall:
		var args []ir.InstructionID
		for _, a := range v.Get("args").Array() {
			args = append(args, ir.NewID(int(a.Int())))
		}
		return ir.NewInstruction(&ir.NamedFunctionCall{
			Name: v.Get("name").String(),
			Args: args,
			Ctor: v.Get("ctor").Bool(),
		}, id), nil
	case kindIf:
		return ir.NewInstruction(&ir.If{
			Cond:       ir.NewID(int(v.Get("cond").Int())),
			TrueBlock:  ir.BlockID(v.Get("true_block").Int()),
			FalseBlock: ir.BlockID(v.Get("false_block").Int()),
		}, id), nil
	case kindBlockRef:
		return ir.NewInstruction(&ir.BlockRef{Block: ir.BlockID(v.Get("block").Int())}, id), nil
	case kindConverter:
		return ir.NewInstruction(&ir.Converter{Arg: ir.NewID(int(v.Get("arg").Int()))}, id), nil
	case kindNop:
		return ir.NewInstruction(&ir.Nop{}, id), nil
	case kindDropVar:
		return ir.NewInstruction(&ir.DropVar{Name: v.Get("name").String()}, id), nil
	case kindLiteral:
		return ir.NewInstruction(&ir.Literal{Value: v.Get("value").Value()}, id), nil
	case kindBlockBegin:
		return ir.NewInstruction(&ir.BlockBegin{}, id), nil
	case kindBlockEnd:
		return ir.NewInstruction(&ir.BlockEnd{}, id), nil
	default:
		return nil, fmt.Errorf("unrecognized instruction kind %q at $%d", kind, id)
	}
}
