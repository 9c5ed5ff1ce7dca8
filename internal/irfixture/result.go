package irfixture

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/siko-lang/ownerinfer/internal/ownership"
)

// EncodeFunctionResult renders one function's inference result as a JSON
// document: the surviving data-flow paths and the canonical ownership
// signature, each as their String() form plus the structured fields a
// consumer is likely to want to filter or sort on.
func EncodeFunctionResult(res *ownership.FunctionResult) ([]byte, error) {
	doc := []byte("{}")
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	set("function", res.Function)
	set("signature", res.Signature.String())
	set("signature_args", len(res.Signature.Args))
	set("signature_borrows", len(res.Signature.Borrows))

	for i, p := range res.Paths {
		set(fmt.Sprintf("paths.%d.arg", i), p.Arg.String())
		set(fmt.Sprintf("paths.%d.result", i), p.Result.String())
		set(fmt.Sprintf("paths.%d.repr", i), p.String())
		set(fmt.Sprintf("paths.%d.src_members", i), len(p.Src))
		set(fmt.Sprintf("paths.%d.dest_members", i), len(p.Dest))
	}
	if len(res.Paths) == 0 {
		set("paths", []any{})
	}

	for i, n := range res.Diagnostics.Notes {
		set(fmt.Sprintf("diagnostics.%d", i), n)
	}
	if len(res.Diagnostics.Notes) == 0 {
		set("diagnostics", []any{})
	}

	if err != nil {
		return nil, fmt.Errorf("irfixture: encoding result for %q: %w", res.Function, err)
	}
	return []byte(doc), nil
}

// EncodeProgramResult renders every function in a ProgramResult keyed by
// name, plus a top-level list of any whole-function inference errors.
func EncodeProgramResult(res *ownership.ProgramResult) ([]byte, error) {
	doc := []byte("{}")
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	for name, fr := range res.Functions {
		encoded, encErr := EncodeFunctionResult(fr)
		if encErr != nil {
			return nil, encErr
		}
		if err != nil {
			continue
		}
		doc, err = sjson.SetRawBytes(doc, "functions."+sjsonEscape(name), encoded)
	}
	for i, e := range res.Errors {
		set(fmt.Sprintf("errors.%d", i), e.Error())
	}
	if len(res.Errors) == 0 {
		set("errors", []any{})
	}

	if err != nil {
		return nil, fmt.Errorf("irfixture: encoding program result: %w", err)
	}
	return doc, nil
}

// sjsonEscape guards function names that contain sjson path metacharacters
// (".", "*", "?") by wrapping them in its escaped-key form.
func sjsonEscape(name string) string {
	needsEscape := false
	for _, r := range name {
		switch r {
		case '.', '*', '?':
			needsEscape = true
		}
	}
	if !needsEscape {
		return name
	}
	escaped := make([]byte, 0, len(name)+2)
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '.', '*', '?':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, name[i])
	}
	return string(escaped)
}
