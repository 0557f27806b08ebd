package parser

import "testing"

func TestParseLineAssignment(t *testing.T) {
	instr, err := ParseLine([]string{"=", "v0", "10"}, 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if instr.Op != OpAssign || instr.Target != "v0" || instr.A != "10" {
		t.Errorf("ParseLine(=) = %+v", instr)
	}
}

func TestParseFunctionDef(t *testing.T) {
	code := "\n# 0 1 {\n+ v0 a0 1\n^ v0\n}\n"
	prog, err := Parse(code)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Instructions) != 0 {
		t.Errorf("top-level instructions = %d, want 0", len(prog.Instructions))
	}
	fn, ok := prog.Functions[0]
	if !ok {
		t.Fatalf("function 0 not registered")
	}
	if fn.Argc != 1 || len(fn.Body) != 2 {
		t.Errorf("function 0 = %+v", fn)
	}
}

func TestParseNestedFunctionDefDepth(t *testing.T) {
	code := "# 0 0 {\n# 1 0 {\n^ 0\n}\n^ 0\n}\n"
	prog, err := Parse(code)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn0 := prog.Functions[0]
	if fn0 == nil {
		t.Fatalf("function 0 missing")
	}
	// The nested "# 1 0 {" / "}" pair is recorded inside fn0's body
	// verbatim (the parser only tracks brace depth to find fn0's own
	// closing brace); fn1 is never separately registered by this
	// top-level parse because the nested header never reaches the
	// top-level dispatch loop.
	foundNested := false
	for _, instr := range fn0.Body {
		if instr.Op == OpFuncDef && instr.FuncID == 1 {
			foundNested = true
		}
	}
	if !foundNested {
		t.Errorf("expected nested #1 header inside fn0 body, got %+v", fn0.Body)
	}
}

func TestParseUnmatchedBrace(t *testing.T) {
	_, err := Parse("# 0 1 {\n^ v0\n")
	if err == nil {
		t.Fatalf("expected UnmatchedBrace error")
	}
	pe, ok := err.(*Error)
	if !ok || pe.Kind != ErrorUnmatchedBrace {
		t.Errorf("err = %v, want UnmatchedBrace", err)
	}
}

func TestParseInvalidFunctionDef(t *testing.T) {
	_, err := ParseLine([]string{"#", "0", "1"}, 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	pe := err.(*Error)
	if pe.Kind != ErrorInvalidFunctionDef {
		t.Errorf("kind = %v, want InvalidFunctionDef", pe.Kind)
	}
}

func TestParseArrayWriteVsBlockPlaceholder(t *testing.T) {
	write, err := ParseLine([]string{"{", "v0", "2", "42"}, 1)
	if err != nil || write.Op != OpArrayWrite {
		t.Fatalf("array write: %+v, %v", write, err)
	}

	placeholder, err := ParseLine([]string{"{"}, 1)
	if err != nil || placeholder.Op != OpNoop {
		t.Fatalf("placeholder: %+v, %v", placeholder, err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	code := "= v0\n+ v1 v0\nbogus\n= v2 5\n"
	el := Validate(code)
	if len(el.Errors) != 3 {
		t.Fatalf("Validate found %d errors, want 3: %v", len(el.Errors), el.Errors)
	}
}

func TestValidateAgreesWithParseOnLineNumbers(t *testing.T) {
	code := "= v0 1\nbogus\n"
	_, err := Parse(code)
	if err == nil {
		t.Fatalf("expected Parse to fail")
	}
	pe := err.(*Error)

	el := Validate(code)
	if !el.HasErrors() {
		t.Fatalf("Validate found no errors")
	}
	if el.Errors[0].Pos.Line != pe.Pos.Line {
		t.Errorf("Validate line %d != Parse line %d", el.Errors[0].Pos.Line, pe.Pos.Line)
	}
}

func TestInvalidInstruction(t *testing.T) {
	_, err := ParseLine([]string{"Z", "v0"}, 5)
	pe, ok := err.(*Error)
	if !ok || pe.Kind != ErrorInvalidInstruction || pe.Pos.Line != 5 {
		t.Errorf("err = %+v", err)
	}
}

func TestMissingArguments(t *testing.T) {
	_, err := ParseLine([]string{"+", "v0", "v1"}, 3)
	pe, ok := err.(*Error)
	if !ok || pe.Kind != ErrorMissingArguments {
		t.Errorf("err = %+v", err)
	}
}
