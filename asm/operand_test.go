package asm

import "testing"

func TestParseOperandForms(t *testing.T) {
	cases := []struct {
		tok  string
		form operandForm
		ok   bool
	}{
		{"[r3]", formRegMem, true},
		{"[1024]", formMemImm, true},
		{"r7", formReg, true},
		{"-12", formImm, true},
		{"42", formImm, true},
		{"[buffer]", formMemName, true},
		{"buffer", formName, true},
		{"[]", 0, false},
		{"[r3", 0, false},
		{"$$$", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		opd, err := parseOperand(c.tok)
		if !c.ok {
			if err == nil {
				t.Errorf("parseOperand(%q): expected error, got %+v", c.tok, opd)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOperand(%q): unexpected error: %v", c.tok, err)
			continue
		}
		if opd.form != c.form {
			t.Errorf("parseOperand(%q): form = %v, want %v", c.tok, opd.form, c.form)
		}
	}
}

func TestParseOperandRegisterRange(t *testing.T) {
	opd, err := parseOperand("r255")
	if err != nil || opd.form != formReg || opd.reg != 255 {
		t.Fatalf("parseOperand(r255) = %+v, %v", opd, err)
	}
	if _, err := parseOperand("r256"); err == nil {
		t.Fatalf("parseOperand(r256): expected error")
	}
}

func TestParseOperandMemImmRangeIsEnforcedHere(t *testing.T) {
	// out-of-range [K] literals are rejected by parseOperand directly, since
	// the bound (VM memory size) is known independent of any symbol table.
	if _, err := parseOperand("[65536]"); err == nil {
		t.Fatalf("parseOperand([65536]): expected out-of-range error")
	}
	opd, err := parseOperand("[65535]")
	if err != nil || opd.addr != 65535 {
		t.Fatalf("parseOperand([65535]) = %+v, %v", opd, err)
	}
}

func TestIsAlnum(t *testing.T) {
	for _, s := range []string{"buffer", "Buffer2", "0"} {
		if !isAlnum(s) {
			t.Errorf("isAlnum(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "buf-fer", "buf fer", "buf.fer"} {
		if isAlnum(s) {
			t.Errorf("isAlnum(%q) = true, want false", s)
		}
	}
}
