// This file is part of isavm.
//
// Copyright 2016 The isavm Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"strconv"

	"github.com/mrsharp/isavm/isa"
)

// operandForm is the syntactic shape a push/pop operand token took, per the
// pattern table: [rN], [K], rN, K, [name], name.
type operandForm int

const (
	formRegMem operandForm = iota // [rN]  -> REG|MEM, 1-byte register index
	formMemImm                    // [K]   -> MEM, 8-byte absolute address
	formReg                       // rN    -> REG, 1-byte register index
	formImm                       // K     -> none, 8-byte two's-complement literal
	formMemName                   // [name] -> MEM, 8-byte reservation base
	formName                      // name  -> none, 8-byte reservation base
)

// operand is the parsed, but not yet symbol-resolved, form of a push/pop
// argument token.
type operand struct {
	form operandForm
	reg  uint8
	addr uint64
	imm  int64
	name string
}

var errBadArgument = simpleError("unparseable push/pop operand")

// parseOperand classifies tok into one of the six push/pop operand forms.
// It performs no symbol-table lookups: [name] and name forms are only
// checked for valid (non-empty alphanumeric) syntax here; resolving them
// against the reservation table happens in the translator.
func parseOperand(tok string) (operand, error) {
	if len(tok) >= 2 && tok[0] == '[' && tok[len(tok)-1] == ']' {
		inner := tok[1 : len(tok)-1]
		if inner == "" {
			return operand{}, errBadArgument
		}
		if reg, ok := parseRegisterRef(inner); ok {
			return operand{form: formRegMem, reg: reg}, nil
		}
		if addr, ok := parseUnsignedDecimal(inner); ok {
			if addr >= isa.MemorySize {
				return operand{}, simpleError("memory address out of range: " + inner)
			}
			return operand{form: formMemImm, addr: addr}, nil
		}
		if isAlnum(inner) {
			return operand{form: formMemName, name: inner}, nil
		}
		return operand{}, errBadArgument
	}

	if reg, ok := parseRegisterRef(tok); ok {
		return operand{form: formReg, reg: reg}, nil
	}
	if imm, ok := parseSignedDecimal(tok); ok {
		return operand{form: formImm, imm: imm}, nil
	}
	if isAlnum(tok) {
		return operand{form: formName, name: tok}, nil
	}
	return operand{}, errBadArgument
}

// parseRegisterRef recognizes "r" followed by one or more decimal digits,
// with the resulting value in [0, 255].
func parseRegisterRef(s string) (uint8, bool) {
	if len(s) < 2 || s[0] != 'r' {
		return 0, false
	}
	digits := s[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil || n > 255 {
		return 0, false
	}
	return uint8(n), true
}

func parseUnsignedDecimal(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseSignedDecimal(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
