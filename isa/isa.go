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

package isa

// Opcode identifies one of the processor's instructions. Only the low 6
// bits are ever written to an object file; the REG and MEM addressing flags
// occupy the top two bits of the encoded byte.
type Opcode uint8

// Instruction opcodes, numbered as the reference toolchain this ISA was
// distilled from (the numbering is not otherwise significant).
const (
	OpHlt Opcode = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpCmp
	OpRet
	OpJmp
	OpCall
	OpJe
	OpJl
	OpJle
	OpJmt
	OpJfl
	OpPush
	OpPop
	OpIn
	OpOut
	opcodeCount
)

// OpUnknown is the reserved value for an opcode that names no instruction
// in the table above. Nothing in this package returns it.
const OpUnknown Opcode = 0xFC

// Addressing-mode flag bits, OR-combined into the opcode byte at encode
// time and masked off at decode time.
const (
	FlagReg byte = 0x80
	FlagMem byte = 0x40
	// OpMask isolates the 6-bit opcode identity from the flag bits.
	OpMask byte = 0x3F
)

// Fixed sizes of the VM's tables, shared by the assembler (for assembly-time
// bounds checks) and the VM (for allocation).
const (
	RegisterCount = 256
	MemorySize    = 65536
	StackSize     = 65536
)

var mnemonics = [opcodeCount]string{
	OpHlt:  "hlt",
	OpAdd:  "add",
	OpSub:  "sub",
	OpMul:  "mul",
	OpDiv:  "div",
	OpCmp:  "cmp",
	OpRet:  "ret",
	OpJmp:  "jmp",
	OpCall: "call",
	OpJe:   "je",
	OpJl:   "jl",
	OpJle:  "jle",
	OpJmt:  "jmt",
	OpJfl:  "jfl",
	OpPush: "push",
	OpPop:  "pop",
	OpIn:   "in",
	OpOut:  "out",
}

var mnemonicIndex = func() map[string]Opcode {
	m := make(map[string]Opcode, opcodeCount)
	for op, name := range mnemonics {
		m[name] = Opcode(op)
	}
	return m
}()

// Lookup returns the opcode named by mnemonic and whether it was found.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := mnemonicIndex[mnemonic]
	return op, ok
}

// String returns the assembly mnemonic for op, or "unknown" if op does not
// name a known instruction.
func (op Opcode) String() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}
	return "unknown"
}

// NoOperand reports whether op is one of the argument-less arithmetic or
// control opcodes that always encode as a single byte: add, sub, mul, div,
// cmp, hlt, ret, in, out.
func (op Opcode) NoOperand() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpCmp, OpHlt, OpRet, OpIn, OpOut:
		return true
	default:
		return false
	}
}

// LabelJump reports whether op is a control-flow opcode that takes a label
// operand and always encodes as opcode-byte + 8-byte resolved offset:
// jmp, je, jl, jle, jmt, jfl.
func (op Opcode) LabelJump() bool {
	switch op {
	case OpJmp, OpJe, OpJl, OpJle, OpJmt, OpJfl:
		return true
	default:
		return false
	}
}

// InstructionSize returns the total encoded size in bytes (1, 2 or 9) of an
// instruction given its opcode and addressing-mode flags, per the encoding
// rules in the ISA: REG set means a 1-byte register operand; REG unset
// means either no operand or an 8-byte operand.
//
// hasOperand must be false only for the single legal zero-operand form of
// pop (bare "pop", discarding the top of the evaluation stack).
func InstructionSize(op Opcode, flags byte, hasOperand bool) int {
	switch {
	case op.NoOperand():
		return 1
	case op.LabelJump() || op == OpCall:
		return 9
	case op == OpPush || op == OpPop:
		if !hasOperand {
			return 1
		}
		if flags&FlagReg != 0 {
			return 2
		}
		return 9
	default:
		return 1
	}
}
