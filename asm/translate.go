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
	"strings"

	"github.com/mrsharp/isavm/internal/trace"
	"github.com/mrsharp/isavm/isa"
)

// Assemble translates assembly source into an object byte stream via the
// two-pass translator: pass 1 tokenizes and walks the program once to
// populate the label, function and reservation symbol tables (tolerating
// unresolved forward references); pass 2 walks it again from byte offset
// zero and re-encodes every instruction, this time requiring every
// reference to resolve. If log is non-nil, one line is written to it for
// every instruction encoded in pass 2.
func Assemble(src []byte, log *trace.Sink) ([]byte, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	labels := newOffsetTable()
	funcs := newOffsetTable()
	res := newReservationTable()

	if _, err := walk(toks, labels, funcs, res, 1, nil, nil); err != nil {
		return nil, err
	}

	obj := newObjectBuffer()
	if _, err := walk(toks, labels, funcs, res, 2, obj, log); err != nil {
		return nil, err
	}
	return obj.buf, nil
}

// objectBuffer is the assembler's growable output. It doubles its capacity
// on growth and keeps at least 16 bytes of trailing slack after every write,
// so an 8-byte operand always fits in the current allocation.
type objectBuffer struct {
	buf []byte
}

func newObjectBuffer() *objectBuffer {
	return &objectBuffer{buf: make([]byte, 0, 64)}
}

func (o *objectBuffer) ensure(extra int) {
	need := len(o.buf) + extra
	if cap(o.buf) >= need+16 {
		return
	}
	newCap := cap(o.buf)*2 + 16
	for newCap < need+16 {
		newCap = newCap*2 + 16
	}
	nb := make([]byte, len(o.buf), newCap)
	copy(nb, o.buf)
	o.buf = nb
}

func (o *objectBuffer) writeByte(b byte) {
	o.ensure(1)
	o.buf = append(o.buf, b)
}

func (o *objectBuffer) writeBytes(b []byte) {
	o.ensure(len(b))
	o.buf = append(o.buf, b...)
}

func le64(v uint64) []byte {
	w := isa.Uint64Word(v)
	return w[:]
}

// instrPlan is the syntactic encoding plan for one instruction: which
// tokens it consumes and how many bytes it will occupy. Computing a plan
// never requires a symbol to be resolved, which is what lets pass 1 and
// pass 2 share the exact same sizing logic.
type instrPlan struct {
	op             isa.Opcode
	flags          byte
	hasOperand     bool
	operandTok     *Token
	tokensConsumed int
	size           int
}

func planInstruction(op isa.Opcode, toks []Token, i int) (instrPlan, error) {
	tok := toks[i]
	switch {
	case op.NoOperand():
		return instrPlan{op: op, tokensConsumed: 1, size: 1}, nil

	case op.LabelJump() || op == isa.OpCall:
		if i+1 >= len(toks) {
			return instrPlan{}, newError(ErrBadArgument, tok.Pos, tok.Text)
		}
		return instrPlan{
			op: op, hasOperand: true, operandTok: &toks[i+1],
			tokensConsumed: 2, size: 9,
		}, nil

	case op == isa.OpPush:
		if i+1 >= len(toks) {
			return instrPlan{}, newError(ErrBadArgument, tok.Pos, tok.Text)
		}
		opd, err := parseOperand(toks[i+1].Text)
		if err != nil {
			return instrPlan{}, wrapError(ErrBadArgument, toks[i+1].Pos, toks[i+1].Text, err)
		}
		flags := operandFlags(opd.form)
		return instrPlan{
			op: op, flags: flags, hasOperand: true, operandTok: &toks[i+1],
			tokensConsumed: 2, size: isa.InstructionSize(op, flags, true),
		}, nil

	case op == isa.OpPop:
		if i+1 < len(toks) {
			if opd, err := parseOperand(toks[i+1].Text); err == nil && popAcceptsForm(opd.form) {
				flags := operandFlags(opd.form)
				return instrPlan{
					op: op, flags: flags, hasOperand: true, operandTok: &toks[i+1],
					tokensConsumed: 2, size: isa.InstructionSize(op, flags, true),
				}, nil
			}
		}
		// No operand token, the next token doesn't look like an operand, or
		// it's a K/name form pop can't carry (see popAcceptsForm): bare pop,
		// discarding the top of the evaluation stack. The next token (if
		// any) is left for reprocessing as the following instruction.
		return instrPlan{op: op, tokensConsumed: 1, size: 1}, nil

	default:
		return instrPlan{}, newError(ErrUnknownCommand, tok.Pos, tok.Text)
	}
}

// popAcceptsForm restricts pop's operand peek to the four forms whose
// encoded flags are never zero (REG and/or MEM set). K and bare name both
// encode with flags == 0, which would be indistinguishable at decode time
// from the bare omitted-operand pop; §4.7's destination table only ever
// defines REG|MEM / MEM / REG / none for pop anyway, so K and bare name
// carry no destination a flags-only decoder could apply regardless.
func popAcceptsForm(form operandForm) bool {
	switch form {
	case formRegMem, formMemImm, formReg, formMemName:
		return true
	default:
		return false
	}
}

func operandFlags(form operandForm) byte {
	switch form {
	case formRegMem:
		return isa.FlagReg | isa.FlagMem
	case formMemImm, formMemName:
		return isa.FlagMem
	case formReg:
		return isa.FlagReg
	default: // formImm, formName
		return 0
	}
}

// walk performs one pass over toks. On pass 1, obj is nil: declarations
// populate the symbol tables and unresolved references are tolerated. On
// pass 2, obj is non-nil: declarations are skipped without re-populating
// the tables (they were already populated in pass 1) and every reference
// must resolve.
func walk(toks []Token, labels, funcs *offsetTable, res *reservationTable, pass int, obj *objectBuffer, log *trace.Sink) (int, error) {
	pc := 0
	i := 0
	for i < len(toks) {
		tok := toks[i]

		switch tok.Text {
		case "label":
			name, next, err := declName(toks, i, ErrBadLabel)
			if err != nil {
				return 0, err
			}
			if pass == 1 {
				if labels.Defined(name) {
					return 0, newError(ErrBadLabel, tok.Pos, name)
				}
				labels.Define(name, pc)
			}
			i = next
			continue
		case "func":
			name, next, err := declName(toks, i, ErrBadFunction)
			if err != nil {
				return 0, err
			}
			if pass == 1 {
				if funcs.Defined(name) {
					return 0, newError(ErrBadFunction, tok.Pos, name)
				}
				funcs.Define(name, pc)
			}
			i = next
			continue
		case "res":
			name, size, next, err := declReservation(toks, i)
			if err != nil {
				return 0, err
			}
			if pass == 1 {
				if res.Defined(name) {
					return 0, newError(ErrBadReserve, tok.Pos, name)
				}
				if _, err := res.Reserve(name, size); err != nil {
					return 0, wrapError(ErrBadReserve, tok.Pos, name, err)
				}
			}
			i = next
			continue
		}

		op, ok := isa.Lookup(tok.Text)
		if !ok {
			return 0, newError(ErrUnknownCommand, tok.Pos, tok.Text)
		}
		plan, err := planInstruction(op, toks, i)
		if err != nil {
			return 0, err
		}

		if obj != nil {
			if err := encode(obj, labels, funcs, res, plan); err != nil {
				return 0, err
			}
			if log != nil {
				operandText := ""
				if plan.operandTok != nil {
					operandText = " " + plan.operandTok.Text
				}
				log.Line("%06d: %s%s", pc, tok.Text, operandText)
			}
		}
		pc += plan.size
		i += plan.tokensConsumed
	}
	return pc, nil
}

func declName(toks []Token, i int, kind Kind) (string, int, error) {
	if i+1 >= len(toks) {
		return "", 0, newError(kind, toks[i].Pos, toks[i].Text)
	}
	name := toks[i+1].Text
	if !isAlnum(name) {
		return "", 0, newError(kind, toks[i+1].Pos, name)
	}
	return name, i + 2, nil
}

func declReservation(toks []Token, i int) (string, uint64, int, error) {
	if i+1 >= len(toks) {
		return "", 0, 0, newError(ErrBadReserve, toks[i].Pos, toks[i].Text)
	}
	tok := toks[i+1]
	idx := strings.IndexByte(tok.Text, ':')
	if idx <= 0 || idx == len(tok.Text)-1 {
		return "", 0, 0, newError(ErrBadReserve, tok.Pos, tok.Text)
	}
	name, sizeStr := tok.Text[:idx], tok.Text[idx+1:]
	if !isAlnum(name) {
		return "", 0, 0, newError(ErrBadReserve, tok.Pos, tok.Text)
	}
	size, ok := parseUnsignedDecimal(sizeStr)
	if !ok {
		return "", 0, 0, newError(ErrBadReserve, tok.Pos, tok.Text)
	}
	return name, size, i + 2, nil
}

// encode resolves plan's symbolic references (pass 2 only) and appends the
// encoded instruction to obj.
func encode(obj *objectBuffer, labels, funcs *offsetTable, res *reservationTable, plan instrPlan) error {
	switch {
	case plan.op.NoOperand():
		obj.writeByte(byte(plan.op))
		return nil

	case plan.op.LabelJump():
		off, ok := labels.Lookup(plan.operandTok.Text)
		if !ok {
			return newError(ErrBadLabel, plan.operandTok.Pos, plan.operandTok.Text)
		}
		obj.writeByte(byte(plan.op))
		obj.writeBytes(le64(uint64(off)))
		return nil

	case plan.op == isa.OpCall:
		off, ok := funcs.Lookup(plan.operandTok.Text)
		if !ok {
			return newError(ErrBadFunction, plan.operandTok.Pos, plan.operandTok.Text)
		}
		obj.writeByte(byte(plan.op))
		obj.writeBytes(le64(uint64(off)))
		return nil

	case plan.op == isa.OpPush || plan.op == isa.OpPop:
		return encodePushPop(obj, res, plan)

	default:
		return newError(ErrUnknownCommand, 0, plan.op.String())
	}
}

func encodePushPop(obj *objectBuffer, res *reservationTable, plan instrPlan) error {
	opcodeByte := byte(plan.op) | plan.flags
	if !plan.hasOperand {
		obj.writeByte(opcodeByte)
		return nil
	}
	opd, err := parseOperand(plan.operandTok.Text)
	if err != nil {
		return wrapError(ErrBadArgument, plan.operandTok.Pos, plan.operandTok.Text, err)
	}
	switch opd.form {
	case formRegMem, formReg:
		obj.writeByte(opcodeByte)
		obj.writeByte(opd.reg)
	case formMemImm:
		obj.writeByte(opcodeByte)
		obj.writeBytes(le64(opd.addr))
	case formImm:
		obj.writeByte(opcodeByte)
		obj.writeBytes(le64(uint64(opd.imm)))
	case formMemName, formName:
		r, ok := res.Lookup(opd.name)
		if !ok {
			return newError(ErrBadArgument, plan.operandTok.Pos, opd.name)
		}
		obj.writeByte(opcodeByte)
		obj.writeBytes(le64(r.Base))
	}
	return nil
}
