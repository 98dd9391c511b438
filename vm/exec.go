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

package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/mrsharp/isavm/isa"
)

// stepFunc executes one decoded instruction. It owns advancing i.pc by
// whatever amount is correct for that instruction (1, 2 or 9 bytes, or a
// direct jump target for control-flow opcodes).
type stepFunc func(i *Instance, flags byte, operand []byte) error

var dispatch [isa.OpMask + 1]stepFunc

func init() {
	dispatch[isa.OpHlt] = execHlt
	dispatch[isa.OpAdd] = execArith
	dispatch[isa.OpSub] = execArith
	dispatch[isa.OpMul] = execArith
	dispatch[isa.OpDiv] = execArith
	dispatch[isa.OpCmp] = execCmp
	dispatch[isa.OpRet] = execRet
	dispatch[isa.OpJmp] = execJmp
	dispatch[isa.OpCall] = execCall
	dispatch[isa.OpJe] = execCondJump
	dispatch[isa.OpJl] = execCondJump
	dispatch[isa.OpJle] = execCondJump
	dispatch[isa.OpJmt] = execJmt
	dispatch[isa.OpJfl] = execJfl
	dispatch[isa.OpPush] = execPush
	dispatch[isa.OpPop] = execPop
	dispatch[isa.OpIn] = execIn
	dispatch[isa.OpOut] = execOut
}

// Run executes instructions until the status leaves RUNNING. It returns the
// error that caused an ERROR status, or nil if the run reached HALTED. An
// Instance is single-shot: calling Run again after it returns has no effect,
// since status is no longer RUNNING.
func (i *Instance) Run() error {
	for i.status == Running {
		if err := i.step(); err != nil {
			i.status = Failed
			return err
		}
	}
	return nil
}

func (i *Instance) step() error {
	if i.pc < 0 || i.pc >= i.codeLen {
		return newError(ErrBadIP, i.pc)
	}
	raw := i.code[i.pc]
	op := isa.Opcode(raw & isa.OpMask)
	flags := raw &^ isa.OpMask
	operand := i.code[i.pc+1 : i.pc+9]

	fn := dispatch[op]
	if fn == nil {
		return newError(ErrUnknownOpcode, i.pc)
	}

	if i.log != nil {
		i.log.Line("%08d: %02x %-5s flags=%02x", i.pc, byte(op), op, flags)
	}

	if err := fn(i, flags, operand); err != nil {
		return err
	}
	i.insCount++
	return nil
}

func le64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func execHlt(i *Instance, _ byte, _ []byte) error {
	i.status = Halted
	i.pc++
	return nil
}

func execArith(i *Instance, _ byte, _ []byte) error {
	if i.spEval < 2 {
		return newError(ErrStackUnderflow, i.pc)
	}
	a, b := i.evalStack[i.spEval-2], i.evalStack[i.spEval-1]
	raw := i.code[i.pc] & isa.OpMask
	switch isa.Opcode(raw) {
	case isa.OpAdd:
		i.evalStack[i.spEval-2] = a + b
		i.spEval--
	case isa.OpSub:
		i.evalStack[i.spEval-2] = a - b
		i.spEval--
	case isa.OpMul:
		i.evalStack[i.spEval-2] = a * b
		i.spEval--
	case isa.OpDiv:
		if b == 0 {
			return newError(ErrDivideByZero, i.pc)
		}
		i.evalStack[i.spEval-2] = a % b
		i.evalStack[i.spEval-1] = a / b
	}
	i.pc++
	return nil
}

func execCmp(i *Instance, _ byte, _ []byte) error {
	if i.spEval < 2 {
		return newError(ErrStackUnderflow, i.pc)
	}
	a, b := i.evalStack[i.spEval-2], i.evalStack[i.spEval-1]
	switch {
	case a == b:
		i.cmp = CmpEqual
	case a < b:
		i.cmp = CmpLess
	default:
		i.cmp = CmpGreater
	}
	i.pc++
	return nil
}

func execCondJump(i *Instance, _ byte, operand []byte) error {
	raw := isa.Opcode(i.code[i.pc] & isa.OpMask)
	take := false
	switch raw {
	case isa.OpJe:
		take = i.cmp == CmpEqual
	case isa.OpJl:
		take = i.cmp == CmpLess
	case isa.OpJle:
		take = i.cmp == CmpLess || i.cmp == CmpEqual
	}
	if take {
		i.pc = int(le64(operand))
	} else {
		i.pc += 9
	}
	return nil
}

func execJmp(i *Instance, _ byte, operand []byte) error {
	i.pc = int(le64(operand))
	return nil
}

func execJmt(i *Instance, _ byte, operand []byte) error {
	if i.spRet == 0 {
		i.pc = int(le64(operand))
	} else {
		i.pc += 9
	}
	return nil
}

func execJfl(i *Instance, _ byte, operand []byte) error {
	if i.spRet == isa.StackSize {
		i.pc = int(le64(operand))
	} else {
		i.pc += 9
	}
	return nil
}

func execCall(i *Instance, _ byte, operand []byte) error {
	if i.spRet == isa.StackSize {
		return newError(ErrStackOverflow, i.pc)
	}
	i.retStack[i.spRet] = uint64(i.pc + 9)
	i.spRet++
	i.pc = int(le64(operand))
	return nil
}

func execRet(i *Instance, _ byte, _ []byte) error {
	if i.spRet == 0 {
		return newError(ErrStackUnderflow, i.pc)
	}
	i.spRet--
	i.pc = int(i.retStack[i.spRet])
	return nil
}

func execPush(i *Instance, flags byte, operand []byte) error {
	if i.spEval == isa.StackSize {
		return newError(ErrStackOverflow, i.pc)
	}
	var v int64
	switch {
	case flags&isa.FlagReg != 0 && flags&isa.FlagMem != 0:
		reg := operand[0]
		v = i.mem[maskAddr(i.regs[reg].Uint64())].Int64()
	case flags&isa.FlagMem != 0:
		v = i.mem[maskAddr(le64(operand))].Int64()
	case flags&isa.FlagReg != 0:
		v = i.regs[operand[0]].Int64()
	default:
		v = int64(le64(operand))
	}
	i.evalStack[i.spEval] = v
	i.spEval++
	i.pc += isa.InstructionSize(isa.OpPush, flags, true)
	return nil
}

// execPop relies on the encoder never emitting a pop with flags == 0 except
// for the bare, operand-less form (see asm.popAcceptsForm): flags alone are
// enough to tell a 1-byte bare pop from a 2- or 9-byte addressed one.
func execPop(i *Instance, flags byte, operand []byte) error {
	if i.spEval == 0 {
		return newError(ErrStackUnderflow, i.pc)
	}
	i.spEval--
	v := i.evalStack[i.spEval]
	switch {
	case flags&isa.FlagReg != 0 && flags&isa.FlagMem != 0:
		reg := operand[0]
		i.mem[maskAddr(i.regs[reg].Uint64())] = isa.Int64Word(v)
	case flags&isa.FlagMem != 0:
		i.mem[maskAddr(le64(operand))] = isa.Int64Word(v)
	case flags&isa.FlagReg != 0:
		i.regs[operand[0]] = isa.Int64Word(v)
	default:
		// discard; bare pop carries no operand bytes.
	}
	if flags == 0 {
		i.pc++
	} else {
		i.pc += isa.InstructionSize(isa.OpPop, flags, true)
	}
	return nil
}

func execIn(i *Instance, _ byte, _ []byte) error {
	var v int64
	if _, err := fmt.Fscan(i.input, &v); err != nil {
		return wrapError(ErrInput, i.pc, err)
	}
	i.regs[0] = isa.Int64Word(v)
	i.pc++
	return nil
}

func execOut(i *Instance, _ byte, _ []byte) error {
	fmt.Fprintln(i.output, i.regs[0].Int64())
	i.pc++
	return nil
}
