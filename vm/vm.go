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
	"io"

	"github.com/mrsharp/isavm/internal/trace"
	"github.com/mrsharp/isavm/isa"
)

// Status is the run state of an Instance. All three values are terminal with
// respect to Run: an Instance that has reached HALTED or ERROR will not
// execute further instructions, and a freshly created Instance starts in
// RUNNING.
type Status int

const (
	Running Status = iota
	Halted
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// CmpFlag is the tri-state result of the most recently executed cmp, read by
// je/jl/jle without being popped or otherwise consumed.
type CmpFlag int

const (
	CmpEqual CmpFlag = iota
	CmpLess
	CmpGreater
)

// Option configures an Instance at construction time.
type Option func(*Instance) error

// Input sets the reader `in` reads signed decimal integers from. Defaults to
// os.Stdin's equivalent at the call site; the VM itself has no default.
func Input(r io.Reader) Option {
	return func(i *Instance) error { i.input = r; return nil }
}

// Output sets the writer `out` writes signed decimal integers to.
func Output(w io.Writer) Option {
	return func(i *Instance) error { i.output = w; return nil }
}

// Log attaches a trace sink that receives one line per decoded instruction.
// A nil sink (the default) disables tracing entirely.
func Log(s *trace.Sink) Option {
	return func(i *Instance) error { i.log = s; return nil }
}

// codePad is the number of zero bytes appended after the code image so the
// decoder can always speculatively read an 8-byte operand word at PC+1, even
// when PC addresses the image's last byte.
const codePad = 16

// Instance is a single-shot virtual machine: one load, one run, then done.
// There is no reset and no shared state between instances.
type Instance struct {
	code    []byte
	codeLen int

	regs [isa.RegisterCount]isa.Word
	mem  [isa.MemorySize]isa.Word

	evalStack [isa.StackSize]int64
	spEval    int

	retStack [isa.StackSize]uint64
	spRet    int

	pc     int
	cmp    CmpFlag
	status Status

	input  io.Reader
	output io.Writer
	log    *trace.Sink

	insCount int64
}

// New creates an Instance bound to code, the bit-exact object byte stream
// produced by the assembler (no loader padding expected: New pads it
// itself). The instance starts RUNNING at PC 0.
func New(code []byte, opts ...Option) (*Instance, error) {
	padded := make([]byte, len(code)+codePad)
	copy(padded, code)
	i := &Instance{code: padded, codeLen: len(code)}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, wrapError(ErrCreate, 0, err)
		}
	}
	return i, nil
}

// PC returns the current program counter.
func (i *Instance) PC() int { return i.pc }

// Status returns the current run status.
func (i *Instance) Status() Status { return i.status }

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 { return i.insCount }

// Register returns the value held in register n.
func (i *Instance) Register(n uint8) isa.Word { return i.regs[n] }

// EvalDepth returns the current evaluation-stack depth.
func (i *Instance) EvalDepth() int { return i.spEval }

// RetDepth returns the current return-stack depth.
func (i *Instance) RetDepth() int { return i.spRet }

func maskAddr(addr uint64) int { return int(addr & 0xFFFF) }
