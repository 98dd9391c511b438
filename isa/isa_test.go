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

package isa_test

import (
	"testing"

	"github.com/mrsharp/isavm/isa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupRoundTrip(t *testing.T) {
	for op := isa.OpHlt; op <= isa.OpOut; op++ {
		name := op.String()
		require.NotEqual(t, "unknown", name)
		got, ok := isa.Lookup(name)
		require.True(t, ok)
		assert.Equal(t, op, got)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := isa.Lookup("frobnicate")
	assert.False(t, ok)
}

func TestInstructionSizeNoOperand(t *testing.T) {
	for _, op := range []isa.Opcode{isa.OpAdd, isa.OpSub, isa.OpMul, isa.OpDiv, isa.OpCmp, isa.OpHlt, isa.OpRet, isa.OpIn, isa.OpOut} {
		assert.Equal(t, 1, isa.InstructionSize(op, 0, false))
	}
}

func TestInstructionSizeLabelJump(t *testing.T) {
	for _, op := range []isa.Opcode{isa.OpJmp, isa.OpJe, isa.OpJl, isa.OpJle, isa.OpJmt, isa.OpJfl, isa.OpCall} {
		assert.Equal(t, 9, isa.InstructionSize(op, 0, true))
	}
}

func TestInstructionSizePushPop(t *testing.T) {
	cases := []struct {
		op         isa.Opcode
		flags      byte
		hasOperand bool
		want       int
	}{
		{isa.OpPush, isa.FlagReg | isa.FlagMem, true, 2},
		{isa.OpPush, isa.FlagMem, true, 9},
		{isa.OpPush, isa.FlagReg, true, 2},
		{isa.OpPush, 0, true, 9},
		{isa.OpPop, 0, false, 1},
		{isa.OpPop, isa.FlagReg, true, 2},
		{isa.OpPop, isa.FlagMem, true, 9},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, isa.InstructionSize(c.op, c.flags, c.hasOperand))
	}
}

func TestWordViews(t *testing.T) {
	w := isa.Int64Word(-12345)
	assert.Equal(t, int64(-12345), w.Int64())

	u := isa.Uint64Word(0xFFFFFFFFFFFFFFFF)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), u.Uint64())

	small := isa.Int64Word(65)
	assert.Equal(t, uint8(65), small.Uint8())
	assert.Equal(t, int16(65), small.Int16())
	assert.Equal(t, int32(65), small.Int32())
}
