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

import (
	"encoding/binary"
	"math"
)

// Word is the raw 8-byte storage unit for a register or a memory cell. It is
// stored as little-endian bytes rather than a numeric union so that reading
// one view and writing another never depends on platform endianness or
// type-punning.
type Word [8]byte

// Int64Word encodes v as a Word, viewed as a signed 64-bit integer.
func Int64Word(v int64) Word {
	var w Word
	binary.LittleEndian.PutUint64(w[:], uint64(v))
	return w
}

// Uint64Word encodes v as a Word, viewed as an unsigned 64-bit integer.
func Uint64Word(v uint64) Word {
	var w Word
	binary.LittleEndian.PutUint64(w[:], v)
	return w
}

// Int64 views w as a signed 64-bit integer.
func (w Word) Int64() int64 { return int64(binary.LittleEndian.Uint64(w[:])) }

// Uint64 views w as an unsigned 64-bit integer.
func (w Word) Uint64() uint64 { return binary.LittleEndian.Uint64(w[:]) }

// Int32 views the low 4 bytes of w as a signed 32-bit integer.
func (w Word) Int32() int32 { return int32(binary.LittleEndian.Uint32(w[:4])) }

// Uint32 views the low 4 bytes of w as an unsigned 32-bit integer.
func (w Word) Uint32() uint32 { return binary.LittleEndian.Uint32(w[:4]) }

// Int16 views the low 2 bytes of w as a signed 16-bit integer.
func (w Word) Int16() int16 { return int16(binary.LittleEndian.Uint16(w[:2])) }

// Uint16 views the low 2 bytes of w as an unsigned 16-bit integer.
func (w Word) Uint16() uint16 { return binary.LittleEndian.Uint16(w[:2]) }

// Int8 views the low byte of w as a signed 8-bit integer.
func (w Word) Int8() int8 { return int8(w[0]) }

// Uint8 views the low byte of w as an unsigned 8-bit integer.
func (w Word) Uint8() uint8 { return w[0] }

// Float64 views w as an IEEE-754 double. No opcode in this ISA operates on
// this view; it exists only because the value word the original processor
// is modeled after exposes one.
func (w Word) Float64() float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(w[:]))
}
