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

import "github.com/mrsharp/isavm/isa"

// offsetTable is a flat name -> code-offset map, used independently for the
// label and function namespaces. Insertion is unique: redefining a name is
// the caller's error to raise, not this type's.
type offsetTable struct {
	offsets map[string]int
}

func newOffsetTable() *offsetTable {
	return &offsetTable{offsets: make(map[string]int)}
}

// Defined reports whether name is already present.
func (t *offsetTable) Defined(name string) bool {
	_, ok := t.offsets[name]
	return ok
}

// Define records name at offset. The caller must check Defined first.
func (t *offsetTable) Define(name string, offset int) {
	t.offsets[name] = offset
}

// Lookup returns the offset recorded for name and whether it was found.
func (t *offsetTable) Lookup(name string) (int, bool) {
	off, ok := t.offsets[name]
	return off, ok
}

// reservation is one named, contiguously-allocated region of VM memory.
type reservation struct {
	Base uint64
	Size uint64
}

// reservationTable tracks named memory reservations. Reservations are
// allocated disjoint, contiguous regions starting at address 0: the base of
// the i-th reservation equals the sum of the sizes of the reservations
// defined before it. The cumulative size must fit within VM memory.
type reservationTable struct {
	byName map[string]reservation
	next   uint64
}

func newReservationTable() *reservationTable {
	return &reservationTable{byName: make(map[string]reservation)}
}

func (t *reservationTable) Defined(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Reserve allocates size cells for name at the next free base address.
func (t *reservationTable) Reserve(name string, size uint64) (reservation, error) {
	if size == 0 {
		return reservation{}, wrapError(ErrBadReserve, 0, name, errZeroSize)
	}
	if size > isa.MemorySize-t.next {
		return reservation{}, wrapError(ErrBadReserve, 0, name, errOutOfMemory)
	}
	r := reservation{Base: t.next, Size: size}
	t.byName[name] = r
	t.next += size
	return r, nil
}

func (t *reservationTable) Lookup(name string) (reservation, bool) {
	r, ok := t.byName[name]
	return r, ok
}

var (
	errZeroSize    = simpleError("reservation size must be non-zero")
	errOutOfMemory = simpleError("reservation exceeds VM memory")
)

type simpleError string

func (e simpleError) Error() string { return string(e) }
