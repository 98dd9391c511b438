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

// Package isa defines the instruction set shared by the assembler and the
// virtual machine: opcode identities, the REG/MEM addressing-mode flags
// packed into the opcode byte, the 8-byte little-endian value word, and the
// rules for how many bytes an encoded instruction occupies.
//
// Nothing in this package executes or parses anything; it is pure data and
// the few pure functions (instruction sizing, mnemonic lookup) both the
// asm and vm packages need to agree on.
package isa
