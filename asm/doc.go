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

// Package asm implements the two-pass translator from whitespace-delimited
// assembly source to the flat isa object format.
//
// Pass 1 tokenizes the source and walks it once, assigning every label,
// function and reservation a definition without requiring any of them to
// already be resolvable; pass 2 walks the token stream again from byte
// offset zero and encodes every instruction for real, failing on the first
// reference that still doesn't resolve.
//
// Assembly stops at the first fatal condition. There is no error recovery
// and no partial object file is ever written.
package asm
