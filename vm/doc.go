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

// Package vm implements the stack-and-register virtual machine that
// executes the object byte stream produced by package asm: a
// fetch-decode-dispatch loop over a fixed 65,536-word memory, a 256-word
// register file, a signed-64-bit evaluation stack and an unsigned-64-bit
// return stack, with a persistent tri-state comparison flag consulted (but
// never modified) by the conditional jumps.
//
// An Instance is single-shot: one Run call to completion (HALTED or an
// error), then it is done. There is no reset.
package vm
