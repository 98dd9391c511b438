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

// Package trace implements the textual instruction-by-instruction log both
// the assembler and the VM write on every run (assm.log, proc.log). The
// sink is kept as a plain io.Writer collaborator so a caller can redirect
// it to a file, discard it in tests, or disable it by passing io.Discard.
package trace

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Sink wraps an io.Writer and remembers the first write error. Once Err is
// set, subsequent writes are no-ops returning that same error, mirroring
// the teacher's ErrWriter: callers can log freely in a hot loop and check
// Err once at the end instead of after every line.
type Sink struct {
	w   io.Writer
	Err error
}

// New wraps w in a Sink. A nil w is replaced with io.Discard.
func New(w io.Writer) *Sink {
	if w == nil {
		w = io.Discard
	}
	return &Sink{w: w}
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.Err = errors.Wrap(err, "trace: write failed")
	}
	return n, s.Err
}

// Line writes one formatted trace line, terminated with a newline. Errors
// are recorded on Err and surfaced the next time the caller checks it.
func (s *Sink) Line(format string, args ...interface{}) {
	if s.Err != nil {
		return
	}
	fmt.Fprintf(s, format, args...)
	fmt.Fprintln(s)
}
