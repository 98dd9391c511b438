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

// Command asm translates a source file into an object byte stream.
//
// Usage:
//
//	asm <source-file>
//
// The object file is written alongside the source: the source's name with
// everything from its first '.' onward truncated, and ".proc" appended. A
// full instruction trace is written to assm.log in the current directory.
// On any assembler error, no object file is written and asm exits nonzero.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/mrsharp/isavm/asm"
	"github.com/mrsharp/isavm/internal/trace"
)

func objectFileName(sourceFile string) string {
	base := sourceFile
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	return base + ".proc"
}

func run() error {
	flag.Parse()
	if flag.NArg() != 1 {
		return errors.New("usage: asm <source-file>")
	}
	sourceFile := flag.Arg(0)

	src, err := os.ReadFile(sourceFile)
	if err != nil {
		return errors.Wrapf(err, "asm: read %s", sourceFile)
	}

	logFile, err := os.Create("assm.log")
	if err != nil {
		return errors.Wrap(err, "asm: open assm.log")
	}
	defer logFile.Close()
	log := trace.New(logFile)

	obj, err := asm.Assemble(src, log)
	if err != nil {
		return err
	}
	if log.Err != nil {
		return errors.Wrap(log.Err, "asm: write assm.log")
	}

	objFile := objectFileName(sourceFile)
	if err := os.WriteFile(objFile, obj, 0644); err != nil {
		return errors.Wrapf(err, "asm: write %s", objFile)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
