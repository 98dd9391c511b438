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

// Command proc runs an object file on the virtual machine.
//
// Usage:
//
//	proc <object-file>
//
// A full instruction trace is written to proc.log in the current directory.
// Standard input and output serve the in/out opcodes. proc exits 0 only if
// the program halted via hlt; any other outcome is a nonzero exit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/mrsharp/isavm/internal/trace"
	"github.com/mrsharp/isavm/vm"
)

func run() error {
	flag.Parse()
	if flag.NArg() != 1 {
		return errors.New("usage: proc <object-file>")
	}
	objectFile := flag.Arg(0)

	code, err := vm.Load(objectFile)
	if err != nil {
		return err
	}

	logFile, err := os.Create("proc.log")
	if err != nil {
		return errors.Wrap(err, "proc: open proc.log")
	}
	defer logFile.Close()
	log := trace.New(logFile)

	inst, err := vm.New(code, vm.Input(os.Stdin), vm.Output(os.Stdout), vm.Log(log))
	if err != nil {
		return err
	}

	runErr := inst.Run()
	if log.Err != nil {
		return errors.Wrap(log.Err, "proc: write proc.log")
	}
	if runErr != nil {
		return runErr
	}
	if inst.Status() != vm.Halted {
		return errors.Errorf("proc: run ended in status %v", inst.Status())
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
