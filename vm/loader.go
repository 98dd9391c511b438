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
	"os"

	"github.com/pkg/errors"
)

// Load reads the entire object file at fileName into a byte slice. Trailing
// padding for the decoder's speculative operand read is added by New, not
// here: Load's only job is getting the bytes off disk.
func Load(fileName string) ([]byte, error) {
	raw, err := os.ReadFile(fileName)
	if err != nil {
		return nil, wrapError(ErrCreate, 0, errors.Wrapf(err, "vm: load %s", fileName))
	}
	return raw, nil
}
