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

// maxWordLen is the maximum length, in bytes, of a single token (and thus
// of any identifier: label, function, or reservation name).
const maxWordLen = 63

// isSpace classifies the whitespace bytes that separate tokens: space, tab,
// newline, carriage return, form feed, vertical tab.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

// Token is a maximal run of non-whitespace bytes from the source buffer.
// Pos is its 1-based index in the token stream, used only for diagnostics.
type Token struct {
	Text string
	Pos  int
}

// Tokenize splits src on whitespace into an ordered sequence of tokens.
// There is no quoting, no escaping and no comment syntax: every
// non-whitespace run is a token. A token longer than maxWordLen bytes is a
// fatal bad-word error.
func Tokenize(src []byte) ([]Token, error) {
	var toks []Token
	n := len(src)
	i := 0
	for i < n {
		for i < n && isSpace(src[i]) {
			i++
		}
		if i >= n {
			break
		}
		start := i
		for i < n && !isSpace(src[i]) {
			i++
		}
		word := src[start:i]
		if len(word) > maxWordLen {
			return nil, newError(ErrBadWord, len(toks)+1, string(word))
		}
		toks = append(toks, Token{Text: string(word), Pos: len(toks) + 1})
	}
	return toks, nil
}
