/*
 * Copyright (C) 2025 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package ingest

import (
	"bufio"
	"fmt"
	"unicode/utf8"
)

const maxTokenSize = 256

func isTokenChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '/' || c == '-'
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', ',', '\t', '\r', '\n':
		return true
	}
	return false
}

type position struct {
	line   int
	column int
}

func (p position) String() string {
	return fmt.Sprintf("line %d, column %d", p.line, p.column)
}

func (p position) after(b []byte) position {
	for _, c := range b {
		if c == '\n' {
			p.line++
			p.column = 1
		} else {
			p.column++
		}
	}
	return p
}

// InvalidCharError reports a byte that is neither part of an address nor a delimiter.
type InvalidCharError struct {
	Char rune
	Pos  position
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("invalid character %q at %s", e.Char, e.Pos)
}

// tokenizer splits a stream on delimiters and remembers where the last token started.
type tokenizer struct {
	pos      position
	tokenPos position
}

func newTokenizer() *tokenizer {
	return &tokenizer{pos: position{line: 1, column: 1}}
}

func (t *tokenizer) scanner(s *bufio.Scanner) *bufio.Scanner {
	s.Buffer(make([]byte, 0, 64), maxTokenSize)
	s.Split(t.split)
	return s
}

func (t *tokenizer) split(data []byte, atEOF bool) (int, []byte, error) {
	start := 0
	for start < len(data) && isDelimiter(data[start]) {
		start++
	}
	for i := start; i < len(data); i++ {
		c := data[i]
		if isTokenChar(c) {
			continue
		}
		if isDelimiter(c) {
			t.tokenPos = t.pos.after(data[:start])
			t.pos = t.pos.after(data[:i+1])
			return i + 1, data[start:i], nil
		}
		r, _ := utf8.DecodeRune(data[i:])
		return 0, nil, &InvalidCharError{Char: r, Pos: t.pos.after(data[:i])}
	}
	if atEOF && start < len(data) {
		t.tokenPos = t.pos.after(data[:start])
		t.pos = t.pos.after(data)
		return len(data), data[start:], nil
	}
	if start > 0 {
		// only delimiters so far
		t.pos = t.pos.after(data[:start])
		return start, nil, nil
	}
	return 0, nil, nil
}
