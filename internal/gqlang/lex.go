// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package gqlang

import (
	"fmt"
	"strings"
)

type lexer struct {
	input string
	pos   Pos
}

func lex(input string) []token {
	l := &lexer{input: input}
	var tokens []token
	for {
		tok := l.next()
		if tok.source == "" {
			// EOF
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func (l *lexer) next() token {
	l.skipIgnored()
	start := l.pos
	if len(l.input) == 0 {
		return token{start: start}
	}
	if kind, ok := punctuators[l.input[0]]; ok {
		return token{
			kind:   kind,
			source: l.consume(1),
			start:  start,
		}
	}
	if c := l.input[0]; isNameChar(c) {
		n := 1
		for ; n < len(l.input); n++ {
			if c := l.input[n]; !isNameChar(c) && !isDigit(c) {
				break
			}
		}
		return token{
			kind:   name,
			source: l.consume(n),
			start:  start,
		}
	}
	return token{
		kind:   unknown,
		source: l.consume(1),
		start:  start,
	}
}

// skipIgnored skips any ignored tokens.
// https://graphql.github.io/graphql-spec/June2018/#sec-Source-Text.Ignored-Tokens
func (l *lexer) skipIgnored() {
	for len(l.input) > 0 {
		switch l.input[0] {
		case ' ', '\t', '\r', '\n', ',':
			l.consume(1)
		case bom[0]:
			if !strings.HasPrefix(l.input, bom) {
				return
			}
			l.consume(len(bom))
		case '#':
			l.consume(1)
			i := strings.IndexAny(l.input, "\n\r")
			if i == -1 {
				// To end of input.
				l.pos += Pos(len(l.input))
				l.input = ""
				return
			}
			l.consume(i + 1)
		default:
			return
		}
	}
}

func (l *lexer) consume(n int) string {
	s := l.input[:n]
	l.input = l.input[n:]
	l.pos += Pos(n)
	return s
}

type token struct {
	kind   tokenKind
	source string
	start  Pos
}

func (tok token) String() string {
	if tok.kind == unknown {
		return "<unknown>"
	}
	return tok.source
}

// A Pos is a 0-based byte offset in a GraphQL document.
type Pos int

// ToPosition converts a byte position into a line and column number.
func (pos Pos) ToPosition(input string) Position {
	line, col := 1, 1
	for i := 0; i < int(pos); i++ {
		switch input[i] {
		case bom[0]:
			if !strings.HasPrefix(input[i:], bom) {
				col++
				continue
			}
			i += len(bom) - 1
		case '\r':
			if strings.HasPrefix(input[i:], "\r\n") {
				continue
			}
			fallthrough
		case '\n':
			line++
			col = 1
		case '\t':
			const tabWidth = 8
			col++
			for (col-1)%tabWidth != 0 {
				col++
			}
		default:
			col++
		}
	}
	return Position{line, col}
}

// A Position is a line/column pair. Both are 1-based.
// The column is byte-based.
type Position struct {
	Line   int
	Column int
}

// String returns p in the form "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type tokenKind int

const (
	unknown tokenKind = iota

	// Punctuators
	nonNull  // '!'
	lbracket // '['
	rbracket // ']'

	name
)

var punctuators = map[byte]tokenKind{
	'!': nonNull,
	'[': lbracket,
	']': rbracket,
}

const bom = "\ufeff"

// IsName reports whether s is a single GraphQL name.
// https://graphql.github.io/graphql-spec/June2018/#Name
func IsName(s string) bool {
	if s == "" || !isNameChar(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if c := s[i]; !isNameChar(c) && !isDigit(c) {
			return false
		}
	}
	return true
}

func isNameChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
