/*
   Token types produced by the lexer and consumed by the assembler.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package token

import "fmt"

// Register names the lexer recognizes as register operands.
type Register int

const (
	A Register = iota
	B
	C
	D
	E
	H
	L
	M
	SP
	PSW
)

var registerNames = map[string]Register{
	"A": A, "B": B, "C": C, "D": D, "E": E, "H": H, "L": L,
	"M": M, "SP": SP, "PSW": PSW,
}

// LookupRegister returns the register named by name and whether it was found.
func LookupRegister(name string) (Register, bool) {
	reg, ok := registerNames[name]
	return reg, ok
}

// Kind discriminates the variants of Token: two tokens are equal-by-kind
// regardless of their payload, which is what the parser actually checks for.
type Kind int

const (
	Operation Kind = iota
	U8
	U16
	Label
	Comma
	Colon
	RegisterTok
	End
)

func (k Kind) String() string {
	switch k {
	case Operation:
		return "operation"
	case U8:
		return "byte literal"
	case U16:
		return "word literal"
	case Label:
		return "label"
	case Comma:
		return "comma"
	case Colon:
		return "colon"
	case RegisterTok:
		return "register"
	case End:
		return "end of input"
	}
	return "unknown"
}

// Token is one lexed element of a source line: its Kind selects which of the
// payload fields is meaningful (Text for Operation/Label, Byte for U8, Word
// for U16, Reg for RegisterTok).
type Token struct {
	Kind Kind
	Text string
	Byte uint8
	Word uint16
	Reg  Register
	Line int
	Col  int
}

func (t Token) String() string {
	switch t.Kind {
	case Operation, Label:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	case U8:
		return fmt.Sprintf("U8(%d)", t.Byte)
	case U16:
		return fmt.Sprintf("U16(%d)", t.Word)
	case RegisterTok:
		return fmt.Sprintf("Register(%d)", t.Reg)
	default:
		return t.Kind.String()
	}
}

// Stream is an ordered, position-tagged list of tokens produced by one pass
// of the lexer over a full source file.
type Stream struct {
	Tokens []Token
}
