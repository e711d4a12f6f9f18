/*
   Lexer/assembler error types.

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

// ErrorKind enumerates the distinct failure categories a caller may need to
// branch on, spanning both lexing (NumberError, UnexpectedLexeme) and
// assembly (InvalidArguments, UnexpectedToken, Eof, UndefinedLabel).
type ErrorKind int

const (
	NumberError ErrorKind = iota
	InvalidArguments
	UnexpectedLexeme
	UnexpectedToken
	Eof
	UndefinedLabel
)

// Error reports a failure at a specific source position. Position is
// (line, column); both are 1-based and 0 when not meaningful (e.g.
// UndefinedLabel, raised after the token positions are gone).
type Error struct {
	Kind     ErrorKind
	Position [2]int
	Detail   string
}

func (e *Error) Error() string {
	loc := ""
	if e.Position[0] != 0 {
		loc = fmt.Sprintf(" at %d:%d", e.Position[0], e.Position[1])
	}
	switch e.Kind {
	case NumberError:
		return fmt.Sprintf("number out of bounds: %s%s", e.Detail, loc)
	case InvalidArguments:
		return fmt.Sprintf("invalid arguments: %s%s", e.Detail, loc)
	case UnexpectedLexeme:
		return fmt.Sprintf("unexpected lexeme: %s%s", e.Detail, loc)
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token: %s%s", e.Detail, loc)
	case Eof:
		return "unexpected end of input" + loc
	case UndefinedLabel:
		return fmt.Sprintf("undefined label: %s%s", e.Detail, loc)
	}
	return "lex/parse error" + loc
}
