/*
   Assembler error types.

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

package assemble

import (
	"fmt"

	tok "github.com/rcornwell/i8085/emu/token"
)

// Kind and ParseError are aliases for the token package's error type, so
// that failures raised while lexing (NumberError, UnexpectedLexeme) and
// failures raised while assembling (InvalidArguments, UnexpectedToken, Eof,
// UndefinedLabel) are the same type and can be handled uniformly by callers.
type Kind = tok.ErrorKind

const (
	NumberError      = tok.NumberError
	InvalidArguments = tok.InvalidArguments
	UnexpectedLexeme = tok.UnexpectedLexeme
	UnexpectedToken  = tok.UnexpectedToken
	Eof              = tok.Eof
	UndefinedLabel   = tok.UndefinedLabel
)

type ParseError = tok.Error

func newError(kind Kind, t tok.Token, detail string) *ParseError {
	return &ParseError{Kind: kind, Position: [2]int{t.Line, t.Col}, Detail: detail}
}

func unexpectedToken(t tok.Token, want tok.Kind) *ParseError {
	return newError(UnexpectedToken, t, fmt.Sprintf("expected %s, got %s", want, t.Kind))
}
