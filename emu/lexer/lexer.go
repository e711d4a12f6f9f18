/*
   Source lexer: splits 8085 assembly text into a token stream.

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

package lexer

import (
	"strconv"
	"strings"

	tok "github.com/rcornwell/i8085/emu/token"
)

// keywords is the fixed set of 8085 mnemonics; anything else that looks like
// an identifier is a label reference.
var keywords = map[string]bool{
	"MOV": true, "MVI": true, "LXI": true, "LDA": true, "STA": true,
	"LHLD": true, "SHLD": true, "LDAX": true, "STAX": true, "XCHG": true,
	"ADD": true, "ADC": true, "SUB": true, "SBB": true, "INR": true,
	"DCR": true, "INX": true, "DCX": true, "DAD": true, "DAA": true,
	"ANA": true, "XRA": true, "ORA": true, "CMP": true, "RLC": true,
	"RRC": true, "RAL": true, "RAR": true, "CMA": true, "CMC": true,
	"STC": true, "ADI": true, "ACI": true, "SUI": true, "SBI": true,
	"ANI": true, "XRI": true, "ORI": true, "CPI": true, "JMP": true,
	"JC": true, "JNC": true, "JZ": true, "JNZ": true, "JP": true,
	"JM": true, "JPE": true, "JPO": true, "CALL": true, "CC": true,
	"CNC": true, "CZ": true, "CNZ": true, "CP": true, "CM": true,
	"CPE": true, "CPO": true, "RET": true, "RC": true, "RNC": true,
	"RZ": true, "RNZ": true, "RP": true, "RM": true, "RPE": true,
	"RPO": true, "RST": true, "PCHL": true, "PUSH": true, "POP": true,
	"XTHL": true, "SPHL": true, "IN": true, "OUT": true, "EI": true,
	"DI": true, "NOP": true, "HLT": true, "RIM": true, "SIM": true,
}

func isKeyword(word string) bool {
	return keywords[strings.ToUpper(word)]
}

func isIdentStart(r byte) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentChar(r byte) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r byte) bool {
	return r >= '0' && r <= '9'
}

func isSeparator(r byte) bool {
	switch r {
	case ' ', '\t', ',', ':', '\n', '\r':
		return true
	}
	return false
}

// isValidLabel reports whether lexeme matches the label grammar: a leading
// letter or underscore, followed by any number of letters, digits or
// underscores. Anything starting with a digit is handled by parseNumber
// instead - a label can never look like a number.
func isValidLabel(lexeme string) bool {
	if lexeme == "" || !isIdentStart(lexeme[0]) {
		return false
	}
	for i := 1; i < len(lexeme); i++ {
		if !isIdentChar(lexeme[i]) {
			return false
		}
	}
	return true
}

// Tokenize scans source and returns the full token stream, or the first
// error encountered (a malformed/out-of-range numeric literal, or a lexeme
// that matches neither a register, a keyword, a number nor the label
// grammar). Numeric lexemes ending in H/h or K/k are parsed as hexadecimal
// (dropping the suffix); the dual H/K hex-suffix acceptance is intentional
// for 8085 source, not a typo to be narrowed down to just H.
func Tokenize(source string) (tok.Stream, error) {
	var stream tok.Stream
	line := 1
	col := 1
	i := 0
	n := len(source)

	advance := func(r byte) {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	for i < n {
		r := source[i]

		switch {
		case r == ';':
			for i < n && source[i] != '\n' {
				i++
			}
			continue
		case r == ' ' || r == '\t' || r == '\r':
			advance(r)
			i++
			continue
		case r == '\n':
			advance(r)
			i++
			continue
		case r == ',':
			stream.Tokens = append(stream.Tokens, tok.Token{Kind: tok.Comma, Line: line, Col: col})
			advance(r)
			i++
			continue
		case r == ':':
			stream.Tokens = append(stream.Tokens, tok.Token{Kind: tok.Colon, Line: line, Col: col})
			advance(r)
			i++
			continue
		}

		startLine, startCol := line, col
		start := i
		for i < n && !isSeparator(source[i]) {
			advance(source[i])
			i++
		}
		lexeme := source[start:i]
		if lexeme == "" {
			continue
		}

		t, err := makeToken(lexeme, startLine, startCol)
		if err != nil {
			return tok.Stream{}, err
		}
		stream.Tokens = append(stream.Tokens, t)
	}

	stream.Tokens = append(stream.Tokens, tok.Token{Kind: tok.End, Line: line, Col: col})
	return stream, nil
}

// makeToken classifies one lexeme: a register name, a keyword operation, a
// numeric literal (decimal, or hex with a trailing H/h/K/k suffix split into
// U8/U16 by magnitude), or a label reference. A digit-led lexeme that fails
// numeric parsing raises NumberError (it can never be a valid label); any
// other lexeme that doesn't match the label grammar raises UnexpectedLexeme.
func makeToken(lexeme string, line, col int) (tok.Token, error) {
	base := tok.Token{Line: line, Col: col}

	if reg, ok := tok.LookupRegister(strings.ToUpper(lexeme)); ok {
		base.Kind = tok.RegisterTok
		base.Reg = reg
		return base, nil
	}

	if isKeyword(lexeme) {
		base.Kind = tok.Operation
		base.Text = strings.ToUpper(lexeme)
		return base, nil
	}

	if isDigit(lexeme[0]) {
		value, err := parseNumber(lexeme, line, col)
		if err != nil {
			return tok.Token{}, err
		}
		if value < 256 {
			base.Kind = tok.U8
			base.Byte = uint8(value)
		} else {
			base.Kind = tok.U16
			base.Word = value
		}
		return base, nil
	}

	if !isValidLabel(lexeme) {
		return tok.Token{}, &tok.Error{
			Kind:     tok.UnexpectedLexeme,
			Position: [2]int{line, col},
			Detail:   lexeme,
		}
	}

	base.Kind = tok.Label
	base.Text = lexeme
	return base, nil
}

// parseNumber parses a digit-led lexeme as hex (with a trailing H/h/K/k
// suffix) or plain decimal, raising NumberError if the digits don't form a
// valid literal in that base or the value doesn't fit in 16 bits.
func parseNumber(lexeme string, line, col int) (uint16, error) {
	last := lexeme[len(lexeme)-1]
	if last == 'H' || last == 'h' || last == 'K' || last == 'k' {
		body := lexeme[:len(lexeme)-1]
		v, err := strconv.ParseUint(body, 16, 16)
		if err != nil {
			return 0, numberError(line, col, lexeme)
		}
		return uint16(v), nil
	}

	for i := 0; i < len(lexeme); i++ {
		if !isDigit(lexeme[i]) {
			return 0, numberError(line, col, lexeme)
		}
	}
	v, err := strconv.ParseUint(lexeme, 10, 16)
	if err != nil {
		return 0, numberError(line, col, lexeme)
	}
	return uint16(v), nil
}

func numberError(line, col int, lexeme string) *tok.Error {
	return &tok.Error{
		Kind:     tok.NumberError,
		Position: [2]int{line, col},
		Detail:   lexeme,
	}
}
