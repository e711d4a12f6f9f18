/*
   Two-pass 8085 assembler: mnemonic source to machine bytes.

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

// Package assemble implements the two-pass assembler: the first pass walks
// the token stream emitting either resolved bytes or label placeholders
// while building a symbol table of label -> address; the second pass
// replaces each placeholder with the little-endian address of its label.
package assemble

import (
	"fmt"

	lex "github.com/rcornwell/i8085/emu/lexer"
	op "github.com/rcornwell/i8085/emu/opcodemap"
	tok "github.com/rcornwell/i8085/emu/token"
)

// SymbolTable maps a label name to the absolute address of the instruction
// it labels.
type SymbolTable map[string]uint16

// slot is one element of the first pass's output: either a resolved byte or
// a forward reference to a label, which expands to two bytes (low, high) in
// the second pass.
type slot struct {
	symbol string
	code   byte
	isSym  bool
}

// Assemble runs both passes over source and returns the machine code that
// would be loaded starting at origin. Label addresses are absolute (origin
// plus the label's byte offset), so JMP/CALL targets are only correct when
// the result is loaded at origin.
func Assemble(source string, origin uint16) ([]byte, error) {
	stream, err := lex.Tokenize(source)
	if err != nil {
		return nil, err
	}
	slots, symtab, err := firstPass(stream, origin)
	if err != nil {
		return nil, err
	}
	return secondPass(slots, symtab)
}

type cursor struct {
	tokens []tok.Token
	pos    int
}

func (c *cursor) peek() tok.Token {
	if c.pos >= len(c.tokens) {
		return tok.Token{Kind: tok.End}
	}
	return c.tokens[c.pos]
}

func (c *cursor) advance() tok.Token {
	t := c.peek()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return t
}

// expect consumes and returns the next token, requiring it to have kind want.
func (c *cursor) expect(want tok.Kind) (tok.Token, error) {
	t := c.advance()
	if t.Kind == tok.End && want != tok.End {
		return t, &ParseError{Kind: Eof, Position: [2]int{t.Line, t.Col}}
	}
	if t.Kind != want {
		return t, unexpectedToken(t, want)
	}
	return t, nil
}

func firstPass(stream tok.Stream, origin uint16) ([]slot, SymbolTable, error) {
	c := &cursor{tokens: stream.Tokens}
	symtab := SymbolTable{}
	var slots []slot

	offset := func() uint16 {
		n := 0
		for _, s := range slots {
			if s.isSym {
				n += 2
			} else {
				n++
			}
		}
		return origin + uint16(n)
	}

	emit := func(b ...byte) {
		for _, by := range b {
			slots = append(slots, slot{code: by})
		}
	}
	emitSymbol := func(name string) {
		slots = append(slots, slot{symbol: name, isSym: true})
	}

	for {
		t := c.peek()
		if t.Kind == tok.End {
			break
		}

		if t.Kind == tok.Label {
			// A label followed by a colon is a definition; otherwise it is
			// a syntax error at statement position (operands are only
			// valid after an operation token).
			save := c.pos
			label := c.advance()
			if c.peek().Kind == tok.Colon {
				c.advance()
				if _, exists := symtab[label.Text]; exists {
					return nil, nil, newError(InvalidArguments, label, "duplicate label "+label.Text)
				}
				symtab[label.Text] = offset()
				continue
			}
			c.pos = save
			if _, err := c.expect(tok.Operation); err != nil {
				return nil, nil, err
			}
			continue
		}

		operation, err := c.expect(tok.Operation)
		if err != nil {
			return nil, nil, err
		}

		if err := assembleStatement(c, operation, emit, emitSymbol); err != nil {
			return nil, nil, err
		}
	}

	return slots, symtab, nil
}

func secondPass(slots []slot, symtab SymbolTable) ([]byte, error) {
	out := make([]byte, 0, len(slots))
	for _, s := range slots {
		if !s.isSym {
			out = append(out, s.code)
			continue
		}
		addr, ok := symtab[s.symbol]
		if !ok {
			return nil, &ParseError{Kind: UndefinedLabel, Detail: s.symbol}
		}
		out = append(out, byte(addr&0xFF), byte(addr>>8))
	}
	return out, nil
}

// assembleStatement parses the operand(s) of one operation token and emits
// the bytes (or label placeholder) for it.
func assembleStatement(c *cursor, operation tok.Token, emit func(...byte), emitSymbol func(string)) error {
	name := operation.Text

	switch name {
	// Zero-operand instructions.
	case "RLC", "RRC", "RAL", "RAR", "CMA", "CMC", "STC", "NOP", "HLT",
		"RET", "PCHL", "SPHL", "XCHG", "XTHL", "EI", "DI", "RIM", "SIM", "DAA",
		"RC", "RNC", "RZ", "RNZ", "RP", "RM", "RPE", "RPO":
		emit(zeroOperandOpcode(name))
		return nil

	// Single register operand: arithmetic/logical group.
	case "ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP":
		reg, err := regOperand(c)
		if err != nil {
			return err
		}
		emit(regGroupOpcode(name) + byte(reg))
		return nil
	case "INR":
		reg, err := regOperand(c)
		if err != nil {
			return err
		}
		emit(op.InrTable[reg])
		return nil
	case "DCR":
		reg, err := regOperand(c)
		if err != nil {
			return err
		}
		emit(op.DcrTable[reg])
		return nil

	// 8-bit immediate group (includes the 8-bit port operand of IN/OUT).
	case "ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI", "IN", "OUT":
		value, err := byteOperand(c)
		if err != nil {
			return err
		}
		emit(immediateOpcode(name), value)
		return nil

	case "MVI":
		reg, err := regOperand(c)
		if err != nil {
			return err
		}
		if _, err := c.expect(tok.Comma); err != nil {
			return err
		}
		value, err := byteOperand(c)
		if err != nil {
			return err
		}
		emit(op.MviTable[reg], value)
		return nil

	case "MOV":
		dst, err := regOperand(c)
		if err != nil {
			return err
		}
		if _, err := c.expect(tok.Comma); err != nil {
			return err
		}
		src, err := regOperand(c)
		if err != nil {
			return err
		}
		if dst == op.RegM && src == op.RegM {
			return newError(InvalidArguments, operation, "MOV M,M is not a valid instruction (it encodes HLT)")
		}
		emit(byte(op.OpMOV) + byte(dst)*8 + byte(src))
		return nil

	case "LXI":
		pair, err := pairOperand(c)
		if err != nil {
			return err
		}
		if _, err := c.expect(tok.Comma); err != nil {
			return err
		}
		lo, hi, err := wordOperand(c)
		if err != nil {
			return err
		}
		emit(op.PairOpcode(op.OpLXI, pair), lo, hi)
		return nil

	case "DAD", "INX", "DCX":
		pair, err := pairOperand(c)
		if err != nil {
			return err
		}
		emit(op.PairOpcode(pairBaseOpcode(name), pair))
		return nil

	case "PUSH", "POP":
		pair, err := pushPopOperand(c)
		if err != nil {
			return err
		}
		base := op.OpPUSH
		if name == "POP" {
			base = op.OpPOP
		}
		emit(op.PairOpcode(byte(base), pair))
		return nil

	case "LDAX", "STAX":
		pair, err := pairOperand(c)
		if err != nil {
			return err
		}
		if pair != op.PairB && pair != op.PairD {
			return newError(InvalidArguments, operation, name+" only accepts B or D")
		}
		base := op.OpLDAX
		if name == "STAX" {
			base = op.OpSTAX
		}
		emit(op.PairOpcode(byte(base), pair))
		return nil

	case "LDA", "STA", "LHLD", "SHLD":
		lo, hi, err := wordOperand(c)
		if err != nil {
			return err
		}
		emit(directOpcode(name), lo, hi)
		return nil

	case "RST":
		n, err := byteOperand(c)
		if err != nil {
			return err
		}
		if n > 7 {
			return newError(InvalidArguments, operation, "RST operand must be 0..7")
		}
		emit(op.OpRST + n*8)
		return nil

	case "JMP", "JC", "JNC", "JZ", "JNZ", "JP", "JM", "JPE", "JPO",
		"CALL", "CC", "CNC", "CZ", "CNZ", "CP", "CM", "CPE", "CPO":
		if label, ok := tryLabelOperand(c); ok {
			emit(branchOpcode(name))
			emitSymbol(label)
			return nil
		}
		lo, hi, err := wordOperand(c)
		if err != nil {
			return err
		}
		emit(branchOpcode(name), lo, hi)
		return nil
	}

	return newError(UnexpectedLexeme, operation, "undefined opcode "+name)
}

func tryLabelOperand(c *cursor) (string, bool) {
	if c.peek().Kind == tok.Label {
		return c.advance().Text, true
	}
	return "", false
}

func regOperand(c *cursor) (int, error) {
	t, err := c.expect(tok.RegisterTok)
	if err != nil {
		return 0, err
	}
	reg, ok := registerIndex(t.Reg)
	if !ok {
		return 0, newError(InvalidArguments, t, "expected an 8-bit register")
	}
	return reg, nil
}

func pairOperand(c *cursor) (int, error) {
	t, err := c.expect(tok.RegisterTok)
	if err != nil {
		return 0, err
	}
	pair, ok := pairIndex(t.Reg)
	if !ok {
		return 0, newError(InvalidArguments, t, "expected a register pair")
	}
	return pair, nil
}

// pushPopOperand is like pairOperand but PSW replaces SP as the fourth pair.
func pushPopOperand(c *cursor) (int, error) {
	t, err := c.expect(tok.RegisterTok)
	if err != nil {
		return 0, err
	}
	switch t.Reg {
	case tok.B:
		return op.PairB, nil
	case tok.D:
		return op.PairD, nil
	case tok.H:
		return op.PairH, nil
	case tok.PSW:
		return op.PairPSW, nil
	}
	return 0, newError(InvalidArguments, t, "expected B, D, H or PSW")
}

func byteOperand(c *cursor) (byte, error) {
	t := c.advance()
	switch t.Kind {
	case tok.U8:
		return t.Byte, nil
	case tok.U16:
		return 0, newError(NumberError, t, "value does not fit in 8 bits")
	}
	return 0, unexpectedToken(t, tok.U8)
}

// wordOperand returns (low, high) bytes. A U8 operand is accepted and
// zero-padded into the high byte, matching LDA/STA/LHLD/SHLD/LXI accepting
// either literal width.
func wordOperand(c *cursor) (byte, byte, error) {
	t := c.advance()
	switch t.Kind {
	case tok.U16:
		return byte(t.Word & 0xFF), byte(t.Word >> 8), nil
	case tok.U8:
		return t.Byte, 0, nil
	}
	return 0, 0, unexpectedToken(t, tok.U16)
}

func registerIndex(r tok.Register) (int, bool) {
	switch r {
	case tok.B:
		return op.RegB, true
	case tok.C:
		return op.RegC, true
	case tok.D:
		return op.RegD, true
	case tok.E:
		return op.RegE, true
	case tok.H:
		return op.RegH, true
	case tok.L:
		return op.RegL, true
	case tok.M:
		return op.RegM, true
	case tok.A:
		return op.RegA, true
	}
	return 0, false
}

func pairIndex(r tok.Register) (int, bool) {
	switch r {
	case tok.B:
		return op.PairB, true
	case tok.D:
		return op.PairD, true
	case tok.H:
		return op.PairH, true
	case tok.SP:
		return op.PairSP, true
	}
	return 0, false
}

func pairBaseOpcode(name string) byte {
	switch name {
	case "DAD":
		return op.OpDAD
	case "INX":
		return op.OpINX
	case "DCX":
		return op.OpDCX
	}
	panic("unreachable: " + name)
}

func directOpcode(name string) byte {
	switch name {
	case "LDA":
		return op.OpLDA
	case "STA":
		return op.OpSTA
	case "LHLD":
		return op.OpLHLD
	case "SHLD":
		return op.OpSHLD
	}
	panic("unreachable: " + name)
}

func immediateOpcode(name string) byte {
	switch name {
	case "ADI":
		return op.OpADI
	case "ACI":
		return op.OpACI
	case "SUI":
		return op.OpSUI
	case "SBI":
		return op.OpSBI
	case "ANI":
		return op.OpANI
	case "XRI":
		return op.OpXRI
	case "ORI":
		return op.OpORI
	case "CPI":
		return op.OpCPI
	case "IN":
		return op.OpIN
	case "OUT":
		return op.OpOUT
	}
	panic("unreachable: " + name)
}

func regGroupOpcode(name string) byte {
	switch name {
	case "ADD":
		return op.OpADD
	case "ADC":
		return op.OpADC
	case "SUB":
		return op.OpSUB
	case "SBB":
		return op.OpSBB
	case "ANA":
		return op.OpANA
	case "XRA":
		return op.OpXRA
	case "ORA":
		return op.OpORA
	case "CMP":
		return op.OpCMP
	}
	panic("unreachable: " + name)
}

func zeroOperandOpcode(name string) byte {
	switch name {
	case "RLC":
		return op.OpRLC
	case "RRC":
		return op.OpRRC
	case "RAL":
		return op.OpRAL
	case "RAR":
		return op.OpRAR
	case "CMA":
		return op.OpCMA
	case "CMC":
		return op.OpCMC
	case "STC":
		return op.OpSTC
	case "NOP":
		return op.OpNOP
	case "HLT":
		return op.OpHLT
	case "RET":
		return op.OpRET
	case "RC":
		return op.OpRC
	case "RNC":
		return op.OpRNC
	case "RZ":
		return op.OpRZ
	case "RNZ":
		return op.OpRNZ
	case "RP":
		return op.OpRP
	case "RM":
		return op.OpRM
	case "RPE":
		return op.OpRPE
	case "RPO":
		return op.OpRPO
	case "PCHL":
		return op.OpPCHL
	case "SPHL":
		return op.OpSPHL
	case "XCHG":
		return op.OpXCHG
	case "XTHL":
		return op.OpXTHL
	case "EI":
		return op.OpEI
	case "DI":
		return op.OpDI
	case "RIM":
		return op.OpRIM
	case "SIM":
		return op.OpSIM
	case "DAA":
		return op.OpDAA
	}
	panic("unreachable: " + name)
}

func branchOpcode(name string) byte {
	switch name {
	case "JMP":
		return op.OpJMP
	case "JC":
		return op.OpJC
	case "JNC":
		return op.OpJNC
	case "JZ":
		return op.OpJZ
	case "JNZ":
		return op.OpJNZ
	case "JP":
		return op.OpJP
	case "JM":
		return op.OpJM
	case "JPE":
		return op.OpJPE
	case "JPO":
		return op.OpJPO
	case "CALL":
		return op.OpCALL
	case "CC":
		return op.OpCC
	case "CNC":
		return op.OpCNC
	case "CZ":
		return op.OpCZ
	case "CNZ":
		return op.OpCNZ
	case "CP":
		return op.OpCP
	case "CM":
		return op.OpCM
	case "CPE":
		return op.OpCPE
	case "CPO":
		return op.OpCPO
	}
	panic("unreachable: " + name)
}

// UnknownOpcode is used by emu/disassemble when it encounters an opcode byte
// that this table never produces, to render consistent error text.
func UnknownOpcode(b byte) error {
	return fmt.Errorf("opcode %02x has no assigned mnemonic", b)
}
