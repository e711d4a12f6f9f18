/*
	   Intel 8085 disassembler.

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
		RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
		IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
		CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/
package disassembler

import (
	"fmt"

	"github.com/rcornwell/i8085/emu/assemble"
	op "github.com/rcornwell/i8085/emu/opcodemap"
)

const (
	fmtZero  = 1 + iota // no operand
	fmtReg               // single register operand: low 3 bits, or bits 3-5 for INR/DCR
	fmtRegPair           // register pair, encoded in bits 4-5
	fmtImm8              // one immediate byte follows
	fmtRegImm8           // destination register (bits 3-5) + immediate byte
	fmtPairImm16         // register pair + immediate word (LXI)
	fmtAddr              // absolute 16-bit address follows
	fmtPort               // 8-bit I/O port follows
	fmtRst                // RST n, n encoded in bits 3-5
)

type opcode struct {
	name   string
	format int
}

const fmtMov = 100

var regName = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}
var pairName = [4]string{"B", "D", "H", "SP"}
var pswPairName = [4]string{"B", "D", "H", "PSW"}

var opMap = map[byte]opcode{
	op.OpNOP:  {"NOP", fmtZero},
	op.OpHLT:  {"HLT", fmtZero},
	op.OpXCHG: {"XCHG", fmtZero},
	op.OpLDA:  {"LDA", fmtAddr},
	op.OpSTA:  {"STA", fmtAddr},
	op.OpLHLD: {"LHLD", fmtAddr},
	op.OpSHLD: {"SHLD", fmtAddr},
	op.OpRLC:  {"RLC", fmtZero},
	op.OpRRC:  {"RRC", fmtZero},
	op.OpRAL:  {"RAL", fmtZero},
	op.OpRAR:  {"RAR", fmtZero},
	op.OpCMA:  {"CMA", fmtZero},
	op.OpCMC:  {"CMC", fmtZero},
	op.OpSTC:  {"STC", fmtZero},
	op.OpDAA:  {"DAA", fmtZero},
	op.OpXTHL: {"XTHL", fmtZero},
	op.OpSPHL: {"SPHL", fmtZero},
	op.OpPCHL: {"PCHL", fmtZero},
	op.OpEI:   {"EI", fmtZero},
	op.OpDI:   {"DI", fmtZero},
	op.OpRIM:  {"RIM", fmtZero},
	op.OpSIM:  {"SIM", fmtZero},
	op.OpRET:  {"RET", fmtZero},
	op.OpRC:   {"RC", fmtZero},
	op.OpRNC:  {"RNC", fmtZero},
	op.OpRZ:   {"RZ", fmtZero},
	op.OpRNZ:  {"RNZ", fmtZero},
	op.OpRP:   {"RP", fmtZero},
	op.OpRM:   {"RM", fmtZero},
	op.OpRPE:  {"RPE", fmtZero},
	op.OpRPO:  {"RPO", fmtZero},
	op.OpJMP:  {"JMP", fmtAddr},
	op.OpJC:   {"JC", fmtAddr},
	op.OpJNC:  {"JNC", fmtAddr},
	op.OpJZ:   {"JZ", fmtAddr},
	op.OpJNZ:  {"JNZ", fmtAddr},
	op.OpJP:   {"JP", fmtAddr},
	op.OpJM:   {"JM", fmtAddr},
	op.OpJPE:  {"JPE", fmtAddr},
	op.OpJPO:  {"JPO", fmtAddr},
	op.OpCALL: {"CALL", fmtAddr},
	op.OpCC:   {"CC", fmtAddr},
	op.OpCNC:  {"CNC", fmtAddr},
	op.OpCZ:   {"CZ", fmtAddr},
	op.OpCNZ:  {"CNZ", fmtAddr},
	op.OpCP:   {"CP", fmtAddr},
	op.OpCM:   {"CM", fmtAddr},
	op.OpCPE:  {"CPE", fmtAddr},
	op.OpCPO:  {"CPO", fmtAddr},
	op.OpADI:  {"ADI", fmtImm8},
	op.OpACI:  {"ACI", fmtImm8},
	op.OpSUI:  {"SUI", fmtImm8},
	op.OpSBI:  {"SBI", fmtImm8},
	op.OpANI:  {"ANI", fmtImm8},
	op.OpXRI:  {"XRI", fmtImm8},
	op.OpORI:  {"ORI", fmtImm8},
	op.OpCPI:  {"CPI", fmtImm8},
	op.OpIN:   {"IN", fmtPort},
	op.OpOUT:  {"OUT", fmtPort},
}

func init() {
	for r := 0; r < 8; r++ {
		opMap[op.InrTable[r]] = opcode{"INR", fmtReg}
		opMap[op.DcrTable[r]] = opcode{"DCR", fmtReg}
		opMap[op.MviTable[r]] = opcode{"MVI", fmtRegImm8}
		opMap[byte(op.OpADD+r)] = opcode{"ADD", fmtReg}
		opMap[byte(op.OpADC+r)] = opcode{"ADC", fmtReg}
		opMap[byte(op.OpSUB+r)] = opcode{"SUB", fmtReg}
		opMap[byte(op.OpSBB+r)] = opcode{"SBB", fmtReg}
		opMap[byte(op.OpANA+r)] = opcode{"ANA", fmtReg}
		opMap[byte(op.OpXRA+r)] = opcode{"XRA", fmtReg}
		opMap[byte(op.OpORA+r)] = opcode{"ORA", fmtReg}
		opMap[byte(op.OpCMP+r)] = opcode{"CMP", fmtReg}
		for d := 0; d < 8; d++ {
			code := byte(op.OpMOV) + byte(d)*8 + byte(r)
			if code == op.OpHLT {
				continue
			}
			opMap[code] = opcode{"MOV", fmtMov}
		}
	}
	for p := 0; p < 4; p++ {
		opMap[op.PairOpcode(op.OpLXI, p)] = opcode{"LXI", fmtPairImm16}
		opMap[op.PairOpcode(op.OpDAD, p)] = opcode{"DAD", fmtRegPair}
		opMap[op.PairOpcode(op.OpINX, p)] = opcode{"INX", fmtRegPair}
		opMap[op.PairOpcode(op.OpDCX, p)] = opcode{"DCX", fmtRegPair}
		opMap[op.PairOpcode(op.OpPUSH, p)] = opcode{"PUSH", fmtRegPair}
		opMap[op.PairOpcode(op.OpPOP, p)] = opcode{"POP", fmtRegPair}
	}
	opMap[op.PairOpcode(op.OpLDAX, op.PairB)] = opcode{"LDAX", fmtRegPair}
	opMap[op.PairOpcode(op.OpLDAX, op.PairD)] = opcode{"LDAX", fmtRegPair}
	opMap[op.PairOpcode(op.OpSTAX, op.PairB)] = opcode{"STAX", fmtRegPair}
	opMap[op.PairOpcode(op.OpSTAX, op.PairD)] = opcode{"STAX", fmtRegPair}
	for n := 0; n < 8; n++ {
		opMap[op.OpRST+byte(n)*8] = opcode{"RST", fmtRst}
	}
}

// Disassemble decodes one instruction starting at data[0], returning its
// mnemonic text and the number of bytes it occupies. data must have enough
// trailing bytes for the widest instruction (3); callers reading near the
// end of memory should pad.
func Disassemble(data []byte) (string, int) {
	code := data[0]
	entry, ok := opMap[code]
	if !ok {
		return fmt.Sprintf("DB      %02XH  ; %s", code, assemble.UnknownOpcode(code)), 1
	}
	switch entry.format {
	case fmtZero:
		return entry.name, 1
	case fmtMov:
		dst := (code >> 3) & 0x07
		src := code & 0x07
		return fmt.Sprintf("%-6s  %s,%s", entry.name, regName[dst], regName[src]), 1
	case fmtReg:
		reg := code & 0x07
		if entry.name == "INR" || entry.name == "DCR" {
			reg = (code >> 3) & 0x07
		}
		return fmt.Sprintf("%-6s  %s", entry.name, regName[reg]), 1
	case fmtRegPair:
		pair := (code >> 4) & 0x03
		name := pairName[pair]
		if entry.name == "PUSH" || entry.name == "POP" {
			name = pswPairName[pair]
		}
		return fmt.Sprintf("%-6s  %s", entry.name, name), 1
	case fmtImm8:
		return fmt.Sprintf("%-6s  %02XH", entry.name, data[1]), 2
	case fmtRegImm8:
		reg := (code >> 3) & 0x07
		return fmt.Sprintf("%-6s  %s,%02XH", entry.name, regName[reg], data[1]), 2
	case fmtPairImm16:
		pair := (code >> 4) & 0x03
		word := uint16(data[1]) | uint16(data[2])<<8
		return fmt.Sprintf("%-6s  %s,%04XH", entry.name, pairName[pair], word), 3
	case fmtAddr:
		word := uint16(data[1]) | uint16(data[2])<<8
		return fmt.Sprintf("%-6s  %04XH", entry.name, word), 3
	case fmtPort:
		return fmt.Sprintf("%-6s  %02XH", entry.name, data[1]), 2
	case fmtRst:
		n := (code >> 3) & 0x07
		return fmt.Sprintf("%-6s  %d", entry.name, n), 1
	}
	return entry.name, 1
}
