/*
   CPU opcodes for assembly and disassembly

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

package opcodemap

// Register field encodings used by MOV/MVI/INR/DCR/ADD-group register operands.
const (
	RegB = 0
	RegC = 1
	RegD = 2
	RegE = 3
	RegH = 4
	RegL = 5
	RegM = 6 // pseudo register, memory at [H:L]
	RegA = 7
)

// Register pair field encodings used by LXI/DAD/INX/DCX/PUSH/POP/LDAX/STAX.
const (
	PairB   = 0 // B:C
	PairD   = 1 // D:E
	PairH   = 2 // H:L
	PairSP  = 3 // SP  (LXI/DAD/INX/DCX)
	PairPSW = 3 // PSW = A and flags (PUSH/POP)
)

const (
	// Data transfer group.
	OpMOV  = 0x40 // base of the 64-entry MOV grid: dst*8+src
	OpMVI  = 0x06 // base of the per-register MVI table
	OpLXI  = 0x01 // base of the per-pair LXI table, pair*0x10 + OpLXI
	OpLDA  = 0x3A
	OpSTA  = 0x32
	OpLHLD = 0x2A
	OpSHLD = 0x22
	OpLDAX = 0x0A // pair*0x10 + OpLDAX, pair restricted to B or D
	OpSTAX = 0x02 // pair*0x10 + OpSTAX, pair restricted to B or D
	OpXCHG = 0xEB

	// Arithmetic group.
	OpADD = 0x80 // base of the 8-entry ADD table
	OpADC = 0x88
	OpSUB = 0x90
	OpSBB = 0x98
	OpINR = 0x04 // per-register table, see InrTable
	OpDCR = 0x05 // per-register table, see DcrTable
	OpINX = 0x03 // pair*0x10 + OpINX
	OpDCX = 0x0B // pair*0x10 + OpDCX
	OpDAD = 0x09 // pair*0x10 + OpDAD
	OpDAA = 0x27

	// Logical group.
	OpANA = 0xA0
	OpXRA = 0xA8
	OpORA = 0xB0
	OpCMP = 0xB8
	OpRLC = 0x07
	OpRRC = 0x0F
	OpRAL = 0x17
	OpRAR = 0x1F
	OpCMA = 0x2F
	OpCMC = 0x3F
	OpSTC = 0x37

	// Immediate group.
	OpADI = 0xC6
	OpACI = 0xCE
	OpSUI = 0xD6
	OpSBI = 0xDE
	OpANI = 0xE6
	OpXRI = 0xEE
	OpORI = 0xF6
	OpCPI = 0xFE

	// Branch group.
	OpJMP  = 0xC3
	OpJC   = 0xDA
	OpJNC  = 0xD2
	OpJZ   = 0xCA
	OpJNZ  = 0xC2
	OpJP   = 0xF2
	OpJM   = 0xFA
	OpJPE  = 0xEA
	OpJPO  = 0xE2
	OpCALL = 0xCD
	OpCC   = 0xDC
	OpCNC  = 0xD4
	OpCZ   = 0xCC
	OpCNZ  = 0xC4
	OpCP   = 0xF4 // call if plus
	OpCM   = 0xFC
	OpCPE  = 0xEC
	OpCPO  = 0xE4
	OpRET  = 0xC9
	OpRC   = 0xD8
	OpRNC  = 0xD0
	OpRZ   = 0xC8
	OpRNZ  = 0xC0
	OpRP   = 0xF0
	OpRM   = 0xF8
	OpRPE  = 0xE8
	OpRPO  = 0xE0
	OpRST  = 0xC7 // opcode+8*n, n in 0..7
	OpPCHL = 0xE9

	// Stack group.
	OpPUSH = 0xC5 // pair*0x10 + OpPUSH
	OpPOP  = 0xC1 // pair*0x10 + OpPOP
	OpXTHL = 0xE3
	OpSPHL = 0xF9

	// I/O and machine control group.
	OpIN  = 0xDB
	OpOUT = 0xD3
	OpEI  = 0xFB
	OpDI  = 0xF3
	OpNOP = 0x00
	OpHLT = 0x76
	OpRIM = 0x20
	OpSIM = 0x30
)

// InrTable and DcrTable give the fixed per-register opcode for INR/DCR; the
// register field sits in bits 3-5 (base 0x04 or 0x05 plus register*8).
var InrTable = [8]byte{RegB: 0x04, RegC: 0x0C, RegD: 0x14, RegE: 0x1C, RegH: 0x24, RegL: 0x2C, RegM: 0x34, RegA: 0x3C}
var DcrTable = [8]byte{RegB: 0x05, RegC: 0x0D, RegD: 0x15, RegE: 0x1D, RegH: 0x25, RegL: 0x2D, RegM: 0x35, RegA: 0x3D}

// MviTable gives the fixed per-register opcode for MVI.
var MviTable = [8]byte{RegB: 0x06, RegC: 0x0E, RegD: 0x16, RegE: 0x1E, RegH: 0x26, RegL: 0x2E, RegM: 0x36, RegA: 0x3E}

// PairOpcode returns the opcode for a pair-indexed instruction family (LXI,
// DAD, INX, DCX, PUSH, POP) given the family's base opcode for pair B.
func PairOpcode(base byte, pair int) byte {
	return base + byte(pair)*0x10
}
