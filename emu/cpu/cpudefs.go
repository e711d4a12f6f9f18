/*
   CPU definitions for 8085 simulator.

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

package cpu

// Flag bit positions within the flag byte. Bits 1, 3 and 5 are unused and
// always read back as zero.
const (
	FlagC  uint8 = 1 << 0
	FlagP  uint8 = 1 << 2
	FlagAC uint8 = 1 << 4
	FlagZ  uint8 = 1 << 6
	FlagS  uint8 = 1 << 7

	flagUnusedMask uint8 = (1 << 1) | (1 << 3) | (1 << 5)
)

// State is the complete machine state: the seven 8-bit registers A, B, C,
// D, E, H and L, the stack pointer, program counter, flag byte,
// interrupt-enable latch and run latch.
type State struct {
	A, B, C, D, E, H, L uint8
	SP                  uint16
	PC                  uint16
	Flags               uint8

	InterruptsEnabled bool
	Running           bool

	table [256]func(*State)
}

// register indices, matching the bit pattern used by MOV/MVI/INR/DCR and
// the arithmetic/logical opcode groups.
const (
	regB = 0
	regC = 1
	regD = 2
	regE = 3
	regH = 4
	regL = 5
	regM = 6 // pseudo-register: byte at [H:L]
	regA = 7
)

// register pair indices used by LXI/DAD/INX/DCX/PUSH/POP/LDAX/STAX.
const (
	pairB  = 0
	pairD  = 1
	pairH  = 2
	pairSP = 3 // also PSW for PUSH/POP
)

const (
	debugCmd = 1 << iota
	debugInst
	debugData
)

var debugOption = map[string]int{
	"CMD":  debugCmd,
	"INST": debugInst,
	"DATA": debugData,
}

var debugMsk int
