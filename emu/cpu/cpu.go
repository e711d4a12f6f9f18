/*
   CPU core: register/pair access, the fetch-execute cycle and the full
   256-entry instruction dispatch table.

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

import (
	"log/slog"

	"github.com/rcornwell/i8085/emu/memory"
	op "github.com/rcornwell/i8085/emu/opcodemap"
)

// New returns a freshly initialized machine with its dispatch table built.
func New() *State {
	s := &State{}
	s.createTable()
	return s
}

// Reset clears all registers, flags and latches and resets the program
// counter to zero. The dispatch table does not need to be rebuilt.
func (s *State) Reset() {
	table := s.table
	*s = State{}
	s.table = table
}

// SetDebug turns on the named debug categories (CMD, INST, DATA).
func SetDebug(names []string) {
	debugMsk = 0
	for _, n := range names {
		debugMsk |= debugOption[n]
	}
}

// --- register and pair access ---

func (s *State) getReg(idx int) byte {
	switch idx {
	case regB:
		return s.B
	case regC:
		return s.C
	case regD:
		return s.D
	case regE:
		return s.E
	case regH:
		return s.H
	case regL:
		return s.L
	case regM:
		return memory.GetByte(s.hl())
	case regA:
		return s.A
	}
	panic("invalid register index")
}

func (s *State) setReg(idx int, v byte) {
	switch idx {
	case regB:
		s.B = v
	case regC:
		s.C = v
	case regD:
		s.D = v
	case regE:
		s.E = v
	case regH:
		s.H = v
	case regL:
		s.L = v
	case regM:
		memory.PutByte(s.hl(), v)
	case regA:
		s.A = v
	}
}

func (s *State) hl() uint16 {
	return uint16(s.H)<<8 | uint16(s.L)
}

// getPair reads a register pair for the LXI/DAD/INX/DCX family, where index
// 3 names SP.
func (s *State) getPair(pair int) uint16 {
	switch pair {
	case pairB:
		return uint16(s.B)<<8 | uint16(s.C)
	case pairD:
		return uint16(s.D)<<8 | uint16(s.E)
	case pairH:
		return s.hl()
	case pairSP:
		return s.SP
	}
	panic("invalid pair index")
}

func (s *State) setPair(pair int, v uint16) {
	switch pair {
	case pairB:
		s.B, s.C = byte(v>>8), byte(v)
	case pairD:
		s.D, s.E = byte(v>>8), byte(v)
	case pairH:
		s.H, s.L = byte(v>>8), byte(v)
	case pairSP:
		s.SP = v
	}
}

// pushPopValue reads a register pair for the PUSH/POP family, where index 3
// names PSW (A and the flag byte) instead of SP.
func (s *State) pushPopValue(pair int) uint16 {
	if pair == pairSP {
		return uint16(s.A)<<8 | uint16(s.Flags)
	}
	return s.getPair(pair)
}

func (s *State) setPushPopValue(pair int, v uint16) {
	if pair == pairSP {
		s.A = byte(v >> 8)
		s.Flags = byte(v) &^ flagUnusedMask
		return
	}
	s.setPair(pair, v)
}

// --- fetch ---

func (s *State) fetchByte() byte {
	v := memory.GetByte(s.PC)
	s.PC++
	return v
}

func (s *State) fetchWord() uint16 {
	lo := s.fetchByte()
	hi := s.fetchByte()
	return uint16(lo) | uint16(hi)<<8
}

func (s *State) push16(v uint16) {
	s.SP--
	memory.PutByte(s.SP, byte(v>>8))
	s.SP--
	memory.PutByte(s.SP, byte(v))
}

func (s *State) pop16() uint16 {
	lo := memory.GetByte(s.SP)
	s.SP++
	hi := memory.GetByte(s.SP)
	s.SP++
	return uint16(lo) | uint16(hi)<<8
}

// --- cycle ---

// Step fetches and executes one instruction. An opcode with no assigned
// handler (one of the 8085's undefined/duplicate slots) behaves as NOP,
// matching the real processor's behavior for those opcodes.
func (s *State) Step() {
	opcode := s.fetchByte()
	if debugMsk&debugInst != 0 {
		slog.Debug("step", "pc", s.PC-1, "opcode", opcode)
	}
	handler := s.table[opcode]
	if handler == nil {
		return
	}
	handler(s)
}

// Run executes instructions until Running is cleared (by HLT) or the
// program counter lands on a breakpoint address.
func (s *State) Run(breakpoints map[uint16]bool) {
	s.Running = true
	for s.Running {
		if breakpoints[s.PC] {
			slog.Info("breakpoint hit", "pc", s.PC)
			return
		}
		s.Step()
	}
}

// --- instruction handlers ---

func (s *State) doMov(dst, src int) {
	s.setReg(dst, s.getReg(src))
}

func (s *State) doMvi(dst int) {
	s.setReg(dst, s.fetchByte())
}

func (s *State) doLxi(pair int) {
	s.setPair(pair, s.fetchWord())
}

func (s *State) doLda() {
	s.A = memory.GetByte(s.fetchWord())
}

func (s *State) doSta() {
	memory.PutByte(s.fetchWord(), s.A)
}

func (s *State) doLhld() {
	addr := s.fetchWord()
	s.L = memory.GetByte(addr)
	s.H = memory.GetByte(addr + 1)
}

func (s *State) doShld() {
	addr := s.fetchWord()
	memory.PutByte(addr, s.L)
	memory.PutByte(addr+1, s.H)
}

func (s *State) doLdax(pair int) {
	s.A = memory.GetByte(s.getPair(pair))
}

func (s *State) doStax(pair int) {
	memory.PutByte(s.getPair(pair), s.A)
}

func (s *State) doXchg() {
	s.H, s.D = s.D, s.H
	s.L, s.E = s.E, s.L
}

func (s *State) doAdd(reg int, withCarry bool) {
	carryIn := withCarry && s.flag(FlagC)
	result, carry, aux := addWithCarry(s.A, s.getReg(reg), carryIn)
	s.A = result
	s.setArithFlags(result, carry, aux)
}

func (s *State) doAddImmediate(value byte, withCarry bool) {
	carryIn := withCarry && s.flag(FlagC)
	result, carry, aux := addWithCarry(s.A, value, carryIn)
	s.A = result
	s.setArithFlags(result, carry, aux)
}

func (s *State) doSub(reg int, withBorrow bool) {
	borrowIn := withBorrow && s.flag(FlagC)
	result, borrow, aux := subWithBorrow(s.A, s.getReg(reg), borrowIn)
	s.A = result
	s.setArithFlags(result, borrow, aux)
}

func (s *State) doSubImmediate(value byte, withBorrow bool) {
	borrowIn := withBorrow && s.flag(FlagC)
	result, borrow, aux := subWithBorrow(s.A, value, borrowIn)
	s.A = result
	s.setArithFlags(result, borrow, aux)
}

func (s *State) doCmp(reg int) {
	saved := s.A
	result, borrow, aux := subWithBorrow(s.A, s.getReg(reg), false)
	s.setArithFlags(result, borrow, aux)
	s.A = saved
}

func (s *State) doCpi(value byte) {
	saved := s.A
	result, borrow, aux := subWithBorrow(s.A, value, false)
	s.setArithFlags(result, borrow, aux)
	s.A = saved
}

func (s *State) doAna(reg int) {
	aux := (s.A|s.getReg(reg))&0x08 != 0
	s.A &= s.getReg(reg)
	s.setLogicalFlags(s.A, aux)
}

func (s *State) doAni(value byte) {
	aux := (s.A|value)&0x08 != 0
	s.A &= value
	s.setLogicalFlags(s.A, aux)
}

func (s *State) doXra(reg int) {
	s.A ^= s.getReg(reg)
	s.setLogicalFlags(s.A, false)
}

func (s *State) doXri(value byte) {
	s.A ^= value
	s.setLogicalFlags(s.A, false)
}

func (s *State) doOra(reg int) {
	s.A |= s.getReg(reg)
	s.setLogicalFlags(s.A, false)
}

func (s *State) doOri(value byte) {
	s.A |= value
	s.setLogicalFlags(s.A, false)
}

func (s *State) doInr(reg int) {
	result, _, aux := addWithCarry(s.getReg(reg), 1, false)
	s.setReg(reg, result)
	s.setIncDecFlags(result, aux)
}

func (s *State) doDcr(reg int) {
	result, _, aux := subWithBorrow(s.getReg(reg), 1, false)
	s.setReg(reg, result)
	s.setIncDecFlags(result, aux)
}

func (s *State) doInx(pair int) {
	s.setPair(pair, s.getPair(pair)+1)
}

func (s *State) doDcx(pair int) {
	s.setPair(pair, s.getPair(pair)-1)
}

func (s *State) doDad(pair int) {
	hl := s.getPair(pairH)
	addend := s.getPair(pair)
	sum := uint32(hl) + uint32(addend)
	s.setPair(pairH, uint16(sum))
	s.setFlag(FlagC, sum > 0xFFFF)
}

func (s *State) doPush(pair int) {
	s.push16(s.pushPopValue(pair))
}

func (s *State) doPop(pair int) {
	s.setPushPopValue(pair, s.pop16())
}

func (s *State) doXthl() {
	lo := memory.GetByte(s.SP)
	hi := memory.GetByte(s.SP + 1)
	memory.PutByte(s.SP, s.L)
	memory.PutByte(s.SP+1, s.H)
	s.L, s.H = lo, hi
}

func (s *State) doSphl() {
	s.SP = s.hl()
}

func (s *State) doPchl() {
	s.PC = s.hl()
}

func (s *State) doJump(condition bool) {
	addr := s.fetchWord()
	if condition {
		s.PC = addr
	}
}

func (s *State) doCall(condition bool) {
	addr := s.fetchWord()
	if condition {
		s.push16(s.PC)
		s.PC = addr
	}
}

func (s *State) doReturn(condition bool) {
	if condition {
		s.PC = s.pop16()
	}
}

func (s *State) doRst(n int) {
	s.push16(s.PC)
	s.PC = uint16(n) * 8
}

func (s *State) doRlc() {
	carry := s.A&0x80 != 0
	s.A = s.A<<1 | boolBit(carry, 1)
	s.setFlag(FlagC, carry)
}

func (s *State) doRrc() {
	carry := s.A&0x01 != 0
	s.A = s.A>>1 | boolBit(carry, 0x80)
	s.setFlag(FlagC, carry)
}

func (s *State) doRal() {
	carryIn := s.flag(FlagC)
	carryOut := s.A&0x80 != 0
	s.A = s.A<<1 | boolBit(carryIn, 1)
	s.setFlag(FlagC, carryOut)
}

func (s *State) doRar() {
	carryIn := s.flag(FlagC)
	carryOut := s.A&0x01 != 0
	s.A = s.A>>1 | boolBit(carryIn, 0x80)
	s.setFlag(FlagC, carryOut)
}

func (s *State) doCma() {
	s.A = ^s.A
}

func (s *State) doCmc() {
	s.setFlag(FlagC, !s.flag(FlagC))
}

func (s *State) doStc() {
	s.setFlag(FlagC, true)
}

func (s *State) doIn(port byte) {
	s.A = memory.GetIO(port)
}

func (s *State) doOut(port byte) {
	memory.PutIO(port, s.A)
}

func (s *State) doEi() {
	s.InterruptsEnabled = true
}

func (s *State) doDi() {
	s.InterruptsEnabled = false
}

// doRim and doSim are minimal: this simulator has no serial-input/interrupt
// -mask hardware beyond the single enable latch, so RIM reports only that
// latch in bit 7 and SIM is a no-op.
func (s *State) doRim() {
	s.A = boolBit(s.InterruptsEnabled, 0x80)
}

func (s *State) doSim() {
}

func (s *State) doHlt() {
	s.Running = false
}

func (s *State) doNop() {
}

// createTable builds the full 256-entry dispatch table. Each slot is
// assigned its own distinct, correctly-behaving handler - none of the
// aliasing shortcuts (one opcode's handler silently reused for another)
// that a hastily ported table is prone to.
func (s *State) createTable() {
	for reg := 0; reg < 8; reg++ {
		r := reg
		s.table[op.OpADD+r] = func(st *State) { st.doAdd(r, false) }
		s.table[op.OpADC+r] = func(st *State) { st.doAdd(r, true) }
		s.table[op.OpSUB+r] = func(st *State) { st.doSub(r, false) }
		s.table[op.OpSBB+r] = func(st *State) { st.doSub(r, true) }
		s.table[op.OpANA+r] = func(st *State) { st.doAna(r) }
		s.table[op.OpXRA+r] = func(st *State) { st.doXra(r) }
		s.table[op.OpORA+r] = func(st *State) { st.doOra(r) }
		s.table[op.OpCMP+r] = func(st *State) { st.doCmp(r) }
		s.table[op.InrTable[r]] = func(st *State) { st.doInr(r) }
		s.table[op.DcrTable[r]] = func(st *State) { st.doDcr(r) }
		s.table[op.MviTable[r]] = func(st *State) { st.doMvi(r) }

		for dst := 0; dst < 8; dst++ {
			d := dst
			opcode := byte(op.OpMOV) + byte(d)*8 + byte(r)
			if opcode == op.OpHLT {
				// 0x76 is MOV M,M's slot, repurposed by the ISA as HLT.
				continue
			}
			s.table[opcode] = func(st *State) { st.doMov(d, r) }
		}
	}

	for pair := 0; pair < 4; pair++ {
		p := pair
		s.table[op.PairOpcode(op.OpLXI, p)] = func(st *State) { st.doLxi(p) }
		s.table[op.PairOpcode(op.OpDAD, p)] = func(st *State) { st.doDad(p) }
		s.table[op.PairOpcode(op.OpINX, p)] = func(st *State) { st.doInx(p) }
		s.table[op.PairOpcode(op.OpDCX, p)] = func(st *State) { st.doDcx(p) }
		s.table[op.PairOpcode(op.OpPUSH, p)] = func(st *State) { st.doPush(p) }
		s.table[op.PairOpcode(op.OpPOP, p)] = func(st *State) { st.doPop(p) }
	}

	for _, pair := range []int{pairB, pairD} {
		p := pair
		s.table[op.PairOpcode(op.OpLDAX, p)] = func(st *State) { st.doLdax(p) }
		s.table[op.PairOpcode(op.OpSTAX, p)] = func(st *State) { st.doStax(p) }
	}

	for n := 0; n < 8; n++ {
		nn := n
		s.table[op.OpRST+nn*8] = func(st *State) { st.doRst(nn) }
	}

	s.table[op.OpHLT] = (*State).doHlt
	s.table[op.OpNOP] = (*State).doNop
	s.table[op.OpLDA] = (*State).doLda
	s.table[op.OpSTA] = (*State).doSta
	s.table[op.OpLHLD] = (*State).doLhld
	s.table[op.OpSHLD] = (*State).doShld
	s.table[op.OpXCHG] = (*State).doXchg
	s.table[op.OpRLC] = (*State).doRlc
	s.table[op.OpRRC] = (*State).doRrc
	s.table[op.OpRAL] = (*State).doRal
	s.table[op.OpRAR] = (*State).doRar
	s.table[op.OpCMA] = (*State).doCma
	s.table[op.OpCMC] = (*State).doCmc
	s.table[op.OpSTC] = (*State).doStc
	s.table[op.OpDAA] = (*State).daa
	s.table[op.OpXTHL] = (*State).doXthl
	s.table[op.OpSPHL] = (*State).doSphl
	s.table[op.OpPCHL] = (*State).doPchl
	s.table[op.OpEI] = (*State).doEi
	s.table[op.OpDI] = (*State).doDi
	s.table[op.OpRIM] = (*State).doRim
	s.table[op.OpSIM] = (*State).doSim

	s.table[op.OpADI] = func(st *State) { st.doAddImmediate(st.fetchByte(), false) }
	s.table[op.OpACI] = func(st *State) { st.doAddImmediate(st.fetchByte(), true) }
	s.table[op.OpSUI] = func(st *State) { st.doSubImmediate(st.fetchByte(), false) }
	s.table[op.OpSBI] = func(st *State) { st.doSubImmediate(st.fetchByte(), true) }
	s.table[op.OpANI] = func(st *State) { st.doAni(st.fetchByte()) }
	s.table[op.OpXRI] = func(st *State) { st.doXri(st.fetchByte()) }
	s.table[op.OpORI] = func(st *State) { st.doOri(st.fetchByte()) }
	s.table[op.OpCPI] = func(st *State) { st.doCpi(st.fetchByte()) }
	s.table[op.OpIN] = func(st *State) { st.doIn(st.fetchByte()) }
	s.table[op.OpOUT] = func(st *State) { st.doOut(st.fetchByte()) }

	s.table[op.OpJMP] = func(st *State) { st.doJump(true) }
	s.table[op.OpJC] = func(st *State) { st.doJump(st.flag(FlagC)) }
	s.table[op.OpJNC] = func(st *State) { st.doJump(!st.flag(FlagC)) }
	s.table[op.OpJZ] = func(st *State) { st.doJump(st.flag(FlagZ)) }
	s.table[op.OpJNZ] = func(st *State) { st.doJump(!st.flag(FlagZ)) }
	s.table[op.OpJP] = func(st *State) { st.doJump(!st.flag(FlagS)) }
	s.table[op.OpJM] = func(st *State) { st.doJump(st.flag(FlagS)) }
	s.table[op.OpJPE] = func(st *State) { st.doJump(st.flag(FlagP)) }
	s.table[op.OpJPO] = func(st *State) { st.doJump(!st.flag(FlagP)) }

	s.table[op.OpCALL] = func(st *State) { st.doCall(true) }
	s.table[op.OpCC] = func(st *State) { st.doCall(st.flag(FlagC)) }
	s.table[op.OpCNC] = func(st *State) { st.doCall(!st.flag(FlagC)) }
	s.table[op.OpCZ] = func(st *State) { st.doCall(st.flag(FlagZ)) }
	s.table[op.OpCNZ] = func(st *State) { st.doCall(!st.flag(FlagZ)) }
	s.table[op.OpCP] = func(st *State) { st.doCall(!st.flag(FlagS)) }
	s.table[op.OpCM] = func(st *State) { st.doCall(st.flag(FlagS)) }
	s.table[op.OpCPE] = func(st *State) { st.doCall(st.flag(FlagP)) }
	s.table[op.OpCPO] = func(st *State) { st.doCall(!st.flag(FlagP)) }

	s.table[op.OpRET] = func(st *State) { st.doReturn(true) }
	s.table[op.OpRC] = func(st *State) { st.doReturn(st.flag(FlagC)) }
	s.table[op.OpRNC] = func(st *State) { st.doReturn(!st.flag(FlagC)) }
	s.table[op.OpRZ] = func(st *State) { st.doReturn(st.flag(FlagZ)) }
	s.table[op.OpRNZ] = func(st *State) { st.doReturn(!st.flag(FlagZ)) }
	s.table[op.OpRP] = func(st *State) { st.doReturn(!st.flag(FlagS)) }
	s.table[op.OpRM] = func(st *State) { st.doReturn(st.flag(FlagS)) }
	s.table[op.OpRPE] = func(st *State) { st.doReturn(st.flag(FlagP)) }
	s.table[op.OpRPO] = func(st *State) { st.doReturn(!st.flag(FlagP)) }
}
