/*
   Pure ALU helpers: flag computation is separated from register/memory
   side effects so each instruction handler only has to decide which flags
   an operation touches.

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

// addWithCarry adds a, b and an optional incoming carry, returning the
// 8-bit result along with the outgoing carry and auxiliary carry. The
// auxiliary carry fires when the low-nibble sum exceeds 0x0F (not 0x09 -
// a low-nibble sum of 0x09 is not yet a BCD digit overflow).
func addWithCarry(a, b byte, carryIn bool) (result byte, carry, aux bool) {
	var cin byte
	if carryIn {
		cin = 1
	}
	full := uint16(a) + uint16(b) + uint16(cin)
	lowNibble := (a & 0x0F) + (b & 0x0F) + cin
	return byte(full), full > 0xFF, lowNibble > 0x0F
}

// subWithBorrow subtracts b and an optional incoming borrow from a,
// returning the 8-bit result along with the outgoing borrow (reported as
// Carry, per 8085 convention where SUB/SBB set C to indicate a borrow) and
// the auxiliary borrow out of the low nibble.
func subWithBorrow(a, b byte, borrowIn bool) (result byte, borrow, aux bool) {
	var bin int
	if borrowIn {
		bin = 1
	}
	full := int(a) - int(b) - bin
	lowNibble := int(a&0x0F) - int(b&0x0F) - bin
	return byte(full), full < 0, lowNibble < 0
}

// zeroSignParity computes the three flags that depend only on the result
// value, independent of how it was produced.
func zeroSignParity(result byte) (zero, sign, parity bool) {
	zero = result == 0
	sign = result&0x80 != 0
	parity = popcount(result)%2 == 0
	return
}

func popcount(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

func boolBit(set bool, bit uint8) uint8 {
	if set {
		return bit
	}
	return 0
}

// setFlag sets or clears one flag bit, leaving the other flag bits untouched
// and forcing the three unused bits to zero.
func (s *State) setFlag(bit uint8, value bool) {
	if value {
		s.Flags |= bit
	} else {
		s.Flags &^= bit
	}
	s.Flags &^= flagUnusedMask
}

func (s *State) flag(bit uint8) bool {
	return s.Flags&bit != 0
}

// setArithFlags updates all five flags after an ADD/ADC/SUB/SBB/CMP-style
// operation.
func (s *State) setArithFlags(result byte, carry, aux bool) {
	zero, sign, parity := zeroSignParity(result)
	s.setFlag(FlagC, carry)
	s.setFlag(FlagAC, aux)
	s.setFlag(FlagZ, zero)
	s.setFlag(FlagS, sign)
	s.setFlag(FlagP, parity)
}

// setLogicalFlags updates flags after ANA/XRA/ORA: Z, S and P follow the
// result, C is always cleared, and AC is taken from aux: XRA/ORA pass false,
// ANA/ANI pass the OR of bit 3 of the accumulator and the operand, as the
// real 8085 does.
func (s *State) setLogicalFlags(result byte, aux bool) {
	zero, sign, parity := zeroSignParity(result)
	s.setFlag(FlagC, false)
	s.setFlag(FlagAC, aux)
	s.setFlag(FlagZ, zero)
	s.setFlag(FlagS, sign)
	s.setFlag(FlagP, parity)
}

// setIncDecFlags updates Z, S, P and AC after INR/DCR. Carry is left
// untouched - on real 8085 hardware INR/DCR never affect it.
func (s *State) setIncDecFlags(result byte, aux bool) {
	zero, sign, parity := zeroSignParity(result)
	s.setFlag(FlagAC, aux)
	s.setFlag(FlagZ, zero)
	s.setFlag(FlagS, sign)
	s.setFlag(FlagP, parity)
}

// daa performs the decimal adjust: correct for a low nibble that is either
// greater than 9 or that produced an auxiliary carry, then correct for a
// high nibble that is either greater than 9 (after any low nibble fixup) or
// that produced a carry. Both corrections can apply to the same byte.
func (s *State) daa() {
	a := s.A
	carry := s.flag(FlagC)
	aux := s.flag(FlagAC)

	correction := byte(0)
	if a&0x0F > 9 || aux {
		correction += 0x06
	}
	if (a>>4) > 9 || carry || ((a>>4) == 9 && a&0x0F > 9) {
		correction += 0x60
		carry = true
	}

	result, _, newAux := addWithCarry(a, correction, false)
	s.A = result
	zero, sign, parity := zeroSignParity(result)
	s.setFlag(FlagC, carry)
	s.setFlag(FlagAC, newAux)
	s.setFlag(FlagZ, zero)
	s.setFlag(FlagS, sign)
	s.setFlag(FlagP, parity)
}
