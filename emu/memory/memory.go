package memory

/*
 * i8085 - Low level memory and I/O port space.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Memory map regions: [0, LowReserved) and [HighReserved, 65536) are
// reserved and not valid load targets for assembled code; the code region is
// [LowReserved, HighReserved).
const (
	LowReserved  = 1024
	HighReserved = 64000
)

type mem struct {
	mem [65536]byte
	io  [256]byte
}

var memory mem

// Reset clears all of memory and I/O space.
func Reset() {
	memory = mem{}
}

// CheckAddr reports whether addr falls inside the loadable code region.
func CheckAddr(addr int) bool {
	return addr >= LowReserved && addr < HighReserved
}

// GetByte reads one byte from memory, wrapping the address to 16 bits.
func GetByte(addr uint16) byte {
	return memory.mem[addr]
}

// PutByte writes one byte to memory, wrapping the address to 16 bits.
func PutByte(addr uint16, value byte) {
	memory.mem[addr] = value
}

// GetWord reads a little-endian 16-bit value from addr, addr+1.
func GetWord(addr uint16) uint16 {
	lo := uint16(memory.mem[addr])
	hi := uint16(memory.mem[addr+1])
	return lo | hi<<8
}

// PutWord writes a little-endian 16-bit value to addr, addr+1.
func PutWord(addr uint16, value uint16) {
	memory.mem[addr] = byte(value & 0xFF)
	memory.mem[addr+1] = byte(value >> 8)
}

// LoadAt copies code into memory starting at addr, without bounds-checking
// against the reserved regions; callers that care use CheckAddr first.
func LoadAt(addr uint16, code []byte) {
	for i, b := range code {
		memory.mem[int(addr)+i] = b
	}
}

// GetIO reads an 8-bit I/O port.
func GetIO(port byte) byte {
	return memory.io[port]
}

// PutIO writes an 8-bit I/O port.
func PutIO(port byte, value byte) {
	memory.io[port] = value
}
