package memory

/*
 * i8085 - Low level memory and I/O port space tests.
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

import (
	"testing"
)

func TestByteRoundTrip(t *testing.T) {
	Reset()
	PutByte(2000, 0xAB)
	if v := GetByte(2000); v != 0xAB {
		t.Errorf("GetByte = %#x, want 0xAB", v)
	}
}

func TestWordIsLittleEndian(t *testing.T) {
	Reset()
	PutWord(2000, 0x1234)
	if v := GetByte(2000); v != 0x34 {
		t.Errorf("low byte = %#x, want 0x34", v)
	}
	if v := GetByte(2001); v != 0x12 {
		t.Errorf("high byte = %#x, want 0x12", v)
	}
	if v := GetWord(2000); v != 0x1234 {
		t.Errorf("GetWord = %#x, want 0x1234", v)
	}
}

func TestCheckAddrRespectsReservedRegions(t *testing.T) {
	cases := []struct {
		addr int
		want bool
	}{
		{0, false},
		{1023, false},
		{1024, true},
		{63999, true},
		{64000, false},
		{65535, false},
	}
	for _, c := range cases {
		if got := CheckAddr(c.addr); got != c.want {
			t.Errorf("CheckAddr(%d) = %v, want %v", c.addr, got, c.want)
		}
	}
}

func TestLoadAtCopiesBytesInOrder(t *testing.T) {
	Reset()
	code := []byte{0x3E, 0x05, 0x76}
	LoadAt(1024, code)
	for i, b := range code {
		if got := GetByte(uint16(1024 + i)); got != b {
			t.Errorf("byte %d = %#x, want %#x", i, got, b)
		}
	}
}

func TestResetClearsMemoryAndIO(t *testing.T) {
	PutByte(2000, 0xFF)
	PutIO(10, 0xFF)
	Reset()
	if v := GetByte(2000); v != 0 {
		t.Errorf("GetByte after Reset = %#x, want 0", v)
	}
	if v := GetIO(10); v != 0 {
		t.Errorf("GetIO after Reset = %#x, want 0", v)
	}
}

func TestIOPortRoundTrip(t *testing.T) {
	Reset()
	PutIO(0xFF, 0x5A)
	if v := GetIO(0xFF); v != 0x5A {
		t.Errorf("GetIO = %#x, want 0x5A", v)
	}
}
