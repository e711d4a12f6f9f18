/*
 * i8085 - Command executor.
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

package parser

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/i8085/emu/core"
	"github.com/rcornwell/i8085/emu/cpu"
	disassembler "github.com/rcornwell/i8085/emu/disassemble"
	"github.com/rcornwell/i8085/emu/memory"
	"github.com/rcornwell/i8085/util/hex"
)

// parseValue accepts a plain decimal number or a hex number with a trailing
// H/h or K/k suffix - both suffixes are accepted, the same as in the
// assembler's lexer.
func parseValue(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("missing value")
	}
	last := s[len(s)-1]
	if last == 'H' || last == 'h' || last == 'K' || last == 'k' {
		return strconv.ParseUint(s[:len(s)-1], 16, 32)
	}
	return strconv.ParseUint(s, 10, 32)
}

func parseAddr(s string) (uint16, error) {
	v, err := parseValue(s)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func load(line *cmdLine, m *core.Machine) (bool, error) {
	addrWord := line.getWord()
	path := line.rest()
	if addrWord == "" || path == "" {
		return false, errors.New("usage: load <addr> <file>")
	}
	addr, err := parseAddr(addrWord)
	if err != nil {
		return false, err
	}
	code, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if err := m.Load(code, addr); err != nil {
		return false, err
	}
	fmt.Printf("loaded %d bytes at %04XH\n", len(code), addr)
	return false, nil
}

func asm(line *cmdLine, m *core.Machine) (bool, error) {
	addrWord := line.getWord()
	path := line.rest()
	if addrWord == "" || path == "" {
		return false, errors.New("usage: asm <addr> <file>")
	}
	addr, err := parseAddr(addrWord)
	if err != nil {
		return false, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if err := m.Assemble(string(source), addr); err != nil {
		return false, err
	}
	fmt.Printf("assembled, loaded at %04XH\n", addr)
	return false, nil
}

func run(_ *cmdLine, m *core.Machine) (bool, error) {
	m.Run()
	if !m.CPU.Running {
		fmt.Printf("halted at PC=%04XH\n", m.CPU.PC)
	} else {
		fmt.Printf("stopped at breakpoint, PC=%04XH\n", m.CPU.PC)
	}
	return false, nil
}

func step(line *cmdLine, m *core.Machine) (bool, error) {
	count := 1
	if w := line.getWord(); w != "" {
		n, err := parseValue(w)
		if err != nil {
			return false, err
		}
		count = int(n)
	}
	for i := 0; i < count; i++ {
		m.Step()
	}
	fmt.Printf("PC=%04XH\n", m.CPU.PC)
	return false, nil
}

func countComplete(_ *cmdLine) []string {
	return nil
}

func reg(_ *cmdLine, m *core.Machine) (bool, error) {
	s := m.CPU
	var str strings.Builder
	for _, pair := range []struct {
		name string
		val  byte
	}{{"A", s.A}, {"B", s.B}, {"C", s.C}, {"D", s.D}, {"E", s.E}, {"H", s.H}, {"L", s.L}} {
		str.WriteString(pair.name)
		str.WriteByte('=')
		hex.FormatByte(&str, pair.val)
		str.WriteByte(' ')
	}
	fmt.Println(strings.TrimSpace(str.String()))

	str.Reset()
	str.WriteString("SP=")
	hex.FormatWord(&str, s.SP)
	str.WriteString(" PC=")
	hex.FormatWord(&str, s.PC)
	str.WriteString(" FLAGS=")
	hex.FormatByte(&str, s.Flags)
	fmt.Println(str.String())

	fmt.Printf("IE=%v RUNNING=%v\n", s.InterruptsEnabled, s.Running)
	return false, nil
}

var setComplete = func(_ *cmdLine) []string {
	return []string{"a", "b", "c", "d", "e", "h", "l", "sp", "pc", "trace"}
}

func set(line *cmdLine, m *core.Machine) (bool, error) {
	name := line.getWord()
	valueWord := line.getWord()
	if name == "" || valueWord == "" {
		return false, errors.New("usage: set <register|trace> <value>")
	}

	if name == "trace" {
		switch strings.ToLower(valueWord) {
		case "on":
			cpu.SetDebug([]string{"INST"})
		case "off":
			cpu.SetDebug(nil)
		default:
			return false, errors.New("usage: set trace on|off")
		}
		return false, nil
	}

	v, err := parseValue(valueWord)
	if err != nil {
		return false, err
	}
	s := m.CPU
	switch name {
	case "a":
		s.A = byte(v)
	case "b":
		s.B = byte(v)
	case "c":
		s.C = byte(v)
	case "d":
		s.D = byte(v)
	case "e":
		s.E = byte(v)
	case "h":
		s.H = byte(v)
	case "l":
		s.L = byte(v)
	case "flags":
		s.Flags = byte(v)
	case "sp":
		s.SP = uint16(v)
	case "pc":
		s.PC = uint16(v)
	default:
		return false, fmt.Errorf("unknown register: %s", name)
	}
	return false, nil
}

func mem(line *cmdLine, _ *core.Machine) (bool, error) {
	addrWord := line.getWord()
	if addrWord == "" {
		return false, errors.New("usage: mem <addr> [count] or mem <addr> = <value>")
	}
	addr, err := parseAddr(addrWord)
	if err != nil {
		return false, err
	}

	next := line.getWord()
	if next == "=" {
		valueWord := line.getWord()
		v, err := parseValue(valueWord)
		if err != nil {
			return false, err
		}
		memory.PutByte(addr, byte(v))
		return false, nil
	}

	count := 16
	if next != "" {
		n, err := parseValue(next)
		if err != nil {
			return false, err
		}
		count = int(n)
	}

	var str strings.Builder
	for i := 0; i < count; i += 8 {
		str.Reset()
		hex.FormatWord(&str, addr+uint16(i))
		str.WriteByte(':')
		for j := 0; j < 8 && i+j < count; j++ {
			str.WriteByte(' ')
			hex.FormatByte(&str, memory.GetByte(addr+uint16(i+j)))
		}
		fmt.Println(str.String())
	}
	return false, nil
}

func breakCmd(line *cmdLine, m *core.Machine) (bool, error) {
	addrWord := line.getWord()
	if addrWord == "" {
		return false, errors.New("usage: break <addr>")
	}
	addr, err := parseAddr(addrWord)
	if err != nil {
		return false, err
	}
	m.SetBreakpoint(addr)
	return false, nil
}

func clearCmd(line *cmdLine, m *core.Machine) (bool, error) {
	addrWord := line.getWord()
	if addrWord == "" {
		for addr := range m.Breakpoints {
			delete(m.Breakpoints, addr)
		}
		return false, nil
	}
	addr, err := parseAddr(addrWord)
	if err != nil {
		return false, err
	}
	m.ClearBreakpoint(addr)
	return false, nil
}

func disasm(line *cmdLine, _ *core.Machine) (bool, error) {
	addrWord := line.getWord()
	if addrWord == "" {
		return false, errors.New("usage: disasm <addr> [count]")
	}
	addr, err := parseAddr(addrWord)
	if err != nil {
		return false, err
	}
	count := 10
	if w := line.getWord(); w != "" {
		n, err := parseValue(w)
		if err != nil {
			return false, err
		}
		count = int(n)
	}

	var str strings.Builder
	for i := 0; i < count; i++ {
		buf := make([]byte, 3)
		for j := range buf {
			buf[j] = memory.GetByte(addr + uint16(j))
		}
		text, n := disassembler.Disassemble(buf)
		str.Reset()
		hex.FormatWord(&str, addr)
		str.WriteString(": ")
		str.WriteString(text)
		fmt.Println(str.String())
		addr += uint16(n)
	}
	return false, nil
}

func reset(_ *cmdLine, m *core.Machine) (bool, error) {
	m.Reset()
	return false, nil
}

func quit(_ *cmdLine, _ *core.Machine) (bool, error) {
	return true, nil
}
