/*
   Core simulator session: wires the assembler, CPU and memory together
   behind a single synchronous API for the command console.

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

// Package core wires the assembler, CPU and memory together behind a single
// synchronous API. Unlike a time-shared mainframe, the 8085 it models runs
// one instruction at a time on the caller's goroutine - there is no event
// queue or channel dispatch here, only a fetch-execute loop a single command
// can step or run to completion.
package core

import (
	"fmt"
	"log/slog"

	"github.com/rcornwell/i8085/emu/assemble"
	"github.com/rcornwell/i8085/emu/cpu"
	"github.com/rcornwell/i8085/emu/memory"
)

// Machine owns the CPU state and the set of active breakpoints for one
// simulation session.
type Machine struct {
	CPU         *cpu.State
	Breakpoints map[uint16]bool
}

// New creates a machine with a clean register file and memory image.
func New() *Machine {
	memory.Reset()
	return &Machine{
		CPU:         cpu.New(),
		Breakpoints: make(map[uint16]bool),
	}
}

// Assemble translates source text and loads the resulting code at origin,
// setting the program counter to the load address.
func (m *Machine) Assemble(source string, origin uint16) error {
	code, err := assemble.Assemble(source, origin)
	if err != nil {
		return err
	}
	if !memory.CheckAddr(int(origin)) || !memory.CheckAddr(int(origin)+len(code)-1) {
		return fmt.Errorf("program does not fit in the code region: %d bytes at %#04x", len(code), origin)
	}
	memory.LoadAt(origin, code)
	m.CPU.PC = origin
	slog.Info("assembled", "bytes", len(code), "origin", origin)
	return nil
}

// Load places raw machine code at origin without assembling it, setting the
// program counter to the load address.
func (m *Machine) Load(code []byte, origin uint16) error {
	if !memory.CheckAddr(int(origin)) || !memory.CheckAddr(int(origin)+len(code)-1) {
		return fmt.Errorf("program does not fit in the code region: %d bytes at %#04x", len(code), origin)
	}
	memory.LoadAt(origin, code)
	m.CPU.PC = origin
	return nil
}

// Step executes a single instruction.
func (m *Machine) Step() {
	m.CPU.Step()
}

// Run executes instructions until HLT clears Running or the program counter
// lands on an active breakpoint.
func (m *Machine) Run() {
	m.CPU.Run(m.Breakpoints)
}

// Reset clears registers, flags and memory, keeping breakpoints in place.
func (m *Machine) Reset() {
	memory.Reset()
	m.CPU.Reset()
}

// SetBreakpoint arms a breakpoint at addr.
func (m *Machine) SetBreakpoint(addr uint16) {
	m.Breakpoints[addr] = true
}

// ClearBreakpoint disarms a breakpoint at addr.
func (m *Machine) ClearBreakpoint(addr uint16) {
	delete(m.Breakpoints, addr)
}
