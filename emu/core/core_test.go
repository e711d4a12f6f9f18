package core

import "testing"

func TestAssembleSetsProgramCounterToOrigin(t *testing.T) {
	m := New()
	if err := m.Assemble("NOP\nHLT\n", 0x1000); err != nil {
		t.Fatal(err)
	}
	if m.CPU.PC != 0x1000 {
		t.Errorf("PC = %#04x, want 0x1000", m.CPU.PC)
	}
}

func TestAssembleRejectsProgramOutsideCodeRegion(t *testing.T) {
	m := New()
	if err := m.Assemble("NOP\n", 0); err == nil {
		t.Error("expected an error for an origin inside the reserved low region")
	}
}

func TestLoadAndRunExecutesUntilHalt(t *testing.T) {
	m := New()
	if err := m.Assemble("MVI A, 2AH\nHLT\n", 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Run()
	if m.CPU.A != 0x2A {
		t.Errorf("A = %#02x, want 0x2A", m.CPU.A)
	}
	if m.CPU.Running {
		t.Error("Running should be false after HLT")
	}
}

func TestRunStopsAtBreakpointLeavingRunningTrue(t *testing.T) {
	m := New()
	if err := m.Assemble("NOP\nNOP\nNOP\nHLT\n", 0x1000); err != nil {
		t.Fatal(err)
	}
	m.SetBreakpoint(0x1002)
	m.Run()
	if m.CPU.PC != 0x1002 {
		t.Errorf("PC = %#04x, want 0x1002", m.CPU.PC)
	}
	if !m.CPU.Running {
		t.Error("Running should still be true when stopped at a breakpoint")
	}
}

func TestClearBreakpointAllowsRunToCompletion(t *testing.T) {
	m := New()
	if err := m.Assemble("NOP\nNOP\nHLT\n", 0x1000); err != nil {
		t.Fatal(err)
	}
	m.SetBreakpoint(0x1001)
	m.ClearBreakpoint(0x1001)
	m.Run()
	if m.CPU.Running {
		t.Error("Running should be false: breakpoint was cleared so only HLT should stop execution")
	}
}

func TestStepExecutesOneInstructionAtATime(t *testing.T) {
	m := New()
	if err := m.Assemble("MVI A, 01H\nMVI B, 02H\nHLT\n", 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Step()
	m.Step()
	if m.CPU.A != 1 || m.CPU.B != 2 {
		t.Errorf("A,B = %d,%d, want 1,2", m.CPU.A, m.CPU.B)
	}
	if m.CPU.PC != 0x1004 {
		t.Errorf("PC = %#04x, want 0x1004 after two 2-byte instructions", m.CPU.PC)
	}
}

func TestResetClearsRegistersAndMemoryButKeepsBreakpoints(t *testing.T) {
	m := New()
	if err := m.Assemble("MVI A, 0FFH\nHLT\n", 0x1000); err != nil {
		t.Fatal(err)
	}
	m.SetBreakpoint(0x2000)
	m.Run()
	m.Reset()
	if m.CPU.A != 0 {
		t.Errorf("A = %#02x, want 0 after reset", m.CPU.A)
	}
	if !m.Breakpoints[0x2000] {
		t.Error("Reset should not clear breakpoints")
	}
}

func TestLoadRawBytesSkipsAssembly(t *testing.T) {
	m := New()
	// MVI A,07H ; HLT
	code := []byte{0x3E, 0x07, 0x76}
	if err := m.Load(code, 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Run()
	if m.CPU.A != 0x07 {
		t.Errorf("A = %#02x, want 0x07", m.CPU.A)
	}
}
