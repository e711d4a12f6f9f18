package core

import (
	"testing"

	"github.com/rcornwell/i8085/emu/memory"
)

// Each of these assembles a snippet, preloads memory with the stated inputs,
// runs to HLT, then asserts the documented output addresses. The code origin
// (0x1000) is chosen so it never overlaps the data addresses under test.
// New() resets memory, so inputs are written only after it, and before
// Assemble loads the code.

func TestScenarioEightBitAdd(t *testing.T) {
	m := New()
	memory.PutByte(0x0020, 0x30)
	memory.PutByte(0x0021, 0x31)

	src := `
		LDA 0020H
		MOV B, A
		LDA 0021H
		ADD B
		STA 0022H
		HLT
	`
	if err := m.Assemble(src, 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Run()

	if got := memory.GetByte(0x0022); got != 0x61 {
		t.Errorf("[0x0022] = %#02x, want 0x61", got)
	}
}

func TestScenarioSixteenBitAdd(t *testing.T) {
	m := New()
	memory.PutWord(0x5000, 0x1234)
	memory.PutWord(0x5002, 0x5678)

	src := `
		LHLD 5000H
		XCHG
		LHLD 5002H
		DAD D
		SHLD 5004H
		HLT
	`
	if err := m.Assemble(src, 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Run()

	if got := memory.GetWord(0x5004); got != 0x68AC {
		t.Errorf("[0x5004..0x5005] = %#04x, want 0x68AC", got)
	}
}

func TestScenarioArraySumOfFourElements(t *testing.T) {
	m := New()
	memory.PutByte(0x30, 4)
	memory.PutByte(0x31, 1)
	memory.PutByte(0x32, 2)
	memory.PutByte(0x33, 3)
	memory.PutByte(0x34, 4)

	src := `
		LXI H, 0031H
		MVI B, 04H
		MVI A, 00H
	LOOP:
		ADD M
		INX H
		DCR B
		JNZ LOOP
		STA 0070H
		HLT
	`
	if err := m.Assemble(src, 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Run()

	if got := memory.GetByte(0x70); got != 0x0A {
		t.Errorf("[0x70] = %#02x, want 0x0A", got)
	}
}

func TestScenarioAscendingBubbleSort(t *testing.T) {
	m := New()
	input := []byte{5, 4, 2, 3, 1}
	for i, v := range input {
		memory.PutByte(0x5001+uint16(i), v)
	}

	src := `
		MVI B, 04H
	PASS:
		PUSH B
		LXI H, 5001H
		MVI C, 04H
	CMP_LOOP:
		MOV A, M
		INX H
		CMP M
		JC NOSWAP
		JZ NOSWAP
		MOV E, M
		MOV M, A
		DCX H
		MOV M, E
		INX H
	NOSWAP:
		DCR C
		JNZ CMP_LOOP
		POP B
		DCR B
		JNZ PASS
		HLT
	`
	if err := m.Assemble(src, 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Run()

	want := []byte{1, 2, 3, 4, 5}
	for i, v := range want {
		if got := memory.GetByte(0x5001 + uint16(i)); got != v {
			t.Errorf("[%#04x] = %d, want %d", 0x5001+i, got, v)
		}
	}
}

func TestScenarioEvenOddTest(t *testing.T) {
	m := New()
	memory.PutByte(0x5000, 0x04)

	src := `
		LDA 5000H
		ANI 01H
		JZ EVEN
		MVI A, 01H
		STA 5001H
		HLT
	EVEN:
		MVI A, 00H
		STA 5001H
		HLT
	`
	if err := m.Assemble(src, 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Run()

	if got := memory.GetByte(0x5001); got != 0x00 {
		t.Errorf("[0x5001] = %#02x, want 0x00 (even marker)", got)
	}
}

func TestScenarioLargestOfSix(t *testing.T) {
	m := New()
	input := []byte{3, 9, 1, 7, 2, 5}
	for i, v := range input {
		memory.PutByte(0x5000+uint16(i), v)
	}

	src := `
		LXI H, 5000H
		MOV A, M
		MVI B, 05H
	NEXT:
		INX H
		CMP M
		JNC SKIP
		MOV A, M
	SKIP:
		DCR B
		JNZ NEXT
		STA 4999H
		HLT
	`
	if err := m.Assemble(src, 0x1000); err != nil {
		t.Fatal(err)
	}
	m.Run()

	if got := memory.GetByte(0x4999); got != 9 {
		t.Errorf("[0x4999] = %d, want 9 (the maximum)", got)
	}
}
