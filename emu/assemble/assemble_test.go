package assemble

import (
	"bytes"
	"testing"

	op "github.com/rcornwell/i8085/emu/opcodemap"
)

func TestEightBitAdd(t *testing.T) {
	src := `
		MVI A, 05H
		MVI B, 03H
		ADD B
		HLT
	`
	code, err := Assemble(src, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		op.MviTable[op.RegA], 0x05,
		op.MviTable[op.RegB], 0x03,
		op.OpADD + op.RegB,
		op.OpHLT,
	}
	if !bytes.Equal(code, want) {
		t.Errorf("got % X, want % X", code, want)
	}
}

func TestSixteenBitAddUsesDad(t *testing.T) {
	src := `
		LXI H, 1234H
		LXI D, 0001H
		DAD D
		HLT
	`
	code, err := Assemble(src, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		op.PairOpcode(op.OpLXI, op.PairH), 0x34, 0x12,
		op.PairOpcode(op.OpLXI, op.PairD), 0x01, 0x00,
		op.PairOpcode(op.OpDAD, op.PairD),
		op.OpHLT,
	}
	if !bytes.Equal(code, want) {
		t.Errorf("got % X, want % X", code, want)
	}
}

func TestArraySumLoopResolvesBackwardLabel(t *testing.T) {
	src := `
		LXI H, 2000H
		MVI B, 05H
		MVI A, 00H
	LOOP:
		ADD M
		INX H
		DCR B
		JNZ LOOP
		HLT
	`
	code, err := Assemble(src, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	// LOOP is defined after 7 bytes:
	// LXI H,2000H = 3 bytes; MVI B,05H = 2; MVI A,00H = 2 -> offset 7 -> 0x1007
	loopAddr := uint16(0x1000 + 3 + 2 + 2)
	jnzOperandOffset := 3 + 2 + 2 + 1 + 1 + 1 + 1 // up through JNZ opcode byte
	lo := code[jnzOperandOffset]
	hi := code[jnzOperandOffset+1]
	got := uint16(lo) | uint16(hi)<<8
	if got != loopAddr {
		t.Errorf("JNZ target = %#04x, want %#04x", got, loopAddr)
	}
}

func TestBubbleSortForwardLabel(t *testing.T) {
	src := `
		MVI B, 00H
		JZ DONE
		DCR B
	DONE:
		HLT
	`
	code, err := Assemble(src, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	// MVI B,00H = 2 bytes; JZ DONE = 3 bytes; DCR B = 1 byte -> DONE at offset 6
	doneAddr := uint16(0x1000 + 2 + 3 + 1)
	lo, hi := code[3], code[4]
	got := uint16(lo) | uint16(hi)<<8
	if got != doneAddr {
		t.Errorf("JZ target = %#04x, want %#04x", got, doneAddr)
	}
}

func TestEvenOddUsesAniAndConditionalJump(t *testing.T) {
	src := `
		MVI A, 07H
		ANI 01H
		JZ EVEN
		MVI B, 01H
		HLT
	EVEN:
		MVI B, 00H
		HLT
	`
	code, err := Assemble(src, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		op.MviTable[op.RegA], 0x07,
		op.OpANI, 0x01,
		op.OpJZ, 0x00, 0x00, // patched below
		op.MviTable[op.RegB], 0x01,
		op.OpHLT,
		op.MviTable[op.RegB], 0x00,
		op.OpHLT,
	}
	evenAddr := uint16(0x1000 + 2 + 2 + 3 + 2 + 1)
	want[5], want[6] = byte(evenAddr&0xFF), byte(evenAddr>>8)
	if !bytes.Equal(code, want) {
		t.Errorf("got % X, want % X", code, want)
	}
}

func TestLargestOfSixUsesCmpAndLabels(t *testing.T) {
	src := `
		LXI H, 3000H
		MOV A, M
	NEXT:
		INX H
		CMP M
		JP SKIP
		MOV A, M
	SKIP:
		HLT
	`
	_, err := Assemble(src, 0x1000)
	if err != nil {
		t.Fatal(err)
	}
}

func TestMovMMIsRejected(t *testing.T) {
	_, err := Assemble("MOV M, M\n", 0x1000)
	if err == nil {
		t.Fatal("expected an error for MOV M,M")
	}
}

func TestDuplicateLabelIsRejected(t *testing.T) {
	src := `
	L1:
		NOP
	L1:
		HLT
	`
	_, err := Assemble(src, 0x1000)
	if err == nil {
		t.Fatal("expected an error for a duplicate label")
	}
}

func TestUndefinedLabelIsRejected(t *testing.T) {
	_, err := Assemble("JMP NOWHERE\n", 0x1000)
	if err == nil {
		t.Fatal("expected an error for an undefined label")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if pe.Kind != UndefinedLabel {
		t.Errorf("Kind = %v, want UndefinedLabel", pe.Kind)
	}
}

func TestImmediateOverflowIsRejected(t *testing.T) {
	_, err := Assemble("MVI A, 1000H\n", 0x1000)
	if err == nil {
		t.Fatal("expected an error for an 8-bit immediate that doesn't fit")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if pe.Kind != NumberError {
		t.Errorf("Kind = %v, want NumberError", pe.Kind)
	}
}

func TestUnknownMnemonicIsRejected(t *testing.T) {
	_, err := Assemble("FROB A\n", 0x1000)
	if err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
}

func TestHexSuffixBothCasesAccepted(t *testing.T) {
	upper, err := Assemble("MVI A, 0FFH\n", 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	lower, err := Assemble("MVI A, 0ffh\n", 0x1000)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(upper, lower) {
		t.Errorf("H and h suffixes should assemble identically: % X vs % X", upper, lower)
	}
}
