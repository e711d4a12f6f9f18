package lexer

import (
	"testing"

	tok "github.com/rcornwell/i8085/emu/token"
)

func kinds(stream tok.Stream) []tok.Kind {
	out := make([]tok.Kind, len(stream.Tokens))
	for i, t := range stream.Tokens {
		out[i] = t.Kind
	}
	return out
}

func tokenize(t *testing.T, source string) tok.Stream {
	t.Helper()
	stream, err := Tokenize(source)
	if err != nil {
		t.Fatal(err)
	}
	return stream
}

func TestTokenizeMviOperands(t *testing.T) {
	stream := tokenize(t, "MVI A, 05H\n")
	got := kinds(stream)
	want := []tok.Kind{tok.Operation, tok.RegisterTok, tok.Comma, tok.U8, tok.End}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if stream.Tokens[1].Reg != tok.A {
		t.Errorf("register = %v, want A", stream.Tokens[1].Reg)
	}
	if stream.Tokens[3].Byte != 0x05 {
		t.Errorf("byte = %#x, want 0x05", stream.Tokens[3].Byte)
	}
}

func TestTokenizeLabelDefinitionAndReference(t *testing.T) {
	stream := tokenize(t, "LOOP:\nJMP LOOP\n")
	got := kinds(stream)
	want := []tok.Kind{tok.Label, tok.Colon, tok.Operation, tok.Label, tok.End}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if stream.Tokens[0].Text != "LOOP" || stream.Tokens[3].Text != "LOOP" {
		t.Errorf("label text = %q / %q, want LOOP / LOOP", stream.Tokens[0].Text, stream.Tokens[3].Text)
	}
}

func TestTokenizeHexSuffixUpperAndLower(t *testing.T) {
	upper := tokenize(t, "0FFH\n")
	lower := tokenize(t, "0ffh\n")
	if upper.Tokens[0].Kind != tok.U8 || upper.Tokens[0].Byte != 0xFF {
		t.Errorf("upper = %v, want U8(0xFF)", upper.Tokens[0])
	}
	if lower.Tokens[0].Kind != tok.U8 || lower.Tokens[0].Byte != 0xFF {
		t.Errorf("lower = %v, want U8(0xFF)", lower.Tokens[0])
	}
}

func TestTokenizeKSuffixAcceptedLikeH(t *testing.T) {
	stream := tokenize(t, "10K\n")
	if stream.Tokens[0].Kind != tok.U8 || stream.Tokens[0].Byte != 0x10 {
		t.Errorf("got %v, want U8(0x10)", stream.Tokens[0])
	}
}

func TestTokenizeWideHexLiteralBecomesU16(t *testing.T) {
	stream := tokenize(t, "1000H\n")
	if stream.Tokens[0].Kind != tok.U16 || stream.Tokens[0].Word != 0x1000 {
		t.Errorf("got %v, want U16(0x1000)", stream.Tokens[0])
	}
}

func TestTokenizeDecimalLiteralStaysDecimal(t *testing.T) {
	stream := tokenize(t, "10\n")
	if stream.Tokens[0].Kind != tok.U8 || stream.Tokens[0].Byte != 10 {
		t.Errorf("got %v, want U8(10)", stream.Tokens[0])
	}
}

func TestTokenizeSkipsCommentsToEndOfLine(t *testing.T) {
	stream := tokenize(t, "NOP ; this is a comment\nHLT\n")
	got := kinds(stream)
	want := []tok.Kind{tok.Operation, tok.Operation, tok.End}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if stream.Tokens[0].Text != "NOP" || stream.Tokens[1].Text != "HLT" {
		t.Errorf("got %q/%q, want NOP/HLT", stream.Tokens[0].Text, stream.Tokens[1].Text)
	}
}

func TestTokenizeMnemonicIsCaseInsensitive(t *testing.T) {
	stream := tokenize(t, "mov a, b\n")
	if stream.Tokens[0].Kind != tok.Operation || stream.Tokens[0].Text != "MOV" {
		t.Errorf("got %v, want Operation(MOV)", stream.Tokens[0])
	}
}

func TestTokenizeTracksLineAndColumn(t *testing.T) {
	stream := tokenize(t, "NOP\n  HLT\n")
	hlt := stream.Tokens[1]
	if hlt.Line != 2 || hlt.Col != 3 {
		t.Errorf("HLT position = %d:%d, want 2:3", hlt.Line, hlt.Col)
	}
}

func TestTokenizeEmptySourceProducesOnlyEnd(t *testing.T) {
	stream := tokenize(t, "")
	if len(stream.Tokens) != 1 || stream.Tokens[0].Kind != tok.End {
		t.Errorf("got %v, want a single End token", stream.Tokens)
	}
}

func TestTokenizeOutOfRangeDecimalRaisesNumberError(t *testing.T) {
	_, err := Tokenize("70000\n")
	if err == nil {
		t.Fatal("expected an error for a decimal literal that overflows 16 bits")
	}
	perr, ok := err.(*tok.Error)
	if !ok {
		t.Fatalf("got %T, want *tok.Error", err)
	}
	if perr.Kind != tok.NumberError {
		t.Errorf("Kind = %v, want NumberError", perr.Kind)
	}
}

func TestTokenizeLabelDefinitionCannotBeAllDigits(t *testing.T) {
	_, err := Tokenize("70000:\n")
	if err == nil {
		t.Fatal("expected an error: a digit-led lexeme can never be a valid label")
	}
	perr, ok := err.(*tok.Error)
	if !ok {
		t.Fatalf("got %T, want *tok.Error", err)
	}
	if perr.Kind != tok.NumberError {
		t.Errorf("Kind = %v, want NumberError", perr.Kind)
	}
}

func TestTokenizeMalformedHexSuffixRaisesNumberError(t *testing.T) {
	_, err := Tokenize("0GH\n")
	if err == nil {
		t.Fatal("expected an error for a non-hex digit before the H suffix")
	}
	perr, ok := err.(*tok.Error)
	if !ok {
		t.Fatalf("got %T, want *tok.Error", err)
	}
	if perr.Kind != tok.NumberError {
		t.Errorf("Kind = %v, want NumberError", perr.Kind)
	}
}

func TestTokenizeDigitLedAlphanumericWithoutSuffixRaisesNumberError(t *testing.T) {
	_, err := Tokenize("1F\n")
	if err == nil {
		t.Fatal("expected an error: digit-led, not a valid decimal or suffixed hex literal")
	}
	perr, ok := err.(*tok.Error)
	if !ok {
		t.Fatalf("got %T, want *tok.Error", err)
	}
	if perr.Kind != tok.NumberError {
		t.Errorf("Kind = %v, want NumberError", perr.Kind)
	}
}

func TestTokenizeUnclassifiableLexemeRaisesUnexpectedLexeme(t *testing.T) {
	_, err := Tokenize("$foo\n")
	if err == nil {
		t.Fatal("expected an error: not a register, keyword, number or valid label")
	}
	perr, ok := err.(*tok.Error)
	if !ok {
		t.Fatalf("got %T, want *tok.Error", err)
	}
	if perr.Kind != tok.UnexpectedLexeme {
		t.Errorf("Kind = %v, want UnexpectedLexeme", perr.Kind)
	}
}

func TestTokenizeErrorReportsSourcePosition(t *testing.T) {
	_, err := Tokenize("NOP\nMVI A, 70000\n")
	perr, ok := err.(*tok.Error)
	if !ok {
		t.Fatalf("got %T, want *tok.Error", err)
	}
	if perr.Position[0] != 2 {
		t.Errorf("line = %d, want 2", perr.Position[0])
	}
}
