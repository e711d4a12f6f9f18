package token

import "testing"

func TestLookupRegisterKnownNames(t *testing.T) {
	cases := map[string]Register{
		"A": A, "B": B, "C": C, "D": D, "E": E, "H": H, "L": L, "M": M, "SP": SP, "PSW": PSW,
	}
	for name, want := range cases {
		got, ok := LookupRegister(name)
		if !ok {
			t.Errorf("LookupRegister(%q) not found", name)
			continue
		}
		if got != want {
			t.Errorf("LookupRegister(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLookupRegisterUnknownName(t *testing.T) {
	if _, ok := LookupRegister("X"); ok {
		t.Error("LookupRegister(\"X\") should not be found")
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{Operation, "operation"},
		{U8, "byte literal"},
		{U16, "word literal"},
		{Label, "label"},
		{Comma, "comma"},
		{Colon, "colon"},
		{RegisterTok, "register"},
		{End, "end of input"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("%v.String() = %q, want %q", int(c.kind), got, c.want)
		}
	}
}

func TestTokenStringFormatsPayload(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: Operation, Text: "MOV"}, "operation(MOV)"},
		{Token{Kind: Label, Text: "LOOP"}, "label(LOOP)"},
		{Token{Kind: U8, Byte: 5}, "U8(5)"},
		{Token{Kind: U16, Word: 4096}, "U16(4096)"},
		{Token{Kind: RegisterTok, Reg: A}, "Register(0)"},
		{Token{Kind: End}, "end of input"},
	}
	for _, c := range cases {
		if got := c.tok.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}
