package session

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.cfg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesAllDirectives(t *testing.T) {
	path := writeTemp(t, `
# a sample session
org 1000H
program sum.asm
break 1010H
break 1020h
trace on
`)
	sess, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Origin != 0x1000 {
		t.Errorf("Origin = %#x, want 0x1000", sess.Origin)
	}
	if sess.ProgramPath != "sum.asm" || !sess.IsSource {
		t.Errorf("ProgramPath/IsSource = %q/%v, want sum.asm/true", sess.ProgramPath, sess.IsSource)
	}
	if len(sess.Breakpoints) != 2 || sess.Breakpoints[0] != 0x1010 || sess.Breakpoints[1] != 0x1020 {
		t.Errorf("Breakpoints = %v, want [0x1010 0x1020]", sess.Breakpoints)
	}
	if !sess.Trace {
		t.Error("Trace should be true")
	}
}

func TestLoadDecimalOrigin(t *testing.T) {
	path := writeTemp(t, "org 2048\n")
	sess, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Origin != 2048 {
		t.Errorf("Origin = %d, want 2048", sess.Origin)
	}
}

func TestLoadRejectsUnknownDirective(t *testing.T) {
	path := writeTemp(t, "bogus 1\n")
	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unknown directive")
	}
}

func TestLoadBinaryDirective(t *testing.T) {
	path := writeTemp(t, "binary sum.bin\n")
	sess, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sess.ProgramPath != "sum.bin" || sess.IsSource {
		t.Errorf("ProgramPath/IsSource = %q/%v, want sum.bin/false", sess.ProgramPath, sess.IsSource)
	}
}
