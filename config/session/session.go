/*
 * i8085 - Session configuration file parser.
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

/*
 * Session file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := 'org' <whitespace> <address> |
 *           'program' <whitespace> <path> |
 *           'binary' <whitespace> <path> |
 *           'break' <whitespace> <address> |
 *           'trace' <whitespace> ('on' | 'off')
 * <address> ::= <number> | <hexnumber> 'H' | <hexnumber> 'K'
 */
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Session is the result of loading a session file: where to load a program
// and from what source, which breakpoints to arm before running, and
// whether instruction tracing starts enabled.
type Session struct {
	Origin      uint16
	ProgramPath string
	IsSource    bool // true if ProgramPath holds assembly text, false if raw bytes
	Breakpoints []uint16
	Trace       bool
}

type optionLine struct {
	line string
	pos  int
}

// Load reads a session file and returns the directives it contains.
func Load(name string) (*Session, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sess := &Session{Origin: 0x0400}
	reader := bufio.NewReader(file)
	lineNumber := 0
	for {
		raw, err := reader.ReadString('\n')
		lineNumber++
		if len(raw) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if err := parseLine(raw, sess); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
	}
	return sess, nil
}

func parseLine(raw string, sess *Session) error {
	line := &optionLine{line: raw}
	keyword := line.getName()
	if keyword == "" {
		return nil
	}

	switch keyword {
	case "org":
		addr, err := line.getNumber()
		if err != nil {
			return err
		}
		sess.Origin = addr
	case "program":
		sess.ProgramPath = line.getRest()
		sess.IsSource = true
	case "binary":
		sess.ProgramPath = line.getRest()
		sess.IsSource = false
	case "break":
		addr, err := line.getNumber()
		if err != nil {
			return err
		}
		sess.Breakpoints = append(sess.Breakpoints, addr)
	case "trace":
		word := strings.ToLower(line.getRest())
		switch word {
		case "on":
			sess.Trace = true
		case "off":
			sess.Trace = false
		default:
			return fmt.Errorf("trace expects on or off, got %q", word)
		}
	default:
		return fmt.Errorf("unknown directive: %s", keyword)
	}
	return nil
}

func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *optionLine) isEOL() bool {
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// getName reads a leading alphabetic keyword, lower-cased.
func (line *optionLine) getName() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	start := line.pos
	for !line.isEOL() && (unicode.IsLetter(rune(line.line[line.pos])) || unicode.IsDigit(rune(line.line[line.pos]))) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

// getNumber reads a decimal number, or a hex number with a trailing H or K.
func (line *optionLine) getNumber() (uint16, error) {
	word := line.getName()
	if word == "" {
		return 0, errors.New("expected a number")
	}
	last := word[len(word)-1]
	if last == 'h' || last == 'k' {
		v, err := strconv.ParseUint(word[:len(word)-1], 16, 32)
		return uint16(v), err
	}
	v, err := strconv.ParseUint(word, 10, 32)
	return uint16(v), err
}

// getRest returns the remainder of the line, trimmed of surrounding space
// and any trailing comment.
func (line *optionLine) getRest() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	rest := line.line[line.pos:]
	if idx := strings.IndexByte(rest, '#'); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSpace(rest)
}
