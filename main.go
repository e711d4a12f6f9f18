/*
 * i8085 - Main process.
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

package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/i8085/command/reader"
	session "github.com/rcornwell/i8085/config/session"
	"github.com/rcornwell/i8085/emu/core"
	"github.com/rcornwell/i8085/emu/cpu"
	logger "github.com/rcornwell/i8085/util/logger"
)

var Logger *slog.Logger

func main() {
	optProgram := getopt.StringLong("program", 'p', "", "Assembly source file to load and run")
	optOrg := getopt.StringLong("org", 'o', "0400H", "Load address for --program")
	optConfig := getopt.StringLong("config", 'c', "", "Session configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optTrace := getopt.BoolLong("trace", 't', "Enable instruction tracing")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optTrace))
	slog.SetDefault(Logger)

	Logger.Info("i8085 simulator started")

	m := core.New()

	if *optTrace {
		cpu.SetDebug([]string{"INST"})
	}

	if *optConfig != "" {
		sess, err := session.Load(*optConfig)
		if err != nil {
			Logger.Error("loading session file", "error", err)
			os.Exit(1)
		}
		if sess.Trace {
			cpu.SetDebug([]string{"INST"})
		}
		for _, addr := range sess.Breakpoints {
			m.SetBreakpoint(addr)
		}
		if sess.ProgramPath != "" {
			if err := loadProgram(m, sess.ProgramPath, sess.Origin, sess.IsSource); err != nil {
				Logger.Error("loading program", "error", err)
				os.Exit(1)
			}
		}
	}

	if *optProgram != "" {
		origin, err := parseOrigin(*optOrg)
		if err != nil {
			Logger.Error("parsing --org", "error", err)
			os.Exit(1)
		}
		if err := loadProgram(m, *optProgram, origin, true); err != nil {
			Logger.Error("loading program", "error", err)
			os.Exit(1)
		}
	}

	reader.ConsoleReader(m)

	Logger.Info("i8085 simulator stopped")
}

func loadProgram(m *core.Machine, path string, origin uint16, isSource bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isSource {
		return m.Assemble(string(data), origin)
	}
	return m.Load(data, origin)
}

func parseOrigin(s string) (uint16, error) {
	last := s[len(s)-1]
	if last == 'H' || last == 'h' || last == 'K' || last == 'k' {
		var v uint64
		_, err := fmt.Sscanf(s[:len(s)-1], "%x", &v)
		return uint16(v), err
	}
	var v uint64
	_, err := fmt.Sscanf(s, "%d", &v)
	return uint16(v), err
}
